package permissions

import (
	_ "embed"
	"encoding/json"
	"slices"
	"strings"

	"github.com/rs/zerolog/log"
)

//go:embed permissions.json
var permissionsData []byte

// Permission lists the token roles allowed to call one route pattern.
type Permission struct {
	Roles  []string `json:"roles"`
	Path   string   `json:"path"`
	Method string   `json:"method"`
}

// Allows reports whether role may call the endpoint.
func (p Permission) Allows(role string) bool {
	return slices.Contains(p.Roles, role)
}

type PermissionData struct {
	Endpoints []Permission `json:"endpoints"`
	Skip      bool         `json:"skip"`
}

// Find returns the restriction for a route pattern. Routes without an entry are open to any caller.
func (r *PermissionData) Find(path, method string) (Permission, bool) {
	path = normalize(path)

	idx := slices.IndexFunc(r.Endpoints, func(rp Permission) bool {
		return normalize(rp.Path) == path && strings.EqualFold(rp.Method, method)
	})

	if idx == -1 {
		return Permission{}, false
	}

	return r.Endpoints[idx], true
}

func normalize(path string) string {
	trimmed := strings.TrimSuffix(path, "/")
	if trimmed == "" {
		return "/"
	}

	return trimmed
}

func Get() *PermissionData {
	var permissions PermissionData

	err := json.Unmarshal(permissionsData, &permissions)
	if err != nil {
		log.Err(err).Msg("Failed to decode embedded permissions")

		return nil
	}

	log.Info().Int("endpoints", len(permissions.Endpoints)).Msg("Successfully loaded embedded permissions")

	return &permissions
}
