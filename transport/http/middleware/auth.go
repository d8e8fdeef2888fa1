package middleware

import (
	"context"
	"crypto/subtle"
	"net/http"
	"salon/config"
	"salon/infras/jwt"
	"salon/infras/otel"
	"salon/permissions"
	"salon/shared/constant"
	"salon/shared/failure"
	"salon/transport/http/response"
	"strings"

	"github.com/go-chi/chi/v5"
)

// Caller authenticates the front-end calling the API and records who acts on its behalf.
type Caller interface {
	APIKey(next http.Handler) http.Handler
	Actor(next http.Handler) http.Handler
	Authorize(next http.Handler) http.Handler
}

type callerImpl struct {
	otel       otel.Otel
	cfg        *config.Config
	tokens     jwt.JWT
	permission *permissions.PermissionData
}

func NewCallerMiddleware(otel otel.Otel, cfg *config.Config, tokens jwt.JWT, permission *permissions.PermissionData) Caller {
	return &callerImpl{
		otel:       otel,
		cfg:        cfg,
		tokens:     tokens,
		permission: permission,
	}
}

// APIKey rejects requests without the configured key. An empty APP_API_KEY disables the check.
func (m *callerImpl) APIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		_, scope := m.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, "api_key.middleware")

		expected := m.cfg.App.APIKey
		if expected == constant.Empty {
			scope.End()
			next.ServeHTTP(writer, request)

			return
		}

		apiKey := request.Header.Get(constant.RequestHeaderAPIKey)
		if subtle.ConstantTimeCompare([]byte(apiKey), []byte(expected)) != 1 {
			err := failure.Unauthorized("invalid api key")

			scope.TraceError(err)
			scope.End()
			response.WithError(writer, err)

			return
		}

		scope.End()
		next.ServeHTTP(writer, request)
	})
}

// Actor stores the acting user for audit columns. A bearer token, when signing is configured,
// takes precedence over the X-Actor-ID header; an invalid token is rejected.
func (m *callerImpl) Actor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		actor := strings.TrimSpace(request.Header.Get(constant.RequestHeaderActorID))

		if authHeader := request.Header.Get(constant.RequestHeaderAuthorization); authHeader != constant.Empty && m.tokens.Enabled() {
			_, scope := m.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, "actor.middleware")

			claims, err := m.verify(authHeader)
			if err != nil {
				err = failure.Unauthorized(err.Error())

				scope.TraceError(err)
				scope.End()
				response.WithError(writer, err)

				return
			}

			scope.End()

			actor = claims.Subject
			request = request.WithContext(context.WithValue(request.Context(), constant.ContextKeyUserRole, claims.Role))
		}

		if actor == constant.Empty {
			next.ServeHTTP(writer, request)

			return
		}

		ctx := context.WithValue(request.Context(), constant.ContextKeyUserID, actor)

		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}

// Authorize restricts the staff routes listed in permissions.json to bearer tokens carrying an allowed role.
// It must run after Actor. Without token signing every route stays open.
func (m *callerImpl) Authorize(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if m.permission == nil || m.permission.Skip || !m.tokens.Enabled() {
			next.ServeHTTP(writer, request)

			return
		}

		ctx, scope := m.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, "authorize.middleware")

		rctx := chi.RouteContext(ctx)
		method := request.Method

		var path string
		if rctx != nil && rctx.Routes != nil {
			path = rctx.Routes.Find(chi.NewRouteContext(), method, request.URL.Path)
		}

		scope.SetAttributes(map[string]any{
			"middleware.type": "authorize",
			"http.path":       path,
			"http.method":     method,
		})

		permission, restricted := m.permission.Find(path, method)
		if !restricted {
			scope.End()
			next.ServeHTTP(writer, request)

			return
		}

		role, _ := ctx.Value(constant.ContextKeyUserRole).(string)
		if role == constant.Empty {
			err := failure.Unauthorized("bearer token required")

			scope.TraceError(err)
			scope.End()
			response.WithError(writer, err)

			return
		}

		if !permission.Allows(role) {
			err := failure.Forbidden("role is not allowed to access this endpoint")

			scope.TraceError(err)
			scope.End()
			response.WithError(writer, err)

			return
		}

		scope.End()
		next.ServeHTTP(writer, request)
	})
}

func (m *callerImpl) verify(authHeader string) (*jwt.Claims, error) {
	token, err := jwt.ExtractTokenFromHeader(authHeader)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	return m.tokens.Verify(token) //nolint:wrapcheck
}
