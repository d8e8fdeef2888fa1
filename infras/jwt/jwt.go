package jwt

import (
	"errors"
	"fmt"
	"salon/config"
	"salon/shared/constant"
	"salon/shared/timezone"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrExpiredToken  = errors.New("token has expired")
	ErrMissingActor  = errors.New("token has no subject")
	ErrNotConfigured = errors.New("token signing is not configured")
)

// Claims identify the person a front-end acts for. The subject is the actor id written to audit columns.
type Claims struct {
	Name string `json:"name,omitempty"`
	Role string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// JWT issues and verifies actor tokens signed with the shared HS256 secret.
type JWT interface {
	Enabled() bool
	Issue(actor, name, role string) (string, error)
	Verify(token string) (*Claims, error)
}

type Service struct {
	config *config.Config
	now    func() time.Time
}

func New(cfg *config.Config) JWT {
	return &Service{
		config: cfg,
		now:    timezone.Now,
	}
}

func (s *Service) Enabled() bool {
	return s.config.JWT.Secret != constant.Empty
}

func (s *Service) Issue(actor, name, role string) (string, error) {
	if !s.Enabled() {
		return constant.Empty, ErrNotConfigured
	}

	issuedAt := s.now()
	expiresAt := issuedAt.Add(time.Duration(s.config.JWT.ExpireMinutes) * time.Minute)

	claims := Claims{
		Name: name,
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
			Issuer:    s.issuer(),
			Subject:   actor,
			ID:        uuid.NewString(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.config.JWT.Secret))
	if err != nil {
		return constant.Empty, fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

func (s *Service) Verify(tokenString string) (*Claims, error) {
	if !s.Enabled() {
		return nil, ErrNotConfigured
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}

		return []byte(s.config.JWT.Secret), nil
	}, jwt.WithIssuer(s.issuer()), jwt.WithTimeFunc(s.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}

		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.Subject == constant.Empty {
		return nil, ErrMissingActor
	}

	return claims, nil
}

func (s *Service) issuer() string {
	if s.config.JWT.Issuer != constant.Empty {
		return s.config.JWT.Issuer
	}

	return s.config.App.Name
}

// ExtractTokenFromHeader returns the bearer token of an Authorization header.
func ExtractTokenFromHeader(authHeader string) (string, error) {
	if authHeader == constant.Empty {
		return constant.Empty, errors.New("authorization header is required")
	}

	token, ok := strings.CutPrefix(authHeader, constant.BearerPrefix)
	if !ok || token == constant.Empty {
		return constant.Empty, errors.New("authorization header must start with 'Bearer '")
	}

	return token, nil
}
