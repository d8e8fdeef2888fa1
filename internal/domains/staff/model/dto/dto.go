package dto

import (
	"salon/internal/domains/staff/model"
	gModel "salon/shared/model"
	"salon/shared/timezone"
	"strings"
	"time"

	"github.com/google/uuid"
)

type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name"     validate:"required,max=100"`
	Role     string `json:"role"     validate:"required,oneof=staff admin"`
}

func (r *RegisterRequest) ToModel(hashedPassword, actor string) model.Staff {
	return model.Staff{
		ID:       uuid.NewString(),
		Email:    NormalizeEmail(r.Email),
		Password: hashedPassword,
		Name:     strings.TrimSpace(r.Name),
		Role:     r.Role,
		Active:   true,
		Metadata: gModel.NewMetadata(actor, timezone.Now()),
	}
}

type StaffResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

func (s *StaffResponse) FromModel(m model.Staff) {
	s.ID = m.ID
	s.Email = m.Email
	s.Name = m.Name
	s.Role = m.Role
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	AccessToken string        `json:"access_token"`
	TokenType   string        `json:"token_type"`
	ExpiresIn   int64         `json:"expires_in"`
	Staff       StaffResponse `json:"staff"`
}

type UpdateLastLoginRequest struct {
	LastLogin time.Time `db:"last_login"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required,min=8,nefield=CurrentPassword"`
}

type UpdatePasswordRequest struct {
	Password string `db:"password"`
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
