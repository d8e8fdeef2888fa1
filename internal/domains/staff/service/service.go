package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"salon/config"
	"salon/infras/jwt"
	"salon/infras/otel"
	"salon/internal/domains/staff/model"
	"salon/internal/domains/staff/model/dto"
	"salon/internal/domains/staff/repository"
	"salon/shared"
	"salon/shared/constant"
	gDto "salon/shared/dto"
	"salon/shared/failure"
	"salon/shared/password"
	"salon/shared/timezone"

	"github.com/rs/zerolog/log"
)

const tokenType = "Bearer"

var errInvalidCredentials = failure.Unauthorized("invalid email or password")

// Auth manages staff accounts and exchanges their credentials for actor tokens.
type Auth interface {
	Register(ctx context.Context, req dto.RegisterRequest) (dto.StaffResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error)
	ChangePassword(ctx context.Context, req dto.ChangePasswordRequest) error
}

type serviceImpl struct {
	repo   repository.Staff
	cfg    *config.Config
	otel   otel.Otel
	tokens jwt.JWT
}

func New(repo repository.Staff, cfg *config.Config, otel otel.Otel, tokens jwt.JWT) Auth {
	return &serviceImpl{
		repo:   repo,
		cfg:    cfg,
		otel:   otel,
		tokens: tokens,
	}
}

func byEmail(email string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldEmail,
				Operator: gDto.FilterOperatorEq,
				Value:    dto.NormalizeEmail(email),
				Table:    model.TableName,
			},
		},
	}
}

func (s *serviceImpl) Register(ctx context.Context, req dto.RegisterRequest) (res dto.StaffResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RegisterStaff")
	defer scope.End()
	defer scope.TraceIfError(&err)

	exists, err := s.repo.Exist(ctx, byEmail(req.Email))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if staff exists")

		return res, fmt.Errorf("failed to check if staff exists: %w", err)
	}

	if exists {
		return res, failure.Conflict("email already registered")
	}

	hashed, err := password.Hash(req.Password)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")

		return res, fmt.Errorf("failed to hash password: %w", err)
	}

	staff := req.ToModel(hashed, shared.ActorFromContext(ctx))

	if err = s.repo.Insert(ctx, staff); err != nil {
		log.Error().Err(err).Msg("failed to create staff")

		return res, fmt.Errorf("failed to create staff: %w", err)
	}

	res.FromModel(staff)

	return res, nil
}

func (s *serviceImpl) Login(ctx context.Context, req dto.LoginRequest) (res dto.LoginResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Login")
	defer scope.End()
	defer scope.TraceIfError(&err)

	filter := byEmail(req.Email)

	staff, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get staff")

		return res, fmt.Errorf("failed to get staff: %w", err)
	}

	if staff.ID == constant.Empty {
		log.Warn().Str("email", req.Email).Msg("login attempt with unknown email")

		return res, errInvalidCredentials
	}

	if err = password.Verify(req.Password, staff.Password); err != nil {
		if !errors.Is(err, password.ErrMismatch) {
			log.Error().Err(err).Str("staff_id", staff.ID).Msg("failed to verify password")
		}

		return res, errInvalidCredentials
	}

	if !staff.Active {
		return res, failure.Unauthorized("staff account is deactivated")
	}

	token, err := s.tokens.Issue(staff.ID, staff.Name, staff.Role)
	if err != nil {
		log.Error().Err(err).Msg("failed to issue token")

		return res, fmt.Errorf("failed to issue token: %w", err)
	}

	lastLogin := shared.TransformFields(dto.UpdateLastLoginRequest{LastLogin: timezone.Now()}, staff.ID)
	if err := s.repo.Update(ctx, lastLogin, shared.FilterByID(staff.ID, model.FieldID, model.TableName)); err != nil {
		log.Warn().Err(err).Str("staff_id", staff.ID).Msg("failed to update last login")
	}

	res.AccessToken = token
	res.TokenType = tokenType
	res.ExpiresIn = int64(s.cfg.JWT.ExpireMinutes) * 60
	res.Staff.FromModel(staff)

	return res, nil
}

// ChangePassword updates the password of the staff member identified by the token in ctx.
func (s *serviceImpl) ChangePassword(ctx context.Context, req dto.ChangePasswordRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ChangePassword")
	defer scope.End()
	defer scope.TraceIfError(&err)

	actor := shared.ActorFromContext(ctx)
	if actor == constant.ActorSystem {
		return failure.Unauthorized("bearer token required")
	}

	filter := shared.FilterByID(actor, model.FieldID, model.TableName)

	staff, err := s.repo.Get(ctx, filter, model.FieldID, model.FieldPassword)
	if err != nil {
		log.Error().Err(err).Msg("failed to get staff")

		return fmt.Errorf("failed to get staff: %w", err)
	}

	if staff.ID == constant.Empty {
		return failure.NotFound(model.EntityName)
	}

	if err = password.Verify(req.CurrentPassword, staff.Password); err != nil {
		return failure.BadRequestFromString("current password is incorrect")
	}

	hashed, err := password.Hash(req.NewPassword)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash new password")

		return fmt.Errorf("failed to hash new password: %w", err)
	}

	if err = s.repo.Update(ctx, shared.TransformFields(dto.UpdatePasswordRequest{Password: hashed}, actor), filter); err != nil {
		log.Error().Err(err).Msg("failed to update password")

		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}
