package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"salon/config"
	"salon/infras/otel"
	"salon/internal/domains/appointment/model"
	"salon/internal/domains/appointment/model/dto"
	"salon/internal/domains/appointment/repository"
	"salon/shared"
	"salon/shared/constant"
	gDto "salon/shared/dto"
	"salon/shared/failure"

	"github.com/rs/zerolog/log"
)

type Appointment interface {
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetAppointmentsResponse, error)
	Get(ctx context.Context, id string) (dto.AppointmentResponse, error)
	UpdateStatus(ctx context.Context, req dto.UpdateStatusRequest, id string) error
}

type serviceImpl struct {
	repo repository.Appointment
	cfg  *config.Config
	otel otel.Otel
}

func New(repo repository.Appointment, cfg *config.Config, otel otel.Otel) Appointment {
	return &serviceImpl{
		repo: repo,
		cfg:  cfg,
		otel: otel,
	}
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetAppointmentsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(&err)

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count appointments")

		return res, fmt.Errorf("failed to count appointments: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get appointments")

		return res, fmt.Errorf("failed to get appointments: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.AppointmentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(&err)

	appointment, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get appointment")

		return res, fmt.Errorf("failed to get appointment: %w", err)
	}

	if appointment.ID == constant.Empty {
		return res, failure.NotFound("appointment not found") // nolint:wrapcheck
	}

	serviceIDs, err := s.repo.ServiceIDs(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to get appointment services")

		return res, fmt.Errorf("failed to get appointment services: %w", err)
	}

	res.FromModel(appointment)
	res.ServiceIDs = serviceIDs

	return res, nil
}

func (s *serviceImpl) UpdateStatus(ctx context.Context, req dto.UpdateStatusRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateStatus")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if !model.IsValidStatus(req.Status) {
		return failure.BadRequestFromString("invalid appointment status") // nolint:wrapcheck
	}

	appointment, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName), model.FieldID, model.FieldStatus)
	if err != nil {
		log.Error().Err(err).Msg("failed to get appointment")

		return fmt.Errorf("failed to get appointment: %w", err)
	}

	if appointment.ID == constant.Empty {
		return failure.NotFound("appointment not found") // nolint:wrapcheck
	}

	if appointment.Status == req.Status {
		return nil
	}

	err = s.repo.UpdateStatus(ctx, id, req.Status, shared.ActorFromContext(ctx))
	if errors.Is(err, repository.ErrOverlap) {
		return failure.SlotUnavailable("the time slot is already taken") // nolint:wrapcheck
	}

	if err != nil {
		log.Error().Err(err).Msg("failed to update appointment status")

		return fmt.Errorf("failed to update appointment status: %w", err)
	}

	log.Info().Str("appointment_id", id).Str("from", appointment.Status).Str("to", req.Status).Msg("appointment status updated")

	return nil
}
