package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"salon/config"
	"salon/infras/otel"
	appointmentModel "salon/internal/domains/appointment/model"
	appointmentRepo "salon/internal/domains/appointment/repository"
	availabilityModel "salon/internal/domains/availability/model"
	"salon/internal/domains/booking/model"
	catalogModel "salon/internal/domains/catalog/model"
	catalogService "salon/internal/domains/catalog/service"
	clientModel "salon/internal/domains/client/model"
	clientRepo "salon/internal/domains/client/repository"
	masterService "salon/internal/domains/master/service"
	notificationModel "salon/internal/domains/notification/model"
	notificationService "salon/internal/domains/notification/service"
	scheduleService "salon/internal/domains/schedule/service"
	"salon/shared"
	"salon/shared/clock"
	"salon/shared/constant"
	"salon/shared/failure"
	gModel "salon/shared/model"
	"salon/shared/timezone"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var (
	ErrEmptyServices     = &failure.Failure{Code: http.StatusBadRequest, Reason: failure.ReasonValidation, Message: "at least one service must be selected"}
	ErrDuplicateService  = &failure.Failure{Code: http.StatusBadRequest, Reason: failure.ReasonValidation, Message: "a service is selected more than once"}
	ErrClientNotFound    = &failure.Failure{Code: http.StatusBadRequest, Reason: failure.ReasonValidation, Message: "client not found"}
	ErrPastDate          = &failure.Failure{Code: http.StatusBadRequest, Reason: failure.ReasonValidation, Message: "date is in the past"}
	ErrInvalidStartTime  = &failure.Failure{Code: http.StatusBadRequest, Reason: failure.ReasonValidation, Message: "appointment must start and end within the day"}
	ErrSlotUnavailable   = &failure.Failure{Code: http.StatusConflict, Reason: failure.ReasonSlotUnavailable, Message: "the selected time is no longer available"}
	ErrPersistenceFailed = &failure.Failure{Code: http.StatusServiceUnavailable, Reason: failure.ReasonPersistenceFailure, Message: "could not save the appointment, please try again"}
)

// Creator validates and atomically persists a confirmed booking.
type Creator interface {
	Create(ctx context.Context, cmd model.Command) (model.Result, error)
}

type serviceImpl struct {
	clients   clientRepo.Client
	masters   masterService.Matcher
	catalog   catalogService.Catalog
	schedule  scheduleService.Schedule
	ledger    appointmentRepo.Appointment
	publisher notificationService.Publisher
	cfg       *config.Config
	otel      otel.Otel
}

func New(
	clients clientRepo.Client,
	masters masterService.Matcher,
	catalog catalogService.Catalog,
	schedule scheduleService.Schedule,
	ledger appointmentRepo.Appointment,
	publisher notificationService.Publisher,
	cfg *config.Config,
	otel otel.Otel,
) Creator {
	return &serviceImpl{
		clients:   clients,
		masters:   masters,
		catalog:   catalog,
		schedule:  schedule,
		ledger:    ledger,
		publisher: publisher,
		cfg:       cfg,
		otel:      otel,
	}
}

// Create checks every reference before writing anything, then re-validates the slot and inserts
// the appointment with its service links in one ledger transaction.
func (s *serviceImpl) Create(ctx context.Context, cmd model.Command) (res model.Result, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(&err)

	bundle, err := s.validate(ctx, cmd)
	if err != nil {
		return res, err
	}

	span := clock.NewRange(cmd.Start, bundle.TotalDuration)
	if !cmd.Start.Valid() || span.End > clock.MinutesPerDay {
		return res, ErrInvalidStartTime
	}

	window, err := s.schedule.ForDate(ctx, cmd.MasterID, cmd.Date)
	if err != nil {
		log.Error().Err(err).Msg("failed to get work schedule")

		return res, fmt.Errorf("failed to get work schedule: %w", err)
	}

	if !window.Works {
		return res, ErrSlotUnavailable
	}

	actor := shared.ActorFromContext(ctx)
	appointment := appointmentModel.Appointment{
		ID:              uuid.NewString(),
		ClientID:        cmd.ClientID,
		MasterID:        cmd.MasterID,
		AppointmentDate: cmd.Date,
		StartTime:       span.Start,
		EndTime:         span.End,
		Status:          appointmentModel.StatusPending,
		Comment:         cmd.Comment,
		Metadata:        gModel.NewMetadata(actor, timezone.Now()),
	}

	links := make([]appointmentModel.ServiceLink, len(bundle.Services))
	for i, svc := range bundle.Services {
		links[i] = appointmentModel.ServiceLink{AppointmentID: appointment.ID, ServiceID: svc.ID}
	}

	step := availabilityModel.StepMinutes(s.cfg)

	err = s.ledger.Transaction(ctx, cmd.MasterID, cmd.Date, func(tx appointmentRepo.LedgerTx) error {
		busy, err := tx.BusyIntervals(ctx, cmd.MasterID, cmd.Date)
		if err != nil {
			return err //nolint:wrapcheck
		}

		if !availabilityModel.Fits(window.Range, busy, span.Start, bundle.TotalDuration, step) {
			return ErrSlotUnavailable
		}

		if err := tx.InsertAppointment(ctx, appointment); err != nil {
			return err //nolint:wrapcheck
		}

		return tx.InsertServiceLinks(ctx, links) //nolint:wrapcheck
	})

	switch {
	case errors.Is(err, ErrSlotUnavailable), errors.Is(err, appointmentRepo.ErrOverlap):
		log.Warn().Str("master_id", cmd.MasterID).Str("slot", span.String()).Msg("slot taken before commit")

		return res, ErrSlotUnavailable
	case err != nil:
		log.Error().Err(err).Str("master_id", cmd.MasterID).Msg("failed to create appointment")

		return res, ErrPersistenceFailed
	}

	res = model.Result{
		AppointmentID:    appointment.ID,
		AssignedMasterID: appointment.MasterID,
		ClientID:         appointment.ClientID,
		Date:             cmd.Date.Format(clock.DateLayout),
		StartTime:        appointment.StartTime,
		EndTime:          appointment.EndTime,
		ServiceIDs:       bundle.IDs(),
		TotalPrice:       bundle.TotalPrice,
	}

	log.Info().Str("appointment_id", res.AppointmentID).Str("master_id", res.AssignedMasterID).Str("slot", span.String()).Msg("appointment created")

	event := notificationModel.AppointmentCreated{
		AppointmentID:    res.AppointmentID,
		AssignedMasterID: res.AssignedMasterID,
		ClientID:         res.ClientID,
		Date:             res.Date,
		Time:             res.StartTime,
		ServiceIDs:       res.ServiceIDs,
		OccurredAt:       timezone.Now(),
	}

	if err := s.publisher.AppointmentCreated(ctx, event); err != nil {
		log.Error().Err(err).Str("appointment_id", res.AppointmentID).Msg("failed to publish appointment created")
	}

	return res, nil
}

func (s *serviceImpl) validate(ctx context.Context, cmd model.Command) (catalogModel.Bundle, error) {
	var bundle catalogModel.Bundle

	if len(cmd.ServiceIDs) == 0 {
		return bundle, ErrEmptyServices
	}

	seen := make(map[string]struct{}, len(cmd.ServiceIDs))
	for _, id := range cmd.ServiceIDs {
		if _, ok := seen[id]; ok {
			return bundle, ErrDuplicateService
		}

		seen[id] = struct{}{}
	}

	if timezone.IsPastDate(cmd.Date) {
		return bundle, ErrPastDate
	}

	exist, err := s.clients.Exist(ctx, shared.FilterByID(cmd.ClientID, clientModel.FieldID, clientModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if client exists")

		return bundle, fmt.Errorf("failed to check if client exists: %w", err)
	}

	if !exist {
		return bundle, ErrClientNotFound
	}

	master, err := s.masters.Get(ctx, cmd.MasterID)
	if err != nil {
		return bundle, err //nolint:wrapcheck
	}

	if !master.Active {
		return bundle, masterService.ErrMasterInactive
	}

	bundle, err = s.catalog.GetServices(ctx, cmd.ServiceIDs)
	if err != nil {
		return bundle, err //nolint:wrapcheck
	}

	if err = s.masters.Offers(ctx, cmd.MasterID, cmd.ServiceIDs); err != nil {
		return bundle, err //nolint:wrapcheck
	}

	return bundle, nil
}
