package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"salon/config"
	"salon/infras/otel"
	appointmentRepo "salon/internal/domains/appointment/repository"
	"salon/internal/domains/availability/model"
	scheduleModel "salon/internal/domains/schedule/model"
	scheduleService "salon/internal/domains/schedule/service"
	"salon/shared/clock"
	"salon/shared/constant"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Calculator computes bookable start times from work schedules and the appointment ledger.
// Results are a pure function of the stored state at call time.
type Calculator interface {
	FreeSlots(ctx context.Context, masterID string, date time.Time, duration int) ([]clock.Clock, error)
	SlotsForMasters(ctx context.Context, masterIDs []string, date time.Time, duration int) ([]model.Slot, error)
	IsFree(ctx context.Context, masterID string, date time.Time, start clock.Clock, duration int) (bool, error)
	Step() int
}

type serviceImpl struct {
	schedule scheduleService.Schedule
	ledger   appointmentRepo.Appointment
	cfg      *config.Config
	otel     otel.Otel
}

func New(schedule scheduleService.Schedule, ledger appointmentRepo.Appointment, cfg *config.Config, otel otel.Otel) Calculator {
	return &serviceImpl{
		schedule: schedule,
		ledger:   ledger,
		cfg:      cfg,
		otel:     otel,
	}
}

func (s *serviceImpl) Step() int {
	return model.StepMinutes(s.cfg)
}

func (s *serviceImpl) FreeSlots(ctx context.Context, masterID string, date time.Time, duration int) (res []clock.Clock, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".FreeSlots")
	defer scope.End()
	defer scope.TraceIfError(&err)

	window, busy, err := s.load(ctx, masterID, date)
	if err != nil {
		return nil, err
	}

	if !window.Works {
		return []clock.Clock{}, nil
	}

	return model.Grid(window.Range, busy, duration, s.Step()), nil
}

// SlotsForMasters unions the free slots of every candidate. Candidates are evaluated
// concurrently, bounded by the configured slot concurrency.
func (s *serviceImpl) SlotsForMasters(ctx context.Context, masterIDs []string, date time.Time, duration int) (res []model.Slot, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SlotsForMasters")
	defer scope.End()
	defer scope.TraceIfError(&err)

	perMaster := make([][]clock.Clock, len(masterIDs))

	group, gctx := errgroup.WithContext(ctx)
	if limit := s.cfg.Booking.SlotConcurrency; limit > 0 {
		group.SetLimit(limit)
	}

	for i, masterID := range masterIDs {
		group.Go(func() error {
			slots, err := s.FreeSlots(gctx, masterID, date, duration)
			if err != nil {
				return err
			}

			perMaster[i] = slots

			return nil
		})
	}

	if err = group.Wait(); err != nil {
		return nil, fmt.Errorf("failed to compute slots for masters: %w", err)
	}

	return model.Merge(masterIDs, perMaster), nil
}

func (s *serviceImpl) IsFree(ctx context.Context, masterID string, date time.Time, start clock.Clock, duration int) (ok bool, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".IsFree")
	defer scope.End()
	defer scope.TraceIfError(&err)

	window, busy, err := s.load(ctx, masterID, date)
	if err != nil {
		return false, err
	}

	return window.Works && model.Fits(window.Range, busy, start, duration, s.Step()), nil
}

func (s *serviceImpl) load(ctx context.Context, masterID string, date time.Time) (window scheduleModel.Window, busy []clock.Range, err error) {
	window, err = s.schedule.ForDate(ctx, masterID, date)
	if err != nil {
		return window, nil, fmt.Errorf("failed to get work schedule: %w", err)
	}

	if !window.Works {
		return window, nil, nil
	}

	busy, err = s.ledger.BusyIntervals(ctx, masterID, date)
	if err != nil {
		log.Error().Err(err).Str("master_id", masterID).Msg("failed to get busy intervals")

		return window, nil, fmt.Errorf("failed to get busy intervals: %w", err)
	}

	return window, busy, nil
}
