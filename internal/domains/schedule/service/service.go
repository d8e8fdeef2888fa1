package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"salon/config"
	"salon/infras/otel"
	"salon/internal/domains/schedule/model"
	"salon/internal/domains/schedule/repository"
	"salon/shared"
	"salon/shared/cache"
	"salon/shared/clock"
	"salon/shared/constant"
	gDto "salon/shared/dto"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetSchedule = "schedule:get"
)

type Schedule interface {
	GetSchedule(ctx context.Context, masterID string, dayOfWeek int) (model.Window, error)
	ForDate(ctx context.Context, masterID string, date time.Time) (model.Window, error)
}

type serviceImpl struct {
	repo  repository.Schedule
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Schedule, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Schedule {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

// GetSchedule returns the master's window for dayOfWeek (0 = Monday). Window.Works is false
// when the master has no entry that day.
func (s *serviceImpl) GetSchedule(ctx context.Context, masterID string, dayOfWeek int) (res model.Window, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetSchedule")
	defer scope.End()
	defer scope.TraceIfError(&err)

	cacheKey := shared.BuildCacheKey(cacheGetSchedule, masterID, strconv.Itoa(dayOfWeek))

	res, err = cache.Load(ctx, s.cache, cacheKey, s.cfg.Cache.TTL, func(ctx context.Context) (model.Window, error) {
		filter := gDto.FilterGroup{
			Filters: []any{
				gDto.Filter{Field: model.FieldMasterID, Value: masterID, Operator: gDto.FilterOperatorEq, Table: model.TableName},
				gDto.Filter{Field: model.FieldDayOfWeek, Value: dayOfWeek, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			},
		}

		entry, err := s.repo.Get(ctx, filter)
		if err != nil {
			return model.Window{}, err //nolint:wrapcheck
		}

		if entry.MasterID == constant.Empty {
			return model.Window{}, nil
		}

		return model.Window{Works: true, Range: entry.Range}, nil
	})
	if err != nil {
		log.Error().Err(err).Str("master_id", masterID).Int("day_of_week", dayOfWeek).Msg("failed to get work schedule")

		return res, fmt.Errorf("failed to get work schedule: %w", err)
	}

	return res, nil
}

func (s *serviceImpl) ForDate(ctx context.Context, masterID string, date time.Time) (model.Window, error) {
	return s.GetSchedule(ctx, masterID, clock.Weekday(date))
}
