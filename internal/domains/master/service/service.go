package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"net/http"
	"salon/config"
	"salon/infras/otel"
	"salon/internal/domains/master/model"
	"salon/internal/domains/master/repository"
	"salon/shared"
	"salon/shared/cache"
	"salon/shared/constant"
	"salon/shared/failure"
	"slices"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetMaster       = "master:get"
	cacheMastersOffering = "master:offering"
)

var (
	ErrNoServices        = &failure.Failure{Code: http.StatusBadRequest, Reason: failure.ReasonValidation, Message: "at least one service must be selected"}
	ErrMasterNotFound    = &failure.Failure{Code: http.StatusBadRequest, Reason: failure.ReasonValidation, Message: "master not found"}
	ErrMasterInactive    = &failure.Failure{Code: http.StatusBadRequest, Reason: failure.ReasonValidation, Message: "master is not available"}
	ErrServiceNotOffered = &failure.Failure{Code: http.StatusBadRequest, Reason: failure.ReasonValidation, Message: "master does not offer the selected services"}
)

// Matcher resolves which masters can deliver a service bundle.
type Matcher interface {
	MastersOffering(ctx context.Context, serviceID string) ([]model.Offering, error)
	MastersFor(ctx context.Context, serviceIDs []string) ([]model.Offering, error)
	Get(ctx context.Context, id string) (model.Master, error)
	Offers(ctx context.Context, masterID string, serviceIDs []string) error
}

type serviceImpl struct {
	repo  repository.Master
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Master, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Matcher {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) MastersOffering(ctx context.Context, serviceID string) (res []model.Offering, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".MastersOffering")
	defer scope.End()
	defer scope.TraceIfError(&err)

	cacheKey := shared.BuildCacheKey(cacheMastersOffering, serviceID)

	res, err = cache.Load(ctx, s.cache, cacheKey, s.cfg.Cache.TTL, func(ctx context.Context) ([]model.Offering, error) {
		return s.repo.MastersOffering(ctx, serviceID) //nolint:wrapcheck
	})
	if err != nil {
		log.Error().Err(err).Str("service_id", serviceID).Msg("failed to get masters offering service")

		return nil, fmt.Errorf("failed to get masters offering service: %w", err)
	}

	return res, nil
}

// MastersFor returns the masters offering every requested service, ordered as the directory
// orders them for the first requested service.
func (s *serviceImpl) MastersFor(ctx context.Context, serviceIDs []string) (res []model.Offering, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".MastersFor")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if len(serviceIDs) == 0 {
		return nil, ErrNoServices
	}

	res, err = s.MastersOffering(ctx, serviceIDs[0])
	if err != nil {
		return nil, err
	}

	for _, serviceID := range serviceIDs[1:] {
		if len(res) == 0 {
			break
		}

		offering, err := s.MastersOffering(ctx, serviceID)
		if err != nil {
			return nil, err
		}

		offered := make(map[string]struct{}, len(offering))
		for _, o := range offering {
			offered[o.MasterID] = struct{}{}
		}

		res = slices.DeleteFunc(res, func(o model.Offering) bool {
			_, ok := offered[o.MasterID]

			return !ok
		})
	}

	return res, nil
}

// Get returns the master or ErrMasterNotFound. Inactive masters are returned as is.
func (s *serviceImpl) Get(ctx context.Context, id string) (res model.Master, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(&err)

	cacheKey := shared.BuildCacheKey(cacheGetMaster, id)

	res, err = cache.Load(ctx, s.cache, cacheKey, s.cfg.Cache.TTL, func(ctx context.Context) (model.Master, error) {
		return s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName)) //nolint:wrapcheck
	})
	if err != nil {
		log.Error().Err(err).Str("master_id", id).Msg("failed to get master")

		return res, fmt.Errorf("failed to get master: %w", err)
	}

	if res.ID == constant.Empty {
		return res, ErrMasterNotFound
	}

	return res, nil
}

// Offers fails with ErrServiceNotOffered unless the master is linked to every service.
func (s *serviceImpl) Offers(ctx context.Context, masterID string, serviceIDs []string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Offers")
	defer scope.End()
	defer scope.TraceIfError(&err)

	offered, err := s.repo.OfferedServices(ctx, masterID, serviceIDs)
	if err != nil {
		log.Error().Err(err).Str("master_id", masterID).Msg("failed to get offered services")

		return fmt.Errorf("failed to get offered services: %w", err)
	}

	for _, id := range serviceIDs {
		if !slices.Contains(offered, id) {
			return ErrServiceNotOffered
		}
	}

	return nil
}
