package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"net/http"
	"salon/config"
	"salon/infras/otel"
	"salon/internal/domains/catalog/model"
	"salon/internal/domains/catalog/model/dto"
	"salon/internal/domains/catalog/repository"
	"salon/shared"
	"salon/shared/cache"
	"salon/shared/constant"
	gDto "salon/shared/dto"
	"salon/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetService     = "catalog:service"
	cacheListServices   = "catalog:services"
	cacheListCategories = "catalog:categories"

	rootCategory = "root"
)

var (
	ErrServiceNotFound = &failure.Failure{Code: http.StatusBadRequest, Reason: failure.ReasonValidation, Message: "service not found"}
	ErrServiceInactive = &failure.Failure{Code: http.StatusBadRequest, Reason: failure.ReasonValidation, Message: "service is not available"}
)

type Catalog interface {
	ListCategories(ctx context.Context, parentID string) (dto.GetCategoriesResponse, error)
	ListServices(ctx context.Context, categoryID string) (dto.GetServicesResponse, error)
	GetService(ctx context.Context, id string) (model.Service, error)
	GetServices(ctx context.Context, ids []string) (model.Bundle, error)
}

type serviceImpl struct {
	categoryRepo repository.Category
	serviceRepo  repository.Service
	cfg          *config.Config
	cache        cache.RedisCache
	otel         otel.Otel
}

func New(categoryRepo repository.Category, serviceRepo repository.Service, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Catalog {
	return &serviceImpl{
		categoryRepo: categoryRepo,
		serviceRepo:  serviceRepo,
		cfg:          cfg,
		cache:        cache,
		otel:         otel,
	}
}

func (s *serviceImpl) ListCategories(ctx context.Context, parentID string) (res dto.GetCategoriesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListCategories")
	defer scope.End()
	defer scope.TraceIfError(&err)

	parent := model.FieldParentID
	parentFilter := gDto.Filter{Field: parent, Operator: gDto.FilterIsNull, Table: model.CategoryTableName}
	cacheKey := shared.BuildCacheKey(cacheListCategories, rootCategory)

	if parentID != constant.Empty {
		parentFilter = gDto.Filter{Field: parent, Value: parentID, Operator: gDto.FilterOperatorEq, Table: model.CategoryTableName}
		cacheKey = shared.BuildCacheKey(cacheListCategories, parentID)
	}

	filter := gDto.FilterGroup{
		Filters: []any{
			parentFilter,
			gDto.Filter{Field: model.FieldActive, Value: true, Operator: gDto.FilterOperatorEq, Table: model.CategoryTableName},
		},
	}

	res, err = cache.Load(ctx, s.cache, cacheKey, s.cfg.Cache.TTL, func(ctx context.Context) (dto.GetCategoriesResponse, error) {
		var loaded dto.GetCategoriesResponse

		models, err := s.categoryRepo.GetAll(ctx, gDto.QueryParams{SortBy: model.FieldTitle, SortDir: gDto.SortDirAsc}, filter)
		if err != nil {
			return loaded, err //nolint:wrapcheck
		}

		loaded.FromModels(models)

		return loaded, nil
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to list categories")

		return res, fmt.Errorf("failed to list categories: %w", err)
	}

	return res, nil
}

func (s *serviceImpl) ListServices(ctx context.Context, categoryID string) (res dto.GetServicesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListServices")
	defer scope.End()
	defer scope.TraceIfError(&err)

	filters := []any{
		gDto.Filter{Field: model.FieldActive, Value: true, Operator: gDto.FilterOperatorEq, Table: model.ServiceTableName},
	}
	cacheKey := shared.BuildCacheKey(cacheListServices, constant.Asterix)

	if categoryID != constant.Empty {
		filters = append(filters, gDto.Filter{Field: model.FieldCategoryID, Value: categoryID, Operator: gDto.FilterOperatorEq, Table: model.ServiceTableName})
		cacheKey = shared.BuildCacheKey(cacheListServices, categoryID)
	}

	res, err = cache.Load(ctx, s.cache, cacheKey, s.cfg.Cache.TTL, func(ctx context.Context) (dto.GetServicesResponse, error) {
		var loaded dto.GetServicesResponse

		models, err := s.serviceRepo.GetAll(ctx, gDto.QueryParams{SortBy: model.FieldTitle, SortDir: gDto.SortDirAsc}, gDto.FilterGroup{Filters: filters})
		if err != nil {
			return loaded, err //nolint:wrapcheck
		}

		loaded.FromModels(models)

		return loaded, nil
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to list services")

		return res, fmt.Errorf("failed to list services: %w", err)
	}

	return res, nil
}

// GetService returns an active service, ErrServiceNotFound or ErrServiceInactive.
func (s *serviceImpl) GetService(ctx context.Context, id string) (res model.Service, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetService")
	defer scope.End()
	defer scope.TraceIfError(&err)

	cacheKey := shared.BuildCacheKey(cacheGetService, id)

	res, err = cache.Load(ctx, s.cache, cacheKey, s.cfg.Cache.TTL, func(ctx context.Context) (model.Service, error) {
		return s.serviceRepo.Get(ctx, shared.FilterByID(id, model.FieldID, model.ServiceTableName)) //nolint:wrapcheck
	})
	if err != nil {
		log.Error().Err(err).Str("service_id", id).Msg("failed to get service")

		return res, fmt.Errorf("failed to get service: %w", err)
	}

	return res, checkService(res)
}

// GetServices loads ids in one query and keeps the requested order.
func (s *serviceImpl) GetServices(ctx context.Context, ids []string) (res model.Bundle, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetServices")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if len(ids) == 0 {
		return model.NewBundle(nil), nil
	}

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: model.FieldID, Value: ids, Operator: gDto.FilterOperatorIn, Table: model.ServiceTableName},
		},
	}

	models, err := s.serviceRepo.GetAll(ctx, gDto.QueryParams{}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get services")

		return res, fmt.Errorf("failed to get services: %w", err)
	}

	byID := make(map[string]model.Service, len(models))
	for _, mod := range models {
		byID[mod.ID] = mod
	}

	services := make([]model.Service, 0, len(ids))

	for _, id := range ids {
		svc := byID[id]
		if err = checkService(svc); err != nil {
			log.Warn().Str("service_id", id).Msg(err.Error())

			return res, err
		}

		services = append(services, svc)
	}

	return model.NewBundle(services), nil
}

func checkService(svc model.Service) error {
	if svc.ID == constant.Empty {
		return ErrServiceNotFound
	}

	if !svc.Active {
		return ErrServiceInactive
	}

	return nil
}
