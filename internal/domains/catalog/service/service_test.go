package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"salon/config"
	"salon/infras/otel/mocks"
	catalogMocks "salon/internal/domains/catalog/mocks"
	"salon/internal/domains/catalog/model"
	"salon/internal/domains/catalog/model/dto"
	"salon/internal/domains/catalog/service"
	"salon/shared/cache"
	cacheMocks "salon/shared/cache/mocks"
)

func newCatalog(t *testing.T) (service.Catalog, *catalogMocks.MockCategory, *catalogMocks.MockService, *cacheMocks.MockRedisCache) {
	t.Helper()

	ctrl := gomock.NewController(t)

	mockCategoryRepo := catalogMocks.NewMockCategory(ctrl)
	mockServiceRepo := catalogMocks.NewMockService(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	return service.New(mockCategoryRepo, mockServiceRepo, cfg, mockCache, mocks.NewOtel()), mockCategoryRepo, mockServiceRepo, mockCache
}

func expectCacheMiss(mockCache *cacheMocks.MockRedisCache, key string, wg *sync.WaitGroup) {
	mockCache.EXPECT().Get(gomock.Any(), key, gomock.Any()).Return(cache.Nil)

	wg.Add(1)
	mockCache.EXPECT().
		Save(gomock.Any(), key, gomock.Any(), 3600).
		DoAndReturn(func(context.Context, string, any, int) error {
			wg.Done()

			return nil
		})
}

func TestCatalogService_GetService(t *testing.T) {
	haircut := model.Service{ID: "svc-1", Title: "Haircut", DurationMinutes: 30, Price: decimal.NewFromInt(500), Active: true}

	tests := []struct {
		name      string
		id        string
		setupMock func(repo *catalogMocks.MockService, mockCache *cacheMocks.MockRedisCache, wg *sync.WaitGroup)
		want      model.Service
		wantErr   error
	}{
		{
			name: "cache hit",
			id:   "svc-1",
			setupMock: func(_ *catalogMocks.MockService, mockCache *cacheMocks.MockRedisCache, _ *sync.WaitGroup) {
				mockCache.EXPECT().
					Get(gomock.Any(), "catalog:service:svc-1", gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, value any) error {
						*value.(*model.Service) = haircut

						return nil
					})
			},
			want: haircut,
		},
		{
			name: "cache miss loads from repository",
			id:   "svc-1",
			setupMock: func(repo *catalogMocks.MockService, mockCache *cacheMocks.MockRedisCache, wg *sync.WaitGroup) {
				expectCacheMiss(mockCache, "catalog:service:svc-1", wg)
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(haircut, nil)
			},
			want: haircut,
		},
		{
			name: "unknown service",
			id:   "missing",
			setupMock: func(repo *catalogMocks.MockService, mockCache *cacheMocks.MockRedisCache, wg *sync.WaitGroup) {
				expectCacheMiss(mockCache, "catalog:service:missing", wg)
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Service{}, nil)
			},
			wantErr: service.ErrServiceNotFound,
		},
		{
			name: "inactive service",
			id:   "svc-2",
			setupMock: func(repo *catalogMocks.MockService, mockCache *cacheMocks.MockRedisCache, wg *sync.WaitGroup) {
				expectCacheMiss(mockCache, "catalog:service:svc-2", wg)
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Service{ID: "svc-2", DurationMinutes: 15}, nil)
			},
			wantErr: service.ErrServiceInactive,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, mockRepo, mockCache := newCatalog(t)

			var wg sync.WaitGroup
			tt.setupMock(mockRepo, mockCache, &wg)

			got, err := svc.GetService(context.Background(), tt.id)
			wg.Wait()

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCatalogService_GetServices(t *testing.T) {
	services := []model.Service{
		{ID: "b", DurationMinutes: 45, Price: decimal.RequireFromString("12.50"), Active: true},
		{ID: "a", DurationMinutes: 30, Price: decimal.RequireFromString("7.50"), Active: true},
		{ID: "c", DurationMinutes: 20, Price: decimal.NewFromInt(3)},
	}

	tests := []struct {
		name      string
		ids       []string
		setupMock func(repo *catalogMocks.MockService)
		wantIDs   []string
		wantTotal int
		wantPrice string
		wantErr   error
	}{
		{
			name:      "empty request",
			ids:       nil,
			setupMock: func(*catalogMocks.MockService) {},
			wantIDs:   []string{},
			wantPrice: "0",
		},
		{
			name: "keeps requested order and sums",
			ids:  []string{"a", "b"},
			setupMock: func(repo *catalogMocks.MockService) {
				repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(services[:2], nil)
			},
			wantIDs:   []string{"a", "b"},
			wantTotal: 75,
			wantPrice: "20",
		},
		{
			name: "unknown id",
			ids:  []string{"a", "zzz"},
			setupMock: func(repo *catalogMocks.MockService) {
				repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(services[1:2], nil)
			},
			wantErr: service.ErrServiceNotFound,
		},
		{
			name: "inactive id",
			ids:  []string{"c"},
			setupMock: func(repo *catalogMocks.MockService) {
				repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(services[2:], nil)
			},
			wantErr: service.ErrServiceInactive,
		},
		{
			name: "repository error",
			ids:  []string{"a"},
			setupMock: func(repo *catalogMocks.MockService) {
				repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("database error"))
			},
			wantErr: errors.New("database error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, mockRepo, _ := newCatalog(t)
			tt.setupMock(mockRepo)

			got, err := svc.GetServices(context.Background(), tt.ids)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr.Error())

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantIDs, got.IDs())
			assert.Equal(t, tt.wantTotal, got.TotalDuration)
			assert.Equal(t, tt.wantPrice, got.TotalPrice.String())
		})
	}
}

func TestCatalogService_ListCategories(t *testing.T) {
	parent := "root-cat"

	tests := []struct {
		name      string
		parentID  string
		cacheKey  string
		repoErr   error
		wantErr   bool
		wantCount int
	}{
		{name: "top level", parentID: "", cacheKey: "catalog:categories:root", wantCount: 2},
		{name: "subcategories", parentID: parent, cacheKey: "catalog:categories:root-cat", wantCount: 2},
		{name: "repository error", parentID: "", cacheKey: "catalog:categories:root", repoErr: errors.New("database error"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockRepo, _, mockCache := newCatalog(t)

			var wg sync.WaitGroup

			if tt.repoErr != nil {
				mockCache.EXPECT().Get(gomock.Any(), tt.cacheKey, gomock.Any()).Return(cache.Nil)
				mockRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, tt.repoErr)
			} else {
				expectCacheMiss(mockCache, tt.cacheKey, &wg)
				mockRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]model.Category{{ID: "c1", ParentID: &parent, Title: "Nails"}, {ID: "c2", Title: "Hair"}}, nil)
			}

			got, err := svc.ListCategories(context.Background(), tt.parentID)
			wg.Wait()

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Len(t, got.Categories, tt.wantCount)
			assert.Equal(t, "Nails", got.Categories[0].Title)
		})
	}
}

func TestCatalogService_ListServices(t *testing.T) {
	svc, _, mockRepo, mockCache := newCatalog(t)

	cached := dto.GetServicesResponse{Services: []dto.ServiceResponse{{ID: "svc-1", Title: "Manicure", DurationMinutes: 60}}}

	mockCache.EXPECT().
		Get(gomock.Any(), "catalog:services:cat-1", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, value any) error {
			*value.(*dto.GetServicesResponse) = cached

			return nil
		})
	mockRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	got, err := svc.ListServices(context.Background(), "cat-1")

	require.NoError(t, err)
	assert.Equal(t, cached, got)
}
