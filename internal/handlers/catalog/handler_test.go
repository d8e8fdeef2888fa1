package catalog_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"salon/infras/otel/mocks"
	catalogMocks "salon/internal/domains/catalog/mocks"
	"salon/internal/domains/catalog/model/dto"
	"salon/internal/handlers/catalog"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func newRouter(t *testing.T) (*catalogMocks.MockCatalog, http.Handler) {
	t.Helper()

	ctrl := gomock.NewController(t)
	svc := catalogMocks.NewMockCatalog(ctrl)

	handler := catalog.New(svc, mocks.NewOtel())
	router := chi.NewRouter()
	handler.Router(router)

	return svc, router
}

func TestGetCategories(t *testing.T) {
	t.Run("root categories", func(t *testing.T) {
		svc, router := newRouter(t)

		svc.EXPECT().ListCategories(gomock.Any(), "").Return(dto.GetCategoriesResponse{
			Categories: []dto.CategoryResponse{{ID: "hair", Title: "Hair"}},
		}, nil)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/categories", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"title":"Hair"`)
	})

	t.Run("children of a parent", func(t *testing.T) {
		svc, router := newRouter(t)

		svc.EXPECT().ListCategories(gomock.Any(), "hair").Return(dto.GetCategoriesResponse{}, nil)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/categories?parent_id=hair", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("store failure hides the cause", func(t *testing.T) {
		svc, router := newRouter(t)

		svc.EXPECT().ListCategories(gomock.Any(), "").Return(dto.GetCategoriesResponse{}, errors.New("connection refused"))

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/categories", nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "connection refused")
	})
}

func TestGetServices(t *testing.T) {
	svc, router := newRouter(t)

	svc.EXPECT().ListServices(gomock.Any(), "hair").Return(dto.GetServicesResponse{
		Services: []dto.ServiceResponse{{ID: "cut", CategoryID: "hair", DurationMinutes: 30, Price: decimal.NewFromInt(20)}},
	}, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/services?category_id=hair", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"duration_minutes":30`)
}
