package catalog

import (
	"net/http"
	"salon/infras/otel"
	"salon/internal/domains/catalog/service"
	"salon/shared/constant"
	"salon/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Catalog
	otel    otel.Otel
}

func New(service service.Catalog, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/categories", handler.GetCategories)
	router.Get("/services", handler.GetServices)
}

// GetCategories lists active categories under a parent, root categories by default.
// @Summary Get categories
// @Tags Catalog
// @Produce json
// @Param parent_id query string false "Parent category"
// @Success 200 {object} response.Data[dto.GetCategoriesResponse]
// @Failure 500 {object} response.Error
// @Router /v1/categories [get]
func (handler *Handler) GetCategories(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCategories")
	defer scope.End()

	categories, err := handler.service.ListCategories(ctx, r.URL.Query().Get(constant.RequestParamParentID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get categories")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, categories)
}

// GetServices lists active services, optionally of one category.
// @Summary Get services
// @Tags Catalog
// @Produce json
// @Param category_id query string false "Category"
// @Success 200 {object} response.Data[dto.GetServicesResponse]
// @Failure 500 {object} response.Error
// @Router /v1/services [get]
func (handler *Handler) GetServices(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetServices")
	defer scope.End()

	services, err := handler.service.ListServices(ctx, r.URL.Query().Get(constant.RequestParamCategoryID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get services")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, services)
}
