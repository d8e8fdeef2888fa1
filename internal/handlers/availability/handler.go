package availability

import (
	"net/http"
	"salon/infras/otel"
	"salon/internal/domains/availability/model/dto"
	"salon/internal/domains/availability/service"
	"salon/shared/constant"
	"salon/shared/validator"
	"salon/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Query
	otel    otel.Otel
}

func New(service service.Query, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/slots", handler.GetSlots)
}

// GetSlots lists start times offered by any eligible master, with the masters free at each.
// @Summary Get slots of any available master
// @Tags Availability
// @Produce json
// @Param date query string true "Date (YYYY-MM-DD)"
// @Param service_ids query string true "Comma separated service ids"
// @Success 200 {object} response.Data[dto.SlotsResponse]
// @Failure 400 {object} response.Error
// @Failure 422 {object} response.Error "No master offers every service"
// @Router /v1/slots [get]
func (handler *Handler) GetSlots(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSlots")
	defer scope.End()

	req := dto.SlotsRequest{}
	req.FromRequest(r)

	if err := validator.ValidateStruct(&req); err != nil {
		response.WithError(w, err)

		return
	}

	slots, err := handler.service.AnySlots(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get slots")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, slots)
}
