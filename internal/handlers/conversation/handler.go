package conversation

import (
	"net/http"
	"salon/infras/otel"
	"salon/internal/domains/conversation/model/dto"
	"salon/internal/domains/conversation/service"
	"salon/shared/constant"
	"salon/shared/failure"
	"salon/shared/validator"
	"salon/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Conversation
	otel    otel.Otel
}

func New(service service.Conversation, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/conversations", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.StartConversation)
		routerGroup.Get("/{id}", handler.GetConversation)
		routerGroup.Post("/{id}/events", handler.PostEvent)
		routerGroup.Delete("/{id}", handler.DiscardConversation)
	})
}

// StartConversation opens a booking session at service selection.
// @Summary Start a booking conversation
// @Tags Conversation
// @Accept json
// @Produce json
// @Param request body dto.StartRequest true "Start Request"
// @Success 201 {object} response.Data[dto.SessionResponse]
// @Failure 400 {object} response.Error
// @Router /v1/conversations [post]
func (handler *Handler) StartConversation(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".StartConversation")
	defer scope.End()

	req := dto.StartRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Start(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to start conversation")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, res)
}

// GetConversation returns the session and the choices of its current step.
// @Summary Get a booking conversation
// @Tags Conversation
// @Produce json
// @Param id path string true "Conversation ID"
// @Success 200 {object} response.Data[dto.SessionResponse]
// @Failure 404 {object} response.Error
// @Router /v1/conversations/{id} [get]
func (handler *Handler) GetConversation(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetConversation")
	defer scope.End()

	res, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// PostEvent applies one user action. A rejected action answers with its error and the
// session as it stands after the attempt.
// @Summary Send an event to a booking conversation
// @Tags Conversation
// @Accept json
// @Produce json
// @Param id path string true "Conversation ID"
// @Param request body dto.EventRequest true "Event"
// @Success 200 {object} response.Data[dto.SessionResponse]
// @Failure 400 {object} response.DataError[dto.SessionResponse]
// @Failure 409 {object} response.DataError[dto.SessionResponse] "Slot taken"
// @Failure 422 {object} response.DataError[dto.SessionResponse] "No eligible master"
// @Router /v1/conversations/{id}/events [post]
func (handler *Handler) PostEvent(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".PostEvent")
	defer scope.End()

	req := dto.EventRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		response.WithError(w, err)

		return
	}

	event, err := req.ToEvent()
	if err != nil {
		response.WithError(w, failure.BadRequest(err))

		return
	}

	res, err := handler.service.Handle(ctx, chi.URLParam(r, constant.RequestParamID), event)
	if err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Str("event", req.Type).Msg("booking event rejected")

		if res.Session.ID == constant.Empty {
			response.WithError(w, err)

			return
		}

		response.WithErrorJSON(w, err, res)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// DiscardConversation drops the session without booking anything.
// @Summary Discard a booking conversation
// @Tags Conversation
// @Produce json
// @Param id path string true "Conversation ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Router /v1/conversations/{id} [delete]
func (handler *Handler) DiscardConversation(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DiscardConversation")
	defer scope.End()

	if err := handler.service.Discard(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Conversation discarded")
}
