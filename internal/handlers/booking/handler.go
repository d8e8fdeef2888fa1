package booking

import (
	"net/http"
	"salon/infras/otel"
	appointmentModel "salon/internal/domains/appointment/model"
	appointmentDto "salon/internal/domains/appointment/model/dto"
	appointmentService "salon/internal/domains/appointment/service"
	"salon/internal/domains/booking/model/dto"
	"salon/internal/domains/booking/service"
	"salon/shared"
	"salon/shared/constant"
	gDto "salon/shared/dto"
	"salon/shared/failure"
	"salon/shared/validator"
	"salon/transport/http/response"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	creator      service.Creator
	appointments appointmentService.Appointment
	otel         otel.Otel
}

func New(creator service.Creator, appointments appointmentService.Appointment, otel otel.Otel) Handler {
	return Handler{
		creator:      creator,
		appointments: appointments,
		otel:         otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/appointments", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateAppointment)
		routerGroup.Get("/", handler.GetAppointments)
		routerGroup.Get("/{id}", handler.GetAppointmentByID)
		routerGroup.Patch("/{id}/status", handler.UpdateAppointmentStatus)
	})
}

// CreateAppointment books a slot with an already chosen master.
// @Summary Create an appointment
// @Description Validate the selection, re-check the slot and store the appointment with its services.
// @Tags Appointment
// @Accept json
// @Produce json
// @Param request body dto.CreateAppointmentRequest true "Create Appointment Request"
// @Success 201 {object} response.Data[model.Result]
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error "Slot no longer available"
// @Failure 503 {object} response.Error "Store unavailable, retry"
// @Router /v1/appointments [post]
func (handler *Handler) CreateAppointment(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateAppointment")
	defer scope.End()

	req := dto.CreateAppointmentRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	cmd, err := req.ToCommand()
	if err != nil {
		response.WithError(writer, failure.BadRequest(err))

		return
	}

	res, err := handler.creator.Create(ctx, cmd)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create appointment")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Appointment " + res.AppointmentID + " created")

	response.WithJSON(writer, http.StatusCreated, res)
}

// GetAppointments lists appointments.
// @Summary Get appointments
// @Tags Appointment
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param client_id query string false "Filter by client"
// @Param master_id query string false "Filter by master"
// @Param status query string false "Filter by status"
// @Param date query string false "Filter by date (YYYY-MM-DD)"
// @Success 200 {object} response.Data[appointmentDto.GetAppointmentsResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/appointments [get]
func (handler *Handler) GetAppointments(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAppointments")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true, appointmentModel.FieldAppointmentDate, appointmentModel.FieldStartTime, constant.FieldCreatedAt)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	filters := []struct{ param, field, rule string }{
		{constant.RequestParamClientID, appointmentModel.FieldClientID, ""},
		{constant.RequestParamMasterID, appointmentModel.FieldMasterID, ""},
		{constant.RequestParamStatus, appointmentModel.FieldStatus, "oneof=" + strings.Join(appointmentModel.Statuses, " ")},
		{constant.RequestParamDate, appointmentModel.FieldAppointmentDate, "date"},
	}

	for _, filter := range filters {
		value := r.URL.Query().Get(filter.param)
		if value == constant.Empty {
			continue
		}

		if filter.rule != "" {
			if err := validator.ValidateParam(filter.param, value, filter.rule); err != nil {
				response.WithError(w, err)

				return
			}
		}

		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    filter.field,
			Operator: gDto.FilterOperatorEq,
			Value:    value,
			Table:    appointmentModel.TableName,
		})
	}

	appointments, err := handler.appointments.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get appointments")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, appointments)
}

// GetAppointmentByID returns one appointment with its service ids.
// @Summary Get an appointment by ID
// @Tags Appointment
// @Produce json
// @Param id path string true "Appointment ID"
// @Success 200 {object} response.Data[appointmentDto.AppointmentResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/appointments/{id} [get]
func (handler *Handler) GetAppointmentByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAppointmentByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	appointment, err := handler.appointments.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get appointment by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, appointment)
}

// UpdateAppointmentStatus moves an appointment to another status.
// @Summary Update appointment status
// @Tags Appointment
// @Accept json
// @Produce json
// @Param id path string true "Appointment ID"
// @Param request body appointmentDto.UpdateStatusRequest true "Update Status Request"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error "Reactivation would overlap another appointment"
// @Router /v1/appointments/{id}/status [patch]
func (handler *Handler) UpdateAppointmentStatus(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateAppointmentStatus")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := appointmentDto.UpdateStatusRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.appointments.UpdateStatus(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update appointment status")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Appointment status updated by " + shared.ActorFromContext(ctx))

	response.WithMessage(w, http.StatusOK, "Appointment status updated successfully")
}
