package master

import (
	"net/http"
	"salon/infras/otel"
	availabilityDto "salon/internal/domains/availability/model/dto"
	availabilityService "salon/internal/domains/availability/service"
	"salon/internal/domains/master/model/dto"
	"salon/internal/domains/master/service"
	"salon/shared"
	"salon/shared/constant"
	"salon/shared/failure"
	"salon/shared/validator"
	"salon/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	matcher service.Matcher
	photo   service.Photo
	slots   availabilityService.Query
	otel    otel.Otel
}

func New(matcher service.Matcher, photo service.Photo, slots availabilityService.Query, otel otel.Otel) Handler {
	return Handler{
		matcher: matcher,
		photo:   photo,
		slots:   slots,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/masters", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetMasters)
		routerGroup.Get("/{id}/slots", handler.GetMasterSlots)
		routerGroup.Put("/{id}/photo", handler.UploadPhoto)
	})
}

// GetMasters lists the masters offering every requested service, primary masters first.
// @Summary Get masters for a service bundle
// @Tags Master
// @Produce json
// @Param service_ids query string true "Comma separated service ids"
// @Success 200 {object} response.Data[dto.GetMastersResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/masters [get]
func (handler *Handler) GetMasters(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMasters")
	defer scope.End()

	serviceIDs := availabilityDto.SplitIDs(r.URL.Query()[constant.RequestParamServiceIDs])

	offerings, err := handler.matcher.MastersFor(ctx, serviceIDs)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get masters")

		response.WithError(w, err)

		return
	}

	res := dto.GetMastersResponse{}
	res.FromOfferings(offerings)

	response.WithJSON(w, http.StatusOK, res)
}

// GetMasterSlots lists the free start times of one master for a service bundle.
// @Summary Get free slots of a master
// @Tags Master
// @Produce json
// @Param id path string true "Master ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Param service_ids query string true "Comma separated service ids"
// @Success 200 {object} response.Data[availabilityDto.MasterSlotsResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/masters/{id}/slots [get]
func (handler *Handler) GetMasterSlots(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMasterSlots")
	defer scope.End()

	req := availabilityDto.SlotsRequest{}
	req.FromRequest(r)

	if err := validator.ValidateStruct(&req); err != nil {
		response.WithError(w, err)

		return
	}

	slots, err := handler.slots.MasterSlots(ctx, chi.URLParam(r, constant.RequestParamID), req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get master slots")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, slots)
}

// UploadPhoto stores a new portrait for the master and returns its public URL.
// @Summary Upload a master photo
// @Tags Master
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Master ID"
// @Param file formData file true "PNG, JPEG or WEBP image"
// @Success 200 {object} response.Data[dto.UploadPhotoResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/masters/{id}/photo [put]
func (handler *Handler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UploadPhoto")
	defer scope.End()

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")

		response.WithError(w, failure.BadRequest(err))

		return
	}

	file, fileHeader, err := r.FormFile(constant.FormFile)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get file from form")

		response.WithError(w, failure.BadRequest(err))

		return
	}
	defer file.Close()

	req := dto.UploadPhotoRequest{
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get(constant.RequestHeaderContentType),
		Size:        fileHeader.Size,
		File:        file,
	}

	res, err := handler.photo.Upload(ctx, chi.URLParam(r, constant.RequestParamID), req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to upload master photo")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Photo of master " + res.MasterID + " replaced by " + shared.ActorFromContext(ctx))

	response.WithJSON(w, http.StatusOK, res)
}
