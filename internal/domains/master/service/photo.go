package service

//go:generate go run go.uber.org/mock/mockgen -source=./photo.go -destination=../mocks/photo_mock.go -package=mocks

import (
	"context"
	"fmt"
	"salon/config"
	"salon/infras/otel"
	"salon/infras/s3"
	"salon/internal/domains/master/model"
	"salon/internal/domains/master/model/dto"
	"salon/internal/domains/master/repository"
	"salon/shared"
	"salon/shared/cache"
	"salon/shared/constant"
	"salon/shared/failure"
	"salon/shared/validator"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const photoDirectory = "masters"

var photoExtensions = map[string]string{
	constant.ContentTypePNG:  ".png",
	constant.ContentTypeJPEG: ".jpg",
	constant.ContentTypeWEBP: ".webp",
}

// Photo replaces the portrait shown next to a master in the booking flow.
type Photo interface {
	Upload(ctx context.Context, masterID string, req dto.UploadPhotoRequest) (dto.UploadPhotoResponse, error)
}

type photoImpl struct {
	repo    repository.Master
	storage s3.S3
	cfg     *config.Config
	cache   cache.RedisCache
	otel    otel.Otel
}

func NewPhoto(repo repository.Master, storage s3.S3, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Photo {
	return &photoImpl{
		repo:    repo,
		storage: storage,
		cfg:     cfg,
		cache:   cache,
		otel:    otel,
	}
}

func (p *photoImpl) Upload(ctx context.Context, masterID string, req dto.UploadPhotoRequest) (res dto.UploadPhotoResponse, err error) {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UploadPhoto")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if err = validator.ValidateStruct(&req); err != nil {
		return res, err //nolint:wrapcheck
	}

	maxBytes := int64(p.cfg.External.S3.MaxUploadSizeMB) * constant.BytesPerMegabyte
	if req.Size > maxBytes {
		return res, failure.BadRequestFromString(fmt.Sprintf("photo must not exceed %d MB", p.cfg.External.S3.MaxUploadSizeMB)) //nolint:wrapcheck
	}

	master, err := p.repo.Get(ctx, shared.FilterByID(masterID, model.FieldID, model.TableName), model.FieldID, model.FieldPhotoURL)
	if err != nil {
		log.Error().Err(err).Str("master_id", masterID).Msg("failed to get master")

		return res, fmt.Errorf("failed to get master: %w", err)
	}

	if master.ID == constant.Empty {
		return res, failure.NotFound(model.EntityName) //nolint:wrapcheck
	}

	fileName := masterID + "-" + uuid.NewString() + photoExtensions[req.ContentType]

	url, err := p.storage.Upload(ctx, photoDirectory, fileName, req.ContentType, req.File)
	if err != nil {
		log.Error().Err(err).Str("master_id", masterID).Msg("failed to upload master photo")

		return res, fmt.Errorf("failed to upload master photo: %w", err)
	}

	update := shared.TransformFields(struct {
		PhotoURL string `db:"photo_url"`
	}{PhotoURL: url}, shared.ActorFromContext(ctx))

	if err = p.repo.Update(ctx, update, shared.FilterByID(masterID, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Str("master_id", masterID).Msg("failed to save master photo")

		if delErr := p.storage.Delete(ctx, url); delErr != nil {
			log.Warn().Err(delErr).Str("url", url).Msg("failed to remove orphaned photo")
		}

		return res, fmt.Errorf("failed to save master photo: %w", err)
	}

	if master.PhotoURL != constant.Empty {
		if delErr := p.storage.Delete(ctx, master.PhotoURL); delErr != nil {
			log.Warn().Err(delErr).Str("url", master.PhotoURL).Msg("failed to remove previous photo")
		}
	}

	p.invalidate(ctx, masterID)

	res.MasterID = masterID
	res.PhotoURL = url

	return res, nil
}

// invalidate drops cached directory entries that embed the photo URL.
func (p *photoImpl) invalidate(ctx context.Context, masterID string) {
	if err := p.cache.Delete(ctx, shared.BuildCacheKey(cacheGetMaster, masterID)); err != nil {
		log.Warn().Err(err).Str("master_id", masterID).Msg("failed to invalidate master cache")
	}

	if err := p.cache.Clear(ctx, cacheMastersOffering+"*"); err != nil {
		log.Warn().Err(err).Msg("failed to invalidate offering cache")
	}
}
