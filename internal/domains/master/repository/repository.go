package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"salon/infras/otel"
	"salon/infras/postgres"
	"salon/internal/domains/master/model"
	"salon/shared/constant"
	gDto "salon/shared/dto"
	"salon/shared/logger"
	gRepo "salon/shared/repository"

	"github.com/lib/pq"
)

const (
	queryMastersOffering = `
		SELECT m.id AS master_id, m.first_name, m.last_name, m.photo_url, ms.is_primary
		FROM master_services ms
		JOIN masters m ON m.id = ms.master_id
		JOIN services s ON s.id = ms.service_id
		WHERE ms.service_id = $1 AND m.active AND s.active
		ORDER BY ms.is_primary DESC, m.first_name, m.last_name, m.id`

	queryOfferedServices = `
		SELECT service_id FROM master_services
		WHERE master_id = $1 AND service_id = ANY($2)`
)

type Master interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Master, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Master, error)
	MastersOffering(ctx context.Context, serviceID string) ([]model.Offering, error)
	OfferedServices(ctx context.Context, masterID string, serviceIDs []string) ([]string, error)
	Update(ctx context.Context, mod map[string]any, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Master]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Master {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Master](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// MastersOffering lists active masters offering the active service, primary providers first.
func (r *repositoryImpl) MastersOffering(ctx context.Context, serviceID string) ([]model.Offering, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".master.MastersOffering")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, queryMastersOffering)

	offerings := []model.Offering{}
	if err := r.db.Read.SelectContext(ctx, &offerings, queryMastersOffering, serviceID); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to get masters offering service: %w", err)
	}

	return offerings, nil
}

// OfferedServices returns the subset of serviceIDs linked to the master, regardless of active flags.
func (r *repositoryImpl) OfferedServices(ctx context.Context, masterID string, serviceIDs []string) ([]string, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".master.OfferedServices")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, queryOfferedServices)

	offered := []string{}
	if err := r.db.Read.SelectContext(ctx, &offered, queryOfferedServices, masterID, pq.Array(serviceIDs)); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to get offered services: %w", err)
	}

	return offered, nil
}
