package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"errors"
	"salon/infras/otel"
	"salon/infras/postgres"
	"salon/internal/domains/staff/model"
	"salon/shared/constant"
	gDto "salon/shared/dto"
	"salon/shared/failure"
	gRepo "salon/shared/repository"

	"github.com/lib/pq"
)

type Staff interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Staff, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Insert(ctx context.Context, staff model.Staff) error
	Update(ctx context.Context, mod map[string]any, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Staff]
}

func New(db *postgres.Connection, otel otel.Otel) Staff {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Staff](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

// Insert reports a duplicate email as a conflict; the Exist check in front of it can race.
func (r *repositoryImpl) Insert(ctx context.Context, staff model.Staff) error {
	err := r.Repository.Insert(ctx, staff)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == constant.PqErrorCodeUniqueViolation {
		return failure.Conflict("email already registered")
	}

	return err //nolint:wrapcheck
}
