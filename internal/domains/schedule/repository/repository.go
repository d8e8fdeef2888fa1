package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks -mock_names=Schedule=MockScheduleRepository

import (
	"context"
	"salon/infras/otel"
	"salon/infras/postgres"
	"salon/internal/domains/schedule/model"
	gDto "salon/shared/dto"
	gRepo "salon/shared/repository"
)

type Schedule interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.WorkSchedule, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.WorkSchedule, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.WorkSchedule]
}

func New(db *postgres.Connection, otel otel.Otel) Schedule {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.WorkSchedule](model.EntityName, model.TableName, model.FieldMasterID, db, otel),
	}
}
