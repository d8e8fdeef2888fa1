package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"salon/infras/otel"
	"salon/infras/postgres"
	"salon/internal/domains/client/model"
	gDto "salon/shared/dto"
	gRepo "salon/shared/repository"
)

type Client interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Client, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Client]
}

func New(db *postgres.Connection, otel otel.Otel) Client {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Client](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}
