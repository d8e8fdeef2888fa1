package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"salon/infras/otel"
	"salon/infras/postgres"
	"salon/internal/domains/catalog/model"
	gDto "salon/shared/dto"
	gRepo "salon/shared/repository"
)

type Category interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Category, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Category, error)
}

type Service interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Service, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Service, error)
}

type categoryRepositoryImpl struct {
	gRepo.Repository[model.Category]
}

type serviceRepositoryImpl struct {
	gRepo.Repository[model.Service]
}

func NewCategory(db *postgres.Connection, otel otel.Otel) Category {
	return &categoryRepositoryImpl{
		Repository: gRepo.NewRepository[model.Category](model.CategoryEntityName, model.CategoryTableName, model.FieldID, db, otel),
	}
}

func NewService(db *postgres.Connection, otel otel.Otel) Service {
	return &serviceRepositoryImpl{
		Repository: gRepo.NewRepository[model.Service](model.ServiceEntityName, model.ServiceTableName, model.FieldID, db, otel),
	}
}
