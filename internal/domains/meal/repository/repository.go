package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"dpbooking/infras/otel"
	"dpbooking/infras/postgres"
	"dpbooking/internal/domains/meal/model"
	gDto "dpbooking/shared/dto"
	gRepo "dpbooking/shared/repository"
)

type Meal interface {
	InsertReturningID(ctx context.Context, model model.Meal) (int64, error)
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Meal, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Meal, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Meal]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Meal {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Meal](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}
