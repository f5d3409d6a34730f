package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"hotelier/infras/otel"
	"hotelier/infras/postgres"
	"hotelier/internal/domains/policy/model"
	gDto "hotelier/shared/dto"
	gRepo "hotelier/shared/repository"
)

type Policy interface {
	Insert(ctx context.Context, model model.Policy) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Policy, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Policy, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Policy]
}

func New(db *postgres.Connection, otel otel.Otel) Policy {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Policy](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}
