package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"hotelier/infras/otel"
	"hotelier/infras/postgres"
	"hotelier/internal/domains/employee/model"
	gDto "hotelier/shared/dto"
	gRepo "hotelier/shared/repository"
)

type Department interface {
	Insert(ctx context.Context, model model.Department) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Department, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Department, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type Shift interface {
	Insert(ctx context.Context, model model.Shift) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Shift, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Shift, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type departmentRepositoryImpl struct {
	gRepo.Repository[model.Department]
}

func New(db *postgres.Connection, otel otel.Otel) Department {
	return &departmentRepositoryImpl{
		Repository: gRepo.NewRepository[model.Department](model.DepartmentEntityName, model.DepartmentTableName, model.FieldID, db, otel),
	}
}

type shiftRepositoryImpl struct {
	gRepo.Repository[model.Shift]
}

func NewShift(db *postgres.Connection, otel otel.Otel) Shift {
	return &shiftRepositoryImpl{
		Repository: gRepo.NewRepository[model.Shift](model.ShiftEntityName, model.ShiftTableName, model.FieldID, db, otel),
	}
}
