package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"hotelier/infras/otel"
	"hotelier/infras/postgres"
	"hotelier/internal/domains/room/model"
	gDto "hotelier/shared/dto"
	gRepo "hotelier/shared/repository"

	"github.com/jmoiron/sqlx"
)

type Room interface {
	Insert(ctx context.Context, model model.Room) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Room, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Room, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type Unit interface {
	Insert(ctx context.Context, model model.Unit) error
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	GetTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup, columns ...string) (model.Unit, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Unit, error)
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type BookedDate interface {
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.BookedDate) error
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.BookedDate, error)
	DeleteTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Room]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Room {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Room](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

type unitRepositoryImpl struct {
	gRepo.Repository[model.Unit]
}

func NewUnit(db *postgres.Connection, otel otel.Otel) Unit {
	return &unitRepositoryImpl{
		Repository: gRepo.NewRepository[model.Unit](model.UnitEntityName, model.UnitTableName, model.FieldID, db, otel),
	}
}

type bookedDateRepositoryImpl struct {
	gRepo.Repository[model.BookedDate]
}

func NewBookedDate(db *postgres.Connection, otel otel.Otel) BookedDate {
	return &bookedDateRepositoryImpl{
		Repository: gRepo.NewRepository[model.BookedDate](model.BookedDateEntityName, model.BookedDateTableName, model.FieldID, db, otel),
	}
}
