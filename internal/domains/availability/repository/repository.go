package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"hotelier/infras/otel"
	"hotelier/infras/postgres"
	"hotelier/internal/domains/availability/model"
	"hotelier/shared/constant"
	gDto "hotelier/shared/dto"
	"hotelier/shared/logger"
	gRepo "hotelier/shared/repository"
	"strings"

	"github.com/jmoiron/sqlx"
)

type Availability interface {
	UpsertTx(ctx context.Context, sqltx *sqlx.Tx, record model.Availability) (string, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Availability, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
}

type History interface {
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.History) error
	GetTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup, columns ...string) (model.History, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.History, error)
	UpdateTx(ctx context.Context, sqltx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Availability]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Availability {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Availability](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// UpsertTx creates the record for (room_id, room_number) on first use and returns its id either way.
func (r *repositoryImpl) UpsertTx(ctx context.Context, sqltx *sqlx.Tx, record model.Availability) (id string, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".room_availability.UpsertTx")
	defer scope.End()

	placeholders := make([]string, len(r.InsertColumns))
	for i, col := range r.InsertColumns {
		placeholders[i] = ":" + col
	}

	query := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) ON CONFLICT (%s, %s) DO UPDATE SET %s = EXCLUDED.%s, %s = EXCLUDED.%s RETURNING %s",
		model.TableName, strings.Join(r.InsertColumns, ", "), strings.Join(placeholders, ", "),
		model.FieldRoomID, model.FieldRoomNumber,
		constant.FieldModifiedAt, constant.FieldModifiedAt, constant.FieldModifiedBy, constant.FieldModifiedBy,
		model.FieldID,
	)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	prepare, err := sqltx.PrepareNamedContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return id, fmt.Errorf("failed to prepare statement (%s): %w", model.EntityName, err)
	}
	defer prepare.Close()

	if err = prepare.GetContext(ctx, &id, record); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return id, fmt.Errorf("failed to upsert data (%s): %w", model.EntityName, err)
	}

	return id, nil
}

type historyRepositoryImpl struct {
	gRepo.Repository[model.History]
}

func NewHistory(db *postgres.Connection, otel otel.Otel) History {
	return &historyRepositoryImpl{
		Repository: gRepo.NewRepository[model.History](model.HistoryEntityName, model.HistoryTableName, model.FieldID, db, otel),
	}
}
