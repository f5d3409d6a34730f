package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"hotelier/infras/otel"
	"hotelier/infras/postgres"
	"hotelier/internal/domains/ledger/model"
	"hotelier/shared/constant"
	gDto "hotelier/shared/dto"
	"hotelier/shared/logger"
	gRepo "hotelier/shared/repository"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

type Ledger interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Ledger, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Ledger, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	UpdateTx(ctx context.Context, sqltx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error
	PreviousClosingTx(ctx context.Context, sqltx *sqlx.Tx, month, year int) (decimal.Decimal, error)
	LockOrCreateTx(ctx context.Context, sqltx *sqlx.Tx, ledger model.Ledger) (model.Ledger, error)
}

type Entry interface {
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.Entry) error
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Entry, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Ledger]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Ledger {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Ledger](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// PreviousClosingTx returns the closing balance of the latest month before (month, year), or zero.
func (r *repositoryImpl) PreviousClosingTx(ctx context.Context, sqltx *sqlx.Tx, month, year int) (closing decimal.Decimal, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".ledger.PreviousClosingTx")
	defer scope.End()

	query := fmt.Sprintf("SELECT %[1]s FROM %[2]s WHERE (%[3]s, %[4]s) < ($1, $2) ORDER BY %[3]s DESC, %[4]s DESC LIMIT 1",
		model.FieldClosingBalance, model.TableName, model.FieldYear, model.FieldMonth)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	err = sqltx.GetContext(ctx, &closing, query, year, month)
	if errors.Is(err, sql.ErrNoRows) {
		return decimal.Zero, nil
	}

	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return decimal.Zero, fmt.Errorf("failed to get previous closing balance: %w", err)
	}

	return closing, nil
}

// LockOrCreateTx inserts the month's ledger if missing and returns the stored row locked for the transaction.
func (r *repositoryImpl) LockOrCreateTx(ctx context.Context, sqltx *sqlx.Tx, ledger model.Ledger) (locked model.Ledger, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".ledger.LockOrCreateTx")
	defer scope.End()

	placeholders := make([]string, len(r.InsertColumns))
	for i, col := range r.InsertColumns {
		placeholders[i] = ":" + col
	}

	// DO UPDATE rather than DO NOTHING so the existing row is both locked and returned.
	query := fmt.Sprintf(
		"INSERT INTO %[1]s (%[2]s) VALUES (%[3]s) ON CONFLICT (%[4]s, %[5]s) DO UPDATE SET %[6]s = %[1]s.%[6]s RETURNING %[2]s",
		model.TableName, strings.Join(r.InsertColumns, ", "), strings.Join(placeholders, ", "),
		model.FieldMonth, model.FieldYear, constant.FieldModifiedAt,
	)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	prepare, err := sqltx.PrepareNamedContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return locked, fmt.Errorf("failed to prepare statement (%s): %w", model.EntityName, err)
	}
	defer prepare.Close()

	if err = prepare.GetContext(ctx, &locked, ledger); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return locked, fmt.Errorf("failed to lock ledger: %w", err)
	}

	return locked, nil
}

type entryRepositoryImpl struct {
	gRepo.Repository[model.Entry]
}

func NewEntry(db *postgres.Connection, otel otel.Otel) Entry {
	return &entryRepositoryImpl{
		Repository: gRepo.NewRepository[model.Entry](model.EntryEntityName, model.EntryTableName, model.FieldID, db, otel),
	}
}
