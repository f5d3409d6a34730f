package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"hotelier/infras/otel"
	"hotelier/infras/postgres"
	"hotelier/internal/domains/finance/model"
	"hotelier/shared/constant"
	gDto "hotelier/shared/dto"
	"hotelier/shared/logger"
	gRepo "hotelier/shared/repository"
	"time"

	"github.com/jmoiron/sqlx"
)

type Settings interface {
	Insert(ctx context.Context, model model.Settings) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Settings, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	UpdateTx(ctx context.Context, sqltx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error
}

type Year interface {
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.FinancialYear) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.FinancialYear, error)
	GetTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup, columns ...string) (model.FinancialYear, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.FinancialYear, error)
	UpdateTx(ctx context.Context, sqltx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error
	AllocateSequence(ctx context.Context, yearID, settingsID string, now time.Time) (int64, bool, error)
}

type settingsImpl struct {
	gRepo.Repository[model.Settings]
}

func New(db *postgres.Connection, otel otel.Otel) Settings {
	return &settingsImpl{
		Repository: gRepo.NewRepository[model.Settings](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

type yearImpl struct {
	gRepo.Repository[model.FinancialYear]
	db   *postgres.Connection
	otel otel.Otel
}

func NewYear(db *postgres.Connection, otel otel.Otel) Year {
	return &yearImpl{
		Repository: gRepo.NewRepository[model.FinancialYear](model.YearEntityName, model.YearTableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// AllocateSequence increments the year's sequence and mirrors it into the settings row in one statement.
// The increment only applies while the year is still the active year of settingsID; otherwise ok is false.
func (r *yearImpl) AllocateSequence(ctx context.Context, yearID, settingsID string, now time.Time) (sequence int64, ok bool, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".financial_year.AllocateSequence")
	defer scope.End()

	query := fmt.Sprintf(`WITH allocated AS (
	UPDATE %[1]s SET %[3]s = %[3]s + 1, %[6]s = $3
	WHERE %[4]s = $1 AND %[5]s = $2 AND %[7]s
	RETURNING %[3]s
)
UPDATE %[2]s SET %[8]s = allocated.%[3]s, %[6]s = $3
FROM allocated
WHERE %[2]s.%[4]s = $2
RETURNING %[2]s.%[8]s`,
		model.YearTableName, model.TableName, model.FieldYearSequence, model.FieldID, model.FieldYearSettingsID,
		constant.FieldModifiedAt, model.FieldYearIsActive, model.FieldInvoiceSequence)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	err = r.db.Write.GetContext(ctx, &sequence, query, yearID, settingsID, now)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}

	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, false, fmt.Errorf("failed to allocate invoice sequence: %w", err)
	}

	return sequence, true, nil
}
