package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"hotelier/infras/otel"
	"hotelier/infras/postgres"
	"hotelier/internal/domains/inventory/model"
	"hotelier/shared/constant"
	gDto "hotelier/shared/dto"
	"hotelier/shared/logger"
	gRepo "hotelier/shared/repository"
	"hotelier/shared/timezone"
)

type Item interface {
	Insert(ctx context.Context, model model.Item) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Item, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Item, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	DecrementStock(ctx context.Context, id string, quantity int, user string) (int, bool, error)
}

type Rule interface {
	Insert(ctx context.Context, model model.Rule) error
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Rule, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type Consumption interface {
	InsertBulk(ctx context.Context, models []model.Consumption) error
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Consumption, error)
}

type itemImpl struct {
	gRepo.Repository[model.Item]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Item {
	return &itemImpl{
		Repository: gRepo.NewRepository[model.Item](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// DecrementStock takes quantity out of the item only while enough stock remains, re-deriving the status
// in the same statement. ok is false when the stock was insufficient or the item is gone.
func (r *itemImpl) DecrementStock(ctx context.Context, id string, quantity int, user string) (remaining int, ok bool, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".inventory_item.DecrementStock")
	defer scope.End()

	query := fmt.Sprintf(`UPDATE %[1]s SET
	%[2]s = %[2]s - $2,
	%[4]s = CASE
		WHEN %[2]s - $2 <= 0 THEN '%[7]s'
		WHEN %[2]s - $2 <= %[3]s THEN '%[8]s'
		ELSE '%[9]s'
	END,
	%[5]s = $3, %[6]s = $4
WHERE %[10]s = $1 AND %[2]s >= $2
RETURNING %[2]s`,
		model.TableName, model.FieldQuantityInStock, model.FieldAlertThreshold, model.FieldStatus,
		constant.FieldModifiedAt, constant.FieldModifiedBy,
		model.StatusOutOfStock, model.StatusLowStock, model.StatusInStock, model.FieldID)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	err = r.db.Write.GetContext(ctx, &remaining, query, id, quantity, timezone.Now(), user)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}

	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, false, fmt.Errorf("failed to decrement stock: %w", err)
	}

	return remaining, true, nil
}

type ruleImpl struct {
	gRepo.Repository[model.Rule]
}

func NewRule(db *postgres.Connection, otel otel.Otel) Rule {
	return &ruleImpl{
		Repository: gRepo.NewRepository[model.Rule](model.RuleEntityName, model.RuleTableName, model.FieldID, db, otel),
	}
}

type consumptionImpl struct {
	gRepo.Repository[model.Consumption]
}

func NewConsumption(db *postgres.Connection, otel otel.Otel) Consumption {
	return &consumptionImpl{
		Repository: gRepo.NewRepository[model.Consumption](model.ConsumptionEntityName, model.ConsumptionTableName, model.FieldID, db, otel),
	}
}
