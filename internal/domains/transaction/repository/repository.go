package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"hotelier/infras/otel"
	"hotelier/infras/postgres"
	bookingModel "hotelier/internal/domains/booking/model"
	"hotelier/internal/domains/transaction/model"
	"hotelier/shared/constant"
	gDto "hotelier/shared/dto"
	"hotelier/shared/logger"
	gRepo "hotelier/shared/repository"
	"hotelier/shared/timezone"

	"github.com/jmoiron/sqlx"
)

type Transaction interface {
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.Transaction) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Transaction, error)
	GetForUpdateTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup, columns ...string) (model.Transaction, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Transaction, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	UpdateTx(ctx context.Context, sqltx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error
	PayableAmountTx(ctx context.Context, sqltx *sqlx.Tx, bookingNumber string) (int64, bool, error)
	MarkBookingPaidTx(ctx context.Context, sqltx *sqlx.Tx, bookingNumber string) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Transaction]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Transaction {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Transaction](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// PayableAmountTx reads the booking total, locking the booking row for the rest of the transaction.
func (r *repositoryImpl) PayableAmountTx(ctx context.Context, sqltx *sqlx.Tx, bookingNumber string) (payable int64, found bool, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".transaction.PayableAmountTx")
	defer scope.End()

	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1 FOR UPDATE",
		bookingModel.FieldTotal, bookingModel.TableName, bookingModel.FieldBookingNumber)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	err = sqltx.GetContext(ctx, &payable, query, bookingNumber)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}

	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, false, fmt.Errorf("failed to get booking payable amount: %w", err)
	}

	return payable, true, nil
}

func (r *repositoryImpl) MarkBookingPaidTx(ctx context.Context, sqltx *sqlx.Tx, bookingNumber string) error {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".transaction.MarkBookingPaidTx")
	defer scope.End()

	query := fmt.Sprintf("UPDATE %s SET %s = $1, %s = $2 WHERE %s = $3 AND %s <> $1",
		bookingModel.TableName, bookingModel.FieldPaymentStatus, constant.FieldModifiedAt,
		bookingModel.FieldBookingNumber, bookingModel.FieldPaymentStatus)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if _, err := sqltx.ExecContext(ctx, query, bookingModel.PaymentStatusCompleted, timezone.Now(), bookingNumber); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to mark booking paid: %w", err)
	}

	return nil
}
