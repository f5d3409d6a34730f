package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Transaction=MockTransactionService

import (
	"context"
	"fmt"
	"hotelier/config"
	"hotelier/infras/otel"
	"hotelier/infras/postgres"
	"hotelier/internal/domains/transaction/model"
	"hotelier/internal/domains/transaction/model/dto"
	"hotelier/internal/domains/transaction/repository"
	"hotelier/shared"
	"hotelier/shared/cache"
	"hotelier/shared/constant"
	gDto "hotelier/shared/dto"
	"hotelier/shared/failure"
	gModel "hotelier/shared/model"
	"hotelier/shared/timezone"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetTransaction    = "transaction:get"
	cacheGetAllTransaction = "transaction:get_all"
	cacheCountTransaction  = "transaction:count"
)

type Transaction interface {
	RecordPayment(ctx context.Context, req dto.RecordPaymentRequest) (dto.TransactionResponse, error)
	Get(ctx context.Context, bookingNumber string) (dto.TransactionResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetTransactionsResponse, error)
}

type serviceImpl struct {
	repo       repository.Transaction
	transactor postgres.Transactor
	cfg        *config.Config
	cache      cache.RedisCache
	otel       otel.Otel
}

func New(repo repository.Transaction, transactor postgres.Transactor, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Transaction {
	return &serviceImpl{
		repo:       repo,
		transactor: transactor,
		cfg:        cfg,
		cache:      cache,
		otel:       otel,
	}
}

// RecordPayment appends a payment to the booking's transaction, creating the transaction on the first payment.
func (s *serviceImpl) RecordPayment(ctx context.Context, req dto.RecordPaymentRequest) (res dto.TransactionResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RecordPayment")
	defer scope.End()
	defer scope.TraceIfError(err)

	if field := req.MissingMethodField(); field != constant.Empty {
		return res, failure.BadRequestFromString(fmt.Sprintf("%s is required for %s payments", field, req.Method)) // nolint:wrapcheck
	}

	paymentType, err := req.NormalizePaymentType(s.cfg.Finance.StrictPaymentType)
	if err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	var txn model.Transaction

	err = s.transactor.WithTx(ctx, func(ctx context.Context, sqltx *sqlx.Tx) error {
		var txErr error

		txn, txErr = s.recordPaymentTx(ctx, sqltx, req, paymentType, user)

		return txErr
	})
	if err != nil {
		return res, err
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetTransaction, txn.BookingNumber)); err != nil {
			log.Error().Err(err).Msg("failed to delete transaction cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllTransaction)
		shared.InvalidateCaches(c, s.cache, cacheCountTransaction)

		if txn.IsFullyPaid {
			if err := s.cache.Delete(c, shared.BuildCacheKey(constant.CacheKeyBookingGet, txn.BookingNumber)); err != nil {
				log.Error().Err(err).Msg("failed to delete booking cache")
			}

			shared.InvalidateCaches(c, s.cache, constant.CacheKeyBookingGetAll)
		}
	}()

	res.FromModel(txn)

	return res, nil
}

func (s *serviceImpl) recordPaymentTx(ctx context.Context, sqltx *sqlx.Tx, req dto.RecordPaymentRequest, paymentType, user string) (model.Transaction, error) {
	var txn model.Transaction

	payable, found, err := s.repo.PayableAmountTx(ctx, sqltx, req.BookingNumber)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking payable amount")

		return txn, fmt.Errorf("failed to get booking payable amount: %w", err)
	}

	if !found {
		return txn, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	filter := shared.FilterByFields(model.TableName, gDto.Filter{Field: model.FieldBookingNumber, Value: req.BookingNumber})

	txn, err = s.repo.GetForUpdateTx(ctx, sqltx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get transaction")

		return txn, fmt.Errorf("failed to get transaction: %w", err)
	}

	isNew := txn.ID == constant.Empty
	if isNew {
		txn = dto.NewTransaction(user, req.BookingNumber, paymentType)
	}

	txn.PaymentType = paymentType
	txn.Apply(req.ToPayment(user), payable)

	if isNew {
		if err = s.repo.InsertTx(ctx, sqltx, txn); err != nil {
			if shared.IsUniqueViolation(err) {
				return txn, failure.Conflict("a payment for this booking is already being recorded") // nolint:wrapcheck
			}

			log.Error().Err(err).Msg("failed to create transaction")

			return txn, fmt.Errorf("failed to create transaction: %w", err)
		}
	} else {
		txn.ModifiedAt = timezone.Now()
		txn.ModifiedBy = user

		fields := map[string]any{
			model.FieldPayableAmount:    txn.PayableAmount,
			model.FieldTotalPaid:        txn.TotalPaid,
			model.FieldRemainingBalance: txn.RemainingBalance,
			model.FieldIsFullyPaid:      txn.IsFullyPaid,
			model.FieldPaymentType:      txn.PaymentType,
			model.FieldPayments:         gModel.NewJSON(txn.Payments.V),
			constant.FieldModifiedAt:    txn.ModifiedAt,
			constant.FieldModifiedBy:    user,
		}

		if err = s.repo.UpdateTx(ctx, sqltx, fields, filter); err != nil {
			log.Error().Err(err).Msg("failed to update transaction")

			return txn, fmt.Errorf("failed to update transaction: %w", err)
		}
	}

	if txn.IsFullyPaid {
		if err = s.repo.MarkBookingPaidTx(ctx, sqltx, req.BookingNumber); err != nil {
			log.Error().Err(err).Msg("failed to mark booking paid")

			return txn, fmt.Errorf("failed to mark booking paid: %w", err)
		}
	}

	return txn, nil
}

func (s *serviceImpl) Get(ctx context.Context, bookingNumber string) (res dto.TransactionResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetTransaction, bookingNumber)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for transaction")

		return res, nil
	}

	txn, err := s.repo.Get(ctx, shared.FilterByFields(model.TableName, gDto.Filter{Field: model.FieldBookingNumber, Value: bookingNumber}))
	if err != nil {
		log.Error().Err(err).Msg("failed to get transaction")

		return res, fmt.Errorf("failed to get transaction: %w", err)
	}

	if txn.ID == constant.Empty {
		return res, failure.NotFound("transaction not found") // nolint:wrapcheck
	}

	res.FromModel(txn)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save transaction to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetTransactionsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllTransaction, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for transactions")

		return res, nil
	}

	total, err := s.count(ctx, req, filter)
	if err != nil {
		return res, err
	}

	txns, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get transactions")

		return res, fmt.Errorf("failed to get transactions: %w", err)
	}

	res.FromModels(txns, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save transactions to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (total int, err error) {
	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountTransaction, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &total); err == nil {
		return total, nil
	}

	total, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count transactions")

		return total, fmt.Errorf("failed to count transactions: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, total, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save transaction count to cache")
		}
	}()

	return total, nil
}
