package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"hotelier/config"
	"hotelier/infras/otel/mocks"
	pgMocks "hotelier/infras/postgres/mocks"
	txnMocks "hotelier/internal/domains/transaction/mocks"
	"hotelier/internal/domains/transaction/model"
	"hotelier/internal/domains/transaction/model/dto"
	"hotelier/internal/domains/transaction/service"
	cacheMocks "hotelier/shared/cache/mocks"
	"hotelier/shared/constant"
	gDto "hotelier/shared/dto"
	"hotelier/shared/failure"
	gModel "hotelier/shared/model"
)

type fixture struct {
	repo  *txnMocks.MockTransaction
	cache *cacheMocks.MockRedisCache
	cfg   *config.Config
	svc   service.Transaction
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := &fixture{
		repo:  txnMocks.NewMockTransaction(ctrl),
		cache: cacheMocks.NewMockRedisCache(ctrl),
		cfg:   &config.Config{},
	}

	f.cfg.Cache.TTL = 3600
	f.svc = service.New(f.repo, pgMocks.NewTransactor(), f.cfg, f.cache, mocks.NewOtel())

	return f
}

func (f *fixture) allowCache() {
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
}

func userCtx() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, "staff-1")
}

func TestTransactionService_RecordPayment(t *testing.T) {
	bookingNumber := "B-010125-0001"

	existing := model.Transaction{
		ID:               "txn-1",
		BookingNumber:    bookingNumber,
		PayableAmount:    5000,
		TotalPaid:        2000,
		RemainingBalance: 3000,
		PaymentType:      model.PaymentTypeAdvance,
		Payments: gModel.NewJSON([]model.Payment{
			{PaymentNumber: 1, Method: dto.MethodCash, Amount: 2000, Status: model.PaymentStatusCompleted},
		}),
	}

	tests := []struct {
		name      string
		req       dto.RecordPaymentRequest
		strict    bool
		setupMock func(f *fixture)
		wantCode  int
		check     func(t *testing.T, res dto.TransactionResponse)
	}{
		{
			name: "first payment creates the transaction",
			req:  dto.RecordPaymentRequest{BookingNumber: bookingNumber, Amount: 1999.5, Method: dto.MethodCash, PaymentType: model.PaymentTypeAdvance},
			setupMock: func(f *fixture) {
				f.repo.EXPECT().PayableAmountTx(gomock.Any(), gomock.Any(), bookingNumber).Return(int64(5000), true, nil)
				f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(model.Transaction{}, nil)
				f.repo.EXPECT().
					InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, txn model.Transaction) error {
						require.Len(t, txn.Payments.V, 1)
						assert.Equal(t, 1, txn.Payments.V[0].PaymentNumber)
						assert.Equal(t, int64(2000), txn.TotalPaid)
						assert.Equal(t, "staff-1", txn.CreatedBy)

						return nil
					})
				f.allowCache()
			},
			check: func(t *testing.T, res dto.TransactionResponse) {
				assert.Equal(t, int64(3000), res.RemainingBalance)
				assert.False(t, res.IsFullyPaid)
				assert.Equal(t, model.PaymentTypeAdvance, res.PaymentType)
			},
		},
		{
			name: "balance payment settles the booking",
			req:  dto.RecordPaymentRequest{BookingNumber: bookingNumber, Amount: 3500, Method: dto.MethodUPI, Reference: "UPI-77", PaymentType: model.PaymentTypeBalance},
			setupMock: func(f *fixture) {
				f.repo.EXPECT().PayableAmountTx(gomock.Any(), gomock.Any(), bookingNumber).Return(int64(5000), true, nil)
				f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(existing, nil)
				f.repo.EXPECT().
					UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, int64(5500), fields[model.FieldTotalPaid])
						assert.Equal(t, int64(0), fields[model.FieldRemainingBalance])
						assert.Equal(t, true, fields[model.FieldIsFullyPaid])

						return nil
					})
				f.repo.EXPECT().MarkBookingPaidTx(gomock.Any(), gomock.Any(), bookingNumber).Return(nil)
				f.allowCache()
			},
			check: func(t *testing.T, res dto.TransactionResponse) {
				require.Len(t, res.Payments, 2)
				assert.Equal(t, 2, res.Payments[1].PaymentNumber)
				assert.True(t, res.IsFullyPaid)
			},
		},
		{
			name:     "method reference missing",
			req:      dto.RecordPaymentRequest{BookingNumber: bookingNumber, Amount: 100, Method: dto.MethodBankTransfer},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "strict mode rejects unknown payment type",
			req:      dto.RecordPaymentRequest{BookingNumber: bookingNumber, Amount: 100, Method: dto.MethodCash, PaymentType: "deposit"},
			strict:   true,
			wantCode: http.StatusBadRequest,
		},
		{
			name: "lenient mode normalises unknown payment type",
			req:  dto.RecordPaymentRequest{BookingNumber: bookingNumber, Amount: 100, Method: dto.MethodCash, PaymentType: "deposit"},
			setupMock: func(f *fixture) {
				f.repo.EXPECT().PayableAmountTx(gomock.Any(), gomock.Any(), bookingNumber).Return(int64(5000), true, nil)
				f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(model.Transaction{}, nil)
				f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				f.allowCache()
			},
			check: func(t *testing.T, res dto.TransactionResponse) {
				assert.Equal(t, model.PaymentTypePartial, res.PaymentType)
			},
		},
		{
			name: "unknown booking",
			req:  dto.RecordPaymentRequest{BookingNumber: bookingNumber, Amount: 100, Method: dto.MethodCash},
			setupMock: func(f *fixture) {
				f.repo.EXPECT().PayableAmountTx(gomock.Any(), gomock.Any(), bookingNumber).Return(int64(0), false, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "concurrent first payment conflicts",
			req:  dto.RecordPaymentRequest{BookingNumber: bookingNumber, Amount: 100, Method: dto.MethodCash},
			setupMock: func(f *fixture) {
				f.repo.EXPECT().PayableAmountTx(gomock.Any(), gomock.Any(), bookingNumber).Return(int64(5000), true, nil)
				f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(model.Transaction{}, nil)
				f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(&pq.Error{Code: constant.PqErrorCodeUniqueViolation})
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "update error",
			req:  dto.RecordPaymentRequest{BookingNumber: bookingNumber, Amount: 100, Method: dto.MethodCash},
			setupMock: func(f *fixture) {
				f.repo.EXPECT().PayableAmountTx(gomock.Any(), gomock.Any(), bookingNumber).Return(int64(5000), true, nil)
				f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(existing, nil)
				f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("database error"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.cfg.Finance.StrictPaymentType = tt.strict

			if tt.setupMock != nil {
				tt.setupMock(f)
			}

			res, err := f.svc.RecordPayment(userCtx(), tt.req)

			time.Sleep(10 * time.Millisecond)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)

			if tt.check != nil {
				tt.check(t, res)
			}
		})
	}
}

func TestTransactionService_Get(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(f *fixture)
		wantCode  int
	}{
		{
			name: "cache hit",
			setupMock: func(f *fixture) {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "loaded from the database",
			setupMock: func(f *fixture) {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Transaction{ID: "txn-1", BookingNumber: "B-010125-0001"}, nil)
				f.allowCache()
			},
		},
		{
			name: "not found",
			setupMock: func(f *fixture) {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Transaction{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			_, err := f.svc.Get(context.Background(), "B-010125-0001")

			time.Sleep(10 * time.Millisecond)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
		})
	}
}

func TestTransactionService_GetAll(t *testing.T) {
	f := newFixture(t)

	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).Times(2)
	f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(3, nil)
	f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Transaction{{ID: "a"}, {ID: "b"}, {ID: "c"}}, nil)
	f.allowCache()

	res, err := f.svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 2}, gDto.FilterGroup{})

	time.Sleep(10 * time.Millisecond)

	require.NoError(t, err)
	assert.Equal(t, 3, res.TotalData)
	assert.Equal(t, 2, res.TotalPage)
	assert.Len(t, res.Transactions, 3)
}
