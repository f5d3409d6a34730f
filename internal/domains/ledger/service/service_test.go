package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"hotelier/infras/otel/mocks"
	pgMocks "hotelier/infras/postgres/mocks"
	expenseMocks "hotelier/internal/domains/expense/mocks"
	ledgerMocks "hotelier/internal/domains/ledger/mocks"
	"hotelier/internal/domains/ledger/model"
	"hotelier/internal/domains/ledger/model/dto"
	"hotelier/internal/domains/ledger/service"
	gDto "hotelier/shared/dto"
	"hotelier/shared/failure"
)

type fixture struct {
	repo      *ledgerMocks.MockLedger
	entryRepo *ledgerMocks.MockEntry
	expenses  *expenseMocks.MockCategoryService
	svc       service.Ledger
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := &fixture{
		repo:      ledgerMocks.NewMockLedger(ctrl),
		entryRepo: ledgerMocks.NewMockEntry(ctrl),
		expenses:  expenseMocks.NewMockCategoryService(ctrl),
	}

	f.svc = service.New(f.repo, f.entryRepo, f.expenses, pgMocks.NewTransactor(), mocks.NewOtel())

	return f
}

func TestLedgerService_PostEntry(t *testing.T) {
	income := dto.PostEntryRequest{EntryType: model.EntryTypeIncome, Category: "room", CashAmount: 1000, OnlineAmount: 500.25, EntryDate: "2025-06-14"}

	tests := []struct {
		name      string
		req       dto.PostEntryRequest
		setupMock func(f *fixture)
		wantCode  int
		check     func(t *testing.T, res dto.PostEntryResponse)
	}{
		{
			name: "first entry opens the month from the previous closing",
			req:  income,
			setupMock: func(f *fixture) {
				f.repo.EXPECT().PreviousClosingTx(gomock.Any(), gomock.Any(), 6, 2025).Return(decimal.NewFromInt(300), nil)
				f.repo.EXPECT().
					LockOrCreateTx(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, ledger model.Ledger) (model.Ledger, error) {
						assert.True(t, decimal.NewFromInt(300).Equal(ledger.OpeningBalance))

						return ledger, nil
					})
				f.entryRepo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				f.repo.EXPECT().
					UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) error {
						closing, ok := fields[model.FieldClosingBalance].(decimal.Decimal)
						require.True(t, ok)
						assert.True(t, decimal.RequireFromString("1800.25").Equal(closing))

						return nil
					})
			},
			check: func(t *testing.T, res dto.PostEntryResponse) {
				assert.True(t, decimal.RequireFromString("1500.25").Equal(res.Entry.Amount))
				assert.True(t, decimal.RequireFromString("1800.25").Equal(res.Entry.Balance))
				assert.Equal(t, 6, res.Ledger.Month)
			},
		},
		{
			name: "expense on an existing month",
			req:  dto.PostEntryRequest{EntryType: model.EntryTypeExpense, Category: " Laundry", BankAmount: 200, EntryDate: "2025-06-20"},
			setupMock: func(f *fixture) {
				f.expenses.EXPECT().IsActive(gomock.Any(), "Laundry").Return(true, nil)
				f.repo.EXPECT().PreviousClosingTx(gomock.Any(), gomock.Any(), 6, 2025).Return(decimal.Zero, nil)
				f.repo.EXPECT().LockOrCreateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(model.Ledger{
					ID:             "ledger-6",
					Month:          6,
					Year:           2025,
					ClosingBalance: decimal.NewFromInt(1000),
					TotalIncome:    decimal.NewFromInt(1000),
				}, nil)
				f.entryRepo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
			check: func(t *testing.T, res dto.PostEntryResponse) {
				assert.Equal(t, "laundry", res.Entry.Category)
				assert.True(t, decimal.NewFromInt(800).Equal(res.Ledger.ClosingBalance))
				assert.True(t, decimal.NewFromInt(800).Equal(res.Ledger.NetProfit))
			},
		},
		{
			name: "expense with an unknown or disabled category",
			req:  dto.PostEntryRequest{EntryType: model.EntryTypeExpense, Category: "fuel", CashAmount: 50, EntryDate: "2025-06-20"},
			setupMock: func(f *fixture) {
				f.expenses.EXPECT().IsActive(gomock.Any(), "fuel").Return(false, nil)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "expense category lookup error",
			req:  dto.PostEntryRequest{EntryType: model.EntryTypeExpense, Category: "fuel", CashAmount: 50, EntryDate: "2025-06-20"},
			setupMock: func(f *fixture) {
				f.expenses.EXPECT().IsActive(gomock.Any(), "fuel").Return(false, errors.New("database error"))
			},
			wantCode: http.StatusInternalServerError,
		},
		{
			name:     "zero amount",
			req:      dto.PostEntryRequest{EntryType: model.EntryTypeIncome, Category: "room", EntryDate: "2025-06-14"},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "bad date",
			req:      dto.PostEntryRequest{EntryType: model.EntryTypeIncome, Category: "room", CashAmount: 1, EntryDate: "14/06/2025"},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "entry insert error rolls back",
			req:  income,
			setupMock: func(f *fixture) {
				f.repo.EXPECT().PreviousClosingTx(gomock.Any(), gomock.Any(), 6, 2025).Return(decimal.Zero, nil)
				f.repo.EXPECT().LockOrCreateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(model.Ledger{ID: "ledger-6"}, nil)
				f.entryRepo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("database error"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			if tt.setupMock != nil {
				tt.setupMock(f)
			}

			res, err := f.svc.PostEntry(context.Background(), tt.req)
			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			tt.check(t, res)
		})
	}
}

func TestLedgerService_GetBook(t *testing.T) {
	t.Run("month with entries", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Ledger{ID: "ledger-6", Month: 6, Year: 2025}, nil)
		f.entryRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Entry{{ID: "e-1"}, {ID: "e-2"}}, nil)

		res, err := f.svc.GetBook(context.Background(), 6, 2025)

		require.NoError(t, err)
		assert.Len(t, res.Entries, 2)
	})

	t.Run("unknown month", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Ledger{}, nil)

		_, err := f.svc.GetBook(context.Background(), 7, 2025)

		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("invalid month", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.GetBook(context.Background(), 13, 2025)

		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})
}
