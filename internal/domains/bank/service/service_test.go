package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"hotelier/infras/otel/mocks"
	pgMocks "hotelier/infras/postgres/mocks"
	bankMocks "hotelier/internal/domains/bank/mocks"
	"hotelier/internal/domains/bank/model"
	"hotelier/internal/domains/bank/model/dto"
	"hotelier/internal/domains/bank/service"
	gDto "hotelier/shared/dto"
	"hotelier/shared/failure"
)

const (
	cashID = "11111111-1111-1111-1111-111111111111"
	bankID = "22222222-2222-2222-2222-222222222222"
)

type fixture struct {
	repo      *bankMocks.MockAccount
	entryRepo *bankMocks.MockEntry
	svc       service.Bank
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := &fixture{
		repo:      bankMocks.NewMockAccount(ctrl),
		entryRepo: bankMocks.NewMockEntry(ctrl),
	}

	f.svc = service.New(f.repo, f.entryRepo, pgMocks.NewTransactor(), mocks.NewOtel())

	return f
}

func account(id, name string, balance int64) model.Account {
	return model.Account{
		ID:             id,
		AccountName:    name,
		AccountType:    model.AccountTypeBank,
		CurrentBalance: decimal.NewFromInt(balance),
		IsActive:       true,
	}
}

func TestBankService_RecordEntry(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.RecordEntryRequest
		setupMock func(f *fixture)
		wantCode  int
		check     func(t *testing.T, res dto.RecordEntryResponse)
	}{
		{
			name: "deposit raises the balance",
			req:  dto.RecordEntryRequest{AccountID: cashID, EntryType: model.EntryTypeDeposit, Amount: 250.5},
			setupMock: func(f *fixture) {
				f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(account(cashID, "Cash", 100), nil)
				f.entryRepo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, _ any, entry model.Entry) error {
						assert.Equal(t, "350.5", entry.BalanceAfter.String())
						assert.Nil(t, entry.CounterAccountID)

						return nil
					})
				f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
			check: func(t *testing.T, res dto.RecordEntryResponse) {
				t.Helper()
				assert.Equal(t, "350.5", res.Account.CurrentBalance.String())
				assert.Nil(t, res.CounterAccount)
			},
		},
		{
			name: "withdrawal beyond the balance is rejected",
			req:  dto.RecordEntryRequest{AccountID: cashID, EntryType: model.EntryTypeWithdrawal, Amount: 500},
			setupMock: func(f *fixture) {
				f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(account(cashID, "Cash", 100), nil)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "transfer moves money between both accounts",
			req:  dto.RecordEntryRequest{AccountID: bankID, EntryType: model.EntryTypeTransfer, Amount: 400, CounterAccountID: cashID},
			setupMock: func(f *fixture) {
				gomock.InOrder(
					f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(account(cashID, "Cash", 100), nil),
					f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(account(bankID, "Current", 1000), nil),
				)
				f.entryRepo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(2)
				f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(2)
			},
			check: func(t *testing.T, res dto.RecordEntryResponse) {
				t.Helper()
				assert.Equal(t, "600", res.Account.CurrentBalance.String())
				require.NotNil(t, res.CounterAccount)
				assert.Equal(t, "500", res.CounterAccount.CurrentBalance.String())
				assert.Equal(t, cashID, res.Entry.CounterAccountID)
			},
		},
		{
			name:      "transfer without counter account",
			req:       dto.RecordEntryRequest{AccountID: bankID, EntryType: model.EntryTypeTransfer, Amount: 10},
			setupMock: func(_ *fixture) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name:      "transfer to itself",
			req:       dto.RecordEntryRequest{AccountID: bankID, EntryType: model.EntryTypeTransfer, Amount: 10, CounterAccountID: bankID},
			setupMock: func(_ *fixture) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "unknown account",
			req:  dto.RecordEntryRequest{AccountID: cashID, EntryType: model.EntryTypeDeposit, Amount: 10},
			setupMock: func(f *fixture) {
				f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(model.Account{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "inactive account",
			req:  dto.RecordEntryRequest{AccountID: cashID, EntryType: model.EntryTypeDeposit, Amount: 10},
			setupMock: func(f *fixture) {
				closed := account(cashID, "Cash", 0)
				closed.IsActive = false
				f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(closed, nil)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "entry insert failure",
			req:  dto.RecordEntryRequest{AccountID: cashID, EntryType: model.EntryTypeDeposit, Amount: 10},
			setupMock: func(f *fixture) {
				f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(account(cashID, "Cash", 0), nil)
				f.entryRepo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("db down"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.RecordEntry(context.Background(), tt.req)
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

func TestBankService_GetAccount(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(account(cashID, "Cash", 75), nil)

		res, err := f.svc.GetAccount(context.Background(), cashID)
		require.NoError(t, err)
		assert.Equal(t, "Cash", res.AccountName)
	})

	t.Run("not found", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Account{}, nil)

		_, err := f.svc.GetAccount(context.Background(), cashID)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestBankService_CreateAccount(t *testing.T) {
	f := newFixture(t)
	f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, acc model.Account) error {
		assert.True(t, acc.OpeningBalance.Equal(acc.CurrentBalance))
		assert.Equal(t, "HDFC0001234", acc.IFSC)

		return nil
	})

	res, err := f.svc.CreateAccount(context.Background(), dto.CreateAccountRequest{
		AccountName: " Current ", AccountType: model.AccountTypeBank, IFSC: "hdfc0001234", OpeningBalance: 1000.456,
	})
	require.NoError(t, err)
	assert.Equal(t, "Current", res.AccountName)
	assert.Equal(t, "1000.46", res.OpeningBalance.String())
}

func TestBankService_UpdateAccount(t *testing.T) {
	t.Run("empty request", func(t *testing.T) {
		f := newFixture(t)

		err := f.svc.UpdateAccount(context.Background(), cashID, dto.UpdateAccountRequest{})
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("deactivates", func(t *testing.T) {
		f := newFixture(t)
		inactive := false

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(account(cashID, "Cash", 0), nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, false, fields[model.FieldIsActive])

				return nil
			})

		require.NoError(t, f.svc.UpdateAccount(context.Background(), cashID, dto.UpdateAccountRequest{IsActive: &inactive}))
	})
}

func TestBankService_GetEntries(t *testing.T) {
	f := newFixture(t)
	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(account(cashID, "Cash", 0), nil)
	f.entryRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]model.Entry, error) {
			assert.Equal(t, gDto.SortDirDesc, params.SortDir)

			return []model.Entry{{ID: "e1", AccountID: cashID, Amount: decimal.NewFromInt(5)}}, nil
		})
	f.entryRepo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(1, nil)

	res, err := f.svc.GetEntries(context.Background(), cashID, gDto.QueryParams{Limit: 10})
	require.NoError(t, err)
	assert.Len(t, res.Entries, 1)
	assert.Equal(t, 1, res.TotalPage)
}
