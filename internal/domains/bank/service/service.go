package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Bank=MockBankService

import (
	"context"
	"fmt"
	"hotelier/infras/otel"
	"hotelier/infras/postgres"
	"hotelier/internal/domains/bank/model"
	"hotelier/internal/domains/bank/model/dto"
	"hotelier/internal/domains/bank/repository"
	"hotelier/shared"
	"hotelier/shared/constant"
	gDto "hotelier/shared/dto"
	"hotelier/shared/failure"
	"hotelier/shared/money"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

type Bank interface {
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (dto.AccountResponse, error)
	GetAccount(ctx context.Context, id string) (dto.AccountResponse, error)
	GetAccounts(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (dto.GetAccountsResponse, error)
	UpdateAccount(ctx context.Context, id string, req dto.UpdateAccountRequest) error
	DeleteAccount(ctx context.Context, id string) error
	RecordEntry(ctx context.Context, req dto.RecordEntryRequest) (dto.RecordEntryResponse, error)
	GetEntries(ctx context.Context, accountID string, params gDto.QueryParams) (dto.GetEntriesResponse, error)
}

type serviceImpl struct {
	repo       repository.Account
	entryRepo  repository.Entry
	transactor postgres.Transactor
	otel       otel.Otel
}

func New(repo repository.Account, entryRepo repository.Entry, transactor postgres.Transactor, otel otel.Otel) Bank {
	return &serviceImpl{
		repo:       repo,
		entryRepo:  entryRepo,
		transactor: transactor,
		otel:       otel,
	}
}

func byID(id string) gDto.FilterGroup {
	return shared.FilterByID(id, model.FieldID, model.TableName)
}

func (s *serviceImpl) CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (res dto.AccountResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateAccount")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	account := req.ToModel(user)

	if err = s.repo.Insert(ctx, account); err != nil {
		log.Error().Err(err).Msg("failed to create bank account")

		return res, fmt.Errorf("failed to create bank account: %w", err)
	}

	res.FromModel(account)

	return res, nil
}

func (s *serviceImpl) GetAccount(ctx context.Context, id string) (res dto.AccountResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAccount")
	defer scope.End()
	defer scope.TraceIfError(err)

	account, err := s.repo.Get(ctx, byID(id))
	if err != nil {
		log.Error().Err(err).Msg("failed to get bank account")

		return res, fmt.Errorf("failed to get bank account: %w", err)
	}

	if account.ID == constant.Empty {
		return res, failure.NotFound("bank account not found") // nolint:wrapcheck
	}

	res.FromModel(account)

	return res, nil
}

func (s *serviceImpl) GetAccounts(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetAccountsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAccounts")
	defer scope.End()
	defer scope.TraceIfError(err)

	accounts, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bank accounts")

		return res, fmt.Errorf("failed to get bank accounts: %w", err)
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bank accounts")

		return res, fmt.Errorf("failed to count bank accounts: %w", err)
	}

	res.FromModels(accounts, total, params.Limit)

	return res, nil
}

func (s *serviceImpl) UpdateAccount(ctx context.Context, id string, req dto.UpdateAccountRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateAccount")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req.IsEmpty() {
		return failure.BadRequestFromString("no fields to update") // nolint:wrapcheck
	}

	if _, err = s.GetAccount(ctx, id); err != nil {
		return err
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if err = s.repo.Update(ctx, req.ToFields(user), byID(id)); err != nil {
		log.Error().Err(err).Msg("failed to update bank account")

		return fmt.Errorf("failed to update bank account: %w", err)
	}

	return nil
}

func (s *serviceImpl) DeleteAccount(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".DeleteAccount")
	defer scope.End()
	defer scope.TraceIfError(err)

	if _, err = s.GetAccount(ctx, id); err != nil {
		return err
	}

	if err = s.repo.Delete(ctx, byID(id)); err != nil {
		log.Error().Err(err).Msg("failed to delete bank account")

		return fmt.Errorf("failed to delete bank account: %w", err)
	}

	return nil
}

// RecordEntry applies a deposit, withdrawal or transfer and its balance change in one transaction.
func (s *serviceImpl) RecordEntry(ctx context.Context, req dto.RecordEntryRequest) (res dto.RecordEntryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RecordEntry")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req.IsTransfer() {
		if req.CounterAccountID == constant.Empty {
			return res, failure.BadRequestFromString("counter_account_id is required for transfers") // nolint:wrapcheck
		}

		if req.CounterAccountID == req.AccountID {
			return res, failure.BadRequestFromString("cannot transfer to the same account") // nolint:wrapcheck
		}
	}

	amount := money.FromFloat(req.Amount)
	if !amount.IsPositive() {
		return res, failure.BadRequestFromString("amount must be greater than zero") // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	err = s.transactor.WithTx(ctx, func(ctx context.Context, sqltx *sqlx.Tx) error {
		accounts, txErr := s.lockAccountsTx(ctx, sqltx, req)
		if txErr != nil {
			return txErr
		}

		source := accounts[req.AccountID]

		switch req.EntryType {
		case model.EntryTypeDeposit:
			source.CurrentBalance = source.CurrentBalance.Add(amount)
		default:
			if !source.Covers(amount) {
				return failure.BadRequestFromString(fmt.Sprintf("insufficient balance in %s", source.AccountName)) // nolint:wrapcheck
			}

			source.CurrentBalance = source.CurrentBalance.Sub(amount)
		}

		var counterID *string
		if req.IsTransfer() {
			counterID = &req.CounterAccountID
		}

		entry := req.ToEntry(user, source.ID, counterID, source.CurrentBalance)
		if txErr = s.applyTx(ctx, sqltx, user, source, entry); txErr != nil {
			return txErr
		}

		res.Account.FromModel(source)
		res.Entry.FromModel(entry)

		if !req.IsTransfer() {
			return nil
		}

		counter := accounts[req.CounterAccountID]
		counter.CurrentBalance = counter.CurrentBalance.Add(amount)

		if txErr = s.applyTx(ctx, sqltx, user, counter, req.ToEntry(user, counter.ID, &source.ID, counter.CurrentBalance)); txErr != nil {
			return txErr
		}

		res.CounterAccount = &dto.AccountResponse{}
		res.CounterAccount.FromModel(counter)

		return nil
	})
	if err != nil {
		return dto.RecordEntryResponse{}, err
	}

	return res, nil
}

// lockAccountsTx row-locks every account the entry touches in id order so concurrent transfers cannot deadlock.
func (s *serviceImpl) lockAccountsTx(ctx context.Context, sqltx *sqlx.Tx, req dto.RecordEntryRequest) (map[string]model.Account, error) {
	ids := []string{req.AccountID}
	if req.IsTransfer() {
		ids = append(ids, req.CounterAccountID)
		if ids[1] < ids[0] {
			ids[0], ids[1] = ids[1], ids[0]
		}
	}

	accounts := make(map[string]model.Account, len(ids))

	for _, id := range ids {
		account, err := s.repo.GetForUpdateTx(ctx, sqltx, byID(id))
		if err != nil {
			log.Error().Err(err).Msg("failed to lock bank account")

			return nil, fmt.Errorf("failed to lock bank account: %w", err)
		}

		if account.ID == constant.Empty {
			return nil, failure.NotFound("bank account not found") // nolint:wrapcheck
		}

		if !account.IsActive {
			return nil, failure.BadRequestFromString(fmt.Sprintf("bank account %s is inactive", account.AccountName)) // nolint:wrapcheck
		}

		accounts[id] = account
	}

	return accounts, nil
}

func (s *serviceImpl) applyTx(ctx context.Context, sqltx *sqlx.Tx, user string, account model.Account, entry model.Entry) error {
	if err := s.entryRepo.InsertTx(ctx, sqltx, entry); err != nil {
		log.Error().Err(err).Msg("failed to create bank entry")

		return fmt.Errorf("failed to create bank entry: %w", err)
	}

	if err := s.repo.UpdateTx(ctx, sqltx, dto.BalanceFields(user, account.CurrentBalance), byID(account.ID)); err != nil {
		log.Error().Err(err).Msg("failed to update bank balance")

		return fmt.Errorf("failed to update bank balance: %w", err)
	}

	return nil
}

func (s *serviceImpl) GetEntries(ctx context.Context, accountID string, params gDto.QueryParams) (res dto.GetEntriesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetEntries")
	defer scope.End()
	defer scope.TraceIfError(err)

	if _, err = s.GetAccount(ctx, accountID); err != nil {
		return res, err
	}

	filter := shared.FilterByFields(model.EntryTableName, gDto.Filter{Field: model.FieldEntryAccountID, Value: accountID})

	if params.SortBy == constant.Empty {
		params.SortBy, params.SortDir = constant.FieldCreatedAt, gDto.SortDirDesc
	}

	entries, err := s.entryRepo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bank entries")

		return res, fmt.Errorf("failed to get bank entries: %w", err)
	}

	total, err := s.entryRepo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bank entries")

		return res, fmt.Errorf("failed to count bank entries: %w", err)
	}

	res.FromModels(entries, total, params.Limit)

	return res, nil
}
