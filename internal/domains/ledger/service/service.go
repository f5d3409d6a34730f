package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Ledger=MockLedgerService

import (
	"context"
	"fmt"
	"hotelier/infras/otel"
	"hotelier/infras/postgres"
	expenseService "hotelier/internal/domains/expense/service"
	"hotelier/internal/domains/ledger/model"
	"hotelier/internal/domains/ledger/model/dto"
	"hotelier/internal/domains/ledger/repository"
	"hotelier/shared"
	"hotelier/shared/constant"
	gDto "hotelier/shared/dto"
	"hotelier/shared/failure"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

type Ledger interface {
	PostEntry(ctx context.Context, req dto.PostEntryRequest) (dto.PostEntryResponse, error)
	GetBook(ctx context.Context, month, year int) (dto.LedgerResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams) (dto.GetLedgersResponse, error)
}

type serviceImpl struct {
	repo       repository.Ledger
	entryRepo  repository.Entry
	expenses   expenseService.Category
	transactor postgres.Transactor
	otel       otel.Otel
}

func New(repo repository.Ledger, entryRepo repository.Entry, expenses expenseService.Category, transactor postgres.Transactor, otel otel.Otel) Ledger {
	return &serviceImpl{
		repo:       repo,
		entryRepo:  entryRepo,
		expenses:   expenses,
		transactor: transactor,
		otel:       otel,
	}
}

func monthFilter(month, year int) gDto.FilterGroup {
	return shared.FilterByFields(model.TableName,
		gDto.Filter{Field: model.FieldMonth, Value: month},
		gDto.Filter{Field: model.FieldYear, Value: year},
	)
}

// PostEntry books an income or expense into the month of its entry date, opening the month on first use.
// Expenses must name an active expense category.
func (s *serviceImpl) PostEntry(ctx context.Context, req dto.PostEntryRequest) (res dto.PostEntryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".PostEntry")
	defer scope.End()
	defer scope.TraceIfError(err)

	entryDate, err := time.Parse(constant.DayFormat, req.EntryDate)
	if err != nil {
		return res, failure.BadRequestFromString("entry_date must use the YYYY-MM-DD format") // nolint:wrapcheck
	}

	if !req.Amount().IsPositive() {
		return res, failure.BadRequestFromString("amount must be greater than zero") // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	entry := req.ToModel(user, entryDate)

	if entry.EntryType == model.EntryTypeExpense {
		active, checkErr := s.expenses.IsActive(ctx, entry.Category)
		if checkErr != nil {
			return res, fmt.Errorf("failed to validate expense category: %w", checkErr)
		}

		if !active {
			return res, failure.BadRequestFromString("category must be an active expense category") // nolint:wrapcheck
		}

		entry.Category = strings.ToLower(entry.Category)
	}

	month, year := int(entryDate.Month()), entryDate.Year()

	var ledger model.Ledger

	err = s.transactor.WithTx(ctx, func(ctx context.Context, sqltx *sqlx.Tx) error {
		opening, txErr := s.repo.PreviousClosingTx(ctx, sqltx, month, year)
		if txErr != nil {
			log.Error().Err(txErr).Msg("failed to get previous closing balance")

			return fmt.Errorf("failed to get previous closing balance: %w", txErr)
		}

		ledger, txErr = s.repo.LockOrCreateTx(ctx, sqltx, dto.NewLedger(user, month, year, opening))
		if txErr != nil {
			log.Error().Err(txErr).Msg("failed to lock ledger")

			return fmt.Errorf("failed to lock ledger: %w", txErr)
		}

		ledger.Post(&entry)

		if txErr = s.entryRepo.InsertTx(ctx, sqltx, entry); txErr != nil {
			log.Error().Err(txErr).Msg("failed to create ledger entry")

			return fmt.Errorf("failed to create ledger entry: %w", txErr)
		}

		if txErr = s.repo.UpdateTx(ctx, sqltx, dto.LedgerFields(user, ledger), shared.FilterByID(ledger.ID, model.FieldID, model.TableName)); txErr != nil {
			log.Error().Err(txErr).Msg("failed to update ledger")

			return fmt.Errorf("failed to update ledger: %w", txErr)
		}

		return nil
	})
	if err != nil {
		return res, err
	}

	res.Ledger.FromModel(ledger, nil)
	res.Entry.FromModel(entry)

	return res, nil
}

func (s *serviceImpl) GetBook(ctx context.Context, month, year int) (res dto.LedgerResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetBook")
	defer scope.End()
	defer scope.TraceIfError(err)

	if month < 1 || month > 12 {
		return res, failure.BadRequestFromString("month must be between 1 and 12") // nolint:wrapcheck
	}

	ledger, err := s.repo.Get(ctx, monthFilter(month, year))
	if err != nil {
		log.Error().Err(err).Msg("failed to get ledger")

		return res, fmt.Errorf("failed to get ledger: %w", err)
	}

	if ledger.ID == constant.Empty {
		return res, failure.NotFound("ledger not found") // nolint:wrapcheck
	}

	entries, err := s.entryRepo.GetAll(ctx, gDto.QueryParams{SortBy: constant.FieldCreatedAt, SortDir: gDto.SortDirAsc},
		shared.FilterByFields(model.EntryTableName, gDto.Filter{Field: model.FieldEntryLedgerID, Value: ledger.ID}))
	if err != nil {
		log.Error().Err(err).Msg("failed to get ledger entries")

		return res, fmt.Errorf("failed to get ledger entries: %w", err)
	}

	if entries == nil {
		entries = []model.Entry{}
	}

	res.FromModel(ledger, entries)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams) (res dto.GetLedgersResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	total, err := s.repo.Count(ctx, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to count ledgers")

		return res, fmt.Errorf("failed to count ledgers: %w", err)
	}

	req.SortBy = model.FieldYear + " DESC, " + model.FieldMonth
	req.SortDir = gDto.SortDirDesc

	ledgers, err := s.repo.GetAll(ctx, req, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to get ledgers")

		return res, fmt.Errorf("failed to get ledgers: %w", err)
	}

	res.FromModels(ledgers, total, req.Limit)

	return res, nil
}
