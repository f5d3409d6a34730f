package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Finance=MockFinanceService

import (
	"context"
	"fmt"
	"hotelier/config"
	"hotelier/infras/otel"
	"hotelier/infras/postgres"
	"hotelier/internal/domains/finance/model"
	"hotelier/internal/domains/finance/model/dto"
	"hotelier/internal/domains/finance/repository"
	"hotelier/shared"
	"hotelier/shared/constant"
	gDto "hotelier/shared/dto"
	"hotelier/shared/failure"
	"hotelier/shared/timezone"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

// Finance owns the invoice settings and the financial years that number invoices.
type Finance interface {
	GetSettings(ctx context.Context) (dto.SettingsResponse, error)
	UpdateSettings(ctx context.Context, req dto.UpdateSettingsRequest) (dto.SettingsResponse, error)
	CreateFinancialYear(ctx context.Context, req dto.CreateYearRequest) (dto.FinancialYearResponse, error)
	ActivateFinancialYear(ctx context.Context, req dto.YearWindowRequest) (dto.FinancialYearResponse, error)
	Rollover(ctx context.Context) (dto.FinancialYearResponse, error)
	NextInvoiceNumber(ctx context.Context) (dto.InvoiceNumberResponse, error)
}

type serviceImpl struct {
	repo       repository.Settings
	yearRepo   repository.Year
	transactor postgres.Transactor
	cfg        *config.Config
	otel       otel.Otel
}

func New(repo repository.Settings, yearRepo repository.Year, transactor postgres.Transactor, cfg *config.Config, otel otel.Otel) Finance {
	return &serviceImpl{
		repo:       repo,
		yearRepo:   yearRepo,
		transactor: transactor,
		cfg:        cfg,
		otel:       otel,
	}
}

func settingsFilter() gDto.FilterGroup {
	return shared.FilterByID(model.SettingsID, model.FieldID, model.TableName)
}

func activeYearFilter(settingsID string) gDto.FilterGroup {
	return shared.FilterByFields(model.YearTableName,
		gDto.Filter{Field: model.FieldYearSettingsID, Value: settingsID},
		gDto.Filter{Field: model.FieldYearIsActive, Value: true},
	)
}

func windowFilter(settingsID string, start, end string) gDto.FilterGroup {
	return shared.FilterByFields(model.YearTableName,
		gDto.Filter{Field: model.FieldYearSettingsID, Value: settingsID},
		gDto.Filter{Field: model.FieldYearStartDate, Value: start},
		gDto.Filter{Field: model.FieldYearEndDate, Value: end},
	)
}

func (s *serviceImpl) user(ctx context.Context) string {
	user, ok := ctx.Value(constant.ContextKeyUserID).(string)
	if !ok || user == constant.Empty {
		return constant.SystemUser
	}

	return user
}

// ensureSettings loads the singleton settings row, creating it with the default prefix on first use.
func (s *serviceImpl) ensureSettings(ctx context.Context) (model.Settings, error) {
	settings, err := s.repo.Get(ctx, settingsFilter())
	if err != nil {
		log.Error().Err(err).Msg("failed to get finance settings")

		return settings, fmt.Errorf("failed to get finance settings: %w", err)
	}

	if settings.ID != constant.Empty {
		return settings, nil
	}

	prefix := s.cfg.Finance.DefaultInvoicePrefix
	if prefix == constant.Empty {
		prefix = constant.DefaultPrefix
	}

	settings = dto.NewSettings(s.user(ctx), prefix)

	err = s.repo.Insert(ctx, settings)
	if err != nil && !shared.IsUniqueViolation(err) {
		log.Error().Err(err).Msg("failed to create finance settings")

		return settings, fmt.Errorf("failed to create finance settings: %w", err)
	}

	if err != nil {
		// another request created the row first
		return s.repo.Get(ctx, settingsFilter()) //nolint:wrapcheck
	}

	return settings, nil
}

func (s *serviceImpl) GetSettings(ctx context.Context) (res dto.SettingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetSettings")
	defer scope.End()
	defer scope.TraceIfError(err)

	settings, err := s.ensureSettings(ctx)
	if err != nil {
		return res, err
	}

	years, err := s.yearRepo.GetAll(ctx, gDto.QueryParams{SortBy: model.FieldYearStartDate, SortDir: gDto.SortDirDesc},
		shared.FilterByFields(model.YearTableName, gDto.Filter{Field: model.FieldYearSettingsID, Value: settings.ID}))
	if err != nil {
		log.Error().Err(err).Msg("failed to get financial years")

		return res, fmt.Errorf("failed to get financial years: %w", err)
	}

	res.FromModel(settings, years)

	return res, nil
}

func (s *serviceImpl) UpdateSettings(ctx context.Context, req dto.UpdateSettingsRequest) (res dto.SettingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateSettings")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req.IsEmpty() {
		return res, failure.BadRequestFromString("no fields to update") // nolint:wrapcheck
	}

	if _, err = s.ensureSettings(ctx); err != nil {
		return res, err
	}

	if err = s.repo.Update(ctx, req.ToFields(s.user(ctx)), settingsFilter()); err != nil {
		log.Error().Err(err).Msg("failed to update finance settings")

		return res, fmt.Errorf("failed to update finance settings: %w", err)
	}

	return s.GetSettings(ctx)
}

func (s *serviceImpl) CreateFinancialYear(ctx context.Context, req dto.CreateYearRequest) (res dto.FinancialYearResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateFinancialYear")
	defer scope.End()
	defer scope.TraceIfError(err)

	start, end, err := req.Parse()
	if err != nil {
		return res, failure.BadRequestFromString("dates must use the YYYY-MM-DD format") // nolint:wrapcheck
	}

	if err = dto.ValidateWindow(start, end); err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	settings, err := s.ensureSettings(ctx)
	if err != nil {
		return res, err
	}

	user := s.user(ctx)
	year := dto.NewFinancialYear(user, settings.ID, start, end, req.Activate)

	err = s.transactor.WithTx(ctx, func(ctx context.Context, sqltx *sqlx.Tx) error {
		if req.Activate {
			if txErr := s.deactivateAllTx(ctx, sqltx, settings.ID, user); txErr != nil {
				return txErr
			}
		}

		if txErr := s.yearRepo.InsertTx(ctx, sqltx, year); txErr != nil {
			if shared.IsUniqueViolation(txErr) {
				return failure.Conflict("financial year already exists") // nolint:wrapcheck
			}

			log.Error().Err(txErr).Msg("failed to create financial year")

			return fmt.Errorf("failed to create financial year: %w", txErr)
		}

		if req.Activate {
			return s.mirrorTx(ctx, sqltx, user, year)
		}

		return nil
	})
	if err != nil {
		return res, err
	}

	res.FromModel(year)

	return res, nil
}

func (s *serviceImpl) ActivateFinancialYear(ctx context.Context, req dto.YearWindowRequest) (res dto.FinancialYearResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ActivateFinancialYear")
	defer scope.End()
	defer scope.TraceIfError(err)

	start, end, err := req.Parse()
	if err != nil {
		return res, failure.BadRequestFromString("dates must use the YYYY-MM-DD format") // nolint:wrapcheck
	}

	settings, err := s.ensureSettings(ctx)
	if err != nil {
		return res, err
	}

	user := s.user(ctx)

	var year model.FinancialYear

	err = s.transactor.WithTx(ctx, func(ctx context.Context, sqltx *sqlx.Tx) error {
		var txErr error

		year, txErr = s.yearRepo.GetTx(ctx, sqltx, windowFilter(settings.ID, start.Format(constant.DayFormat), end.Format(constant.DayFormat)))
		if txErr != nil {
			log.Error().Err(txErr).Msg("failed to get financial year")

			return fmt.Errorf("failed to get financial year: %w", txErr)
		}

		if year.ID == constant.Empty {
			return failure.NotFound("financial year not found") // nolint:wrapcheck
		}

		return s.activateTx(ctx, sqltx, settings.ID, user, &year)
	})
	if err != nil {
		return res, err
	}

	res.FromModel(year)

	return res, nil
}

// Rollover replaces an expired or missing active year with the window covering today.
func (s *serviceImpl) Rollover(ctx context.Context) (res dto.FinancialYearResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Rollover")
	defer scope.End()
	defer scope.TraceIfError(err)

	settings, err := s.ensureSettings(ctx)
	if err != nil {
		return res, err
	}

	year, err := s.rollover(ctx, settings)
	if err != nil {
		return res, err
	}

	res.FromModel(year)

	return res, nil
}

func (s *serviceImpl) rollover(ctx context.Context, settings model.Settings) (year model.FinancialYear, err error) {
	today := model.Day(timezone.Now())
	user := s.user(ctx)

	err = s.transactor.WithTx(ctx, func(ctx context.Context, sqltx *sqlx.Tx) error {
		active, txErr := s.yearRepo.GetTx(ctx, sqltx, activeYearFilter(settings.ID))
		if txErr != nil {
			log.Error().Err(txErr).Msg("failed to get active financial year")

			return fmt.Errorf("failed to get active financial year: %w", txErr)
		}

		if active.ID != constant.Empty && !model.Day(active.EndDate).Before(today) {
			year = active

			return nil
		}

		start := model.DefaultWindowStart(today)
		if active.ID != constant.Empty {
			start = model.NextWindowStart(active.StartDate, today)
		}

		end := model.WindowEnd(start)

		year, txErr = s.yearRepo.GetTx(ctx, sqltx, windowFilter(settings.ID, start.Format(constant.DayFormat), end.Format(constant.DayFormat)))
		if txErr != nil {
			log.Error().Err(txErr).Msg("failed to get financial year")

			return fmt.Errorf("failed to get financial year: %w", txErr)
		}

		if year.ID != constant.Empty {
			return s.activateTx(ctx, sqltx, settings.ID, user, &year)
		}

		if txErr = s.deactivateAllTx(ctx, sqltx, settings.ID, user); txErr != nil {
			return txErr
		}

		year = dto.NewFinancialYear(user, settings.ID, start, end, true)

		if txErr = s.yearRepo.InsertTx(ctx, sqltx, year); txErr != nil {
			log.Error().Err(txErr).Msg("failed to create financial year")

			return fmt.Errorf("failed to create financial year: %w", txErr)
		}

		log.Info().Str("year", year.YearFormat).Msg("financial year rolled over")

		return s.mirrorTx(ctx, sqltx, user, year)
	})

	return year, err
}

func (s *serviceImpl) activateTx(ctx context.Context, sqltx *sqlx.Tx, settingsID, user string, year *model.FinancialYear) error {
	if err := s.deactivateAllTx(ctx, sqltx, settingsID, user); err != nil {
		return err
	}

	err := s.yearRepo.UpdateTx(ctx, sqltx, map[string]any{
		model.FieldYearIsActive:  true,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}, shared.FilterByID(year.ID, model.FieldID, model.YearTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to activate financial year")

		return fmt.Errorf("failed to activate financial year: %w", err)
	}

	year.IsActive = true

	return s.mirrorTx(ctx, sqltx, user, *year)
}

func (s *serviceImpl) deactivateAllTx(ctx context.Context, sqltx *sqlx.Tx, settingsID, user string) error {
	err := s.yearRepo.UpdateTx(ctx, sqltx, map[string]any{
		model.FieldYearIsActive:  false,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}, activeYearFilter(settingsID))
	if err != nil {
		log.Error().Err(err).Msg("failed to deactivate financial years")

		return fmt.Errorf("failed to deactivate financial years: %w", err)
	}

	return nil
}

func (s *serviceImpl) mirrorTx(ctx context.Context, sqltx *sqlx.Tx, user string, year model.FinancialYear) error {
	err := s.repo.UpdateTx(ctx, sqltx, dto.MirrorYear(user, year), shared.FilterByID(year.SettingsID, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to update finance settings")

		return fmt.Errorf("failed to update finance settings: %w", err)
	}

	return nil
}

// NextInvoiceNumber allocates the next number of the active year. Numbers are gap-free per year.
func (s *serviceImpl) NextInvoiceNumber(ctx context.Context) (res dto.InvoiceNumberResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".NextInvoiceNumber")
	defer scope.End()
	defer scope.TraceIfError(err)

	settings, err := s.ensureSettings(ctx)
	if err != nil {
		return res, err
	}

	var active model.FinancialYear

	if settings.ManualYearControl {
		active, err = s.yearRepo.Get(ctx, activeYearFilter(settings.ID))
		if err != nil {
			log.Error().Err(err).Msg("failed to get active financial year")

			return res, fmt.Errorf("failed to get active financial year: %w", err)
		}
	} else {
		active, err = s.rollover(ctx, settings)
		if err != nil {
			return res, err
		}
	}

	if active.ID == constant.Empty {
		return res, failure.NotFound("no active financial year") // nolint:wrapcheck
	}

	sequence, ok, err := s.yearRepo.AllocateSequence(ctx, active.ID, settings.ID, timezone.Now())
	if err != nil {
		log.Error().Err(err).Msg("failed to allocate invoice sequence")

		return res, fmt.Errorf("failed to allocate invoice sequence: %w", err)
	}

	if !ok {
		return res, failure.Conflict("active financial year changed, retry") // nolint:wrapcheck
	}

	res.InvoiceNumber = model.InvoiceNumber(settings.InvoicePrefix, active.YearFormat, sequence)
	res.Sequence = sequence
	res.YearFormat = active.YearFormat

	return res, nil
}
