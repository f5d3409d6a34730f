package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Availability=MockAvailabilityService

import (
	"context"
	"fmt"
	"hotelier/config"
	"hotelier/infras/otel"
	"hotelier/internal/domains/availability/model"
	"hotelier/internal/domains/availability/model/dto"
	"hotelier/internal/domains/availability/repository"
	"hotelier/shared"
	"hotelier/shared/constant"
	gDto "hotelier/shared/dto"
	gModel "hotelier/shared/model"
	"hotelier/shared/timezone"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

type Availability interface {
	UpsertTx(ctx context.Context, sqltx *sqlx.Tx, req dto.UpsertAvailabilityRequest) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetAvailabilitiesResponse, error)
}

type serviceImpl struct {
	repo        repository.Availability
	historyRepo repository.History
	cfg         *config.Config
	otel        otel.Otel
}

func New(repo repository.Availability, historyRepo repository.History, cfg *config.Config, otel otel.Otel) Availability {
	return &serviceImpl{
		repo:        repo,
		historyRepo: historyRepo,
		cfg:         cfg,
		otel:        otel,
	}
}

// UpsertTx records the booking's status on the unit, appending a history entry the first time the booking is seen.
func (s *serviceImpl) UpsertTx(ctx context.Context, sqltx *sqlx.Tx, req dto.UpsertAvailabilityRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpsertTx")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	now := timezone.Now()

	availabilityID, err := s.repo.UpsertTx(ctx, sqltx, req.ToRecord(user, now))
	if err != nil {
		log.Error().Err(err).Msg("failed to upsert room availability")

		return fmt.Errorf("failed to upsert room availability: %w", err)
	}

	filter := shared.FilterByFields(model.HistoryTableName,
		gDto.Filter{Field: model.FieldHistoryAvailabilityID, Value: availabilityID},
		gDto.Filter{Field: model.FieldHistoryBookingNumber, Value: req.BookingNumber},
	)

	history, err := s.historyRepo.GetTx(ctx, sqltx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get room availability history")

		return fmt.Errorf("failed to get room availability history: %w", err)
	}

	if history.ID == constant.Empty {
		if err = s.historyRepo.InsertTx(ctx, sqltx, req.ToHistory(user, availabilityID, now)); err != nil {
			log.Error().Err(err).Msg("failed to add room availability history")

			return fmt.Errorf("failed to add room availability history: %w", err)
		}

		return nil
	}

	timestamps := history.StatusTimestamps.V
	if timestamps == nil {
		timestamps = map[string]time.Time{}
	}

	timestamps[req.Status] = now

	fields := map[string]any{
		model.FieldHistoryStatus:           req.Status,
		model.FieldHistoryStatusTimestamps: gModel.NewJSON(timestamps),
		constant.FieldModifiedAt:           now,
		constant.FieldModifiedBy:           user,
	}

	if !req.CheckIn.IsZero() && !req.CheckIn.Equal(history.CheckIn) {
		fields[model.FieldHistoryCheckIn] = req.CheckIn
	}

	if !req.CheckOut.IsZero() && !req.CheckOut.Equal(history.CheckOut) {
		fields[model.FieldHistoryCheckOut] = req.CheckOut
	}

	if err = s.historyRepo.UpdateTx(ctx, sqltx, fields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update room availability history")

		return fmt.Errorf("failed to update room availability history: %w", err)
	}

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetAvailabilitiesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count room availabilities")

		return res, fmt.Errorf("failed to count room availabilities: %w", err)
	}

	records, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get room availabilities")

		return res, fmt.Errorf("failed to get room availabilities: %w", err)
	}

	var histories []model.History

	if len(records) > 0 {
		ids := make([]string, len(records))
		for i, record := range records {
			ids[i] = record.ID
		}

		histories, err = s.historyRepo.GetAll(ctx,
			gDto.QueryParams{SortBy: model.FieldHistoryCheckIn, SortDir: gDto.SortDirDesc},
			shared.FilterByFields(model.HistoryTableName, gDto.Filter{Field: model.FieldHistoryAvailabilityID, Value: ids, Operator: gDto.FilterOperatorIn}),
		)
		if err != nil {
			log.Error().Err(err).Msg("failed to get room availability histories")

			return res, fmt.Errorf("failed to get room availability histories: %w", err)
		}
	}

	res.FromModels(records, histories, total, req.Limit)

	return res, nil
}
