package service

//go:generate go run go.uber.org/mock/mockgen -source=./shift.go -destination=../mocks/shift_service_mock.go -package=mocks -mock_names=Shift=MockShiftService

import (
	"context"
	"fmt"
	"hotelier/config"
	"hotelier/infras/otel"
	"hotelier/internal/domains/employee/model"
	"hotelier/internal/domains/employee/model/dto"
	"hotelier/internal/domains/employee/repository"
	"hotelier/shared"
	"hotelier/shared/cache"
	"hotelier/shared/constant"
	gDto "hotelier/shared/dto"
	"hotelier/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetShift    = "shift:get"
	cacheGetAllShift = "shift:get_all"
)

type Shift interface {
	Create(ctx context.Context, req dto.CreateShiftRequest) (dto.ShiftResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetShiftsResponse, error)
	Get(ctx context.Context, id string) (dto.ShiftResponse, error)
	Update(ctx context.Context, req dto.UpdateShiftRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type shiftServiceImpl struct {
	repo           repository.Shift
	departmentRepo repository.Department
	cfg            *config.Config
	cache          cache.RedisCache
	otel           otel.Otel
}

func NewShift(repo repository.Shift, departmentRepo repository.Department, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Shift {
	return &shiftServiceImpl{
		repo:           repo,
		departmentRepo: departmentRepo,
		cfg:            cfg,
		cache:          cache,
		otel:           otel,
	}
}

func validateShiftTimes(start, end string) error {
	if start == end {
		return failure.BadRequestFromString("shift start_time and end_time must differ") // nolint:wrapcheck
	}

	return nil
}

func (s *shiftServiceImpl) Create(ctx context.Context, req dto.CreateShiftRequest) (res dto.ShiftResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".shift.Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = validateShiftTimes(req.StartTime, req.EndTime); err != nil {
		return res, err
	}

	if err = s.ensureDepartment(ctx, req.DepartmentID); err != nil {
		return res, err
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	shift := req.ToModel(user)

	if err = s.repo.Insert(ctx, shift); err != nil {
		if shared.IsUniqueViolation(err) {
			return res, failure.Conflict("shift already exists in this department") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to create shift")

		return res, fmt.Errorf("failed to create shift: %w", err)
	}

	s.invalidate(ctx, constant.Empty)
	res.FromModel(shift)

	return res, nil
}

func (s *shiftServiceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetShiftsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".shift.GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllShift, req, filter)
	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for shifts")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count shifts")

		return res, fmt.Errorf("failed to count shifts: %w", err)
	}

	shifts, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get shifts")

		return res, fmt.Errorf("failed to get shifts: %w", err)
	}

	res.FromModels(shifts, total, req.Limit)

	go func(c context.Context) {
		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save shifts to cache")
		}
	}(context.WithoutCancel(ctx))

	return res, nil
}

func (s *shiftServiceImpl) Get(ctx context.Context, id string) (res dto.ShiftResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".shift.Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetShift, id)
	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for shift")

		return res, nil
	}

	shift, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(shift)

	go func(c context.Context) {
		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save shift to cache")
		}
	}(context.WithoutCancel(ctx))

	return res, nil
}

// Update validates the resulting time window, so a partial edit is checked against the stored start or end.
func (s *shiftServiceImpl) Update(ctx context.Context, req dto.UpdateShiftRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".shift.Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req.IsEmpty() {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	shift, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	if req.StartTime != constant.Empty {
		shift.StartTime = req.StartTime
	}

	if req.EndTime != constant.Empty {
		shift.EndTime = req.EndTime
	}

	if err = validateShiftTimes(shift.StartTime, shift.EndTime); err != nil {
		return err
	}

	if req.DepartmentID != constant.Empty && req.DepartmentID != shift.DepartmentID {
		if err = s.ensureDepartment(ctx, req.DepartmentID); err != nil {
			return err
		}
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if err = s.repo.Update(ctx, req.ToFields(user), shared.FilterByID(id, model.FieldID, model.ShiftTableName)); err != nil {
		if shared.IsUniqueViolation(err) {
			return failure.Conflict("shift already exists in this department") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to update shift")

		return fmt.Errorf("failed to update shift: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *shiftServiceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".shift.Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.ShiftTableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if shift exists")

		return fmt.Errorf("failed to check if shift exists: %w", err)
	}

	if !exist {
		return failure.NotFound("shift not found") // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete shift")

		return fmt.Errorf("failed to delete shift: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *shiftServiceImpl) find(ctx context.Context, id string) (model.Shift, error) {
	shift, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.ShiftTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get shift")

		return shift, fmt.Errorf("failed to get shift: %w", err)
	}

	if shift.ID == constant.Empty {
		return shift, failure.NotFound("shift not found") // nolint:wrapcheck
	}

	return shift, nil
}

func (s *shiftServiceImpl) ensureDepartment(ctx context.Context, id string) error {
	exist, err := s.departmentRepo.Exist(ctx, shared.FilterByID(id, model.FieldID, model.DepartmentTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if department exists")

		return fmt.Errorf("failed to check if department exists: %w", err)
	}

	if !exist {
		return failure.NotFound("department not found") // nolint:wrapcheck
	}

	return nil
}

func (s *shiftServiceImpl) invalidate(ctx context.Context, id string) {
	go func(c context.Context) {
		if id != constant.Empty {
			if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetShift, id)); err != nil {
				log.Error().Err(err).Msg("failed to delete shift cache")
			}
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllShift)
	}(context.WithoutCancel(ctx))
}
