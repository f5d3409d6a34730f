package service

//go:generate go run go.uber.org/mock/mockgen -source=./department.go -destination=../mocks/department_service_mock.go -package=mocks -mock_names=Department=MockDepartmentService

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
	cacheGetDepartment    = "department:get"
	cacheGetAllDepartment = "department:get_all"
)

type Department interface {
	Create(ctx context.Context, req dto.CreateDepartmentRequest) (dto.DepartmentResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetDepartmentsResponse, error)
	Get(ctx context.Context, id string) (dto.DepartmentResponse, error)
	Update(ctx context.Context, req dto.UpdateDepartmentRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type departmentServiceImpl struct {
	repo      repository.Department
	shiftRepo repository.Shift
	cfg       *config.Config
	cache     cache.RedisCache
	otel      otel.Otel
}

func New(repo repository.Department, shiftRepo repository.Shift, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Department {
	return &departmentServiceImpl{
		repo:      repo,
		shiftRepo: shiftRepo,
		cfg:       cfg,
		cache:     cache,
		otel:      otel,
	}
}

func (s *departmentServiceImpl) Create(ctx context.Context, req dto.CreateDepartmentRequest) (res dto.DepartmentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".department.Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	department := req.ToModel(user)

	if err = s.repo.Insert(ctx, department); err != nil {
		if shared.IsUniqueViolation(err) {
			return res, failure.Conflict("department already exists") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to create department")

		return res, fmt.Errorf("failed to create department: %w", err)
	}

	s.invalidate(ctx, constant.Empty)
	res.FromModel(department)

	return res, nil
}

func (s *departmentServiceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetDepartmentsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".department.GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllDepartment, req, filter)
	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for departments")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count departments")

		return res, fmt.Errorf("failed to count departments: %w", err)
	}

	departments, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get departments")

		return res, fmt.Errorf("failed to get departments: %w", err)
	}

	res.FromModels(departments, total, req.Limit)

	go func(c context.Context) {
		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save departments to cache")
		}
	}(context.WithoutCancel(ctx))

	return res, nil
}

func (s *departmentServiceImpl) Get(ctx context.Context, id string) (res dto.DepartmentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".department.Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetDepartment, id)
	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for department")

		return res, nil
	}

	department, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.DepartmentTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get department")

		return res, fmt.Errorf("failed to get department: %w", err)
	}

	if department.ID == constant.Empty {
		return res, failure.NotFound("department not found") // nolint:wrapcheck
	}

	res.FromModel(department)

	go func(c context.Context) {
		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save department to cache")
		}
	}(context.WithoutCancel(ctx))

	return res, nil
}

func (s *departmentServiceImpl) Update(ctx context.Context, req dto.UpdateDepartmentRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".department.Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req.IsEmpty() {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	filter := shared.FilterByID(id, model.FieldID, model.DepartmentTableName)

	if err = s.ensureExists(ctx, filter); err != nil {
		return err
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if err = s.repo.Update(ctx, req.ToFields(user), filter); err != nil {
		if shared.IsUniqueViolation(err) {
			return failure.Conflict("department already exists") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to update department")

		return fmt.Errorf("failed to update department: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

// Delete refuses while shifts still belong to the department.
func (s *departmentServiceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".department.Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.DepartmentTableName)

	if err = s.ensureExists(ctx, filter); err != nil {
		return err
	}

	shifts, err := s.shiftRepo.Count(ctx, shared.FilterByFields(model.ShiftTableName, gDto.Filter{Field: model.FieldDepartmentID, Value: id}))
	if err != nil {
		log.Error().Err(err).Msg("failed to count department shifts")

		return fmt.Errorf("failed to count department shifts: %w", err)
	}

	if shifts > 0 {
		return failure.Conflict(fmt.Sprintf("department still has %d shift(s)", shifts)) // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete department")

		return fmt.Errorf("failed to delete department: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *departmentServiceImpl) ensureExists(ctx context.Context, filter gDto.FilterGroup) error {
	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if department exists")

		return fmt.Errorf("failed to check if department exists: %w", err)
	}

	if !exist {
		return failure.NotFound("department not found") // nolint:wrapcheck
	}

	return nil
}

func (s *departmentServiceImpl) invalidate(ctx context.Context, id string) {
	go func(c context.Context) {
		if id != constant.Empty {
			if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetDepartment, id)); err != nil {
				log.Error().Err(err).Msg("failed to delete department cache")
			}
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllDepartment)
	}(context.WithoutCancel(ctx))
}
