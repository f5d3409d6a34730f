package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Category=MockCategoryService

import (
	"context"
	"fmt"
	"hotelier/config"
	"hotelier/infras/otel"
	"hotelier/internal/domains/expense/model"
	"hotelier/internal/domains/expense/model/dto"
	"hotelier/internal/domains/expense/repository"
	"hotelier/shared"
	"hotelier/shared/cache"
	"hotelier/shared/constant"
	gDto "hotelier/shared/dto"
	"hotelier/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetCategory    = "expense_category:get"
	cacheGetAllCategory = "expense_category:get_all"
)

type Category interface {
	Create(ctx context.Context, req dto.CreateCategoryRequest) (dto.CategoryResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetCategoriesResponse, error)
	Get(ctx context.Context, id string) (dto.CategoryResponse, error)
	Update(ctx context.Context, req dto.UpdateCategoryRequest, id string) error
	Delete(ctx context.Context, id string) error
	IsActive(ctx context.Context, name string) (bool, error)
}

type serviceImpl struct {
	repo  repository.Category
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Category, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Category {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateCategoryRequest) (res dto.CategoryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".expense.Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	category := req.ToModel(user)

	if err = s.repo.Insert(ctx, category); err != nil {
		if shared.IsUniqueViolation(err) {
			return res, failure.Conflict("expense category already exists") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to create expense category")

		return res, fmt.Errorf("failed to create expense category: %w", err)
	}

	s.invalidate(ctx, constant.Empty)
	res.FromModel(category)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetCategoriesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".expense.GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllCategory, req, filter)
	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for expense categories")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count expense categories")

		return res, fmt.Errorf("failed to count expense categories: %w", err)
	}

	categories, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get expense categories")

		return res, fmt.Errorf("failed to get expense categories: %w", err)
	}

	res.FromModels(categories, total, req.Limit)

	go func(c context.Context) {
		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save expense categories to cache")
		}
	}(context.WithoutCancel(ctx))

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.CategoryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".expense.Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetCategory, id)
	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for expense category")

		return res, nil
	}

	category, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get expense category")

		return res, fmt.Errorf("failed to get expense category: %w", err)
	}

	if category.ID == constant.Empty {
		return res, failure.NotFound("expense category not found") // nolint:wrapcheck
	}

	res.FromModel(category)

	go func(c context.Context) {
		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save expense category to cache")
		}
	}(context.WithoutCancel(ctx))

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateCategoryRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".expense.Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req.IsEmpty() {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	if err = s.ensureExists(ctx, filter); err != nil {
		return err
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if err = s.repo.Update(ctx, req.ToFields(user), filter); err != nil {
		if shared.IsUniqueViolation(err) {
			return failure.Conflict("expense category already exists") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to update expense category")

		return fmt.Errorf("failed to update expense category: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

// Delete leaves posted ledger entries untouched; they keep the category name as text.
func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".expense.Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	if err = s.ensureExists(ctx, filter); err != nil {
		return err
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete expense category")

		return fmt.Errorf("failed to delete expense category: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

// IsActive reports whether name matches an enabled category, ignoring case and surrounding spaces.
func (s *serviceImpl) IsActive(ctx context.Context, name string) (ok bool, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".expense.IsActive")
	defer scope.End()
	defer scope.TraceIfError(err)

	ok, err = s.repo.Exist(ctx, shared.FilterByFields(model.TableName,
		gDto.Filter{Field: model.FieldName, Value: dto.NormalizeName(name)},
		gDto.Filter{Field: model.FieldIsActive, Value: true},
	))
	if err != nil {
		log.Error().Err(err).Msg("failed to check expense category")

		return false, fmt.Errorf("failed to check expense category: %w", err)
	}

	return ok, nil
}

func (s *serviceImpl) ensureExists(ctx context.Context, filter gDto.FilterGroup) error {
	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if expense category exists")

		return fmt.Errorf("failed to check if expense category exists: %w", err)
	}

	if !exist {
		return failure.NotFound("expense category not found") // nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func(c context.Context) {
		if id != constant.Empty {
			if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetCategory, id)); err != nil {
				log.Error().Err(err).Msg("failed to delete expense category cache")
			}
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllCategory)
	}(context.WithoutCancel(ctx))
}
