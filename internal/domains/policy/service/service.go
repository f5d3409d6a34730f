package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Policy=MockPolicyService

import (
	"context"
	"fmt"
	"hotelier/config"
	"hotelier/infras/otel"
	"hotelier/internal/domains/policy/model"
	"hotelier/internal/domains/policy/model/dto"
	"hotelier/internal/domains/policy/repository"
	"hotelier/shared"
	"hotelier/shared/cache"
	"hotelier/shared/constant"
	gDto "hotelier/shared/dto"
	"hotelier/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetPolicy    = "policy:get"
	cacheGetAllPolicy = "policy:get_all"
)

type Policy interface {
	Create(ctx context.Context, req dto.CreatePolicyRequest) (dto.PolicyResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetPoliciesResponse, error)
	Get(ctx context.Context, id string) (dto.PolicyResponse, error)
	Update(ctx context.Context, req dto.UpdatePolicyRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo  repository.Policy
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Policy, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Policy {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreatePolicyRequest) (res dto.PolicyResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	policy := req.ToModel(user)

	if err = s.repo.Insert(ctx, policy); err != nil {
		log.Error().Err(err).Msg("failed to create policy")

		return res, fmt.Errorf("failed to create policy: %w", err)
	}

	s.invalidate(ctx, constant.Empty)
	res.FromModel(policy)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetPoliciesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllPolicy, req, filter)
	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for policies")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count policies")

		return res, fmt.Errorf("failed to count policies: %w", err)
	}

	policies, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get policies")

		return res, fmt.Errorf("failed to get policies: %w", err)
	}

	res.FromModels(policies, total, req.Limit)

	go func(c context.Context) {
		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save policies to cache")
		}
	}(context.WithoutCancel(ctx))

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.PolicyResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetPolicy, id)
	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for policy")

		return res, nil
	}

	policy, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get policy")

		return res, fmt.Errorf("failed to get policy: %w", err)
	}

	if policy.ID == constant.Empty {
		return res, failure.NotFound("policy not found") // nolint:wrapcheck
	}

	res.FromModel(policy)

	go func(c context.Context) {
		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save policy to cache")
		}
	}(context.WithoutCancel(ctx))

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdatePolicyRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
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
		log.Error().Err(err).Msg("failed to update policy")

		return fmt.Errorf("failed to update policy: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	if err = s.ensureExists(ctx, filter); err != nil {
		return err
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete policy")

		return fmt.Errorf("failed to delete policy: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) ensureExists(ctx context.Context, filter gDto.FilterGroup) error {
	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if policy exists")

		return fmt.Errorf("failed to check if policy exists: %w", err)
	}

	if !exist {
		return failure.NotFound("policy not found") // nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func(c context.Context) {
		if id != constant.Empty {
			if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetPolicy, id)); err != nil {
				log.Error().Err(err).Msg("failed to delete policy cache")
			}
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllPolicy)
	}(context.WithoutCancel(ctx))
}
