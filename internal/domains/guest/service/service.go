package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Guest=MockGuestService

import (
	"context"
	"fmt"
	"hotelier/config"
	"hotelier/infras/otel"
	"hotelier/internal/domains/guest/model"
	"hotelier/internal/domains/guest/model/dto"
	"hotelier/internal/domains/guest/repository"
	"hotelier/shared"
	"hotelier/shared/cache"
	"hotelier/shared/constant"
	gDto "hotelier/shared/dto"
	"hotelier/shared/failure"

	"github.com/bwmarrin/snowflake"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetGuest    = "guest:get"
	cacheGetAllGuest = "guest:get_all"
	cacheCountGuest  = "guest:count"
)

type Guest interface {
	ResolveTx(ctx context.Context, sqltx *sqlx.Tx, req dto.ResolveGuestRequest) (dto.GuestResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetGuestsResponse, error)
	Get(ctx context.Context, guestID string) (dto.GuestResponse, error)
}

type serviceImpl struct {
	repo  repository.Guest
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
	node  *snowflake.Node
}

func New(repo repository.Guest, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Guest {
	node, err := snowflake.NewNode(cfg.App.NodeID)
	if err != nil {
		log.Fatal().Err(err).Int64("node_id", cfg.App.NodeID).Msg("failed to create guest id generator")
	}

	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
		node:  node,
	}
}

// ResolveTx finds the guest by email, then by mobile, creating a directory entry when neither matches.
func (s *serviceImpl) ResolveTx(ctx context.Context, sqltx *sqlx.Tx, req dto.ResolveGuestRequest) (res dto.GuestResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ResolveTx")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	guest, err := s.lookup(ctx, sqltx, req)
	if err != nil {
		return res, err
	}

	if guest.ID == constant.Empty {
		guest = req.ToModel(user, s.node.Generate().String())

		if err = s.repo.InsertTx(ctx, sqltx, guest); err != nil {
			log.Error().Err(err).Msg("failed to create guest")

			return res, fmt.Errorf("failed to create guest: %w", err)
		}
	} else {
		if err = s.repo.RecordBookingTx(ctx, sqltx, guest.ID, req.BookingNumber); err != nil {
			log.Error().Err(err).Str("guest_id", guest.GuestID).Msg("failed to record guest booking")

			return res, fmt.Errorf("failed to record guest booking: %w", err)
		}

		guest.BookingCount++
		guest.LastBookingNumber = req.BookingNumber
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllGuest)
		shared.InvalidateCaches(c, s.cache, cacheCountGuest)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetGuest, guest.GuestID)); err != nil {
			log.Error().Err(err).Msg("failed to delete guest cache")
		}
	}()

	res.FromModel(guest)

	return res, nil
}

func (s *serviceImpl) lookup(ctx context.Context, sqltx *sqlx.Tx, req dto.ResolveGuestRequest) (model.Guest, error) {
	var guest model.Guest

	if email := req.NormalizedEmail(); email != constant.Empty {
		found, err := s.repo.GetTx(ctx, sqltx, shared.FilterByFields(model.TableName, gDto.Filter{Field: model.FieldEmail, Value: email}))
		if err != nil {
			log.Error().Err(err).Msg("failed to get guest by email")

			return guest, fmt.Errorf("failed to get guest by email: %w", err)
		}

		if found.ID != constant.Empty {
			return found, nil
		}
	}

	if req.Mobile != constant.Empty {
		found, err := s.repo.GetTx(ctx, sqltx, shared.FilterByFields(model.TableName, gDto.Filter{Field: model.FieldMobile, Value: req.Mobile}))
		if err != nil {
			log.Error().Err(err).Msg("failed to get guest by mobile")

			return guest, fmt.Errorf("failed to get guest by mobile: %w", err)
		}

		guest = found
	}

	return guest, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetGuestsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllGuest, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for guests")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count guests")

		return res, fmt.Errorf("failed to count guests: %w", err)
	}

	guests, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get guests")

		return res, fmt.Errorf("failed to get guests: %w", err)
	}

	res.FromModels(guests, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save guests to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, guestID string) (res dto.GuestResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetGuest, guestID)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for guest")

		return res, nil
	}

	guest, err := s.repo.Get(ctx, shared.FilterByID(guestID, model.FieldGuestID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get guest")

		return res, fmt.Errorf("failed to get guest: %w", err)
	}

	if guest.ID == constant.Empty {
		return res, failure.NotFound("guest not found") // nolint:wrapcheck
	}

	res.FromModel(guest)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save guest to cache")
		}
	}()

	return res, nil
}
