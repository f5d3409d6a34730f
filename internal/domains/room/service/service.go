package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Room=MockRoomService

import (
	"context"
	"fmt"
	"hotelier/config"
	"hotelier/infras/otel"
	"hotelier/infras/s3"
	"hotelier/internal/domains/room/model"
	"hotelier/internal/domains/room/model/dto"
	"hotelier/internal/domains/room/repository"
	"hotelier/shared"
	"hotelier/shared/cache"
	"hotelier/shared/constant"
	gDto "hotelier/shared/dto"
	"hotelier/shared/failure"
	"mime/multipart"
	"slices"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const (
	imageDirectory = "rooms"
)

type Room interface {
	Create(ctx context.Context, req dto.CreateRoomRequest) (dto.RoomResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetRoomsResponse, error)
	Get(ctx context.Context, id string) (dto.RoomResponse, error)
	Update(ctx context.Context, req dto.UpdateRoomRequest, id string) error
	Delete(ctx context.Context, id string) error
	AddUnit(ctx context.Context, roomID string, req dto.CreateUnitRequest) (dto.UnitResponse, error)
	RemoveUnit(ctx context.Context, roomID, number string) error
	UploadImages(ctx context.Context, req dto.UploadImagesRequest) (dto.UploadImagesResponse, error)
	ReserveUnitTx(ctx context.Context, sqltx *sqlx.Tx, req dto.ReserveUnitRequest) (bool, error)
	UnitExistsTx(ctx context.Context, sqltx *sqlx.Tx, roomID, number string) (bool, error)
	ReleaseUnitsTx(ctx context.Context, sqltx *sqlx.Tx, bookingNumber string) error
}

type serviceImpl struct {
	repo           repository.Room
	unitRepo       repository.Unit
	bookedDateRepo repository.BookedDate
	cfg            *config.Config
	cache          cache.RedisCache
	otel           otel.Otel
	s3             s3.S3
}

func New(
	repo repository.Room,
	unitRepo repository.Unit,
	bookedDateRepo repository.BookedDate,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
	s3 s3.S3,
) Room {
	return &serviceImpl{
		repo:           repo,
		unitRepo:       unitRepo,
		bookedDateRepo: bookedDateRepo,
		cfg:            cfg,
		cache:          cache,
		otel:           otel,
		s3:             s3,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateRoomRequest) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	exist, err := s.repo.Exist(ctx, shared.FilterByFields(model.TableName,
		gDto.Filter{Field: model.FieldName, Value: req.Name},
		gDto.Filter{Field: model.FieldPropertyType, Value: req.PropertyType},
	))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if room exists")

		return res, fmt.Errorf("failed to check if room exists: %w", err)
	}

	if exist {
		return res, failure.Conflict("room already exists") // nolint:wrapcheck
	}

	room := req.ToModel(user)

	if err = s.repo.Insert(ctx, room); err != nil {
		if shared.IsUniqueViolation(err) {
			return res, failure.Conflict("room already exists") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to create room")

		return res, fmt.Errorf("failed to create room: %w", err)
	}

	s.invalidate(ctx, constant.Empty)

	res.FromModel(room)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetRoomsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(constant.CacheKeyRoomGetAll, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for rooms")

		return res, nil
	}

	total, err := s.count(ctx, req, filter)
	if err != nil {
		return res, err
	}

	rooms, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get rooms")

		return res, fmt.Errorf("failed to get rooms: %w", err)
	}

	roomIDs := make([]string, len(rooms))
	for i, room := range rooms {
		roomIDs[i] = room.ID
	}

	units, bookedDates, err := s.occupancy(ctx, roomIDs)
	if err != nil {
		return res, err
	}

	res.FromModels(rooms, units, bookedDates, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save rooms to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (total int, err error) {
	cacheKey := shared.BuildCacheKeyWithQuery(constant.CacheKeyRoomCount, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &total); err == nil {
		return total, nil
	}

	total, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count rooms")

		return total, fmt.Errorf("failed to count rooms: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, total, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save room count to cache")
		}
	}()

	return total, nil
}

// occupancy loads the units and active booked dates of the given rooms.
func (s *serviceImpl) occupancy(ctx context.Context, roomIDs []string) ([]model.Unit, []model.BookedDate, error) {
	if len(roomIDs) == 0 {
		return nil, nil, nil
	}

	units, err := s.unitRepo.GetAll(ctx, gDto.QueryParams{SortBy: model.FieldUnitNumber, SortDir: gDto.SortDirAsc},
		shared.FilterByFields(model.UnitTableName, gDto.Filter{Field: model.FieldUnitRoomID, Value: roomIDs, Operator: gDto.FilterOperatorIn}))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room units")

		return nil, nil, fmt.Errorf("failed to get room units: %w", err)
	}

	bookedDates, err := s.bookedDateRepo.GetAll(ctx, gDto.QueryParams{SortBy: "check_in", SortDir: gDto.SortDirAsc},
		shared.FilterByFields(model.BookedDateTableName,
			gDto.Filter{Field: model.FieldBookedDateRoomID, Value: roomIDs, Operator: gDto.FilterOperatorIn},
			gDto.Filter{Field: model.FieldBookedDateStatus, Value: model.BookedDateStatusBooked},
		))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room booked dates")

		return nil, nil, fmt.Errorf("failed to get room booked dates: %w", err)
	}

	return units, bookedDates, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(constant.CacheKeyRoomGet, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for room")

		return res, nil
	}

	room, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return res, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == constant.Empty {
		return res, failure.NotFound("room not found") // nolint:wrapcheck
	}

	units, bookedDates, err := s.occupancy(ctx, []string{room.ID})
	if err != nil {
		return res, err
	}

	res.FromModel(room)
	res.WithUnits(units, bookedDates)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save room to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateRoomRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req.IsEmpty() {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	current, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return fmt.Errorf("failed to get room: %w", err)
	}

	if current.ID == constant.Empty {
		return failure.NotFound("room not found") // nolint:wrapcheck
	}

	if err = s.repo.Update(ctx, req.ToFields(user), filter); err != nil {
		if shared.IsUniqueViolation(err) {
			return failure.Conflict("room already exists") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to update room")

		return fmt.Errorf("failed to update room: %w", err)
	}

	if req.Images != nil {
		removed := []string{}

		for _, image := range current.Images.V {
			if !slices.Contains(req.Images, image) {
				removed = append(removed, image)
			}
		}

		s.deleteImages(ctx, removed)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	room, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == constant.Empty {
		return failure.NotFound("room not found") // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete room")

		return fmt.Errorf("failed to delete room: %w", err)
	}

	s.deleteImages(ctx, room.Images.V)
	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) AddUnit(ctx context.Context, roomID string, req dto.CreateUnitRequest) (res dto.UnitResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".AddUnit")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	exist, err := s.repo.Exist(ctx, shared.FilterByID(roomID, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if room exists")

		return res, fmt.Errorf("failed to check if room exists: %w", err)
	}

	if !exist {
		return res, failure.NotFound("room not found") // nolint:wrapcheck
	}

	unit := req.ToModel(user, roomID)

	exist, err = s.unitRepo.Exist(ctx, unitFilter(roomID, unit.Number))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if room unit exists")

		return res, fmt.Errorf("failed to check if room unit exists: %w", err)
	}

	if exist {
		return res, failure.Conflict(fmt.Sprintf("room number %s already exists", unit.Number)) // nolint:wrapcheck
	}

	if err = s.unitRepo.Insert(ctx, unit); err != nil {
		if shared.IsUniqueViolation(err) {
			return res, failure.Conflict(fmt.Sprintf("room number %s already exists", unit.Number)) // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to create room unit")

		return res, fmt.Errorf("failed to create room unit: %w", err)
	}

	s.invalidate(ctx, roomID)

	res.FromModel(unit, nil)

	return res, nil
}

func (s *serviceImpl) RemoveUnit(ctx context.Context, roomID, number string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RemoveUnit")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := unitFilter(roomID, number)

	exist, err := s.unitRepo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if room unit exists")

		return fmt.Errorf("failed to check if room unit exists: %w", err)
	}

	if !exist {
		return failure.NotFound("room unit not found") // nolint:wrapcheck
	}

	if err = s.unitRepo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete room unit")

		return fmt.Errorf("failed to delete room unit: %w", err)
	}

	s.invalidate(ctx, roomID)

	return nil
}

func (s *serviceImpl) UploadImages(ctx context.Context, req dto.UploadImagesRequest) (res dto.UploadImagesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UploadImages")
	defer scope.End()
	defer scope.TraceIfError(err)

	res.URLs = make([]string, 0, len(req.Files))

	for _, header := range req.Files {
		url, err := s.upload(ctx, header)
		if err != nil {
			s.deleteImages(ctx, res.URLs)

			return res, err
		}

		res.URLs = append(res.URLs, url)
	}

	return res, nil
}

func (s *serviceImpl) upload(ctx context.Context, header *multipart.FileHeader) (string, error) {
	file, err := header.Open()
	if err != nil {
		log.Error().Err(err).Str("file", header.Filename).Msg("failed to open room image")

		return constant.Empty, failure.BadRequestFromString("failed to read uploaded file") // nolint:wrapcheck
	}
	defer file.Close()

	objectName := uuid.NewString() + "-" + shared.SanitizeFileName(header.Filename)
	contentType := header.Header.Get(constant.RequestHeaderContentType)

	url, err := s.s3.UploadFile(ctx, imageDirectory, objectName, contentType, file)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload room image")

		return constant.Empty, fmt.Errorf("failed to upload room image: %w", err)
	}

	return url, nil
}

func (s *serviceImpl) deleteImages(ctx context.Context, urls []string) {
	for _, url := range urls {
		objectKey := s.s3.GetObjectKeyFromURL(url)
		if objectKey == constant.Empty {
			continue
		}

		if err := s.s3.DeleteFile(ctx, objectKey); err != nil {
			log.Warn().Err(err).Str("key", objectKey).Msg("failed to delete room image")
		}
	}
}

// ReserveUnitTx blocks a unit for a booking; it reports false when the unit does not exist.
// Room caches are left to the caller, which clears them once its transaction commits.
func (s *serviceImpl) ReserveUnitTx(ctx context.Context, sqltx *sqlx.Tx, req dto.ReserveUnitRequest) (found bool, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ReserveUnitTx")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	found, err = s.UnitExistsTx(ctx, sqltx, req.RoomID, req.RoomNumber)
	if err != nil || !found {
		return false, err
	}

	if err = s.bookedDateRepo.InsertTx(ctx, sqltx, req.ToModel(user)); err != nil {
		log.Error().Err(err).Msg("failed to add room booked date")

		return false, fmt.Errorf("failed to add room booked date: %w", err)
	}

	return true, nil
}

func (s *serviceImpl) UnitExistsTx(ctx context.Context, sqltx *sqlx.Tx, roomID, number string) (bool, error) {
	unit, err := s.unitRepo.GetTx(ctx, sqltx, unitFilter(roomID, number))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room unit")

		return false, fmt.Errorf("failed to get room unit: %w", err)
	}

	return unit.ID != constant.Empty, nil
}

// ReleaseUnitsTx frees every unit held by the booking.
func (s *serviceImpl) ReleaseUnitsTx(ctx context.Context, sqltx *sqlx.Tx, bookingNumber string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ReleaseUnitsTx")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByFields(model.BookedDateTableName, gDto.Filter{Field: model.FieldBookedDateBookingNumber, Value: bookingNumber})

	if err = s.bookedDateRepo.DeleteTx(ctx, sqltx, filter); err != nil {
		log.Error().Err(err).Msg("failed to release room booked dates")

		return fmt.Errorf("failed to release room booked dates: %w", err)
	}

	return nil
}

// invalidate drops list caches and, when roomID is set, that room's cached detail.
func (s *serviceImpl) invalidate(ctx context.Context, roomID string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if roomID == constant.Empty {
			shared.InvalidateCaches(c, s.cache, constant.CacheKeyRoomGet)
		} else if err := s.cache.Delete(c, shared.BuildCacheKey(constant.CacheKeyRoomGet, roomID)); err != nil {
			log.Error().Err(err).Msg("failed to delete room cache")
		}

		shared.InvalidateCaches(c, s.cache, constant.CacheKeyRoomGetAll)
		shared.InvalidateCaches(c, s.cache, constant.CacheKeyRoomCount)
	}()
}

func unitFilter(roomID, number string) gDto.FilterGroup {
	return shared.FilterByFields(model.UnitTableName,
		gDto.Filter{Field: model.FieldUnitRoomID, Value: roomID},
		gDto.Filter{Field: model.FieldUnitNumber, Value: number},
	)
}
