package service_test

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/textproto"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"hotelier/config"
	"hotelier/infras/otel/mocks"
	s3Mocks "hotelier/infras/s3/mocks"
	roomMocks "hotelier/internal/domains/room/mocks"
	"hotelier/internal/domains/room/model"
	"hotelier/internal/domains/room/model/dto"
	"hotelier/internal/domains/room/service"
	cacheMocks "hotelier/shared/cache/mocks"
	"hotelier/shared/constant"
	"hotelier/shared/failure"
	gModel "hotelier/shared/model"
)

type fixture struct {
	repo           *roomMocks.MockRoom
	unitRepo       *roomMocks.MockUnit
	bookedDateRepo *roomMocks.MockBookedDate
	cache          *cacheMocks.MockRedisCache
	s3             *s3Mocks.MockS3
	svc            service.Room
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	f := fixture{
		repo:           roomMocks.NewMockRoom(ctrl),
		unitRepo:       roomMocks.NewMockUnit(ctrl),
		bookedDateRepo: roomMocks.NewMockBookedDate(ctrl),
		cache:          cacheMocks.NewMockRedisCache(ctrl),
		s3:             s3Mocks.NewMockS3(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	f.svc = service.New(f.repo, f.unitRepo, f.bookedDateRepo, cfg, f.cache, mocks.NewOtel(), f.s3)

	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return f
}

func userContext() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, "admin-1")
}

func TestRoomService_Create(t *testing.T) {
	req := dto.CreateRoomRequest{
		Name:         "Deluxe",
		PropertyType: model.PropertyTypeRoom,
		BasePrice:    2500,
		TaxPercent:   12,
		Capacity:     2,
		Amenities:    []string{"wifi"},
	}

	tests := []struct {
		name      string
		setupMock func(f fixture)
		wantCode  int
	}{
		{
			name: "successful creation",
			setupMock: func(f fixture) {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				f.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, room model.Room) error {
						assert.Equal(t, "Deluxe", room.Name)
						assert.Equal(t, "12", room.TaxPercent.String())
						assert.Equal(t, []string{"wifi"}, room.Amenities.V)
						assert.Equal(t, []string{}, room.Images.V)
						assert.True(t, room.Active)

						return nil
					})
			},
		},
		{
			name: "duplicate name",
			setupMock: func(f fixture) {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantCode: 409,
		},
		{
			name: "unique violation on insert",
			setupMock: func(f fixture) {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(&pq.Error{Code: constant.PqErrorCodeUniqueViolation})
			},
			wantCode: 409,
		},
		{
			name: "repository error",
			setupMock: func(f fixture) {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, errors.New("database error"))
			},
			wantCode: 500,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.Create(userContext(), req)

			time.Sleep(10 * time.Millisecond)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, res.ID)
			assert.Equal(t, 12.0, res.TaxPercent)
		})
	}
}

func TestRoomService_Get(t *testing.T) {
	f := newFixture(t)

	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
	f.repo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(model.Room{ID: "room-1", Name: "Deluxe", Images: gModel.NewJSON([]string{"https://cdn/rooms/a.jpg"})}, nil)
	f.unitRepo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]model.Unit{{ID: "u-1", RoomID: "room-1", Number: "101"}, {ID: "u-2", RoomID: "room-1", Number: "102"}}, nil)
	f.bookedDateRepo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]model.BookedDate{{RoomID: "room-1", RoomNumber: "102", BookingNumber: "B-010125-0001"}}, nil)

	res, err := f.svc.Get(context.Background(), "room-1")

	time.Sleep(10 * time.Millisecond)

	require.NoError(t, err)
	require.Len(t, res.Units, 2)
	assert.Empty(t, res.Units[0].BookedDates)
	require.Len(t, res.Units[1].BookedDates, 1)
	assert.Equal(t, "B-010125-0001", res.Units[1].BookedDates[0].BookingNumber)
	assert.Equal(t, []string{}, res.Amenities)
}

func TestRoomService_GetNotFound(t *testing.T) {
	f := newFixture(t)

	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Room{}, nil)

	_, err := f.svc.Get(context.Background(), "missing")

	require.Error(t, err)
	assert.Equal(t, 404, failure.GetCode(err))
}

func TestRoomService_Update(t *testing.T) {
	current := model.Room{
		ID:     "room-1",
		Images: gModel.NewJSON([]string{"https://cdn/rooms/a.jpg", "https://cdn/rooms/b.jpg"}),
	}

	tests := []struct {
		name      string
		req       dto.UpdateRoomRequest
		setupMock func(f fixture)
		wantCode  int
	}{
		{
			name:      "empty request",
			req:       dto.UpdateRoomRequest{},
			setupMock: func(f fixture) {},
			wantCode:  400,
		},
		{
			name: "not found",
			req:  dto.UpdateRoomRequest{Name: "Suite"},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Room{}, nil)
			},
			wantCode: 404,
		},
		{
			name: "replaced images are removed from storage",
			req:  dto.UpdateRoomRequest{Images: []string{"https://cdn/rooms/b.jpg"}},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(current, nil)
				f.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
						assert.Contains(t, fields, model.FieldImages)
						assert.Equal(t, "admin-1", fields[constant.FieldModifiedBy])

						return nil
					})
				f.s3.EXPECT().GetObjectKeyFromURL("https://cdn/rooms/a.jpg").Return("rooms/a.jpg")
				f.s3.EXPECT().DeleteFile(gomock.Any(), "rooms/a.jpg").Return(nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			err := f.svc.Update(userContext(), tt.req, "room-1")

			time.Sleep(10 * time.Millisecond)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestRoomService_AddUnit(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(f fixture)
		wantCode  int
	}{
		{
			name: "created",
			setupMock: func(f fixture) {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.unitRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				f.unitRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "room missing",
			setupMock: func(f fixture) {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantCode: 404,
		},
		{
			name: "duplicate number",
			setupMock: func(f fixture) {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.unitRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantCode: 409,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.AddUnit(userContext(), "room-1", dto.CreateUnitRequest{Number: " 101 "})

			time.Sleep(10 * time.Millisecond)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "101", res.Number)
			assert.Equal(t, model.UnitStatusAvailable, res.Status)
		})
	}
}

func TestRoomService_ReserveUnitTx(t *testing.T) {
	req := dto.ReserveUnitRequest{
		RoomID:        "room-1",
		RoomNumber:    "101",
		BookingNumber: "B-010125-0001",
		CheckIn:       time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC),
		CheckOut:      time.Date(2025, 1, 3, 11, 0, 0, 0, time.UTC),
		Adults:        2,
	}

	t.Run("unit exists", func(t *testing.T) {
		f := newFixture(t)

		f.unitRepo.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(model.Unit{ID: "u-1"}, nil)
		f.bookedDateRepo.EXPECT().
			InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ any, bookedDate model.BookedDate) error {
				assert.Equal(t, model.BookedDateStatusBooked, bookedDate.Status)
				assert.Equal(t, req.BookingNumber, bookedDate.BookingNumber)

				return nil
			})

		found, err := f.svc.ReserveUnitTx(userContext(), nil, req)

		time.Sleep(10 * time.Millisecond)

		require.NoError(t, err)
		assert.True(t, found)
	})

	t.Run("unit missing is skipped", func(t *testing.T) {
		f := newFixture(t)

		f.unitRepo.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(model.Unit{}, nil)

		found, err := f.svc.ReserveUnitTx(userContext(), nil, req)

		require.NoError(t, err)
		assert.False(t, found)
	})
}

func TestRoomService_ReleaseUnitsTx(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(f fixture)
		wantErr   bool
	}{
		{
			name: "removes booked dates without touching caches",
			setupMock: func(f fixture) {
				f.bookedDateRepo.EXPECT().DeleteTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "delete failure",
			setupMock: func(f fixture) {
				f.bookedDateRepo.EXPECT().DeleteTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("db down"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			redisCache := cacheMocks.NewMockRedisCache(ctrl)

			f := fixture{
				repo:           roomMocks.NewMockRoom(ctrl),
				unitRepo:       roomMocks.NewMockUnit(ctrl),
				bookedDateRepo: roomMocks.NewMockBookedDate(ctrl),
				cache:          redisCache,
			}
			f.svc = service.New(f.repo, f.unitRepo, f.bookedDateRepo, &config.Config{}, redisCache, mocks.NewOtel(), nil)

			tt.setupMock(f)

			err := f.svc.ReleaseUnitsTx(userContext(), nil, "B-010125-0001")

			time.Sleep(10 * time.Millisecond)

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestRoomService_UnitExistsTx(t *testing.T) {
	tests := []struct {
		name    string
		unit    model.Unit
		repoErr error
		want    bool
		wantErr bool
	}{
		{name: "unit found", unit: model.Unit{ID: "u-1"}, want: true},
		{name: "unit missing", unit: model.Unit{}, want: false},
		{name: "lookup failure", repoErr: errors.New("db down"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			f.unitRepo.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(tt.unit, tt.repoErr)

			exists, err := f.svc.UnitExistsTx(context.Background(), nil, "room-1", "101")

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, exists)
		})
	}
}

func TestRoomService_UploadImages(t *testing.T) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="files"; filename="Front View.JPG"`)
	header.Set(constant.RequestHeaderContentType, "image/jpeg")

	part, err := writer.CreatePart(header)
	require.NoError(t, err)

	_, err = part.Write([]byte("jpeg-bytes"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	form, err := multipart.NewReader(body, writer.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)

	f := newFixture(t)

	f.s3.EXPECT().
		UploadFile(gomock.Any(), "rooms", gomock.Any(), "image/jpeg", gomock.Any()).
		DoAndReturn(func(_ context.Context, directory, fileName, _ string, _ any) (string, error) {
			assert.Contains(t, fileName, "-front-view.jpg")

			return "https://cdn/" + directory + "/" + fileName, nil
		})

	res, err := f.svc.UploadImages(context.Background(), dto.UploadImagesRequest{Files: form.File["files"]})

	require.NoError(t, err)
	require.Len(t, res.URLs, 1)
	assert.Contains(t, res.URLs[0], "https://cdn/rooms/")
}
