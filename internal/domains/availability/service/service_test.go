package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"hotelier/config"
	"hotelier/infras/otel/mocks"
	availabilityMocks "hotelier/internal/domains/availability/mocks"
	"hotelier/internal/domains/availability/model"
	"hotelier/internal/domains/availability/model/dto"
	"hotelier/internal/domains/availability/service"
	"hotelier/shared/constant"
	gDto "hotelier/shared/dto"
	gModel "hotelier/shared/model"
)

func TestAvailabilityService_UpsertTx(t *testing.T) {
	checkIn := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	checkOut := time.Date(2025, 1, 3, 11, 0, 0, 0, time.UTC)
	bookedAt := time.Date(2024, 12, 20, 9, 0, 0, 0, time.UTC)

	req := dto.UpsertAvailabilityRequest{
		RoomID:        "room-1",
		RoomNumber:    "101",
		BookingNumber: "B-010125-0001",
		Status:        "checkin",
		CheckIn:       checkIn,
		CheckOut:      checkOut,
		GuestName:     "Asha Rao",
	}

	tests := []struct {
		name      string
		setupMock func(repo *availabilityMocks.MockAvailability, historyRepo *availabilityMocks.MockHistory)
		wantErr   bool
	}{
		{
			name: "first status appends a history entry",
			setupMock: func(repo *availabilityMocks.MockAvailability, historyRepo *availabilityMocks.MockHistory) {
				repo.EXPECT().UpsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return("avail-1", nil)
				historyRepo.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(model.History{}, nil)
				historyRepo.EXPECT().
					InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, history model.History) error {
						assert.Equal(t, "avail-1", history.AvailabilityID)
						assert.Equal(t, "checkin", history.Status)
						assert.Contains(t, history.StatusTimestamps.V, "checkin")

						return nil
					})
			},
		},
		{
			name: "existing entry keeps earlier timestamps and moves dates",
			setupMock: func(repo *availabilityMocks.MockAvailability, historyRepo *availabilityMocks.MockHistory) {
				repo.EXPECT().UpsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return("avail-1", nil)
				historyRepo.EXPECT().
					GetTx(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(model.History{
						ID:               "hist-1",
						AvailabilityID:   "avail-1",
						Status:           "booked",
						StatusTimestamps: gModel.NewJSON(map[string]time.Time{"booked": bookedAt}),
						CheckIn:          checkIn,
						CheckOut:         checkOut.Add(-24 * time.Hour),
					}, nil)
				historyRepo.EXPECT().
					UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, "checkin", fields[model.FieldHistoryStatus])

						timestamps, ok := fields[model.FieldHistoryStatusTimestamps].(gModel.JSON[map[string]time.Time])
						require.True(t, ok)
						assert.Equal(t, bookedAt, timestamps.V["booked"])
						assert.Contains(t, timestamps.V, "checkin")

						assert.NotContains(t, fields, model.FieldHistoryCheckIn)
						assert.Equal(t, checkOut, fields[model.FieldHistoryCheckOut])

						return nil
					})
			},
		},
		{
			name: "record upsert error",
			setupMock: func(repo *availabilityMocks.MockAvailability, _ *availabilityMocks.MockHistory) {
				repo.EXPECT().UpsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return("", errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := availabilityMocks.NewMockAvailability(ctrl)
			historyRepo := availabilityMocks.NewMockHistory(ctrl)
			svc := service.New(repo, historyRepo, &config.Config{}, mocks.NewOtel())

			tt.setupMock(repo, historyRepo)

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "admin-1")
			err := svc.UpsertTx(ctx, nil, req)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAvailabilityService_GetAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := availabilityMocks.NewMockAvailability(ctrl)
	historyRepo := availabilityMocks.NewMockHistory(ctrl)
	svc := service.New(repo, historyRepo, &config.Config{}, mocks.NewOtel())

	repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(2, nil)
	repo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]model.Availability{{ID: "a-1", RoomNumber: "101"}, {ID: "a-2", RoomNumber: "102"}}, nil)
	historyRepo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]model.History{{AvailabilityID: "a-2", BookingNumber: "B-010125-0001", Status: "booked"}}, nil)

	res, err := svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 10}, gDto.FilterGroup{})

	require.NoError(t, err)
	require.Len(t, res.Availabilities, 2)
	assert.Empty(t, res.Availabilities[0].History)
	require.Len(t, res.Availabilities[1].History, 1)
	assert.Equal(t, "B-010125-0001", res.Availabilities[1].History[0].BookingNumber)
}

func TestAvailabilityService_GetAllEmpty(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := availabilityMocks.NewMockAvailability(ctrl)
	historyRepo := availabilityMocks.NewMockHistory(ctrl)
	svc := service.New(repo, historyRepo, &config.Config{}, mocks.NewOtel())

	repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(0, nil)
	repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)

	res, err := svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 10}, gDto.FilterGroup{})

	require.NoError(t, err)
	assert.Empty(t, res.Availabilities)
	assert.Equal(t, 1, res.TotalPage)
}
