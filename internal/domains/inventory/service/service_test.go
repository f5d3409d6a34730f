package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"hotelier/infras/otel/mocks"
	inventoryMocks "hotelier/internal/domains/inventory/mocks"
	"hotelier/internal/domains/inventory/model"
	"hotelier/internal/domains/inventory/model/dto"
	"hotelier/internal/domains/inventory/service"
	"hotelier/shared/constant"
	gDto "hotelier/shared/dto"
	"hotelier/shared/failure"
)

type fixture struct {
	repo            *inventoryMocks.MockItem
	ruleRepo        *inventoryMocks.MockRule
	consumptionRepo *inventoryMocks.MockConsumption
	svc             service.Inventory
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := &fixture{
		repo:            inventoryMocks.NewMockItem(ctrl),
		ruleRepo:        inventoryMocks.NewMockRule(ctrl),
		consumptionRepo: inventoryMocks.NewMockConsumption(ctrl),
	}

	f.svc = service.New(f.repo, f.ruleRepo, f.consumptionRepo, mocks.NewOtel())

	return f
}

func TestInventoryService_CreateItem(t *testing.T) {
	tests := []struct {
		name       string
		req        dto.CreateItemRequest
		setupMock  func(f *fixture)
		wantCode   int
		wantStatus string
	}{
		{
			name: "derives low stock",
			req:  dto.CreateItemRequest{Name: "Water", Category: " Beverage ", Brand: "Bisleri", QuantityInStock: 3, AlertThreshold: 5},
			setupMock: func(f *fixture) {
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, item model.Item) error {
					assert.Equal(t, "beverage", item.Category)
					assert.Equal(t, "bisleri", item.Brand)
					assert.Equal(t, "pcs", item.Unit)

					return nil
				})
			},
			wantStatus: model.StatusLowStock,
		},
		{
			name: "duplicate lookup key",
			req:  dto.CreateItemRequest{Name: "Water", Category: "beverage", QuantityInStock: 10},
			setupMock: func(f *fixture) {
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(&pq.Error{Code: constant.PqErrorCodeUniqueViolation})
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "repository error",
			req:  dto.CreateItemRequest{Name: "Soap", Category: "toiletry"},
			setupMock: func(f *fixture) {
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("db down"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.CreateItem(context.Background(), tt.req)
			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, res.Status)
		})
	}
}

func TestInventoryService_UpdateItem(t *testing.T) {
	current := model.Item{ID: "item-1", Name: "Water", Category: "beverage", QuantityInStock: 20, AlertThreshold: 5, Status: model.StatusInStock}

	t.Run("restock recomputes status", func(t *testing.T) {
		f := newFixture(t)
		zero := 0

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(current, nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, 0, fields[model.FieldQuantityInStock])
				assert.Equal(t, model.StatusOutOfStock, fields[model.FieldStatus])

				return nil
			})

		res, err := f.svc.UpdateItem(context.Background(), "item-1", dto.UpdateItemRequest{QuantityInStock: &zero})
		require.NoError(t, err)
		assert.Equal(t, model.StatusOutOfStock, res.Status)
	})

	t.Run("empty request", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.UpdateItem(context.Background(), "item-1", dto.UpdateItemRequest{})
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("not found", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Item{}, nil)

		_, err := f.svc.UpdateItem(context.Background(), "item-1", dto.UpdateItemRequest{Name: "x"})
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestInventoryService_ConsumeForCheckin(t *testing.T) {
	deluxe := "room-deluxe"
	suite := "room-suite"

	water := model.Rule{ID: "rule-water", RoomID: deluxe, Category: "beverage", Brand: "bisleri", Quantity: 2}
	soap := model.Rule{ID: "rule-soap", RoomID: deluxe, Category: "toiletry", Quantity: 1}
	juice := model.Rule{ID: "rule-juice", RoomID: suite, Category: "beverage", Brand: "real", Quantity: 4}

	tests := []struct {
		name          string
		roomIDs       []string
		setupMock     func(f *fixture)
		wantCompleted int
		wantSkipped   int
		wantErr       bool
	}{
		{
			name:    "completes and skips per rule",
			roomIDs: []string{deluxe, suite},
			setupMock: func(f *fixture) {
				f.ruleRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Rule{water, soap, juice}, nil)
				gomock.InOrder(
					f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Item{ID: "item-water", QuantityInStock: 10}, nil),
					f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Item{}, nil),
					f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Item{ID: "item-juice", QuantityInStock: 1}, nil),
				)
				f.repo.EXPECT().DecrementStock(gomock.Any(), "item-water", 2, gomock.Any()).Return(8, true, nil)
				f.consumptionRepo.EXPECT().InsertBulk(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, consumptions []model.Consumption) error {
						require.Len(t, consumptions, 3)
						assert.Equal(t, model.ConsumptionCompleted, consumptions[0].InventoryUpdateStatus)
						assert.Equal(t, "no matching inventory item", consumptions[1].Reason)
						assert.Equal(t, "insufficient stock", consumptions[2].Reason)

						return nil
					})
			},
			wantCompleted: 1,
			wantSkipped:   2,
		},
		{
			name:    "applies rules once per room line",
			roomIDs: []string{suite, suite},
			setupMock: func(f *fixture) {
				f.ruleRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Rule{juice}, nil)
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Item{ID: "item-juice", QuantityInStock: 8}, nil).Times(2)
				f.repo.EXPECT().DecrementStock(gomock.Any(), "item-juice", 4, gomock.Any()).Return(4, true, nil)
				f.repo.EXPECT().DecrementStock(gomock.Any(), "item-juice", 4, gomock.Any()).Return(0, false, nil)
				f.consumptionRepo.EXPECT().InsertBulk(gomock.Any(), gomock.Any()).Return(nil)
			},
			wantCompleted: 1,
			wantSkipped:   1,
		},
		{
			name:    "consumption write failure does not fail the check-in",
			roomIDs: []string{suite},
			setupMock: func(f *fixture) {
				f.ruleRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Rule{juice}, nil)
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Item{}, errors.New("timeout"))
				f.consumptionRepo.EXPECT().InsertBulk(gomock.Any(), gomock.Any()).Return(errors.New("db down"))
			},
			wantSkipped: 1,
		},
		{
			name:      "no rooms",
			roomIDs:   nil,
			setupMock: func(_ *fixture) {},
		},
		{
			name:    "rules cannot be loaded",
			roomIDs: []string{deluxe},
			setupMock: func(f *fixture) {
				f.ruleRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("db down"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.ConsumeForCheckin(context.Background(), "B-140625-0001", tt.roomIDs)
			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantCompleted, res.Completed)
			assert.Equal(t, tt.wantSkipped, res.Skipped)
		})
	}
}

func TestInventoryService_DeleteRule(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		f := newFixture(t)
		f.ruleRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		assert.Equal(t, http.StatusNotFound, failure.GetCode(f.svc.DeleteRule(context.Background(), "rule-1")))
	})

	t.Run("deleted", func(t *testing.T) {
		f := newFixture(t)
		f.ruleRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.ruleRepo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)

		assert.NoError(t, f.svc.DeleteRule(context.Background(), "rule-1"))
	})
}
