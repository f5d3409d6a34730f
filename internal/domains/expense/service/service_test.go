package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"hotelier/config"
	"hotelier/infras/otel/mocks"
	expenseMocks "hotelier/internal/domains/expense/mocks"
	"hotelier/internal/domains/expense/model"
	"hotelier/internal/domains/expense/model/dto"
	"hotelier/internal/domains/expense/service"
	cacheMocks "hotelier/shared/cache/mocks"
	"hotelier/shared/constant"
	gDto "hotelier/shared/dto"
	"hotelier/shared/failure"
)

func newService(t *testing.T) (*expenseMocks.MockCategory, *cacheMocks.MockRedisCache, service.Category) {
	t.Helper()

	ctrl := gomock.NewController(t)

	mockRepo := expenseMocks.NewMockCategory(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	return mockRepo, mockCache, service.New(mockRepo, cfg, mockCache, mocks.NewOtel())
}

func TestExpenseCategoryService_Create(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.CreateCategoryRequest
		setupMock func(repo *expenseMocks.MockCategory, cache *cacheMocks.MockRedisCache)
		wantCode  int
	}{
		{
			name: "stores a normalised name",
			req:  dto.CreateCategoryRequest{Name: "  Utilities "},
			setupMock: func(repo *expenseMocks.MockCategory, cache *cacheMocks.MockRedisCache) {
				repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, c model.Category) error {
					assert.Equal(t, "utilities", c.Name)
					assert.True(t, c.IsActive)

					return nil
				})
				cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
			},
		},
		{
			name: "duplicate",
			req:  dto.CreateCategoryRequest{Name: "Utilities"},
			setupMock: func(repo *expenseMocks.MockCategory, _ *cacheMocks.MockRedisCache) {
				repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(&pq.Error{Code: constant.PqErrorCodeUniqueViolation})
			},
			wantCode: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, cache, svc := newService(t)
			tt.setupMock(repo, cache)

			res, err := svc.Create(context.Background(), tt.req)
			time.Sleep(10 * time.Millisecond)

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.NotEmpty(t, res.ID)
		})
	}
}

func TestExpenseCategoryService_IsActive(t *testing.T) {
	tests := []struct {
		name    string
		exist   bool
		repoErr error
		want    bool
		wantErr bool
	}{
		{name: "active category", exist: true, want: true},
		{name: "unknown or disabled", exist: false},
		{name: "repository error", repoErr: errors.New("database error"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, _, svc := newService(t)

			repo.EXPECT().Exist(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (bool, error) {
				where, args := filter.GetWhereClause()
				assert.Equal(t, "(expense_categories.name = :name AND expense_categories.is_active = :is_active)", where)
				assert.Equal(t, "laundry", args[model.FieldName])
				assert.Equal(t, true, args[model.FieldIsActive])

				return tt.exist, tt.repoErr
			})

			ok, err := svc.IsActive(context.Background(), " Laundry ")
			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}
}

func TestExpenseCategoryService_Get(t *testing.T) {
	repo, cache, svc := newService(t)

	cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
	repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Category{}, nil)

	_, err := svc.Get(context.Background(), "category-id")

	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}

func TestExpenseCategoryService_GetAll(t *testing.T) {
	repo, cache, svc := newService(t)

	cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
	repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(1, nil)
	repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Category{{ID: "a", Name: "utilities", IsActive: true}}, nil)
	cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	res, err := svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 10}, gDto.FilterGroup{})
	time.Sleep(10 * time.Millisecond)

	assert.NoError(t, err)
	assert.Equal(t, 1, res.TotalPage)
	assert.Equal(t, "utilities", res.Categories[0].Name)
}

func TestExpenseCategoryService_UpdateAndDelete(t *testing.T) {
	disabled := false

	t.Run("disable", func(t *testing.T) {
		repo, cache, svc := newService(t)

		repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, false, fields[model.FieldIsActive])

				return nil
			})
		cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
		cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil)

		assert.NoError(t, svc.Update(context.Background(), dto.UpdateCategoryRequest{IsActive: &disabled}, "category-id"))
		time.Sleep(10 * time.Millisecond)
	})

	t.Run("empty update", func(t *testing.T) {
		_, _, svc := newService(t)

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(svc.Update(context.Background(), dto.UpdateCategoryRequest{}, "category-id")))
	})

	t.Run("delete missing", func(t *testing.T) {
		repo, _, svc := newService(t)

		repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		assert.Equal(t, http.StatusNotFound, failure.GetCode(svc.Delete(context.Background(), "category-id")))
	})
}
