package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"hotelier/config"
	"hotelier/infras/otel/mocks"
	policyMocks "hotelier/internal/domains/policy/mocks"
	"hotelier/internal/domains/policy/model"
	"hotelier/internal/domains/policy/model/dto"
	"hotelier/internal/domains/policy/service"
	cacheMocks "hotelier/shared/cache/mocks"
	"hotelier/shared/constant"
	gDto "hotelier/shared/dto"
	"hotelier/shared/failure"
)

func newService(t *testing.T) (*policyMocks.MockPolicy, *cacheMocks.MockRedisCache, service.Policy) {
	t.Helper()

	ctrl := gomock.NewController(t)

	mockRepo := policyMocks.NewMockPolicy(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	return mockRepo, mockCache, service.New(mockRepo, cfg, mockCache, mocks.NewOtel())
}

func TestPolicyService_Create(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.CreatePolicyRequest
		setupMock func(repo *policyMocks.MockPolicy, cache *cacheMocks.MockRedisCache)
		wantErr   bool
	}{
		{
			name: "defaults the category",
			req:  dto.CreatePolicyRequest{Title: "Check-in", Content: "Check-in from 12:00"},
			setupMock: func(repo *policyMocks.MockPolicy, cache *cacheMocks.MockRedisCache) {
				repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, p model.Policy) error {
					assert.Equal(t, model.DefaultCategory, p.Category)
					assert.Equal(t, "test-user-id", p.CreatedBy)

					return nil
				})
				cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
			},
		},
		{
			name: "repository error",
			req:  dto.CreatePolicyRequest{Title: "Pets", Content: "No pets"},
			setupMock: func(repo *policyMocks.MockPolicy, _ *cacheMocks.MockRedisCache) {
				repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, cache, svc := newService(t)
			tt.setupMock(repo, cache)

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
			res, err := svc.Create(ctx, tt.req)

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)
			assert.NotEmpty(t, res.ID)
			time.Sleep(10 * time.Millisecond)
		})
	}
}

func TestPolicyService_Get(t *testing.T) {
	policy := model.Policy{ID: "policy-id", Title: "Cancellation", Category: "booking", Content: "48 hours"}

	tests := []struct {
		name      string
		setupMock func(repo *policyMocks.MockPolicy, cache *cacheMocks.MockRedisCache)
		wantCode  int
		wantID    string
	}{
		{
			name: "cache hit",
			setupMock: func(_ *policyMocks.MockPolicy, cache *cacheMocks.MockRedisCache) {
				cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "cache miss reads the database",
			setupMock: func(repo *policyMocks.MockPolicy, cache *cacheMocks.MockRedisCache) {
				cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(policy, nil)
				cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
			},
			wantID: "policy-id",
		},
		{
			name: "not found",
			setupMock: func(repo *policyMocks.MockPolicy, cache *cacheMocks.MockRedisCache) {
				cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Policy{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "repository error",
			setupMock: func(repo *policyMocks.MockPolicy, cache *cacheMocks.MockRedisCache) {
				cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Policy{}, errors.New("database error"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, cache, svc := newService(t)
			tt.setupMock(repo, cache)

			res, err := svc.Get(context.Background(), "policy-id")
			time.Sleep(10 * time.Millisecond)

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.wantID, res.ID)
		})
	}
}

func TestPolicyService_GetAll(t *testing.T) {
	repo, cache, svc := newService(t)

	cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
	repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(2, nil)
	repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Policy{{ID: "a"}, {ID: "b"}}, nil)
	cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	res, err := svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 1}, gDto.FilterGroup{})
	time.Sleep(10 * time.Millisecond)

	assert.NoError(t, err)
	assert.Equal(t, 2, res.TotalData)
	assert.Equal(t, 2, res.TotalPage)
	assert.Len(t, res.Policies, 2)
}

func TestPolicyService_Update(t *testing.T) {
	published := true

	tests := []struct {
		name      string
		req       dto.UpdatePolicyRequest
		setupMock func(repo *policyMocks.MockPolicy, cache *cacheMocks.MockRedisCache)
		wantCode  int
	}{
		{
			name:      "empty request",
			req:       dto.UpdatePolicyRequest{},
			setupMock: func(_ *policyMocks.MockPolicy, _ *cacheMocks.MockRedisCache) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "not found",
			req:  dto.UpdatePolicyRequest{Title: "New"},
			setupMock: func(repo *policyMocks.MockPolicy, _ *cacheMocks.MockRedisCache) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "publishes and invalidates",
			req:  dto.UpdatePolicyRequest{IsPublished: &published, Category: " House "},
			setupMock: func(repo *policyMocks.MockPolicy, cache *cacheMocks.MockRedisCache) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, true, fields[model.FieldIsPublished])
						assert.Equal(t, "house", fields[model.FieldCategory])

						return nil
					})
				cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
				cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, cache, svc := newService(t)
			tt.setupMock(repo, cache)

			err := svc.Update(context.Background(), tt.req, "policy-id")
			time.Sleep(10 * time.Millisecond)

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestPolicyService_Delete(t *testing.T) {
	repo, cache, svc := newService(t)

	repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
	repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
	cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
	cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil)

	assert.NoError(t, svc.Delete(context.Background(), "policy-id"))
	time.Sleep(10 * time.Millisecond)
}
