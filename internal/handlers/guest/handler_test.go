package guest_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	otelMocks "hotelier/infras/otel/mocks"
	guestMocks "hotelier/internal/domains/guest/mocks"
	"hotelier/internal/domains/guest/model/dto"
	"hotelier/internal/handlers/guest"
	"hotelier/shared/failure"
)

func TestHandler_Router(t *testing.T) {
	tests := []struct {
		name      string
		path      string
		setupMock func(svc *guestMocks.MockGuestService)
		wantCode  int
	}{
		{
			name: "guest directory list",
			path: "/guests",
			setupMock: func(svc *guestMocks.MockGuestService) {
				svc.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(dto.GetGuestsResponse{}, nil)
			},
			wantCode: http.StatusOK,
		},
		{
			name: "crm list reads the same directory",
			path: "/crm",
			setupMock: func(svc *guestMocks.MockGuestService) {
				svc.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(dto.GetGuestsResponse{}, nil)
			},
			wantCode: http.StatusOK,
		},
		{
			name: "crm detail passes the guest id",
			path: "/crm/guest-1",
			setupMock: func(svc *guestMocks.MockGuestService) {
				svc.EXPECT().Get(gomock.Any(), "guest-1").Return(dto.GuestResponse{ID: "guest-1"}, nil)
			},
			wantCode: http.StatusOK,
		},
		{
			name: "crm detail of an unknown guest",
			path: "/crm/missing",
			setupMock: func(svc *guestMocks.MockGuestService) {
				svc.EXPECT().Get(gomock.Any(), "missing").Return(dto.GuestResponse{}, failure.NotFound("guest not found"))
			},
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc := guestMocks.NewMockGuestService(ctrl)
			tt.setupMock(svc)

			handler := guest.New(svc, otelMocks.NewOtel())
			router := chi.NewRouter()
			handler.Router(router)

			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.wantCode, recorder.Code)
		})
	}
}
