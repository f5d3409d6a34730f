package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"hotelier/config"
	"hotelier/infras/otel/mocks"
	"hotelier/infras/razorpay"
	razorpayMocks "hotelier/infras/razorpay/mocks"
	paymentMocks "hotelier/internal/domains/payment/mocks"
	"hotelier/internal/domains/payment/model"
	"hotelier/internal/domains/payment/model/dto"
	"hotelier/internal/domains/payment/service"
	"hotelier/shared/failure"
)

var (
	storedCreds = razorpay.Credentials{KeyID: "rzp_live_stored", KeySecret: "stored-secret"}
	envCreds    = razorpay.Credentials{KeyID: "rzp_test_env", KeySecret: "env-secret"}
)

type fixture struct {
	repo    *paymentMocks.MockAPIKey
	gateway *razorpayMocks.MockGateway
	cfg     *config.Config
	svc     service.Payment
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := &fixture{
		repo:    paymentMocks.NewMockAPIKey(ctrl),
		gateway: razorpayMocks.NewMockGateway(ctrl),
		cfg:     &config.Config{},
	}

	f.cfg.External.Razorpay.KeyID = envCreds.KeyID
	f.cfg.External.Razorpay.KeySecret = envCreds.KeySecret

	f.svc = service.New(f.repo, f.gateway, f.cfg, mocks.NewOtel())

	return f
}

func TestPaymentService_CreateOrder(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(f *fixture)
		wantCode  int
		wantKeyID string
	}{
		{
			name: "uses the stored key",
			setupMock: func(f *fixture) {
				f.repo.EXPECT().GetActive(gomock.Any(), model.ProviderRazorpay).
					Return(model.APIKey{KeyID: storedCreds.KeyID, KeySecret: storedCreds.KeySecret, IsActive: true}, nil)
				f.gateway.EXPECT().CreateOrder(gomock.Any(), storedCreds, razorpay.OrderRequest{Amount: 1500, Receipt: "B-140625-0001"}).
					Return(razorpay.Order{ID: "order_1", Amount: 1500, Currency: "INR", Status: "created"}, nil)
			},
			wantKeyID: storedCreds.KeyID,
		},
		{
			name: "falls back to the environment when the lookup fails",
			setupMock: func(f *fixture) {
				f.repo.EXPECT().GetActive(gomock.Any(), gomock.Any()).Return(model.APIKey{}, errors.New("timeout"))
				f.gateway.EXPECT().CreateOrder(gomock.Any(), envCreds, gomock.Any()).Return(razorpay.Order{ID: "order_2"}, nil)
			},
			wantKeyID: envCreds.KeyID,
		},
		{
			name: "no credentials anywhere",
			setupMock: func(f *fixture) {
				f.cfg.External.Razorpay.KeyID = ""
				f.repo.EXPECT().GetActive(gomock.Any(), gomock.Any()).Return(model.APIKey{}, nil)
			},
			wantCode: http.StatusInternalServerError,
		},
		{
			name: "gateway error",
			setupMock: func(f *fixture) {
				f.repo.EXPECT().GetActive(gomock.Any(), gomock.Any()).Return(model.APIKey{}, nil)
				f.gateway.EXPECT().CreateOrder(gomock.Any(), envCreds, gomock.Any()).Return(razorpay.Order{}, errors.New("bad request"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.CreateOrder(context.Background(), dto.CreateOrderRequest{Amount: 1499.5, Receipt: "B-140625-0001"})
			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantKeyID, res.KeyID)
		})
	}
}

func TestPaymentService_VerifyPayment(t *testing.T) {
	req := dto.VerifyPaymentRequest{OrderID: "order_1", PaymentID: "pay_1", Signature: "sig"}

	t.Run("valid", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().GetActive(gomock.Any(), gomock.Any()).Return(model.APIKey{}, nil)
		f.gateway.EXPECT().VerifySignature(envCreds, "order_1", "pay_1", "sig").Return(true)

		res, err := f.svc.VerifyPayment(context.Background(), req)
		require.NoError(t, err)
		assert.True(t, res.Verified)
	})

	t.Run("invalid", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().GetActive(gomock.Any(), gomock.Any()).Return(model.APIKey{}, nil)
		f.gateway.EXPECT().VerifySignature(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(false)

		_, err := f.svc.VerifyPayment(context.Background(), req)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})
}

func TestPaymentService_IsPaymentLinkPaid(t *testing.T) {
	tests := []struct {
		name     string
		status   string
		wantPaid bool
	}{
		{name: "paid", status: razorpay.PaymentLinkStatusPaid, wantPaid: true},
		{name: "created", status: "created", wantPaid: false},
		{name: "partially paid", status: "partially_paid", wantPaid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.repo.EXPECT().GetActive(gomock.Any(), gomock.Any()).Return(model.APIKey{}, nil)
			f.gateway.EXPECT().FetchPaymentLink(gomock.Any(), envCreds, "plink_1").Return(razorpay.PaymentLink{ID: "plink_1", Status: tt.status}, nil)

			paid, err := f.svc.IsPaymentLinkPaid(context.Background(), "plink_1")
			require.NoError(t, err)
			assert.Equal(t, tt.wantPaid, paid)
		})
	}

	t.Run("missing id", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.IsPaymentLinkPaid(context.Background(), "")
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})
}
