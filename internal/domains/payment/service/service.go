package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Payment=MockPaymentService

import (
	"context"
	"fmt"
	"hotelier/config"
	"hotelier/infras/otel"
	"hotelier/infras/razorpay"
	"hotelier/internal/domains/payment/model"
	"hotelier/internal/domains/payment/model/dto"
	"hotelier/internal/domains/payment/repository"
	"hotelier/shared/constant"
	"hotelier/shared/failure"

	"github.com/rs/zerolog/log"
)

type Payment interface {
	CreateOrder(ctx context.Context, req dto.CreateOrderRequest) (dto.OrderResponse, error)
	CreatePaymentLink(ctx context.Context, req dto.CreatePaymentLinkRequest) (dto.PaymentLinkResponse, error)
	VerifyPayment(ctx context.Context, req dto.VerifyPaymentRequest) (dto.VerifyPaymentResponse, error)
	CheckPaymentStatus(ctx context.Context, paymentLinkID string) (dto.PaymentStatusResponse, error)
	IsPaymentLinkPaid(ctx context.Context, paymentLinkID string) (bool, error)
}

type serviceImpl struct {
	repo    repository.APIKey
	gateway razorpay.Gateway
	cfg     *config.Config
	otel    otel.Otel
}

func New(repo repository.APIKey, gateway razorpay.Gateway, cfg *config.Config, otel otel.Otel) Payment {
	return &serviceImpl{
		repo:    repo,
		gateway: gateway,
		cfg:     cfg,
		otel:    otel,
	}
}

// credentials prefers the active key stored in Mongo and falls back to the environment.
func (s *serviceImpl) credentials(ctx context.Context) (razorpay.Credentials, error) {
	key, err := s.repo.GetActive(ctx, model.ProviderRazorpay)
	if err != nil {
		log.Warn().Err(err).Msg("failed to load razorpay key, falling back to environment")
	}

	creds := razorpay.Credentials{KeyID: key.KeyID, KeySecret: key.KeySecret}
	if !creds.Valid() {
		creds = razorpay.Credentials{
			KeyID:     s.cfg.External.Razorpay.KeyID,
			KeySecret: s.cfg.External.Razorpay.KeySecret,
		}
	}

	if !creds.Valid() {
		return creds, failure.InternalError(razorpay.ErrMissingCredentials) // nolint:wrapcheck
	}

	return creds, nil
}

func (s *serviceImpl) CreateOrder(ctx context.Context, req dto.CreateOrderRequest) (res dto.OrderResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateOrder")
	defer scope.End()
	defer scope.TraceIfError(err)

	creds, err := s.credentials(ctx)
	if err != nil {
		return res, err
	}

	order, err := s.gateway.CreateOrder(ctx, creds, req.ToGateway())
	if err != nil {
		log.Error().Err(err).Msg("failed to create razorpay order")

		return res, fmt.Errorf("failed to create razorpay order: %w", err)
	}

	res.FromGateway(order, creds.KeyID)

	return res, nil
}

func (s *serviceImpl) CreatePaymentLink(ctx context.Context, req dto.CreatePaymentLinkRequest) (res dto.PaymentLinkResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreatePaymentLink")
	defer scope.End()
	defer scope.TraceIfError(err)

	creds, err := s.credentials(ctx)
	if err != nil {
		return res, err
	}

	link, err := s.gateway.CreatePaymentLink(ctx, creds, req.ToGateway())
	if err != nil {
		log.Error().Err(err).Msg("failed to create razorpay payment link")

		return res, fmt.Errorf("failed to create razorpay payment link: %w", err)
	}

	res.FromGateway(link)

	return res, nil
}

// VerifyPayment checks the checkout signature, an HMAC-SHA256 of "orderId|paymentId" under the key secret.
func (s *serviceImpl) VerifyPayment(ctx context.Context, req dto.VerifyPaymentRequest) (res dto.VerifyPaymentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".VerifyPayment")
	defer scope.End()
	defer scope.TraceIfError(err)

	creds, err := s.credentials(ctx)
	if err != nil {
		return res, err
	}

	if !s.gateway.VerifySignature(creds, req.OrderID, req.PaymentID, req.Signature) {
		return res, failure.BadRequestFromString("invalid payment signature") // nolint:wrapcheck
	}

	return dto.VerifyPaymentResponse{Verified: true, OrderID: req.OrderID, PaymentID: req.PaymentID}, nil
}

func (s *serviceImpl) CheckPaymentStatus(ctx context.Context, paymentLinkID string) (res dto.PaymentStatusResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CheckPaymentStatus")
	defer scope.End()
	defer scope.TraceIfError(err)

	if paymentLinkID == constant.Empty {
		return res, failure.BadRequestFromString("payment link id is required") // nolint:wrapcheck
	}

	creds, err := s.credentials(ctx)
	if err != nil {
		return res, err
	}

	link, err := s.gateway.FetchPaymentLink(ctx, creds, paymentLinkID)
	if err != nil {
		log.Error().Err(err).Str("paymentLinkID", paymentLinkID).Msg("failed to fetch razorpay payment link")

		return res, fmt.Errorf("failed to fetch razorpay payment link: %w", err)
	}

	res.FromGateway(link)

	return res, nil
}

func (s *serviceImpl) IsPaymentLinkPaid(ctx context.Context, paymentLinkID string) (bool, error) {
	status, err := s.CheckPaymentStatus(ctx, paymentLinkID)
	if err != nil {
		return false, err
	}

	return status.Paid, nil
}
