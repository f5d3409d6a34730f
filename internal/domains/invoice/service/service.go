package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Invoice=MockInvoiceService

import (
	"context"
	"errors"
	"fmt"
	"hotelier/infras/kafka"
	"hotelier/infras/otel"
	financeService "hotelier/internal/domains/finance/service"
	"hotelier/internal/domains/invoice/model/dto"
	"hotelier/internal/domains/invoice/repository"
	"hotelier/shared/constant"
	gDto "hotelier/shared/dto"
	"hotelier/shared/failure"

	"github.com/rs/zerolog/log"
)

type Invoice interface {
	Issue(ctx context.Context, req dto.IssueRequest) (dto.InvoiceResponse, error)
	Get(ctx context.Context, invoiceNumber string) (dto.InvoiceResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, bookingNumber string) (dto.GetInvoicesResponse, error)
}

type serviceImpl struct {
	repo    repository.Invoice
	finance financeService.Finance
	kafka   kafka.Client
	otel    otel.Otel
}

func New(repo repository.Invoice, finance financeService.Finance, kafka kafka.Client, otel otel.Otel) Invoice {
	return &serviceImpl{
		repo:    repo,
		finance: finance,
		kafka:   kafka,
		otel:    otel,
	}
}

// Issue archives one invoice per booking. A booking that already has an invoice gets the archived one back.
func (s *serviceImpl) Issue(ctx context.Context, req dto.IssueRequest) (res dto.InvoiceResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Issue")
	defer scope.End()
	defer scope.TraceIfError(err)

	bookingNumber := req.Booking.BookingNumber

	existing, err := s.repo.GetByBookingNumber(ctx, bookingNumber)
	if err != nil {
		log.Error().Err(err).Msg("failed to get invoice")

		return res, fmt.Errorf("failed to get invoice: %w", err)
	}

	if existing.ID != constant.Empty {
		res.FromModel(existing)

		return res, nil
	}

	hotel, err := s.finance.GetSettings(ctx)
	if err != nil {
		return res, fmt.Errorf("failed to get finance settings: %w", err)
	}

	number, err := s.finance.NextInvoiceNumber(ctx)
	if err != nil {
		return res, fmt.Errorf("failed to allocate invoice number: %w", err)
	}

	user, ok := ctx.Value(constant.ContextKeyUserID).(string)
	if !ok || user == constant.Empty {
		user = constant.SystemUser
	}

	invoice := req.ToModel(user, number.InvoiceNumber, hotel)

	err = s.repo.Insert(ctx, invoice)
	if errors.Is(err, repository.ErrDuplicate) {
		// a concurrent issue for the same booking won; its invoice is the one to keep
		log.Warn().Str("bookingNumber", bookingNumber).Str("invoiceNumber", number.InvoiceNumber).Msg("invoice number discarded after concurrent issue")

		invoice, err = s.repo.GetByBookingNumber(ctx, bookingNumber)
		if err == nil && invoice.ID == constant.Empty {
			err = failure.Conflict("invoice number already issued")
		}
	}

	if err != nil {
		log.Error().Err(err).Msg("failed to create invoice")

		return res, fmt.Errorf("failed to create invoice: %w", err)
	}

	res.FromModel(invoice)

	go s.publish(context.WithoutCancel(ctx), dto.IssuedEvent{
		InvoiceNumber: res.InvoiceNumber,
		BookingNumber: res.BookingNumber,
		Total:         res.Amounts.Total,
		IssuedAt:      res.IssuedAt,
	})

	return res, nil
}

func (s *serviceImpl) publish(ctx context.Context, event dto.IssuedEvent) {
	err := s.kafka.SendMessages(ctx, s.kafka.Topic(constant.TopicInvoiceIssued), kafka.Message{
		Key:   event.BookingNumber,
		Value: event,
	})
	if err != nil {
		log.Warn().Err(err).Str("invoiceNumber", event.InvoiceNumber).Msg("failed to publish invoice event")
	}
}

func (s *serviceImpl) Get(ctx context.Context, invoiceNumber string) (res dto.InvoiceResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	invoice, err := s.repo.GetByNumber(ctx, invoiceNumber)
	if err != nil {
		log.Error().Err(err).Msg("failed to get invoice")

		return res, fmt.Errorf("failed to get invoice: %w", err)
	}

	if invoice.ID == constant.Empty {
		return res, failure.NotFound("invoice not found") // nolint:wrapcheck
	}

	res.FromModel(invoice)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, bookingNumber string) (res dto.GetInvoicesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	total, err := s.repo.Count(ctx, bookingNumber)
	if err != nil {
		log.Error().Err(err).Msg("failed to count invoices")

		return res, fmt.Errorf("failed to count invoices: %w", err)
	}

	invoices, err := s.repo.GetAll(ctx, req, bookingNumber)
	if err != nil {
		log.Error().Err(err).Msg("failed to get invoices")

		return res, fmt.Errorf("failed to get invoices: %w", err)
	}

	res.FromModels(invoices, total, req.Limit)

	return res, nil
}
