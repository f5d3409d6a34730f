package transaction

import (
	"hotelier/infras/otel"
	"hotelier/internal/domains/transaction/model"
	"hotelier/internal/domains/transaction/model/dto"
	"hotelier/internal/domains/transaction/service"
	"hotelier/shared"
	"hotelier/shared/constant"
	gDto "hotelier/shared/dto"
	"hotelier/shared/validator"
	"hotelier/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Transaction
	otel    otel.Otel
}

func New(service service.Transaction, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/financials/transactions", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.RecordPayment)
		routerGroup.Get("/", handler.GetTransactions)
		routerGroup.Get("/{bookingNumber}", handler.GetTransaction)
	})
}

// RecordPayment adds a payment to a booking's transaction.
// @Summary Record a payment
// @Tags Financials
// @Accept json
// @Produce json
// @Param request body dto.RecordPaymentRequest true "Record Payment Request"
// @Success 201 {object} response.Data[dto.TransactionResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/financials/transactions [post]
// @Security BearerAuth
func (handler *Handler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RecordPayment")
	defer scope.End()

	req := dto.RecordPaymentRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	txn, err := handler.service.RecordPayment(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to record payment")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, txn)
}

// GetTransactions lists transactions.
// @Summary Get all transactions
// @Tags Financials
// @Produce json
// @Param is_fully_paid query boolean false "Filter by settlement"
// @Param booking_number query string false "Filter by booking number"
// @Success 200 {object} response.Data[dto.GetTransactionsResponse]
// @Failure 500 {object} response.Error
// @Router /v1/financials/transactions [get]
// @Security BearerAuth
func (handler *Handler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTransactions")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if bookingNumber := r.URL.Query().Get(model.FieldBookingNumber); bookingNumber != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldBookingNumber,
			Operator: gDto.FilterOperatorLike,
			Value:    bookingNumber,
			Table:    model.TableName,
		})
	}

	if paid := shared.ConvertStringToBool(r.URL.Query().Get(model.FieldIsFullyPaid)); paid != nil {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldIsFullyPaid,
			Operator: gDto.FilterOperatorEq,
			Value:    *paid,
			Table:    model.TableName,
		})
	}

	txns, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get transactions")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, txns)
}

// GetTransaction retrieves the transaction of a booking.
// @Summary Get a booking's transaction
// @Tags Financials
// @Produce json
// @Param bookingNumber path string true "Booking number"
// @Success 200 {object} response.Data[dto.TransactionResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/financials/transactions/{bookingNumber} [get]
// @Security BearerAuth
func (handler *Handler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTransaction")
	defer scope.End()

	txn, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamBookingNumber))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get transaction")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, txn)
}
