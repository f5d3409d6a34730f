package invoice

import (
	"hotelier/infras/otel"
	"hotelier/internal/domains/invoice/model"
	"hotelier/internal/domains/invoice/service"
	"hotelier/shared/constant"
	gDto "hotelier/shared/dto"
	"hotelier/shared/failure"
	"hotelier/transport/http/response"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Invoice
	otel    otel.Otel
}

func New(service service.Invoice, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/financials/invoices", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetInvoices)
		routerGroup.Get("/{invoiceNumber}", handler.GetInvoice)
	})
}

// GetInvoices lists archived invoices.
// @Summary Get all invoices
// @Tags Financials
// @Produce json
// @Param booking_number query string false "Filter by booking number"
// @Success 200 {object} response.Data[dto.GetInvoicesResponse]
// @Failure 500 {object} response.Error
// @Router /v1/financials/invoices [get]
// @Security BearerAuth
func (handler *Handler) GetInvoices(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetInvoices")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	invoices, err := handler.service.GetAll(ctx, queryParams, r.URL.Query().Get(model.FieldBookingNumber))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get invoices")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, invoices)
}

// GetInvoice retrieves an invoice by number. Slashes in the number arrive URL-escaped.
// @Summary Get an invoice
// @Tags Financials
// @Produce json
// @Param invoiceNumber path string true "Invoice number, URL-escaped"
// @Success 200 {object} response.Data[dto.InvoiceResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/financials/invoices/{invoiceNumber} [get]
// @Security BearerAuth
func (handler *Handler) GetInvoice(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetInvoice")
	defer scope.End()

	invoiceNumber, err := url.PathUnescape(chi.URLParam(r, constant.RequestParamInvoiceNumber))
	if err != nil {
		err = failure.BadRequestFromString("invalid invoice number")
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	invoice, err := handler.service.Get(ctx, invoiceNumber)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get invoice")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, invoice)
}
