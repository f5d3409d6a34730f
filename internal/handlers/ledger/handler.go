package ledger

import (
	"hotelier/infras/otel"
	"hotelier/internal/domains/ledger/model"
	"hotelier/internal/domains/ledger/model/dto"
	"hotelier/internal/domains/ledger/service"
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
	service service.Ledger
	otel    otel.Otel
}

func New(service service.Ledger, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/financials/ledger-book", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.PostEntry)
		routerGroup.Get("/", handler.GetLedgerBook)
	})
}

// PostEntry books an income or expense into its month.
// @Summary Post a ledger entry
// @Tags Financials
// @Accept json
// @Produce json
// @Param request body dto.PostEntryRequest true "Post Entry Request"
// @Success 201 {object} response.Data[dto.PostEntryResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/financials/ledger-book [post]
// @Security BearerAuth
func (handler *Handler) PostEntry(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".PostEntry")
	defer scope.End()

	req := dto.PostEntryRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.PostEntry(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to post ledger entry")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, res)
}

// GetLedgerBook returns one month with its entries when month and year are given, otherwise the monthly summaries.
// @Summary Get the ledger book
// @Tags Financials
// @Produce json
// @Param month query integer false "Month (1-12)"
// @Param year query integer false "Year"
// @Success 200 {object} response.Data[dto.LedgerResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/financials/ledger-book [get]
// @Security BearerAuth
func (handler *Handler) GetLedgerBook(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetLedgerBook")
	defer scope.End()

	month := shared.ConvertStringToInt(r.URL.Query().Get(model.FieldMonth), 0)
	year := shared.ConvertStringToInt(r.URL.Query().Get(model.FieldYear), 0)

	if month != 0 && year != 0 {
		book, err := handler.service.GetBook(ctx, month, year)
		if err != nil {
			scope.TraceError(err)
			log.Error().Err(err).Msg("failed to get ledger book")

			response.WithError(w, err)

			return
		}

		response.WithJSON(w, http.StatusOK, book)

		return
	}

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	ledgers, err := handler.service.GetAll(ctx, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get ledgers")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, ledgers)
}
