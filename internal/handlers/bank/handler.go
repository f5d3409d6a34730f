package bank

import (
	"hotelier/infras/otel"
	"hotelier/internal/domains/bank/model"
	"hotelier/internal/domains/bank/model/dto"
	"hotelier/internal/domains/bank/service"
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
	service service.Bank
	otel    otel.Otel
}

func New(service service.Bank, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/financials/bank", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateAccount)
		routerGroup.Get("/", handler.GetAccounts)
		routerGroup.Post("/entry", handler.RecordEntry)
		routerGroup.Get("/{id}", handler.GetAccount)
		routerGroup.Put("/{id}", handler.UpdateAccount)
		routerGroup.Delete("/{id}", handler.DeleteAccount)
		routerGroup.Get("/{id}/entries", handler.GetEntries)
	})
}

// CreateAccount registers a bank or cash account.
// @Summary Create a bank or cash account
// @Tags Financials
// @Accept json
// @Produce json
// @Param request body dto.CreateAccountRequest true "Create Account Request"
// @Success 201 {object} response.Data[dto.AccountResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/financials/bank [post]
// @Security BearerAuth
func (handler *Handler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateAccount")
	defer scope.End()

	req := dto.CreateAccountRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	account, err := handler.service.CreateAccount(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create account")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, account)
}

// GetAccounts lists accounts.
// @Summary Get all accounts
// @Tags Financials
// @Produce json
// @Param account_type query string false "bank or cash"
// @Param is_active query boolean false "Filter by active flag"
// @Success 200 {object} response.Data[dto.GetAccountsResponse]
// @Failure 500 {object} response.Error
// @Router /v1/financials/bank [get]
// @Security BearerAuth
func (handler *Handler) GetAccounts(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAccounts")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if accountType := r.URL.Query().Get(model.FieldAccountType); accountType != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldAccountType,
			Operator: gDto.FilterOperatorEq,
			Value:    accountType,
			Table:    model.TableName,
		})
	}

	if active := shared.ConvertStringToBool(r.URL.Query().Get(model.FieldIsActive)); active != nil {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldIsActive,
			Operator: gDto.FilterOperatorEq,
			Value:    *active,
			Table:    model.TableName,
		})
	}

	accounts, err := handler.service.GetAccounts(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get accounts")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, accounts)
}

// GetAccount retrieves an account.
// @Summary Get an account
// @Tags Financials
// @Produce json
// @Param id path string true "Account ID"
// @Success 200 {object} response.Data[dto.AccountResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/financials/bank/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetAccount(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAccount")
	defer scope.End()

	account, err := handler.service.GetAccount(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get account")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, account)
}

// UpdateAccount edits account details. Balances only move through entries.
// @Summary Update an account
// @Tags Financials
// @Accept json
// @Produce json
// @Param id path string true "Account ID"
// @Param request body dto.UpdateAccountRequest true "Update Account Request"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/financials/bank/{id} [put]
// @Security BearerAuth
func (handler *Handler) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateAccount")
	defer scope.End()

	req := dto.UpdateAccountRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.UpdateAccount(ctx, chi.URLParam(r, constant.RequestParamID), req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update account")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Account updated successfully")
}

// DeleteAccount removes an account.
// @Summary Delete an account
// @Tags Financials
// @Produce json
// @Param id path string true "Account ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/financials/bank/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteAccount")
	defer scope.End()

	if err := handler.service.DeleteAccount(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete account")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Account deleted successfully")
}

// RecordEntry posts a deposit, withdrawal or transfer.
// @Summary Record a bank entry
// @Tags Financials
// @Accept json
// @Produce json
// @Param request body dto.RecordEntryRequest true "Record Entry Request"
// @Success 201 {object} response.Data[dto.RecordEntryResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/financials/bank/entry [post]
// @Security BearerAuth
func (handler *Handler) RecordEntry(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RecordEntry")
	defer scope.End()

	req := dto.RecordEntryRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.RecordEntry(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to record entry")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, res)
}

// GetEntries lists the entries of one account.
// @Summary Get account entries
// @Tags Financials
// @Produce json
// @Param id path string true "Account ID"
// @Success 200 {object} response.Data[dto.GetEntriesResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/financials/bank/{id}/entries [get]
// @Security BearerAuth
func (handler *Handler) GetEntries(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetEntries")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	entries, err := handler.service.GetEntries(ctx, chi.URLParam(r, constant.RequestParamID), queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get entries")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, entries)
}
