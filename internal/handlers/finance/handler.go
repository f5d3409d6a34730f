package finance

import (
	"hotelier/infras/otel"
	"hotelier/internal/domains/finance/model/dto"
	"hotelier/internal/domains/finance/service"
	"hotelier/shared/constant"
	"hotelier/shared/validator"
	"hotelier/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Finance
	otel    otel.Otel
}

func New(service service.Finance, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/settings/finance/invoice", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetSettings)
		routerGroup.Put("/", handler.UpdateSettings)
		routerGroup.Post("/financial-year", handler.CreateFinancialYear)
		routerGroup.Put("/financial-year/activate", handler.ActivateFinancialYear)
	})
}

// GetSettings returns the invoice settings and the active financial year.
// @Summary Get invoice settings
// @Tags Settings
// @Produce json
// @Success 200 {object} response.Data[dto.SettingsResponse]
// @Failure 500 {object} response.Error
// @Router /v1/settings/finance/invoice [get]
// @Security BearerAuth
func (handler *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSettings")
	defer scope.End()

	settings, err := handler.service.GetSettings(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get finance settings")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, settings)
}

// UpdateSettings edits the invoice prefix, branding and tax details.
// @Summary Update invoice settings
// @Tags Settings
// @Accept json
// @Produce json
// @Param request body dto.UpdateSettingsRequest true "Update Settings Request"
// @Success 200 {object} response.Data[dto.SettingsResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/settings/finance/invoice [put]
// @Security BearerAuth
func (handler *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateSettings")
	defer scope.End()

	req := dto.UpdateSettingsRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	settings, err := handler.service.UpdateSettings(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update finance settings")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, settings)
}

// CreateFinancialYear adds a financial year window, optionally activating it.
// @Summary Create a financial year
// @Tags Settings
// @Accept json
// @Produce json
// @Param request body dto.CreateYearRequest true "Create Year Request"
// @Success 201 {object} response.Data[dto.FinancialYearResponse]
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/settings/finance/invoice/financial-year [post]
// @Security BearerAuth
func (handler *Handler) CreateFinancialYear(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateFinancialYear")
	defer scope.End()

	req := dto.CreateYearRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	year, err := handler.service.CreateFinancialYear(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create financial year")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, year)
}

// ActivateFinancialYear makes an existing window the active one.
// @Summary Activate a financial year
// @Tags Settings
// @Accept json
// @Produce json
// @Param request body dto.YearWindowRequest true "Year Window Request"
// @Success 200 {object} response.Data[dto.FinancialYearResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/settings/finance/invoice/financial-year/activate [put]
// @Security BearerAuth
func (handler *Handler) ActivateFinancialYear(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ActivateFinancialYear")
	defer scope.End()

	req := dto.YearWindowRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	year, err := handler.service.ActivateFinancialYear(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to activate financial year")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, year)
}
