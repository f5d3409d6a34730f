package expense

import (
	"hotelier/infras/otel"
	"hotelier/internal/domains/expense/model"
	"hotelier/internal/domains/expense/model/dto"
	"hotelier/internal/domains/expense/service"
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
	service service.Category
	otel    otel.Otel
}

func New(service service.Category, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/settings/finance/expenses", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateExpenseCategory)
		routerGroup.Get("/", handler.GetExpenseCategories)
		routerGroup.Get("/{id}", handler.GetExpenseCategory)
		routerGroup.Put("/{id}", handler.UpdateExpenseCategory)
		routerGroup.Delete("/{id}", handler.DeleteExpenseCategory)
	})
}

// CreateExpenseCategory adds a category that ledger expenses may be booked under.
// @Summary Create an expense category
// @Tags Finance
// @Accept json
// @Produce json
// @Param request body dto.CreateCategoryRequest true "Create Expense Category Request"
// @Success 201 {object} response.Data[dto.CategoryResponse]
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/settings/finance/expenses [post]
// @Security BearerAuth
func (handler *Handler) CreateExpenseCategory(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateExpenseCategory")
	defer scope.End()

	req := dto.CreateCategoryRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	category, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create expense category")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, category)
}

// GetExpenseCategories lists expense categories.
// @Summary Get all expense categories
// @Tags Finance
// @Produce json
// @Param name query string false "Filter by name"
// @Param is_active query boolean false "Filter by active flag"
// @Success 200 {object} response.Data[dto.GetCategoriesResponse]
// @Failure 500 {object} response.Error
// @Router /v1/settings/finance/expenses [get]
// @Security BearerAuth
func (handler *Handler) GetExpenseCategories(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetExpenseCategories")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if name := r.URL.Query().Get(model.FieldName); name != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldName,
			Operator: gDto.FilterOperatorLike,
			Value:    name,
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

	categories, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get expense categories")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, categories)
}

// GetExpenseCategory retrieves an expense category.
// @Summary Get an expense category
// @Tags Finance
// @Produce json
// @Param id path string true "Expense Category ID"
// @Success 200 {object} response.Data[dto.CategoryResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/settings/finance/expenses/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetExpenseCategory(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetExpenseCategory")
	defer scope.End()

	category, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get expense category")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, category)
}

// UpdateExpenseCategory edits an expense category.
// @Summary Update an expense category
// @Tags Finance
// @Accept json
// @Produce json
// @Param id path string true "Expense Category ID"
// @Param request body dto.UpdateCategoryRequest true "Update Expense Category Request"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/settings/finance/expenses/{id} [put]
// @Security BearerAuth
func (handler *Handler) UpdateExpenseCategory(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateExpenseCategory")
	defer scope.End()

	req := dto.UpdateCategoryRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update expense category")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Expense category updated successfully")
}

// DeleteExpenseCategory removes an expense category.
// @Summary Delete an expense category
// @Tags Finance
// @Produce json
// @Param id path string true "Expense Category ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/settings/finance/expenses/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteExpenseCategory(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteExpenseCategory")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete expense category")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Expense category deleted successfully")
}
