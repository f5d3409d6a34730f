package policy

import (
	"hotelier/infras/otel"
	"hotelier/internal/domains/policy/model"
	"hotelier/internal/domains/policy/model/dto"
	"hotelier/internal/domains/policy/service"
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
	service service.Policy
	otel    otel.Otel
}

func New(service service.Policy, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/settings/policy", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreatePolicy)
		routerGroup.Get("/", handler.GetPolicies)
		routerGroup.Get("/{id}", handler.GetPolicy)
		routerGroup.Put("/{id}", handler.UpdatePolicy)
		routerGroup.Delete("/{id}", handler.DeletePolicy)
	})
}

// CreatePolicy publishes policy content.
// @Summary Create a policy
// @Tags Settings
// @Accept json
// @Produce json
// @Param request body dto.CreatePolicyRequest true "Create Policy Request"
// @Success 201 {object} response.Data[dto.PolicyResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/settings/policy [post]
// @Security BearerAuth
func (handler *Handler) CreatePolicy(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreatePolicy")
	defer scope.End()

	req := dto.CreatePolicyRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	policy, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create policy")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, policy)
}

// GetPolicies lists policies.
// @Summary Get all policies
// @Tags Settings
// @Produce json
// @Param title query string false "Filter by title"
// @Param category query string false "Filter by category"
// @Param is_published query boolean false "Filter by published flag"
// @Success 200 {object} response.Data[dto.GetPoliciesResponse]
// @Failure 500 {object} response.Error
// @Router /v1/settings/policy [get]
// @Security BearerAuth
func (handler *Handler) GetPolicies(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPolicies")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if title := r.URL.Query().Get(model.FieldTitle); title != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldTitle,
			Operator: gDto.FilterOperatorLike,
			Value:    title,
			Table:    model.TableName,
		})
	}

	if category := r.URL.Query().Get(model.FieldCategory); category != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldCategory,
			Operator: gDto.FilterOperatorEq,
			Value:    category,
			Table:    model.TableName,
		})
	}

	if published := shared.ConvertStringToBool(r.URL.Query().Get(model.FieldIsPublished)); published != nil {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldIsPublished,
			Operator: gDto.FilterOperatorEq,
			Value:    *published,
			Table:    model.TableName,
		})
	}

	policies, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get policies")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, policies)
}

// GetPolicy retrieves a policy.
// @Summary Get a policy
// @Tags Settings
// @Produce json
// @Param id path string true "Policy ID"
// @Success 200 {object} response.Data[dto.PolicyResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/settings/policy/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetPolicy(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPolicy")
	defer scope.End()

	policy, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get policy")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, policy)
}

// UpdatePolicy edits a policy.
// @Summary Update a policy
// @Tags Settings
// @Accept json
// @Produce json
// @Param id path string true "Policy ID"
// @Param request body dto.UpdatePolicyRequest true "Update Policy Request"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/settings/policy/{id} [put]
// @Security BearerAuth
func (handler *Handler) UpdatePolicy(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdatePolicy")
	defer scope.End()

	req := dto.UpdatePolicyRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update policy")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Policy updated successfully")
}

// DeletePolicy removes a policy.
// @Summary Delete a policy
// @Tags Settings
// @Produce json
// @Param id path string true "Policy ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/settings/policy/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeletePolicy(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeletePolicy")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete policy")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Policy deleted successfully")
}
