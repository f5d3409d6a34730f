package employee

import (
	"hotelier/infras/otel"
	"hotelier/internal/domains/employee/model"
	"hotelier/internal/domains/employee/model/dto"
	"hotelier/internal/domains/employee/service"
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
	departments service.Department
	shifts      service.Shift
	otel        otel.Otel
}

func New(departments service.Department, shifts service.Shift, otel otel.Otel) Handler {
	return Handler{
		departments: departments,
		shifts:      shifts,
		otel:        otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/settings/employeeManagement", func(routerGroup chi.Router) {
		routerGroup.Route("/departments", func(departments chi.Router) {
			departments.Post("/", handler.CreateDepartment)
			departments.Get("/", handler.GetDepartments)
			departments.Get("/{id}", handler.GetDepartment)
			departments.Put("/{id}", handler.UpdateDepartment)
			departments.Delete("/{id}", handler.DeleteDepartment)
		})
		routerGroup.Route("/shifts", func(shifts chi.Router) {
			shifts.Post("/", handler.CreateShift)
			shifts.Get("/", handler.GetShifts)
			shifts.Get("/{id}", handler.GetShift)
			shifts.Put("/{id}", handler.UpdateShift)
			shifts.Delete("/{id}", handler.DeleteShift)
		})
	})
}

func activeFilter(r *http.Request, table string) gDto.FilterGroup {
	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if name := r.URL.Query().Get(model.FieldName); name != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldName,
			Operator: gDto.FilterOperatorLike,
			Value:    name,
			Table:    table,
		})
	}

	if active := shared.ConvertStringToBool(r.URL.Query().Get(model.FieldIsActive)); active != nil {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldIsActive,
			Operator: gDto.FilterOperatorEq,
			Value:    *active,
			Table:    table,
		})
	}

	return filterGroup
}

// CreateDepartment adds a department.
// @Summary Create a department
// @Tags Settings
// @Accept json
// @Produce json
// @Param request body dto.CreateDepartmentRequest true "Create Department Request"
// @Success 201 {object} response.Data[dto.DepartmentResponse]
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/settings/employeeManagement/departments [post]
// @Security BearerAuth
func (handler *Handler) CreateDepartment(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateDepartment")
	defer scope.End()

	req := dto.CreateDepartmentRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	department, err := handler.departments.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create department")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, department)
}

// GetDepartments lists departments.
// @Summary Get all departments
// @Tags Settings
// @Produce json
// @Param name query string false "Filter by name"
// @Param is_active query boolean false "Filter by active flag"
// @Success 200 {object} response.Data[dto.GetDepartmentsResponse]
// @Failure 500 {object} response.Error
// @Router /v1/settings/employeeManagement/departments [get]
// @Security BearerAuth
func (handler *Handler) GetDepartments(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetDepartments")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	departments, err := handler.departments.GetAll(ctx, queryParams, activeFilter(r, model.DepartmentTableName))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get departments")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, departments)
}

// GetDepartment retrieves a department.
// @Summary Get a department
// @Tags Settings
// @Produce json
// @Param id path string true "Department ID"
// @Success 200 {object} response.Data[dto.DepartmentResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/settings/employeeManagement/departments/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetDepartment(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetDepartment")
	defer scope.End()

	department, err := handler.departments.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get department")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, department)
}

// UpdateDepartment edits a department.
// @Summary Update a department
// @Tags Settings
// @Accept json
// @Produce json
// @Param id path string true "Department ID"
// @Param request body dto.UpdateDepartmentRequest true "Update Department Request"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/settings/employeeManagement/departments/{id} [put]
// @Security BearerAuth
func (handler *Handler) UpdateDepartment(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateDepartment")
	defer scope.End()

	req := dto.UpdateDepartmentRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.departments.Update(ctx, req, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update department")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Department updated successfully")
}

// DeleteDepartment removes a department without shifts.
// @Summary Delete a department
// @Tags Settings
// @Produce json
// @Param id path string true "Department ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/settings/employeeManagement/departments/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteDepartment(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteDepartment")
	defer scope.End()

	if err := handler.departments.Delete(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete department")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Department deleted successfully")
}

// CreateShift adds a shift to a department.
// @Summary Create a shift
// @Tags Settings
// @Accept json
// @Produce json
// @Param request body dto.CreateShiftRequest true "Create Shift Request"
// @Success 201 {object} response.Data[dto.ShiftResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/settings/employeeManagement/shifts [post]
// @Security BearerAuth
func (handler *Handler) CreateShift(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateShift")
	defer scope.End()

	req := dto.CreateShiftRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	shift, err := handler.shifts.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create shift")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, shift)
}

// GetShifts lists shifts.
// @Summary Get all shifts
// @Tags Settings
// @Produce json
// @Param name query string false "Filter by name"
// @Param department_id query string false "Filter by department"
// @Param is_active query boolean false "Filter by active flag"
// @Success 200 {object} response.Data[dto.GetShiftsResponse]
// @Failure 500 {object} response.Error
// @Router /v1/settings/employeeManagement/shifts [get]
// @Security BearerAuth
func (handler *Handler) GetShifts(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetShifts")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := activeFilter(r, model.ShiftTableName)

	if departmentID := r.URL.Query().Get(model.FieldDepartmentID); departmentID != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldDepartmentID,
			Operator: gDto.FilterOperatorEq,
			Value:    departmentID,
			Table:    model.ShiftTableName,
		})
	}

	shifts, err := handler.shifts.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get shifts")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, shifts)
}

// GetShift retrieves a shift.
// @Summary Get a shift
// @Tags Settings
// @Produce json
// @Param id path string true "Shift ID"
// @Success 200 {object} response.Data[dto.ShiftResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/settings/employeeManagement/shifts/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetShift(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetShift")
	defer scope.End()

	shift, err := handler.shifts.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get shift")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, shift)
}

// UpdateShift edits a shift.
// @Summary Update a shift
// @Tags Settings
// @Accept json
// @Produce json
// @Param id path string true "Shift ID"
// @Param request body dto.UpdateShiftRequest true "Update Shift Request"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/settings/employeeManagement/shifts/{id} [put]
// @Security BearerAuth
func (handler *Handler) UpdateShift(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateShift")
	defer scope.End()

	req := dto.UpdateShiftRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.shifts.Update(ctx, req, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update shift")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Shift updated successfully")
}

// DeleteShift removes a shift.
// @Summary Delete a shift
// @Tags Settings
// @Produce json
// @Param id path string true "Shift ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/settings/employeeManagement/shifts/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteShift(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteShift")
	defer scope.End()

	if err := handler.shifts.Delete(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete shift")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Shift deleted successfully")
}
