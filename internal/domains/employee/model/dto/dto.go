package dto

import (
	"hotelier/internal/domains/employee/model"
	"hotelier/shared"
	gDto "hotelier/shared/dto"
	gModel "hotelier/shared/model"
	"hotelier/shared/timezone"
	"strings"

	"github.com/google/uuid"
)

type CreateDepartmentRequest struct {
	Name        string `json:"name"        validate:"required,max=100"`
	Description string `json:"description" validate:"omitempty,max=500"`
	IsActive    *bool  `json:"is_active"`
}

func (c *CreateDepartmentRequest) ToModel(user string) model.Department {
	return model.Department{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(c.Name),
		Description: c.Description,
		IsActive:    c.IsActive == nil || *c.IsActive,
		Metadata:    gModel.NewMetadata(user, timezone.Now()),
	}
}

type UpdateDepartmentRequest struct {
	Name        string `db:"name"        json:"name"        validate:"omitempty,max=100"`
	Description string `db:"description" json:"description" validate:"omitempty,max=500"`
	IsActive    *bool  `json:"is_active"`
}

func (u *UpdateDepartmentRequest) IsEmpty() bool {
	return u.Name == "" && u.Description == "" && u.IsActive == nil
}

func (u *UpdateDepartmentRequest) ToFields(user string) map[string]any {
	fields := shared.TransformFields(*u, user)

	if u.Name != "" {
		fields[model.FieldName] = strings.TrimSpace(u.Name)
	}

	if u.IsActive != nil {
		fields[model.FieldIsActive] = *u.IsActive
	}

	return fields
}

type DepartmentResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	IsActive    bool   `json:"is_active"`
	gDto.Metadata
}

func (r *DepartmentResponse) FromModel(department model.Department) {
	r.ID = department.ID
	r.Name = department.Name
	r.Description = department.Description
	r.IsActive = department.IsActive
	r.Metadata.FromModel(department.Metadata)
}

type GetDepartmentsResponse struct {
	Departments []DepartmentResponse `json:"departments"`
	TotalPage   int                  `json:"total_page"`
	TotalData   int                  `json:"total_data"`
}

func (r *GetDepartmentsResponse) FromModels(departments []model.Department, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Departments = make([]DepartmentResponse, len(departments))
	for i, department := range departments {
		r.Departments[i].FromModel(department)
	}
}

type CreateShiftRequest struct {
	DepartmentID string `json:"department_id" validate:"required,uuid"`
	Name         string `json:"name"          validate:"required,max=100"`
	StartTime    string `json:"start_time"    validate:"required,datetime=15:04"`
	EndTime      string `json:"end_time"      validate:"required,datetime=15:04"`
	IsActive     *bool  `json:"is_active"`
}

func (c *CreateShiftRequest) ToModel(user string) model.Shift {
	return model.Shift{
		ID:           uuid.NewString(),
		DepartmentID: c.DepartmentID,
		Name:         strings.TrimSpace(c.Name),
		StartTime:    c.StartTime,
		EndTime:      c.EndTime,
		IsActive:     c.IsActive == nil || *c.IsActive,
		Metadata:     gModel.NewMetadata(user, timezone.Now()),
	}
}

type UpdateShiftRequest struct {
	DepartmentID string `db:"department_id" json:"department_id" validate:"omitempty,uuid"`
	Name         string `db:"name"          json:"name"          validate:"omitempty,max=100"`
	StartTime    string `db:"start_time"    json:"start_time"    validate:"omitempty,datetime=15:04"`
	EndTime      string `db:"end_time"      json:"end_time"      validate:"omitempty,datetime=15:04"`
	IsActive     *bool  `json:"is_active"`
}

func (u *UpdateShiftRequest) IsEmpty() bool {
	return u.DepartmentID == "" && u.Name == "" && u.StartTime == "" && u.EndTime == "" && u.IsActive == nil
}

func (u *UpdateShiftRequest) ToFields(user string) map[string]any {
	fields := shared.TransformFields(*u, user)

	if u.Name != "" {
		fields[model.FieldName] = strings.TrimSpace(u.Name)
	}

	if u.IsActive != nil {
		fields[model.FieldIsActive] = *u.IsActive
	}

	return fields
}

type ShiftResponse struct {
	ID           string `json:"id"`
	DepartmentID string `json:"department_id"`
	Name         string `json:"name"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	Overnight    bool   `json:"overnight"`
	IsActive     bool   `json:"is_active"`
	gDto.Metadata
}

func (r *ShiftResponse) FromModel(shift model.Shift) {
	r.ID = shift.ID
	r.DepartmentID = shift.DepartmentID
	r.Name = shift.Name
	r.StartTime = shift.StartTime
	r.EndTime = shift.EndTime
	r.Overnight = shift.Overnight()
	r.IsActive = shift.IsActive
	r.Metadata.FromModel(shift.Metadata)
}

type GetShiftsResponse struct {
	Shifts    []ShiftResponse `json:"shifts"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetShiftsResponse) FromModels(shifts []model.Shift, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Shifts = make([]ShiftResponse, len(shifts))
	for i, shift := range shifts {
		r.Shifts[i].FromModel(shift)
	}
}
