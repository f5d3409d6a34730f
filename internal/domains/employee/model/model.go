package model

import "hotelier/shared/model"

const (
	DepartmentTableName  = "departments"
	DepartmentEntityName = "department"

	ShiftTableName  = "shifts"
	ShiftEntityName = "shift"

	FieldID           = "id"
	FieldName         = "name"
	FieldIsActive     = "is_active"
	FieldDepartmentID = "department_id"
	FieldStartTime    = "start_time"
	FieldEndTime      = "end_time"
)

type Department struct {
	ID          string `db:"id"`
	Name        string `db:"name"`
	Description string `db:"description"`
	IsActive    bool   `db:"is_active"`
	model.Metadata
}

// Shift times are wall-clock HH:MM in the property timezone; an end before the start runs past midnight.
type Shift struct {
	ID           string `db:"id"`
	DepartmentID string `db:"department_id"`
	Name         string `db:"name"`
	StartTime    string `db:"start_time"`
	EndTime      string `db:"end_time"`
	IsActive     bool   `db:"is_active"`
	model.Metadata
}

func (s Shift) Overnight() bool {
	return s.EndTime < s.StartTime
}
