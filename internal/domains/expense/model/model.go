package model

import "hotelier/shared/model"

const (
	TableName  = "expense_categories"
	EntityName = "expense_category"

	FieldID       = "id"
	FieldName     = "name"
	FieldIsActive = "is_active"
)

// Category names are stored lower-cased; ledger expense entries must name an active one.
type Category struct {
	ID          string `db:"id"`
	Name        string `db:"name"`
	Description string `db:"description"`
	IsActive    bool   `db:"is_active"`
	model.Metadata
}
