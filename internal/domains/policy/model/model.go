package model

import "hotelier/shared/model"

const (
	TableName  = "policies"
	EntityName = "policy"

	FieldID          = "id"
	FieldTitle       = "title"
	FieldCategory    = "category"
	FieldIsPublished = "is_published"

	DefaultCategory = "general"
)

type Policy struct {
	ID          string `db:"id"`
	Title       string `db:"title"`
	Category    string `db:"category"`
	Content     string `db:"content"`
	IsPublished bool   `db:"is_published"`
	model.Metadata
}
