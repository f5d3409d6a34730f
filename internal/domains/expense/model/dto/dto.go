package dto

import (
	"hotelier/internal/domains/expense/model"
	"hotelier/shared"
	gDto "hotelier/shared/dto"
	gModel "hotelier/shared/model"
	"hotelier/shared/timezone"
	"strings"

	"github.com/google/uuid"
)

func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

type CreateCategoryRequest struct {
	Name        string `json:"name"        validate:"required,max=100"`
	Description string `json:"description" validate:"omitempty,max=500"`
	IsActive    *bool  `json:"is_active"`
}

func (c *CreateCategoryRequest) ToModel(user string) model.Category {
	return model.Category{
		ID:          uuid.NewString(),
		Name:        NormalizeName(c.Name),
		Description: c.Description,
		IsActive:    c.IsActive == nil || *c.IsActive,
		Metadata:    gModel.NewMetadata(user, timezone.Now()),
	}
}

type UpdateCategoryRequest struct {
	Name        string `db:"name"        json:"name"        validate:"omitempty,max=100"`
	Description string `db:"description" json:"description" validate:"omitempty,max=500"`
	IsActive    *bool  `json:"is_active"`
}

func (u *UpdateCategoryRequest) IsEmpty() bool {
	return u.Name == "" && u.Description == "" && u.IsActive == nil
}

func (u *UpdateCategoryRequest) ToFields(user string) map[string]any {
	fields := shared.TransformFields(*u, user)

	if u.Name != "" {
		fields[model.FieldName] = NormalizeName(u.Name)
	}

	if u.IsActive != nil {
		fields[model.FieldIsActive] = *u.IsActive
	}

	return fields
}

type CategoryResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	IsActive    bool   `json:"is_active"`
	gDto.Metadata
}

func (r *CategoryResponse) FromModel(category model.Category) {
	r.ID = category.ID
	r.Name = category.Name
	r.Description = category.Description
	r.IsActive = category.IsActive
	r.Metadata.FromModel(category.Metadata)
}

type GetCategoriesResponse struct {
	Categories []CategoryResponse `json:"categories"`
	TotalPage  int                `json:"total_page"`
	TotalData  int                `json:"total_data"`
}

func (r *GetCategoriesResponse) FromModels(categories []model.Category, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Categories = make([]CategoryResponse, len(categories))
	for i, category := range categories {
		r.Categories[i].FromModel(category)
	}
}
