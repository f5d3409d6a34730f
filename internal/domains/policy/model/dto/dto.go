package dto

import (
	"hotelier/internal/domains/policy/model"
	"hotelier/shared"
	gDto "hotelier/shared/dto"
	gModel "hotelier/shared/model"
	"hotelier/shared/timezone"
	"strings"

	"github.com/google/uuid"
)

type CreatePolicyRequest struct {
	Title       string `json:"title"        validate:"required,max=200"`
	Category    string `json:"category"     validate:"omitempty,max=100"`
	Content     string `json:"content"      validate:"required"`
	IsPublished bool   `json:"is_published"`
}

func (c *CreatePolicyRequest) ToModel(user string) model.Policy {
	category := strings.ToLower(strings.TrimSpace(c.Category))
	if category == "" {
		category = model.DefaultCategory
	}

	return model.Policy{
		ID:          uuid.NewString(),
		Title:       strings.TrimSpace(c.Title),
		Category:    category,
		Content:     c.Content,
		IsPublished: c.IsPublished,
		Metadata:    gModel.NewMetadata(user, timezone.Now()),
	}
}

type UpdatePolicyRequest struct {
	Title       string `db:"title"    json:"title"        validate:"omitempty,max=200"`
	Category    string `db:"category" json:"category"     validate:"omitempty,max=100"`
	Content     string `db:"content"  json:"content"      validate:"omitempty"`
	IsPublished *bool  `json:"is_published"`
}

func (u *UpdatePolicyRequest) IsEmpty() bool {
	return u.Title == "" && u.Category == "" && u.Content == "" && u.IsPublished == nil
}

func (u *UpdatePolicyRequest) ToFields(user string) map[string]any {
	fields := shared.TransformFields(*u, user)

	if u.Category != "" {
		fields[model.FieldCategory] = strings.ToLower(strings.TrimSpace(u.Category))
	}

	if u.IsPublished != nil {
		fields[model.FieldIsPublished] = *u.IsPublished
	}

	return fields
}

type PolicyResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Category    string `json:"category"`
	Content     string `json:"content"`
	IsPublished bool   `json:"is_published"`
	gDto.Metadata
}

func (r *PolicyResponse) FromModel(policy model.Policy) {
	r.ID = policy.ID
	r.Title = policy.Title
	r.Category = policy.Category
	r.Content = policy.Content
	r.IsPublished = policy.IsPublished
	r.Metadata.FromModel(policy.Metadata)
}

type GetPoliciesResponse struct {
	Policies  []PolicyResponse `json:"policies"`
	TotalPage int              `json:"total_page"`
	TotalData int              `json:"total_data"`
}

func (r *GetPoliciesResponse) FromModels(policies []model.Policy, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Policies = make([]PolicyResponse, len(policies))
	for i, policy := range policies {
		r.Policies[i].FromModel(policy)
	}
}
