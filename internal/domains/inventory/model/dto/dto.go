package dto

import (
	"hotelier/internal/domains/inventory/model"
	"hotelier/shared"
	"hotelier/shared/constant"
	gDto "hotelier/shared/dto"
	gModel "hotelier/shared/model"
	"hotelier/shared/money"
	"hotelier/shared/timezone"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const defaultUnit = "pcs"

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

type CreateItemRequest struct {
	Name            string  `json:"name"              validate:"required,max=100"`
	Category        string  `json:"category"          validate:"required,max=100"`
	SubCategory     string  `json:"sub_category"      validate:"omitempty,max=100"`
	Brand           string  `json:"brand"             validate:"omitempty,max=100"`
	Unit            string  `json:"unit"              validate:"omitempty,max=20"`
	QuantityInStock int     `json:"quantity_in_stock" validate:"gte=0"`
	AlertThreshold  int     `json:"alert_threshold"   validate:"gte=0"`
	UnitPrice       float64 `json:"unit_price"        validate:"gte=0"`
}

func (c *CreateItemRequest) ToModel(user string) model.Item {
	unit := c.Unit
	if unit == constant.Empty {
		unit = defaultUnit
	}

	item := model.Item{
		ID:              uuid.NewString(),
		Name:            strings.TrimSpace(c.Name),
		Category:        normalize(c.Category),
		SubCategory:     normalize(c.SubCategory),
		Brand:           normalize(c.Brand),
		Unit:            unit,
		QuantityInStock: c.QuantityInStock,
		AlertThreshold:  c.AlertThreshold,
		UnitPrice:       money.FromFloat(c.UnitPrice),
		Metadata:        gModel.NewMetadata(user, timezone.Now()),
	}
	item.Refresh()

	return item
}

type UpdateItemRequest struct {
	Name            string   `json:"name"              validate:"omitempty,max=100"`
	Category        string   `json:"category"          validate:"omitempty,max=100"`
	SubCategory     *string  `json:"sub_category"      validate:"omitempty,max=100"`
	Brand           *string  `json:"brand"             validate:"omitempty,max=100"`
	Unit            string   `json:"unit"              validate:"omitempty,max=20"`
	QuantityInStock *int     `json:"quantity_in_stock" validate:"omitempty,gte=0"`
	AlertThreshold  *int     `json:"alert_threshold"   validate:"omitempty,gte=0"`
	UnitPrice       *float64 `json:"unit_price"        validate:"omitempty,gte=0"`
}

func (u *UpdateItemRequest) IsEmpty() bool {
	return u.Name == "" && u.Category == "" && u.SubCategory == nil && u.Brand == nil && u.Unit == "" &&
		u.QuantityInStock == nil && u.AlertThreshold == nil && u.UnitPrice == nil
}

// Apply merges the request into item and re-derives its stock status.
func (u *UpdateItemRequest) Apply(item *model.Item) {
	if u.Name != "" {
		item.Name = strings.TrimSpace(u.Name)
	}

	if u.Category != "" {
		item.Category = normalize(u.Category)
	}

	if u.SubCategory != nil {
		item.SubCategory = normalize(*u.SubCategory)
	}

	if u.Brand != nil {
		item.Brand = normalize(*u.Brand)
	}

	if u.Unit != "" {
		item.Unit = u.Unit
	}

	if u.QuantityInStock != nil {
		item.QuantityInStock = *u.QuantityInStock
	}

	if u.AlertThreshold != nil {
		item.AlertThreshold = *u.AlertThreshold
	}

	if u.UnitPrice != nil {
		item.UnitPrice = money.FromFloat(*u.UnitPrice)
	}

	item.Refresh()
}

func ItemFields(user string, item model.Item) map[string]any {
	return map[string]any{
		model.FieldName:            item.Name,
		model.FieldCategory:        item.Category,
		model.FieldSubCategory:     item.SubCategory,
		model.FieldBrand:           item.Brand,
		model.FieldUnit:            item.Unit,
		model.FieldQuantityInStock: item.QuantityInStock,
		model.FieldAlertThreshold:  item.AlertThreshold,
		model.FieldUnitPrice:       item.UnitPrice,
		model.FieldStatus:          item.Status,
		constant.FieldModifiedAt:   timezone.Now(),
		constant.FieldModifiedBy:   user,
	}
}

type ItemResponse struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Category        string          `json:"category"`
	SubCategory     string          `json:"sub_category"`
	Brand           string          `json:"brand"`
	Unit            string          `json:"unit"`
	QuantityInStock int             `json:"quantity_in_stock"`
	AlertThreshold  int             `json:"alert_threshold"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	Status          string          `json:"status"`
	gDto.Metadata
}

func (r *ItemResponse) FromModel(item model.Item) {
	r.ID = item.ID
	r.Name = item.Name
	r.Category = item.Category
	r.SubCategory = item.SubCategory
	r.Brand = item.Brand
	r.Unit = item.Unit
	r.QuantityInStock = item.QuantityInStock
	r.AlertThreshold = item.AlertThreshold
	r.UnitPrice = item.UnitPrice
	r.Status = item.Status
	r.Metadata.FromModel(item.Metadata)
}

type GetItemsResponse struct {
	Items     []ItemResponse `json:"items"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetItemsResponse) FromModels(items []model.Item, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Items = make([]ItemResponse, len(items))
	for i, item := range items {
		r.Items[i].FromModel(item)
	}
}

type CreateRuleRequest struct {
	RoomID      string `json:"room_id"      validate:"required,uuid"`
	Category    string `json:"category"     validate:"required,max=100"`
	SubCategory string `json:"sub_category" validate:"omitempty,max=100"`
	Brand       string `json:"brand"        validate:"omitempty,max=100"`
	Quantity    int    `json:"quantity"     validate:"required,gt=0"`
}

func (c *CreateRuleRequest) ToModel(user string) model.Rule {
	return model.Rule{
		ID:          uuid.NewString(),
		RoomID:      c.RoomID,
		Category:    normalize(c.Category),
		SubCategory: normalize(c.SubCategory),
		Brand:       normalize(c.Brand),
		Quantity:    c.Quantity,
		Metadata:    gModel.NewMetadata(user, timezone.Now()),
	}
}

type RuleResponse struct {
	ID          string `json:"id"`
	RoomID      string `json:"room_id"`
	Category    string `json:"category"`
	SubCategory string `json:"sub_category"`
	Brand       string `json:"brand"`
	Quantity    int    `json:"quantity"`
	gDto.Metadata
}

func (r *RuleResponse) FromModel(rule model.Rule) {
	r.ID = rule.ID
	r.RoomID = rule.RoomID
	r.Category = rule.Category
	r.SubCategory = rule.SubCategory
	r.Brand = rule.Brand
	r.Quantity = rule.Quantity
	r.Metadata.FromModel(rule.Metadata)
}

type GetRulesResponse struct {
	Rules     []RuleResponse `json:"rules"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetRulesResponse) FromModels(rules []model.Rule, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Rules = make([]RuleResponse, len(rules))
	for i, rule := range rules {
		r.Rules[i].FromModel(rule)
	}
}

func NewConsumption(user, bookingNumber string, rule model.Rule, itemID *string, status, reason string) model.Consumption {
	return model.Consumption{
		ID:                    uuid.NewString(),
		BookingNumber:         bookingNumber,
		RuleID:                rule.ID,
		ItemID:                itemID,
		Quantity:              rule.Quantity,
		InventoryUpdateStatus: status,
		Reason:                reason,
		Metadata:              gModel.NewMetadata(user, timezone.Now()),
	}
}

type ConsumptionResponse struct {
	RuleID                string `json:"rule_id"`
	ItemID                string `json:"item_id,omitempty"`
	Quantity              int    `json:"quantity"`
	InventoryUpdateStatus string `json:"inventory_update_status"`
	Reason                string `json:"reason,omitempty"`
}

func (r *ConsumptionResponse) FromModel(consumption model.Consumption) {
	r.RuleID = consumption.RuleID
	r.Quantity = consumption.Quantity
	r.InventoryUpdateStatus = consumption.InventoryUpdateStatus
	r.Reason = consumption.Reason

	if consumption.ItemID != nil {
		r.ItemID = *consumption.ItemID
	}
}

type ConsumeResponse struct {
	BookingNumber string                `json:"booking_number"`
	Completed     int                   `json:"completed"`
	Skipped       int                   `json:"skipped"`
	Consumptions  []ConsumptionResponse `json:"consumptions"`
}

func (r *ConsumeResponse) Add(consumption model.Consumption) {
	if consumption.InventoryUpdateStatus == model.ConsumptionCompleted {
		r.Completed++
	} else {
		r.Skipped++
	}

	var item ConsumptionResponse
	item.FromModel(consumption)
	r.Consumptions = append(r.Consumptions, item)
}
