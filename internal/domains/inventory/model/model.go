package model

import (
	"hotelier/shared/model"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "inventory_items"
	EntityName = "inventory_item"

	FieldID              = "id"
	FieldName            = "name"
	FieldCategory        = "category"
	FieldSubCategory     = "sub_category"
	FieldBrand           = "brand"
	FieldUnit            = "unit"
	FieldQuantityInStock = "quantity_in_stock"
	FieldAlertThreshold  = "alert_threshold"
	FieldUnitPrice       = "unit_price"
	FieldStatus          = "status"
)

const (
	RuleTableName  = "complementary_rules"
	RuleEntityName = "complementary_rule"

	FieldRuleRoomID = "room_id"
)

const (
	ConsumptionTableName  = "inventory_consumptions"
	ConsumptionEntityName = "inventory_consumption"

	FieldConsumptionBookingNumber = "booking_number"
)

const (
	StatusInStock    = "inStock"
	StatusLowStock   = "lowStock"
	StatusOutOfStock = "outOfStock"
)

const (
	ConsumptionCompleted = "completed"
	ConsumptionSkipped   = "skipped"
)

type Item struct {
	ID              string          `db:"id"`
	Name            string          `db:"name"`
	Category        string          `db:"category"`
	SubCategory     string          `db:"sub_category"`
	Brand           string          `db:"brand"`
	Unit            string          `db:"unit"`
	QuantityInStock int             `db:"quantity_in_stock"`
	AlertThreshold  int             `db:"alert_threshold"`
	UnitPrice       decimal.Decimal `db:"unit_price"`
	Status          string          `db:"status"`
	model.Metadata
}

// StockStatus derives the status from a stock level and its alert threshold.
func StockStatus(quantity, threshold int) string {
	switch {
	case quantity <= 0:
		return StatusOutOfStock
	case quantity <= threshold:
		return StatusLowStock
	default:
		return StatusInStock
	}
}

func (i *Item) Refresh() {
	i.Status = StockStatus(i.QuantityInStock, i.AlertThreshold)
}

type Rule struct {
	ID          string `db:"id"`
	RoomID      string `db:"room_id"`
	Category    string `db:"category"`
	SubCategory string `db:"sub_category"`
	Brand       string `db:"brand"`
	Quantity    int    `db:"quantity"`
	model.Metadata
}

type Consumption struct {
	ID                    string  `db:"id"`
	BookingNumber         string  `db:"booking_number"`
	RuleID                string  `db:"rule_id"`
	ItemID                *string `db:"item_id"`
	Quantity              int     `db:"quantity"`
	InventoryUpdateStatus string  `db:"inventory_update_status"`
	Reason                string  `db:"reason"`
	model.Metadata
}
