package model

import (
	"hotelier/shared/model"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID           = "id"
	FieldName         = "name"
	FieldPropertyType = "property_type"
	FieldDescription  = "description"
	FieldBasePrice    = "base_price"
	FieldTaxPercent   = "tax_percent"
	FieldCapacity     = "capacity"
	FieldAmenities    = "amenities"
	FieldImages       = "images"
	FieldActive       = "active"
)

const (
	PropertyTypeRoom = "room"
	PropertyTypeHall = "hall"
)

// Room is a bookable category (a room type or a hall); physical units hang off it.
type Room struct {
	ID           string               `db:"id"`
	Name         string               `db:"name"`
	PropertyType string               `db:"property_type"`
	Description  string               `db:"description"`
	BasePrice    int64                `db:"base_price"`
	TaxPercent   decimal.Decimal      `db:"tax_percent"`
	Capacity     int                  `db:"capacity"`
	Amenities    model.JSON[[]string] `db:"amenities"`
	Images       model.JSON[[]string] `db:"images"`
	Active       bool                 `db:"active"`
	model.Metadata
}
