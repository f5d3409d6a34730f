package model

import "time"

const (
	CollectionName = "invoices"
	EntityName     = "invoice"

	FieldID            = "_id"
	FieldInvoiceNumber = "invoice_number"
	FieldBookingNumber = "booking_number"
	FieldIssuedAt      = "issued_at"
)

type Hotel struct {
	Name       string `bson:"name"        json:"name"`
	Address    string `bson:"address"     json:"address"`
	GSTIN      string `bson:"gstin"       json:"gstin"`
	Phone      string `bson:"phone"       json:"phone"`
	Email      string `bson:"email"       json:"email"`
	BrandColor string `bson:"brand_color" json:"brand_color"`
}

type Guest struct {
	GuestID string `bson:"guest_id" json:"guest_id"`
	Name    string `bson:"name"     json:"name"`
	Email   string `bson:"email"    json:"email"`
	Mobile  string `bson:"mobile"   json:"mobile"`
}

type Stay struct {
	PropertyType string    `bson:"property_type" json:"property_type"`
	CheckIn      time.Time `bson:"check_in"      json:"check_in"`
	CheckOut     time.Time `bson:"check_out"     json:"check_out"`
	Adults       int       `bson:"adults"        json:"adults"`
	Children     int       `bson:"children"      json:"children"`
}

type Line struct {
	RoomType   string `bson:"room_type"   json:"room_type"`
	RoomNumber string `bson:"room_number" json:"room_number"`
	Price      int64  `bson:"price"       json:"price"`
	Tax        int64  `bson:"tax"         json:"tax"`
	Total      int64  `bson:"total"       json:"total"`
}

type Amounts struct {
	RoomCharge            int64 `bson:"room_charge"             json:"room_charge"`
	Taxes                 int64 `bson:"taxes"                   json:"taxes"`
	AdditionalGuestCharge int64 `bson:"additional_guest_charge" json:"additional_guest_charge"`
	ServicesCharge        int64 `bson:"services_charge"         json:"services_charge"`
	Discount              int64 `bson:"discount"                json:"discount"`
	DiscountAmount        int64 `bson:"discount_amount"         json:"discount_amount"`
	Total                 int64 `bson:"total"                   json:"total"`
}

type Payment struct {
	PaymentMethod    string   `bson:"payment_method"    json:"payment_method"`
	PaymentStatus    string   `bson:"payment_status"    json:"payment_status"`
	PaymentType      string   `bson:"payment_type"      json:"payment_type"`
	TotalPaid        int64    `bson:"total_paid"        json:"total_paid"`
	RemainingBalance int64    `bson:"remaining_balance" json:"remaining_balance"`
	Methods          []string `bson:"methods"           json:"methods"`
}

// Invoice is an immutable snapshot of a booking taken when it is billed.
type Invoice struct {
	ID            string    `bson:"_id"`
	InvoiceNumber string    `bson:"invoice_number"`
	BookingNumber string    `bson:"booking_number"`
	Hotel         Hotel     `bson:"hotel"`
	Guest         Guest     `bson:"guest"`
	Stay          Stay      `bson:"stay"`
	Lines         []Line    `bson:"lines"`
	Amounts       Amounts   `bson:"amounts"`
	Payment       Payment   `bson:"payment"`
	IssuedAt      time.Time `bson:"issued_at"`
	IssuedBy      string    `bson:"issued_by"`
}
