package model

import "hotelier/shared/model"

const (
	TableName  = "guests"
	EntityName = "guest"

	FieldID                = "id"
	FieldGuestID           = "guest_id"
	FieldFirstName         = "first_name"
	FieldLastName          = "last_name"
	FieldEmail             = "email"
	FieldMobile            = "mobile"
	FieldBookingCount      = "booking_count"
	FieldLastBookingNumber = "last_booking_number"
)

// Guest is one directory entry, matched by email first and mobile second.
type Guest struct {
	ID                string `db:"id"`
	GuestID           string `db:"guest_id"`
	FirstName         string `db:"first_name"`
	LastName          string `db:"last_name"`
	Email             string `db:"email"`
	Mobile            string `db:"mobile"`
	BookingCount      int    `db:"booking_count"`
	LastBookingNumber string `db:"last_booking_number"`
	model.Metadata
}

func (g Guest) FullName() string {
	if g.LastName == "" {
		return g.FirstName
	}

	return g.FirstName + " " + g.LastName
}
