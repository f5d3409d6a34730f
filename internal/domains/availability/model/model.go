package model

import (
	"hotelier/shared/model"
	"time"
)

const (
	TableName  = "room_availabilities"
	EntityName = "room_availability"

	FieldID         = "id"
	FieldRoomID     = "room_id"
	FieldRoomNumber = "room_number"
)

const (
	HistoryTableName  = "room_availability_histories"
	HistoryEntityName = "room_availability_history"

	FieldHistoryAvailabilityID   = "availability_id"
	FieldHistoryBookingNumber    = "booking_number"
	FieldHistoryStatus           = "status"
	FieldHistoryStatusTimestamps = "status_timestamps"
	FieldHistoryCheckIn          = "check_in"
	FieldHistoryCheckOut         = "check_out"
)

// Availability is the per-unit record that history entries hang off.
type Availability struct {
	ID         string `db:"id"`
	RoomID     string `db:"room_id"`
	RoomNumber string `db:"room_number"`
	model.Metadata
}

// History is one booking's occupancy of a unit.
type History struct {
	ID               string                           `db:"id"`
	AvailabilityID   string                           `db:"availability_id"`
	BookingNumber    string                           `db:"booking_number"`
	Status           string                           `db:"status"`
	StatusTimestamps model.JSON[map[string]time.Time] `db:"status_timestamps"`
	CheckIn          time.Time                        `db:"check_in"`
	CheckOut         time.Time                        `db:"check_out"`
	GuestName        string                           `db:"guest_name"`
	GuestEmail       string                           `db:"guest_email"`
	GuestMobile      string                           `db:"guest_mobile"`
	model.Metadata
}
