package model

import (
	"hotelier/shared/model"
	"time"
)

const (
	BookedDateTableName  = "room_booked_dates"
	BookedDateEntityName = "room_booked_date"

	FieldBookedDateRoomID        = "room_id"
	FieldBookedDateRoomNumber    = "room_number"
	FieldBookedDateBookingNumber = "booking_number"
	FieldBookedDateStatus        = "status"
)

const (
	BookedDateStatusBooked    = "booked"
	BookedDateStatusCancelled = "cancelled"
)

// BookedDate blocks one unit for the stay of one booking.
type BookedDate struct {
	ID            string    `db:"id"`
	RoomID        string    `db:"room_id"`
	RoomNumber    string    `db:"room_number"`
	BookingNumber string    `db:"booking_number"`
	CheckIn       time.Time `db:"check_in"`
	CheckOut      time.Time `db:"check_out"`
	Status        string    `db:"status"`
	Adults        int       `db:"adults"`
	Children      int       `db:"children"`
	model.Metadata
}
