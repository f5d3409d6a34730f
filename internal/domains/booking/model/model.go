package model

import (
	"fmt"
	"hotelier/shared/model"
	"strconv"
	"strings"
	"time"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID               = "id"
	FieldBookingNumber    = "booking_number"
	FieldPropertyType     = "property_type"
	FieldGuestID          = "guest_id"
	FieldEmail            = "email"
	FieldCheckIn          = "check_in"
	FieldCheckOut         = "check_out"
	FieldPaymentStatus    = "payment_status"
	FieldTotal            = "total"
	FieldStatus           = "status"
	FieldStatusTimestamps = "status_timestamps"
	FieldInvoiceNumber    = "invoice_number"
	FieldHallDetails      = "hall_details"
	FieldVerification     = "verification_files"
	FieldIDProofType      = "id_proof_type"
	FieldIDProofNumber    = "id_proof_number"
	FieldNotes            = "notes"
)

const (
	PropertyTypeRoom = "room"
	PropertyTypeHall = "hall"
)

const (
	StatusBooked    = "booked"
	StatusCheckin   = "checkin"
	StatusCheckout  = "checkout"
	StatusCancelled = "cancelled"
)

const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
	PaymentStatusRefunded  = "refunded"
)

const (
	NumberPrefix     = "B-"
	numberDateFormat = "020106"
	numberWidth      = 4
)

// transitions lists the statuses each status may move to.
var transitions = map[string][]string{
	StatusBooked:  {StatusCheckin, StatusCheckout, StatusCancelled},
	StatusCheckin: {StatusCheckout, StatusCancelled},
}

// RoomLine is one unit reserved by a booking.
type RoomLine struct {
	RoomID     string `json:"room_id"`
	RoomType   string `json:"room_type"`
	RoomNumber string `json:"room_number"`
	Price      int64  `json:"price"`
	Tax        int64  `json:"tax"`
	Total      int64  `json:"total"`
}

type HallDetails struct {
	GroomName string   `json:"groom_name,omitempty"`
	BrideName string   `json:"bride_name,omitempty"`
	EventType string   `json:"event_type,omitempty"`
	TimeSlot  string   `json:"time_slot,omitempty"`
	Services  []string `json:"services,omitempty"`
}

type Booking struct {
	ID                    string                           `db:"id"`
	BookingNumber         string                           `db:"booking_number"`
	PropertyType          string                           `db:"property_type"`
	GuestID               string                           `db:"guest_id"`
	FirstName             string                           `db:"first_name"`
	LastName              string                           `db:"last_name"`
	Email                 string                           `db:"email"`
	Mobile                string                           `db:"mobile"`
	CheckIn               time.Time                        `db:"check_in"`
	CheckOut              time.Time                        `db:"check_out"`
	Adults                int                              `db:"adults"`
	Children              int                              `db:"children"`
	Rooms                 model.JSON[[]RoomLine]           `db:"rooms"`
	PaymentMethod         string                           `db:"payment_method"`
	PaymentStatus         string                           `db:"payment_status"`
	RoomCharge            int64                            `db:"room_charge"`
	Taxes                 int64                            `db:"taxes"`
	AdditionalGuestCharge int64                            `db:"additional_guest_charge"`
	ServicesCharge        int64                            `db:"services_charge"`
	Discount              int64                            `db:"discount"`
	DiscountAmount        int64                            `db:"discount_amount"`
	Total                 int64                            `db:"total"`
	Status                string                           `db:"status"`
	StatusTimestamps      model.JSON[map[string]time.Time] `db:"status_timestamps"`
	InvoiceNumber         *string                          `db:"invoice_number"`
	HallDetails           model.JSON[*HallDetails]         `db:"hall_details"`
	VerificationFiles     model.JSON[[]string]             `db:"verification_files"`
	IDProofType           string                           `db:"id_proof_type"`
	IDProofNumber         string                           `db:"id_proof_number"`
	Notes                 string                           `db:"notes"`
	GatewayOrderID        string                           `db:"gateway_order_id"`
	GatewayPaymentID      string                           `db:"gateway_payment_id"`
	GatewaySignature      string                           `db:"gateway_signature"`
	PaymentLinkID         string                           `db:"payment_link_id"`
	QRCodeID              string                           `db:"qr_code_id"`
	model.Metadata
}

func (b *Booking) GuestName() string {
	return b.FirstName + " " + b.LastName
}

func (b *Booking) HasInvoice() bool {
	return b.InvoiceNumber != nil && *b.InvoiceNumber != ""
}

// CanTransition reports whether the booking may move to status. Staying in the same status is allowed.
func (b *Booking) CanTransition(status string) bool {
	if b.Status == status {
		return true
	}

	for _, next := range transitions[b.Status] {
		if next == status {
			return true
		}
	}

	return false
}

// Overdue reports whether an open booking's stay has ended.
func (b *Booking) Overdue(now time.Time) bool {
	return (b.Status == StatusBooked || b.Status == StatusCheckin) && b.CheckOut.Before(now)
}

// DailyPrefix is the booking number prefix for bookings created on day, e.g. "B-140625-".
func DailyPrefix(day time.Time) string {
	return NumberPrefix + day.Format(numberDateFormat) + "-"
}

// NextNumber follows latest within prefix; an empty or unparsable latest starts the day at 0001.
func NextNumber(prefix, latest string) string {
	seq, err := strconv.Atoi(strings.TrimPrefix(latest, prefix))
	if latest == "" || err != nil {
		seq = 0
	}

	return fmt.Sprintf("%s%0*d", prefix, numberWidth, seq+1)
}

// RoomIDs lists the room category of every line, one entry per line.
func (b *Booking) RoomIDs() []string {
	ids := make([]string, 0, len(b.Rooms.V))
	for _, line := range b.Rooms.V {
		ids = append(ids, line.RoomID)
	}

	return ids
}
