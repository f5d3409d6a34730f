package dto

import (
	"hotelier/internal/domains/booking/model"
	"hotelier/shared"
	"hotelier/shared/constant"
	gDto "hotelier/shared/dto"
	gModel "hotelier/shared/model"
	"hotelier/shared/money"
	"hotelier/shared/timezone"
	"mime/multipart"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	PaymentMethodOnline      = "online"
	PaymentMethodPaymentLink = "paymentLink"
	PaymentMethodQR          = "qr"
)

type RoomLineRequest struct {
	RoomID     string  `json:"room_id"     validate:"required,uuid"`
	RoomType   string  `json:"room_type"   validate:"omitempty,max=100"`
	RoomNumber string  `json:"room_number" validate:"required,max=20"`
	Price      float64 `json:"price"       validate:"gte=0"`
	Tax        float64 `json:"tax"         validate:"gte=0"`
	Total      float64 `json:"total"       validate:"gte=0"`
}

type HallDetailsRequest struct {
	GroomName string   `json:"groom_name" validate:"omitempty,max=100"`
	BrideName string   `json:"bride_name" validate:"omitempty,max=100"`
	EventType string   `json:"event_type" validate:"omitempty,max=100"`
	TimeSlot  string   `json:"time_slot"  validate:"omitempty,timeslot"`
	Services  []string `json:"services"   validate:"omitempty,dive,max=100"`
}

func (h *HallDetailsRequest) IsEmpty() bool {
	return h == nil || (h.GroomName == "" && h.BrideName == "" && h.EventType == "" && h.TimeSlot == "" && len(h.Services) == 0)
}

// MergeInto overlays the provided hall fields onto details, creating it when absent.
func (h *HallDetailsRequest) MergeInto(details *model.HallDetails) *model.HallDetails {
	if details == nil {
		details = &model.HallDetails{}
	}

	if h.GroomName != "" {
		details.GroomName = h.GroomName
	}

	if h.BrideName != "" {
		details.BrideName = h.BrideName
	}

	if h.EventType != "" {
		details.EventType = h.EventType
	}

	if h.TimeSlot != "" {
		details.TimeSlot = h.TimeSlot
	}

	if len(h.Services) > 0 {
		details.Services = h.Services
	}

	return details
}

type InitialPaymentRequest struct {
	Amount      float64 `json:"amount"       validate:"gt=0"`
	PaymentType string  `json:"payment_type" validate:"omitempty"`
	Reference   string  `json:"reference"    validate:"omitempty,max=100"`
}

type CreateBookingRequest struct {
	PropertyType          string                 `json:"property_type"           validate:"omitempty,oneof=room hall"`
	FirstName             string                 `json:"first_name"              validate:"required,max=100"`
	LastName              string                 `json:"last_name"               validate:"required,max=100"`
	Email                 string                 `json:"email"                   validate:"required,email,max=200"`
	Mobile                string                 `json:"mobile"                  validate:"required,max=30"`
	CheckIn               string                 `json:"check_in"                validate:"required"`
	CheckOut              string                 `json:"check_out"               validate:"required"`
	Adults                int                    `json:"adults"                  validate:"gte=0"`
	Children              int                    `json:"children"                validate:"gte=0"`
	PaymentMethod         string                 `json:"payment_method"          validate:"required,oneof=cash card upi online paymentLink qr cod bankTransfer"`
	PaymentStatus         string                 `json:"payment_status"          validate:"required,oneof=pending completed failed refunded"`
	Rooms                 []RoomLineRequest      `json:"rooms"                   validate:"required,min=1,dive"`
	RoomCharge            float64                `json:"room_charge"             validate:"gte=0"`
	Taxes                 float64                `json:"taxes"                   validate:"gte=0"`
	AdditionalGuestCharge float64                `json:"additional_guest_charge" validate:"gte=0"`
	ServicesCharge        float64                `json:"services_charge"         validate:"gte=0"`
	Discount              float64                `json:"discount"                validate:"gte=0"`
	DiscountAmount        float64                `json:"discount_amount"         validate:"gte=0"`
	Total                 float64                `json:"total"                   validate:"gte=0"`
	HallDetails           *HallDetailsRequest    `json:"hall_details"            validate:"omitempty"`
	IDProofType           string                 `json:"id_proof_type"           validate:"omitempty,max=50"`
	IDProofNumber         string                 `json:"id_proof_number"         validate:"omitempty,max=50"`
	Notes                 string                 `json:"notes"                   validate:"omitempty,max=2000"`
	GatewayOrderID        string                 `json:"gateway_order_id"        validate:"omitempty,max=100"`
	GatewayPaymentID      string                 `json:"gateway_payment_id"      validate:"omitempty,max=100"`
	GatewaySignature      string                 `json:"gateway_signature"       validate:"omitempty,max=200"`
	PaymentLinkID         string                 `json:"payment_link_id"         validate:"omitempty,max=100"`
	QRCodeID              string                 `json:"qr_code_id"              validate:"omitempty,max=100"`
	InitialPayment        *InitialPaymentRequest `json:"initial_payment"         validate:"omitempty"`
}

// MissingField names the first required field the request lacks, in the order the form presents them.
func (c *CreateBookingRequest) MissingField() string {
	required := []struct {
		name  string
		value string
	}{
		{"first_name", c.FirstName},
		{"last_name", c.LastName},
		{"email", c.Email},
		{"mobile", c.Mobile},
		{"check_in", c.CheckIn},
		{"check_out", c.CheckOut},
		{"payment_method", c.PaymentMethod},
		{"payment_status", c.PaymentStatus},
	}

	for _, field := range required {
		if strings.TrimSpace(field.value) == constant.Empty {
			return field.name
		}
	}

	if len(c.Rooms) == 0 {
		return "rooms"
	}

	return constant.Empty
}

// Stay parses check-in and check-out, accepting RFC 3339 timestamps or plain dates.
func (c *CreateBookingRequest) Stay() (checkIn, checkOut time.Time, err error) {
	if checkIn, err = parseMoment(c.CheckIn); err != nil {
		return checkIn, checkOut, err
	}

	checkOut, err = parseMoment(c.CheckOut)

	return checkIn, checkOut, err
}

func parseMoment(value string) (time.Time, error) {
	if moment, err := time.Parse(constant.DateFormat, value); err == nil {
		return moment, nil
	}

	return timezone.Parse(constant.DayFormat, value)
}

func (c *CreateBookingRequest) propertyType() string {
	if c.PropertyType == constant.Empty {
		return model.PropertyTypeRoom
	}

	return c.PropertyType
}

// ToModel builds the booking with every amount rounded half away from zero to whole currency units.
func (c *CreateBookingRequest) ToModel(user, bookingNumber, guestID string, checkIn, checkOut time.Time) model.Booking {
	now := timezone.Now()

	lines := make([]model.RoomLine, len(c.Rooms))
	for i, line := range c.Rooms {
		lines[i] = model.RoomLine{
			RoomID:     line.RoomID,
			RoomType:   line.RoomType,
			RoomNumber: line.RoomNumber,
			Price:      money.RoundToInt(line.Price),
			Tax:        money.RoundToInt(line.Tax),
			Total:      money.RoundToInt(line.Total),
		}
	}

	booking := model.Booking{
		ID:                    uuid.NewString(),
		BookingNumber:         bookingNumber,
		PropertyType:          c.propertyType(),
		GuestID:               guestID,
		FirstName:             strings.TrimSpace(c.FirstName),
		LastName:              strings.TrimSpace(c.LastName),
		Email:                 strings.ToLower(strings.TrimSpace(c.Email)),
		Mobile:                strings.TrimSpace(c.Mobile),
		CheckIn:               checkIn,
		CheckOut:              checkOut,
		Adults:                c.Adults,
		Children:              c.Children,
		Rooms:                 gModel.NewJSON(lines),
		PaymentMethod:         c.PaymentMethod,
		PaymentStatus:         c.PaymentStatus,
		RoomCharge:            money.RoundToInt(c.RoomCharge),
		Taxes:                 money.RoundToInt(c.Taxes),
		AdditionalGuestCharge: money.RoundToInt(c.AdditionalGuestCharge),
		ServicesCharge:        money.RoundToInt(c.ServicesCharge),
		Discount:              money.RoundToInt(c.Discount),
		DiscountAmount:        money.RoundToInt(c.DiscountAmount),
		Total:                 money.RoundToInt(c.Total),
		Status:                model.StatusBooked,
		StatusTimestamps:      gModel.NewJSON(map[string]time.Time{model.StatusBooked: now}),
		HallDetails:           gModel.NewJSON[*model.HallDetails](nil),
		VerificationFiles:     gModel.NewJSON([]string{}),
		IDProofType:           c.IDProofType,
		IDProofNumber:         c.IDProofNumber,
		Notes:                 c.Notes,
		Metadata:              gModel.NewMetadata(user, now),
	}

	if booking.PropertyType == model.PropertyTypeHall && !c.HallDetails.IsEmpty() {
		booking.HallDetails = gModel.NewJSON(c.HallDetails.MergeInto(nil))
	}

	switch c.PaymentMethod {
	case PaymentMethodOnline:
		booking.GatewayOrderID = c.GatewayOrderID
		booking.GatewayPaymentID = c.GatewayPaymentID
		booking.GatewaySignature = c.GatewaySignature
	case PaymentMethodPaymentLink:
		booking.PaymentLinkID = c.PaymentLinkID
	case PaymentMethodQR:
		booking.QRCodeID = c.QRCodeID
	}

	return booking
}

// TransitionRequest is the typed update accepted by PUT /bookings/{bookingNumber}.
type TransitionRequest struct {
	Status        string                  `json:"status"          validate:"omitempty,oneof=booked checkin checkout cancelled"`
	PaymentStatus string                  `json:"payment_status"  validate:"omitempty,oneof=pending completed failed refunded"`
	IDProofType   string                  `json:"id_proof_type"   validate:"omitempty,max=50"`
	IDProofNumber string                  `json:"id_proof_number" validate:"omitempty,max=50"`
	Notes         string                  `json:"notes"           validate:"omitempty,max=2000"`
	HallDetails   *HallDetailsRequest     `json:"hall_details"    validate:"omitempty"`
	Files         []*multipart.FileHeader `json:"-"               swaggerignore:"true" validate:"omitempty,max=10,dive,mimetypes=image/png image/jpg image/jpeg application/pdf,maxfilesize=5"`
}

func (t *TransitionRequest) IsEmpty() bool {
	return t.Status == "" && t.PaymentStatus == "" && t.IDProofType == "" && t.IDProofNumber == "" &&
		t.Notes == "" && t.HallDetails.IsEmpty() && len(t.Files) == 0
}

// Apply writes the request onto booking and returns the changed columns.
func (t *TransitionRequest) Apply(user string, booking *model.Booking, uploaded []string, now time.Time) map[string]any {
	fields := map[string]any{
		constant.FieldModifiedAt: now,
		constant.FieldModifiedBy: user,
	}

	if t.Status != "" && t.Status != booking.Status {
		booking.Status = t.Status
		booking.StatusTimestamps.V = stamp(booking.StatusTimestamps.V, t.Status, now)
		fields[model.FieldStatus] = booking.Status
		fields[model.FieldStatusTimestamps] = booking.StatusTimestamps
	}

	if t.PaymentStatus != "" {
		booking.PaymentStatus = t.PaymentStatus
		fields[model.FieldPaymentStatus] = booking.PaymentStatus
	}

	if t.IDProofType != "" {
		booking.IDProofType = t.IDProofType
		fields[model.FieldIDProofType] = booking.IDProofType
	}

	if t.IDProofNumber != "" {
		booking.IDProofNumber = t.IDProofNumber
		fields[model.FieldIDProofNumber] = booking.IDProofNumber
	}

	if t.Notes != "" {
		booking.Notes = t.Notes
		fields[model.FieldNotes] = booking.Notes
	}

	if !t.HallDetails.IsEmpty() {
		booking.HallDetails = gModel.NewJSON(t.HallDetails.MergeInto(booking.HallDetails.V))
		fields[model.FieldHallDetails] = booking.HallDetails
	}

	if len(uploaded) > 0 {
		booking.VerificationFiles = gModel.NewJSON(append(booking.VerificationFiles.V, uploaded...))
		fields[model.FieldVerification] = booking.VerificationFiles
	}

	booking.ModifiedAt = now
	booking.ModifiedBy = user

	return fields
}

// CheckoutFields forces a booking into checkout, as the sweep does for overdue stays.
func CheckoutFields(user string, booking *model.Booking, now time.Time) map[string]any {
	booking.Status = model.StatusCheckout
	booking.StatusTimestamps.V = stamp(booking.StatusTimestamps.V, model.StatusCheckout, now)

	return map[string]any{
		model.FieldStatus:           booking.Status,
		model.FieldStatusTimestamps: booking.StatusTimestamps,
		constant.FieldModifiedAt:    now,
		constant.FieldModifiedBy:    user,
	}
}

func stamp(timestamps map[string]time.Time, status string, now time.Time) map[string]time.Time {
	if timestamps == nil {
		timestamps = map[string]time.Time{}
	}

	timestamps[status] = now

	return timestamps
}

type Diagnostic struct {
	Name   string `json:"name"`
	OK     bool   `json:"ok"`
	Reason string `json:"reason,omitempty"`
}

// Diagnostics reports the outcome of each best-effort side effect of a booking write.
type Diagnostics []Diagnostic

func (d *Diagnostics) Record(name string, err error) {
	if err != nil {
		*d = append(*d, Diagnostic{Name: name, Reason: err.Error()})

		return
	}

	*d = append(*d, Diagnostic{Name: name, OK: true})
}

func (d *Diagnostics) Skip(name, reason string) {
	*d = append(*d, Diagnostic{Name: name, Reason: reason})
}

type BookingResponse struct {
	ID                    string             `json:"id"`
	BookingNumber         string             `json:"booking_number"`
	PropertyType          string             `json:"property_type"`
	GuestID               string             `json:"guest_id"`
	FirstName             string             `json:"first_name"`
	LastName              string             `json:"last_name"`
	Email                 string             `json:"email"`
	Mobile                string             `json:"mobile"`
	CheckIn               string             `json:"check_in"`
	CheckOut              string             `json:"check_out"`
	Adults                int                `json:"adults"`
	Children              int                `json:"children"`
	Rooms                 []model.RoomLine   `json:"rooms"`
	PaymentMethod         string             `json:"payment_method"`
	PaymentStatus         string             `json:"payment_status"`
	RoomCharge            int64              `json:"room_charge"`
	Taxes                 int64              `json:"taxes"`
	AdditionalGuestCharge int64              `json:"additional_guest_charge"`
	ServicesCharge        int64              `json:"services_charge"`
	Discount              int64              `json:"discount"`
	DiscountAmount        int64              `json:"discount_amount"`
	Total                 int64              `json:"total"`
	Status                string             `json:"status"`
	StatusTimestamps      map[string]string  `json:"status_timestamps"`
	InvoiceNumber         string             `json:"invoice_number,omitempty"`
	HallDetails           *model.HallDetails `json:"hall_details,omitempty"`
	VerificationFiles     []string           `json:"verification_files"`
	IDProofType           string             `json:"id_proof_type,omitempty"`
	IDProofNumber         string             `json:"id_proof_number,omitempty"`
	Notes                 string             `json:"notes,omitempty"`
	GatewayOrderID        string             `json:"gateway_order_id,omitempty"`
	GatewayPaymentID      string             `json:"gateway_payment_id,omitempty"`
	PaymentLinkID         string             `json:"payment_link_id,omitempty"`
	QRCodeID              string             `json:"qr_code_id,omitempty"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(booking model.Booking) {
	r.ID = booking.ID
	r.BookingNumber = booking.BookingNumber
	r.PropertyType = booking.PropertyType
	r.GuestID = booking.GuestID
	r.FirstName = booking.FirstName
	r.LastName = booking.LastName
	r.Email = booking.Email
	r.Mobile = booking.Mobile
	r.CheckIn = timezone.Format(booking.CheckIn, constant.DateFormat)
	r.CheckOut = timezone.Format(booking.CheckOut, constant.DateFormat)
	r.Adults = booking.Adults
	r.Children = booking.Children
	r.Rooms = booking.Rooms.V
	r.PaymentMethod = booking.PaymentMethod
	r.PaymentStatus = booking.PaymentStatus
	r.RoomCharge = booking.RoomCharge
	r.Taxes = booking.Taxes
	r.AdditionalGuestCharge = booking.AdditionalGuestCharge
	r.ServicesCharge = booking.ServicesCharge
	r.Discount = booking.Discount
	r.DiscountAmount = booking.DiscountAmount
	r.Total = booking.Total
	r.Status = booking.Status
	r.HallDetails = booking.HallDetails.V
	r.VerificationFiles = booking.VerificationFiles.V
	r.IDProofType = booking.IDProofType
	r.IDProofNumber = booking.IDProofNumber
	r.Notes = booking.Notes
	r.GatewayOrderID = booking.GatewayOrderID
	r.GatewayPaymentID = booking.GatewayPaymentID
	r.PaymentLinkID = booking.PaymentLinkID
	r.QRCodeID = booking.QRCodeID
	r.Metadata.FromModel(booking.Metadata)

	if r.Rooms == nil {
		r.Rooms = []model.RoomLine{}
	}

	if r.VerificationFiles == nil {
		r.VerificationFiles = []string{}
	}

	if booking.HasInvoice() {
		r.InvoiceNumber = *booking.InvoiceNumber
	}

	r.StatusTimestamps = make(map[string]string, len(booking.StatusTimestamps.V))
	for status, at := range booking.StatusTimestamps.V {
		r.StatusTimestamps[status] = timezone.Format(at, constant.DateFormat)
	}
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(bookings []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(bookings))
	for i, booking := range bookings {
		r.Bookings[i].FromModel(booking)
	}
}

// WriteResponse carries the booking and the outcome of its side effects.
type WriteResponse struct {
	Booking     BookingResponse `json:"booking"`
	EmailSent   bool            `json:"emailSent"`
	Diagnostics Diagnostics     `json:"diagnostics"`
}

type Event struct {
	BookingNumber  string `json:"booking_number"`
	Status         string `json:"status"`
	PreviousStatus string `json:"previous_status,omitempty"`
	PropertyType   string `json:"property_type"`
	GuestEmail     string `json:"guest_email"`
	Total          int64  `json:"total"`
	OccurredAt     string `json:"occurred_at"`
}

func NewEvent(booking model.Booking, previous string, at time.Time) Event {
	return Event{
		BookingNumber:  booking.BookingNumber,
		Status:         booking.Status,
		PreviousStatus: previous,
		PropertyType:   booking.PropertyType,
		GuestEmail:     booking.Email,
		Total:          booking.Total,
		OccurredAt:     timezone.Format(at, constant.DateFormat),
	}
}

// MailData feeds the confirmation and cancellation templates.
type MailData struct {
	HotelName     string
	BookingNumber string
	GuestName     string
	CheckIn       string
	CheckOut      string
	Rooms         []model.RoomLine
	PaymentMethod string
	PaymentStatus string
	Total         int64
}

func NewMailData(hotelName string, booking model.Booking) MailData {
	return MailData{
		HotelName:     hotelName,
		BookingNumber: booking.BookingNumber,
		GuestName:     booking.GuestName(),
		CheckIn:       timezone.Format(booking.CheckIn, constant.DayFormat),
		CheckOut:      timezone.Format(booking.CheckOut, constant.DayFormat),
		Rooms:         booking.Rooms.V,
		PaymentMethod: booking.PaymentMethod,
		PaymentStatus: booking.PaymentStatus,
		Total:         booking.Total,
	}
}
