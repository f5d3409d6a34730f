package dto_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotelier/internal/domains/booking/model"
	"hotelier/internal/domains/booking/model/dto"
	gModel "hotelier/shared/model"
)

func TestCreateBookingRequest_MissingField(t *testing.T) {
	full := dto.CreateBookingRequest{
		FirstName: "Asha", LastName: "Rao", Email: "a@b.test", Mobile: "9", CheckIn: "2026-11-01",
		CheckOut: "2026-11-02", PaymentMethod: "cash", PaymentStatus: "pending",
		Rooms: []dto.RoomLineRequest{{RoomID: "r", RoomNumber: "101"}},
	}

	tests := []struct {
		name     string
		mutate   func(r *dto.CreateBookingRequest)
		expected string
	}{
		{name: "complete", mutate: func(_ *dto.CreateBookingRequest) {}, expected: ""},
		{name: "blank first name", mutate: func(r *dto.CreateBookingRequest) { r.FirstName = "  " }, expected: "first_name"},
		{name: "mobile before dates", mutate: func(r *dto.CreateBookingRequest) { r.Mobile = ""; r.CheckOut = "" }, expected: "mobile"},
		{name: "payment status", mutate: func(r *dto.CreateBookingRequest) { r.PaymentStatus = "" }, expected: "payment_status"},
		{name: "no rooms", mutate: func(r *dto.CreateBookingRequest) { r.Rooms = nil }, expected: "rooms"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := full
			tt.mutate(&req)

			assert.Equal(t, tt.expected, req.MissingField())
		})
	}
}

func TestCreateBookingRequest_ToModel(t *testing.T) {
	in := time.Date(2026, 11, 1, 12, 0, 0, 0, time.UTC)
	out := in.Add(48 * time.Hour)

	t.Run("hall details only for halls", func(t *testing.T) {
		req := dto.CreateBookingRequest{
			PropertyType:   model.PropertyTypeHall,
			PaymentMethod:  dto.PaymentMethodPaymentLink,
			PaymentLinkID:  "plink_1",
			QRCodeID:       "qr_1",
			RoomCharge:     2.5,
			DiscountAmount: -2.5,
			HallDetails:    &dto.HallDetailsRequest{GroomName: "Ravi", TimeSlot: "10:00-14:00"},
		}

		booking := req.ToModel("staff-1", "B-011126-0001", "G1", in, out)

		require.NotNil(t, booking.HallDetails.V)
		assert.Equal(t, "Ravi", booking.HallDetails.V.GroomName)
		assert.Equal(t, "plink_1", booking.PaymentLinkID)
		assert.Empty(t, booking.QRCodeID)
		assert.Equal(t, int64(3), booking.RoomCharge)
		assert.Equal(t, int64(-3), booking.DiscountAmount)
		assert.Contains(t, booking.StatusTimestamps.V, model.StatusBooked)
	})

	t.Run("room booking ignores hall details", func(t *testing.T) {
		req := dto.CreateBookingRequest{HallDetails: &dto.HallDetailsRequest{GroomName: "Ravi"}}

		booking := req.ToModel("staff-1", "B-011126-0002", "G1", in, out)

		assert.Equal(t, model.PropertyTypeRoom, booking.PropertyType)
		assert.Nil(t, booking.HallDetails.V)
	})
}

func TestCreateBookingRequest_Stay(t *testing.T) {
	req := dto.CreateBookingRequest{CheckIn: "2026-11-01T12:00:00Z", CheckOut: "2026-11-03"}

	checkIn, checkOut, err := req.Stay()

	require.NoError(t, err)
	assert.Equal(t, 12, checkIn.Hour())
	assert.Equal(t, 3, checkOut.Day())

	req.CheckOut = "next week"
	_, _, err = req.Stay()
	assert.Error(t, err)
}

func TestTransitionRequest_Apply(t *testing.T) {
	now := time.Date(2026, 11, 2, 9, 0, 0, 0, time.UTC)
	booking := model.Booking{
		Status:            model.StatusBooked,
		StatusTimestamps:  gModel.NewJSON(map[string]time.Time{model.StatusBooked: now.Add(-time.Hour)}),
		HallDetails:       gModel.NewJSON(&model.HallDetails{GroomName: "Ravi"}),
		VerificationFiles: gModel.NewJSON([]string{"a.png"}),
	}

	req := dto.TransitionRequest{
		Status:      model.StatusCheckin,
		HallDetails: &dto.HallDetailsRequest{BrideName: "Meera"},
	}

	fields := req.Apply("staff-1", &booking, []string{"b.png"}, now)

	assert.Equal(t, model.StatusCheckin, fields[model.FieldStatus])
	assert.Equal(t, now, booking.StatusTimestamps.V[model.StatusCheckin])
	assert.Equal(t, "Ravi", booking.HallDetails.V.GroomName)
	assert.Equal(t, "Meera", booking.HallDetails.V.BrideName)
	assert.Equal(t, []string{"a.png", "b.png"}, booking.VerificationFiles.V)
	assert.NotContains(t, fields, model.FieldNotes)
}

func TestDiagnostics(t *testing.T) {
	var diagnostics dto.Diagnostics

	diagnostics.Record("email", nil)
	diagnostics.Record("event", errors.New("broker down"))
	diagnostics.Skip("invoice", "payment not completed")

	assert.Equal(t, dto.Diagnostics{
		{Name: "email", OK: true},
		{Name: "event", Reason: "broker down"},
		{Name: "invoice", Reason: "payment not completed"},
	}, diagnostics)
}
