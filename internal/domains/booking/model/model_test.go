package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"hotelier/internal/domains/booking/model"
)

func TestNextNumber(t *testing.T) {
	day := time.Date(2025, time.June, 14, 10, 0, 0, 0, time.UTC)
	prefix := model.DailyPrefix(day)

	tests := []struct {
		name     string
		latest   string
		expected string
	}{
		{name: "first of the day", latest: "", expected: "B-140625-0001"},
		{name: "follows latest", latest: "B-140625-0041", expected: "B-140625-0042"},
		{name: "grows past the pad width", latest: "B-140625-9999", expected: "B-140625-10000"},
		{name: "continues past the pad width", latest: "B-140625-10000", expected: "B-140625-10001"},
		{name: "garbage restarts", latest: "B-140625-abc", expected: "B-140625-0001"},
	}

	assert.Equal(t, "B-140625-", prefix)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, model.NextNumber(prefix, tt.latest))
		})
	}
}

func TestBooking_CanTransition(t *testing.T) {
	tests := []struct {
		from, to string
		allowed  bool
	}{
		{model.StatusBooked, model.StatusCheckin, true},
		{model.StatusBooked, model.StatusCheckout, true},
		{model.StatusBooked, model.StatusCancelled, true},
		{model.StatusCheckin, model.StatusCheckout, true},
		{model.StatusCheckin, model.StatusCancelled, true},
		{model.StatusCheckin, model.StatusBooked, false},
		{model.StatusCheckout, model.StatusCheckin, false},
		{model.StatusCancelled, model.StatusBooked, false},
		{model.StatusCheckout, model.StatusCheckout, true},
	}

	for _, tt := range tests {
		t.Run(tt.from+"->"+tt.to, func(t *testing.T) {
			booking := model.Booking{Status: tt.from}
			assert.Equal(t, tt.allowed, booking.CanTransition(tt.to))
		})
	}
}

func TestBooking_Overdue(t *testing.T) {
	now := time.Date(2025, time.June, 14, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)

	assert.True(t, (&model.Booking{Status: model.StatusBooked, CheckOut: past}).Overdue(now))
	assert.True(t, (&model.Booking{Status: model.StatusCheckin, CheckOut: past}).Overdue(now))
	assert.False(t, (&model.Booking{Status: model.StatusCheckout, CheckOut: past}).Overdue(now))
	assert.False(t, (&model.Booking{Status: model.StatusBooked, CheckOut: now.Add(time.Hour)}).Overdue(now))
}
