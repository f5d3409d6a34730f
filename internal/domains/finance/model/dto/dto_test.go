package dto_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"hotelier/internal/domains/finance/model/dto"
)

func TestValidateWindow(t *testing.T) {
	date := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}

	tests := []struct {
		name    string
		start   time.Time
		end     time.Time
		wantErr error
	}{
		{name: "april to march", start: date(2025, time.April, 1), end: date(2026, time.March, 31)},
		{name: "single month", start: date(2025, time.February, 1), end: date(2025, time.February, 28)},
		{name: "start mid month", start: date(2025, time.April, 15), end: date(2026, time.March, 31), wantErr: dto.ErrStartNotMonthStart},
		{name: "end mid month", start: date(2025, time.April, 1), end: date(2026, time.March, 30), wantErr: dto.ErrEndNotMonthEnd},
		{name: "end before start", start: date(2025, time.April, 1), end: date(2025, time.January, 31), wantErr: dto.ErrEndBeforeStart},
		{name: "longer than a year", start: date(2025, time.April, 1), end: date(2026, time.April, 30), wantErr: dto.ErrWindowTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantErr, dto.ValidateWindow(tt.start, tt.end))
		})
	}
}

func TestValidateWindow_StartMessage(t *testing.T) {
	err := dto.ValidateWindow(time.Date(2025, time.April, 2, 0, 0, 0, 0, time.UTC), time.Date(2026, time.March, 31, 0, 0, 0, 0, time.UTC))

	assert.EqualError(t, err, "Start date must be the first day of a month")
}
