package dto

import (
	"errors"
	"hotelier/internal/domains/finance/model"
	"hotelier/shared"
	"hotelier/shared/constant"
	gDto "hotelier/shared/dto"
	gModel "hotelier/shared/model"
	"hotelier/shared/timezone"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrStartNotMonthStart = errors.New("Start date must be the first day of a month") //nolint:revive,stylecheck
	ErrEndNotMonthEnd     = errors.New("End date must be the last day of a month")    //nolint:revive,stylecheck
	ErrEndBeforeStart     = errors.New("End date must be after start date")           //nolint:revive,stylecheck
	ErrWindowTooLong      = errors.New("Financial year cannot exceed 12 months")      //nolint:revive,stylecheck
)

type UpdateSettingsRequest struct {
	InvoicePrefix     string `db:"invoice_prefix"      json:"invoice_prefix"      validate:"omitempty,invoiceprefix"`
	ManualYearControl *bool  `db:"manual_year_control" json:"manual_year_control" validate:"omitempty"`
	HotelName         string `db:"hotel_name"          json:"hotel_name"          validate:"omitempty,max=200"`
	HotelAddress      string `db:"hotel_address"       json:"hotel_address"       validate:"omitempty,max=1000"`
	GSTIN             string `db:"gstin"               json:"gstin"               validate:"omitempty,gstin"`
	Phone             string `db:"phone"               json:"phone"               validate:"omitempty,max=30"`
	Email             string `db:"email"               json:"email"               validate:"omitempty,email"`
	BrandColor        string `db:"brand_color"         json:"brand_color"         validate:"omitempty,hexcolor"`
}

func (u *UpdateSettingsRequest) IsEmpty() bool {
	return u.InvoicePrefix == "" && u.ManualYearControl == nil && u.HotelName == "" && u.HotelAddress == "" &&
		u.GSTIN == "" && u.Phone == "" && u.Email == "" && u.BrandColor == ""
}

func (u *UpdateSettingsRequest) ToFields(user string) map[string]any {
	fields := shared.TransformFields(*u, user)

	// TransformFields skips zero values, so switching manual control off has to be set explicitly.
	if u.ManualYearControl != nil {
		fields[model.FieldManualYearControl] = *u.ManualYearControl
	}

	return fields
}

type YearWindowRequest struct {
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date"   validate:"required,datetime=2006-01-02"`
}

func (y *YearWindowRequest) Parse() (start, end time.Time, err error) {
	start, err = time.Parse(constant.DayFormat, y.StartDate)
	if err != nil {
		return start, end, err
	}

	end, err = time.Parse(constant.DayFormat, y.EndDate)

	return start, end, err
}

type CreateYearRequest struct {
	YearWindowRequest
	Activate bool `json:"activate"`
}

// ValidateWindow checks the window is whole months, ordered, and at most twelve months long.
func ValidateWindow(start, end time.Time) error {
	if start.Day() != 1 {
		return ErrStartNotMonthStart
	}

	if end.AddDate(0, 0, 1).Day() != 1 {
		return ErrEndNotMonthEnd
	}

	if !end.After(start) {
		return ErrEndBeforeStart
	}

	if end.After(model.WindowEnd(start)) {
		return ErrWindowTooLong
	}

	return nil
}

func NewFinancialYear(user, settingsID string, start, end time.Time, active bool) model.FinancialYear {
	return model.FinancialYear{
		ID:         uuid.NewString(),
		SettingsID: settingsID,
		StartDate:  model.Day(start),
		EndDate:    model.Day(end),
		YearFormat: model.YearFormat(start, end),
		IsActive:   active,
		Metadata:   gModel.NewMetadata(user, timezone.Now()),
	}
}

func NewSettings(user, prefix string) model.Settings {
	return model.Settings{
		ID:            model.SettingsID,
		InvoicePrefix: strings.ToUpper(prefix),
		Metadata:      gModel.NewMetadata(user, timezone.Now()),
	}
}

// MirrorYear returns the settings columns that follow the active year.
func MirrorYear(user string, year model.FinancialYear) map[string]any {
	return map[string]any{
		model.FieldCurrentYearStart: year.StartDate.Format(constant.DayFormat),
		model.FieldCurrentYearEnd:   year.EndDate.Format(constant.DayFormat),
		model.FieldYearFormat:       year.YearFormat,
		model.FieldInvoiceSequence:  year.Sequence,
		constant.FieldModifiedAt:    timezone.Now(),
		constant.FieldModifiedBy:    user,
	}
}

type FinancialYearResponse struct {
	ID         string `json:"id"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	YearFormat string `json:"year_format"`
	Sequence   int64  `json:"sequence"`
	IsActive   bool   `json:"is_active"`
}

func (r *FinancialYearResponse) FromModel(year model.FinancialYear) {
	r.ID = year.ID
	r.StartDate = year.StartDate.Format(constant.DayFormat)
	r.EndDate = year.EndDate.Format(constant.DayFormat)
	r.YearFormat = year.YearFormat
	r.Sequence = year.Sequence
	r.IsActive = year.IsActive
}

type SettingsResponse struct {
	ID                string                  `json:"id"`
	InvoicePrefix     string                  `json:"invoice_prefix"`
	InvoiceSequence   int64                   `json:"invoice_sequence"`
	CurrentYearStart  string                  `json:"current_year_start,omitempty"`
	CurrentYearEnd    string                  `json:"current_year_end,omitempty"`
	YearFormat        string                  `json:"year_format"`
	ManualYearControl bool                    `json:"manual_year_control"`
	HotelName         string                  `json:"hotel_name"`
	HotelAddress      string                  `json:"hotel_address"`
	GSTIN             string                  `json:"gstin"`
	Phone             string                  `json:"phone"`
	Email             string                  `json:"email"`
	BrandColor        string                  `json:"brand_color"`
	FinancialYears    []FinancialYearResponse `json:"financial_years"`
	gDto.Metadata
}

func (r *SettingsResponse) FromModel(settings model.Settings, years []model.FinancialYear) {
	r.ID = settings.ID
	r.InvoicePrefix = settings.InvoicePrefix
	r.InvoiceSequence = settings.InvoiceSequence
	r.YearFormat = settings.YearFormat
	r.ManualYearControl = settings.ManualYearControl
	r.HotelName = settings.HotelName
	r.HotelAddress = settings.HotelAddress
	r.GSTIN = settings.GSTIN
	r.Phone = settings.Phone
	r.Email = settings.Email
	r.BrandColor = settings.BrandColor
	r.Metadata.FromModel(settings.Metadata)

	if settings.CurrentYearStart != nil {
		r.CurrentYearStart = settings.CurrentYearStart.Format(constant.DayFormat)
	}

	if settings.CurrentYearEnd != nil {
		r.CurrentYearEnd = settings.CurrentYearEnd.Format(constant.DayFormat)
	}

	r.FinancialYears = make([]FinancialYearResponse, len(years))
	for i, year := range years {
		r.FinancialYears[i].FromModel(year)
	}
}

type InvoiceNumberResponse struct {
	InvoiceNumber string `json:"invoice_number"`
	Sequence      int64  `json:"sequence"`
	YearFormat    string `json:"year_format"`
}
