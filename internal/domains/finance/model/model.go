package model

import (
	"fmt"
	"hotelier/shared/model"
	"time"
)

const (
	TableName  = "finance_settings"
	EntityName = "finance_settings"

	// SettingsID is the primary key of the singleton settings row.
	SettingsID = "00000000-0000-0000-0000-000000000001"

	FieldID                = "id"
	FieldInvoicePrefix     = "invoice_prefix"
	FieldInvoiceSequence   = "invoice_sequence"
	FieldCurrentYearStart  = "current_year_start"
	FieldCurrentYearEnd    = "current_year_end"
	FieldYearFormat        = "year_format"
	FieldManualYearControl = "manual_year_control"
)

const (
	YearTableName  = "financial_years"
	YearEntityName = "financial_year"

	FieldYearSettingsID = "settings_id"
	FieldYearStartDate  = "start_date"
	FieldYearEndDate    = "end_date"
	FieldYearSequence   = "sequence"
	FieldYearIsActive   = "is_active"
)

// Financial years default to April through March.
const defaultYearStartMonth = time.April

type Settings struct {
	ID                string     `db:"id"`
	InvoicePrefix     string     `db:"invoice_prefix"`
	InvoiceSequence   int64      `db:"invoice_sequence"`
	CurrentYearStart  *time.Time `db:"current_year_start"`
	CurrentYearEnd    *time.Time `db:"current_year_end"`
	YearFormat        string     `db:"year_format"`
	ManualYearControl bool       `db:"manual_year_control"`
	HotelName         string     `db:"hotel_name"`
	HotelAddress      string     `db:"hotel_address"`
	GSTIN             string     `db:"gstin"`
	Phone             string     `db:"phone"`
	Email             string     `db:"email"`
	BrandColor        string     `db:"brand_color"`
	model.Metadata
}

type FinancialYear struct {
	ID         string    `db:"id"`
	SettingsID string    `db:"settings_id"`
	StartDate  time.Time `db:"start_date"`
	EndDate    time.Time `db:"end_date"`
	YearFormat string    `db:"year_format"`
	Sequence   int64     `db:"sequence"`
	IsActive   bool      `db:"is_active"`
	model.Metadata
}

// Covers reports whether day falls inside the year window, both ends inclusive.
func (y *FinancialYear) Covers(day time.Time) bool {
	day = Day(day)

	return !day.Before(Day(y.StartDate)) && !day.After(Day(y.EndDate))
}

// Day truncates t to its calendar date at UTC midnight, the form DATE columns are compared in.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()

	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// WindowEnd is the last day of the twelve-month window starting at start.
func WindowEnd(start time.Time) time.Time {
	return Day(start).AddDate(1, 0, -1)
}

// DefaultWindowStart is the April 1 that opens the financial year containing now.
func DefaultWindowStart(now time.Time) time.Time {
	year := now.Year()
	if now.Month() < defaultYearStartMonth {
		year--
	}

	return time.Date(year, defaultYearStartMonth, 1, 0, 0, 0, 0, time.UTC)
}

// NextWindowStart moves start forward a year at a time until its window covers today.
func NextWindowStart(start, today time.Time) time.Time {
	start = Day(start).AddDate(1, 0, 0)

	for WindowEnd(start).Before(Day(today)) {
		start = start.AddDate(1, 0, 0)
	}

	return start
}

// YearFormat renders the window as YY-YY.
func YearFormat(start, end time.Time) string {
	return fmt.Sprintf("%02d-%02d", start.Year()%100, end.Year()%100)
}

func InvoiceNumber(prefix, yearFormat string, sequence int64) string {
	return fmt.Sprintf("%s/%s/%d", prefix, yearFormat, sequence)
}
