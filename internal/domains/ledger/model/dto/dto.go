package dto

import (
	"hotelier/internal/domains/ledger/model"
	"hotelier/shared"
	"hotelier/shared/constant"
	gDto "hotelier/shared/dto"
	gModel "hotelier/shared/model"
	"hotelier/shared/money"
	"hotelier/shared/timezone"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PostEntryRequest struct {
	EntryType    string  `json:"entry_type"    validate:"required,oneof=income expense"`
	Category     string  `json:"category"      validate:"required,max=100"`
	Description  string  `json:"description"   validate:"omitempty,max=1000"`
	CashAmount   float64 `json:"cash_amount"   validate:"gte=0"`
	BankAmount   float64 `json:"bank_amount"   validate:"gte=0"`
	OnlineAmount float64 `json:"online_amount" validate:"gte=0"`
	EntryDate    string  `json:"entry_date"    validate:"required,datetime=2006-01-02"`
	Reference    string  `json:"reference"     validate:"omitempty,max=100"`
}

func (p *PostEntryRequest) Amount() decimal.Decimal {
	return money.Sum(money.FromFloat(p.CashAmount), money.FromFloat(p.BankAmount), money.FromFloat(p.OnlineAmount))
}

func (p *PostEntryRequest) ToModel(user string, entryDate time.Time) model.Entry {
	return model.Entry{
		ID:           uuid.NewString(),
		EntryType:    p.EntryType,
		Category:     strings.TrimSpace(p.Category),
		Description:  p.Description,
		CashAmount:   money.FromFloat(p.CashAmount),
		BankAmount:   money.FromFloat(p.BankAmount),
		OnlineAmount: money.FromFloat(p.OnlineAmount),
		Amount:       p.Amount(),
		EntryDate:    entryDate,
		Reference:    p.Reference,
		Metadata:     gModel.NewMetadata(user, timezone.Now()),
	}
}

func NewLedger(user string, month, year int, opening decimal.Decimal) model.Ledger {
	return model.Ledger{
		ID:             uuid.NewString(),
		Month:          month,
		Year:           year,
		OpeningBalance: opening,
		ClosingBalance: opening,
		TotalIncome:    decimal.Zero,
		TotalExpenses:  decimal.Zero,
		NetProfit:      decimal.Zero,
		Metadata:       gModel.NewMetadata(user, timezone.Now()),
	}
}

func LedgerFields(user string, ledger model.Ledger) map[string]any {
	return map[string]any{
		model.FieldClosingBalance: ledger.ClosingBalance,
		model.FieldTotalIncome:    ledger.TotalIncome,
		model.FieldTotalExpenses:  ledger.TotalExpenses,
		model.FieldNetProfit:      ledger.NetProfit,
		constant.FieldModifiedAt:  timezone.Now(),
		constant.FieldModifiedBy:  user,
	}
}

type EntryResponse struct {
	ID           string          `json:"id"`
	EntryType    string          `json:"entry_type"`
	Category     string          `json:"category"`
	Description  string          `json:"description"`
	CashAmount   decimal.Decimal `json:"cash_amount"`
	BankAmount   decimal.Decimal `json:"bank_amount"`
	OnlineAmount decimal.Decimal `json:"online_amount"`
	Amount       decimal.Decimal `json:"amount"`
	Balance      decimal.Decimal `json:"balance"`
	EntryDate    string          `json:"entry_date"`
	Reference    string          `json:"reference"`
	gDto.Metadata
}

func (r *EntryResponse) FromModel(entry model.Entry) {
	r.ID = entry.ID
	r.EntryType = entry.EntryType
	r.Category = entry.Category
	r.Description = entry.Description
	r.CashAmount = entry.CashAmount
	r.BankAmount = entry.BankAmount
	r.OnlineAmount = entry.OnlineAmount
	r.Amount = entry.Amount
	r.Balance = entry.Balance
	r.EntryDate = entry.EntryDate.Format(constant.DayFormat)
	r.Reference = entry.Reference
	r.Metadata.FromModel(entry.Metadata)
}

type LedgerResponse struct {
	ID             string          `json:"id"`
	Month          int             `json:"month"`
	Year           int             `json:"year"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	ClosingBalance decimal.Decimal `json:"closing_balance"`
	TotalIncome    decimal.Decimal `json:"total_income"`
	TotalExpenses  decimal.Decimal `json:"total_expenses"`
	NetProfit      decimal.Decimal `json:"net_profit"`
	Entries        []EntryResponse `json:"entries,omitempty"`
}

func (r *LedgerResponse) FromModel(ledger model.Ledger, entries []model.Entry) {
	r.ID = ledger.ID
	r.Month = ledger.Month
	r.Year = ledger.Year
	r.OpeningBalance = ledger.OpeningBalance
	r.ClosingBalance = ledger.ClosingBalance
	r.TotalIncome = ledger.TotalIncome
	r.TotalExpenses = ledger.TotalExpenses
	r.NetProfit = ledger.NetProfit

	if entries == nil {
		return
	}

	r.Entries = make([]EntryResponse, len(entries))
	for i, entry := range entries {
		r.Entries[i].FromModel(entry)
	}
}

type GetLedgersResponse struct {
	Ledgers   []LedgerResponse `json:"ledgers"`
	TotalPage int              `json:"total_page"`
	TotalData int              `json:"total_data"`
}

func (r *GetLedgersResponse) FromModels(ledgers []model.Ledger, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Ledgers = make([]LedgerResponse, len(ledgers))
	for i, ledger := range ledgers {
		r.Ledgers[i].FromModel(ledger, nil)
	}
}

type PostEntryResponse struct {
	Ledger LedgerResponse `json:"ledger"`
	Entry  EntryResponse  `json:"entry"`
}
