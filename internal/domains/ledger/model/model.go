package model

import (
	"hotelier/shared/model"
	"time"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "ledgers"
	EntityName = "ledger"

	FieldID             = "id"
	FieldMonth          = "month"
	FieldYear           = "year"
	FieldClosingBalance = "closing_balance"
	FieldTotalIncome    = "total_income"
	FieldTotalExpenses  = "total_expenses"
	FieldNetProfit      = "net_profit"
)

const (
	EntryTableName  = "ledger_entries"
	EntryEntityName = "ledger_entry"

	FieldEntryLedgerID = "ledger_id"
	FieldEntryType     = "entry_type"
	FieldEntryCategory = "category"
)

const (
	EntryTypeIncome  = "income"
	EntryTypeExpense = "expense"
)

// Ledger is the book of one calendar month.
type Ledger struct {
	ID             string          `db:"id"`
	Month          int             `db:"month"`
	Year           int             `db:"year"`
	OpeningBalance decimal.Decimal `db:"opening_balance"`
	ClosingBalance decimal.Decimal `db:"closing_balance"`
	TotalIncome    decimal.Decimal `db:"total_income"`
	TotalExpenses  decimal.Decimal `db:"total_expenses"`
	NetProfit      decimal.Decimal `db:"net_profit"`
	model.Metadata
}

type Entry struct {
	ID           string          `db:"id"`
	LedgerID     string          `db:"ledger_id"`
	EntryType    string          `db:"entry_type"`
	Category     string          `db:"category"`
	Description  string          `db:"description"`
	CashAmount   decimal.Decimal `db:"cash_amount"`
	BankAmount   decimal.Decimal `db:"bank_amount"`
	OnlineAmount decimal.Decimal `db:"online_amount"`
	Amount       decimal.Decimal `db:"amount"`
	Balance      decimal.Decimal `db:"balance"`
	EntryDate    time.Time       `db:"entry_date"`
	Reference    string          `db:"reference"`
	model.Metadata
}

// Post applies entry to the month totals and stamps the entry with the running balance.
func (l *Ledger) Post(entry *Entry) {
	switch entry.EntryType {
	case EntryTypeIncome:
		l.TotalIncome = l.TotalIncome.Add(entry.Amount)
		l.ClosingBalance = l.ClosingBalance.Add(entry.Amount)
	case EntryTypeExpense:
		l.TotalExpenses = l.TotalExpenses.Add(entry.Amount)
		l.ClosingBalance = l.ClosingBalance.Sub(entry.Amount)
	}

	l.NetProfit = l.TotalIncome.Sub(l.TotalExpenses)
	entry.LedgerID = l.ID
	entry.Balance = l.ClosingBalance
}
