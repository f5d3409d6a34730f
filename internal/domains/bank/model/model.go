package model

import (
	"hotelier/shared/model"
	"time"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "bank_accounts"
	EntityName = "bank_account"

	FieldID             = "id"
	FieldAccountName    = "account_name"
	FieldAccountType    = "account_type"
	FieldCurrentBalance = "current_balance"
	FieldIsActive       = "is_active"
)

const (
	EntryTableName  = "bank_entries"
	EntryEntityName = "bank_entry"

	FieldEntryAccountID = "account_id"
)

const (
	AccountTypeBank = "bank"
	AccountTypeCash = "cash"
)

const (
	EntryTypeDeposit    = "deposit"
	EntryTypeWithdrawal = "withdrawal"
	EntryTypeTransfer   = "transfer"
)

type Account struct {
	ID             string          `db:"id"`
	AccountName    string          `db:"account_name"`
	BankName       string          `db:"bank_name"`
	AccountNumber  string          `db:"account_number"`
	IFSC           string          `db:"ifsc"`
	AccountType    string          `db:"account_type"`
	OpeningBalance decimal.Decimal `db:"opening_balance"`
	CurrentBalance decimal.Decimal `db:"current_balance"`
	IsActive       bool            `db:"is_active"`
	model.Metadata
}

// Covers reports whether the account can pay out amount.
func (a *Account) Covers(amount decimal.Decimal) bool {
	return a.CurrentBalance.GreaterThanOrEqual(amount)
}

type Entry struct {
	ID               string          `db:"id"`
	AccountID        string          `db:"account_id"`
	EntryType        string          `db:"entry_type"`
	Amount           decimal.Decimal `db:"amount"`
	CounterAccountID *string         `db:"counter_account_id"`
	BalanceAfter     decimal.Decimal `db:"balance_after"`
	Description      string          `db:"description"`
	Reference        string          `db:"reference"`
	EntryDate        time.Time       `db:"entry_date"`
	model.Metadata
}
