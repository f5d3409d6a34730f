package dto

import (
	"hotelier/internal/domains/bank/model"
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

type CreateAccountRequest struct {
	AccountName    string  `json:"account_name"    validate:"required,max=100"`
	BankName       string  `json:"bank_name"       validate:"omitempty,max=100"`
	AccountNumber  string  `json:"account_number"  validate:"omitempty,max=40"`
	IFSC           string  `json:"ifsc"            validate:"omitempty,max=20"`
	AccountType    string  `json:"account_type"    validate:"required,oneof=bank cash"`
	OpeningBalance float64 `json:"opening_balance" validate:"gte=0"`
}

func (c *CreateAccountRequest) ToModel(user string) model.Account {
	opening := money.FromFloat(c.OpeningBalance)

	return model.Account{
		ID:             uuid.NewString(),
		AccountName:    strings.TrimSpace(c.AccountName),
		BankName:       c.BankName,
		AccountNumber:  c.AccountNumber,
		IFSC:           strings.ToUpper(c.IFSC),
		AccountType:    c.AccountType,
		OpeningBalance: opening,
		CurrentBalance: opening,
		IsActive:       true,
		Metadata:       gModel.NewMetadata(user, timezone.Now()),
	}
}

type UpdateAccountRequest struct {
	AccountName   string `db:"account_name"   json:"account_name"   validate:"omitempty,max=100"`
	BankName      string `db:"bank_name"      json:"bank_name"      validate:"omitempty,max=100"`
	AccountNumber string `db:"account_number" json:"account_number" validate:"omitempty,max=40"`
	IFSC          string `db:"ifsc"           json:"ifsc"           validate:"omitempty,max=20"`
	IsActive      *bool  `json:"is_active"`
}

func (u *UpdateAccountRequest) IsEmpty() bool {
	return u.AccountName == "" && u.BankName == "" && u.AccountNumber == "" && u.IFSC == "" && u.IsActive == nil
}

func (u *UpdateAccountRequest) ToFields(user string) map[string]any {
	fields := shared.TransformFields(*u, user)

	if u.IsActive != nil {
		fields[model.FieldIsActive] = *u.IsActive
	}

	return fields
}

type RecordEntryRequest struct {
	AccountID        string  `json:"account_id"         validate:"required,uuid"`
	EntryType        string  `json:"entry_type"         validate:"required,oneof=deposit withdrawal transfer"`
	Amount           float64 `json:"amount"             validate:"gt=0"`
	CounterAccountID string  `json:"counter_account_id" validate:"omitempty,uuid"`
	Description      string  `json:"description"        validate:"omitempty,max=1000"`
	Reference        string  `json:"reference"          validate:"omitempty,max=100"`
	EntryDate        string  `json:"entry_date"         validate:"omitempty,datetime=2006-01-02"`
}

func (r *RecordEntryRequest) IsTransfer() bool {
	return r.EntryType == model.EntryTypeTransfer
}

func (r *RecordEntryRequest) Date() time.Time {
	if date, err := time.Parse(constant.DayFormat, r.EntryDate); err == nil {
		return date
	}

	y, m, d := timezone.Now().Date()

	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (r *RecordEntryRequest) ToEntry(user, accountID string, counterAccountID *string, balanceAfter decimal.Decimal) model.Entry {
	return model.Entry{
		ID:               uuid.NewString(),
		AccountID:        accountID,
		EntryType:        r.EntryType,
		Amount:           money.FromFloat(r.Amount),
		CounterAccountID: counterAccountID,
		BalanceAfter:     balanceAfter,
		Description:      r.Description,
		Reference:        r.Reference,
		EntryDate:        r.Date(),
		Metadata:         gModel.NewMetadata(user, timezone.Now()),
	}
}

func BalanceFields(user string, balance decimal.Decimal) map[string]any {
	return map[string]any{
		model.FieldCurrentBalance: balance,
		constant.FieldModifiedAt:  timezone.Now(),
		constant.FieldModifiedBy:  user,
	}
}

type AccountResponse struct {
	ID             string          `json:"id"`
	AccountName    string          `json:"account_name"`
	BankName       string          `json:"bank_name"`
	AccountNumber  string          `json:"account_number"`
	IFSC           string          `json:"ifsc"`
	AccountType    string          `json:"account_type"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	CurrentBalance decimal.Decimal `json:"current_balance"`
	IsActive       bool            `json:"is_active"`
	gDto.Metadata
}

func (r *AccountResponse) FromModel(account model.Account) {
	r.ID = account.ID
	r.AccountName = account.AccountName
	r.BankName = account.BankName
	r.AccountNumber = account.AccountNumber
	r.IFSC = account.IFSC
	r.AccountType = account.AccountType
	r.OpeningBalance = account.OpeningBalance
	r.CurrentBalance = account.CurrentBalance
	r.IsActive = account.IsActive
	r.Metadata.FromModel(account.Metadata)
}

type GetAccountsResponse struct {
	Accounts  []AccountResponse `json:"accounts"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetAccountsResponse) FromModels(accounts []model.Account, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Accounts = make([]AccountResponse, len(accounts))
	for i, account := range accounts {
		r.Accounts[i].FromModel(account)
	}
}

type EntryResponse struct {
	ID               string          `json:"id"`
	AccountID        string          `json:"account_id"`
	EntryType        string          `json:"entry_type"`
	Amount           decimal.Decimal `json:"amount"`
	CounterAccountID string          `json:"counter_account_id,omitempty"`
	BalanceAfter     decimal.Decimal `json:"balance_after"`
	Description      string          `json:"description"`
	Reference        string          `json:"reference"`
	EntryDate        string          `json:"entry_date"`
	gDto.Metadata
}

func (r *EntryResponse) FromModel(entry model.Entry) {
	r.ID = entry.ID
	r.AccountID = entry.AccountID
	r.EntryType = entry.EntryType
	r.Amount = entry.Amount
	r.BalanceAfter = entry.BalanceAfter
	r.Description = entry.Description
	r.Reference = entry.Reference
	r.EntryDate = entry.EntryDate.Format(constant.DayFormat)
	r.Metadata.FromModel(entry.Metadata)

	if entry.CounterAccountID != nil {
		r.CounterAccountID = *entry.CounterAccountID
	}
}

type GetEntriesResponse struct {
	Entries   []EntryResponse `json:"entries"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetEntriesResponse) FromModels(entries []model.Entry, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Entries = make([]EntryResponse, len(entries))
	for i, entry := range entries {
		r.Entries[i].FromModel(entry)
	}
}

type RecordEntryResponse struct {
	Account        AccountResponse  `json:"account"`
	Entry          EntryResponse    `json:"entry"`
	CounterAccount *AccountResponse `json:"counter_account,omitempty"`
}
