package dto

import (
	"fmt"
	"hotelier/internal/domains/transaction/model"
	"hotelier/shared"
	"hotelier/shared/constant"
	gDto "hotelier/shared/dto"
	gModel "hotelier/shared/model"
	"hotelier/shared/money"
	"hotelier/shared/timezone"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	MethodCash         = "cash"
	MethodCard         = "card"
	MethodUPI          = "upi"
	MethodOnline       = "online"
	MethodPaymentLink  = "paymentLink"
	MethodQR           = "qr"
	MethodCOD          = "cod"
	MethodBankTransfer = "bankTransfer"
)

type RecordPaymentRequest struct {
	BookingNumber    string     `json:"booking_number"     validate:"required"`
	Amount           float64    `json:"amount"             validate:"gt=0"`
	Method           string     `json:"method"             validate:"required,oneof=cash card upi online paymentLink qr cod bankTransfer"`
	PaymentType      string     `json:"payment_type"`
	Reference        string     `json:"reference"          validate:"omitempty,max=100"`
	GatewayPaymentID string     `json:"gateway_payment_id" validate:"omitempty,max=100"`
	PaymentLinkID    string     `json:"payment_link_id"    validate:"omitempty,max=100"`
	QRCodeID         string     `json:"qr_code_id"         validate:"omitempty,max=100"`
	PaidAt           *time.Time `json:"paid_at"`
}

// MissingMethodField names the field the payment method requires but the request lacks.
func (r *RecordPaymentRequest) MissingMethodField() string {
	switch r.Method {
	case MethodPaymentLink:
		if r.PaymentLinkID == constant.Empty {
			return "payment_link_id"
		}
	case MethodOnline:
		if r.GatewayPaymentID == constant.Empty {
			return "gateway_payment_id"
		}
	case MethodQR:
		if r.QRCodeID == constant.Empty {
			return "qr_code_id"
		}
	case MethodBankTransfer, MethodCard, MethodUPI:
		if r.Reference == constant.Empty {
			return "reference"
		}
	}

	return constant.Empty
}

// NormalizePaymentType returns the payment type to store; strict mode reports unknown values instead of defaulting them.
func (r *RecordPaymentRequest) NormalizePaymentType(strict bool) (string, error) {
	paymentType := strings.TrimSpace(r.PaymentType)

	if paymentType == constant.Empty {
		return model.PaymentTypePartial, nil
	}

	if slices.Contains(model.PaymentTypes, paymentType) {
		return paymentType, nil
	}

	if strict {
		return constant.Empty, fmt.Errorf("payment_type must be one of %s", strings.Join(model.PaymentTypes, " "))
	}

	return model.PaymentTypePartial, nil
}

func (r *RecordPaymentRequest) ToPayment(user string) model.Payment {
	paidAt := timezone.Now()
	if r.PaidAt != nil {
		paidAt = *r.PaidAt
	}

	return model.Payment{
		Method:           r.Method,
		Amount:           money.RoundToInt(r.Amount),
		Reference:        r.Reference,
		GatewayPaymentID: r.GatewayPaymentID,
		PaymentLinkID:    r.PaymentLinkID,
		QRCodeID:         r.QRCodeID,
		Status:           model.PaymentStatusCompleted,
		PaidAt:           paidAt,
		RecordedBy:       user,
	}
}

func NewTransaction(user, bookingNumber, paymentType string) model.Transaction {
	return model.Transaction{
		ID:            uuid.NewString(),
		BookingNumber: bookingNumber,
		PaymentType:   paymentType,
		Payments:      gModel.NewJSON([]model.Payment{}),
		Metadata:      gModel.NewMetadata(user, timezone.Now()),
	}
}

type PaymentResponse struct {
	PaymentNumber    int    `json:"payment_number"`
	Method           string `json:"method"`
	Amount           int64  `json:"amount"`
	Reference        string `json:"reference,omitempty"`
	GatewayPaymentID string `json:"gateway_payment_id,omitempty"`
	PaymentLinkID    string `json:"payment_link_id,omitempty"`
	QRCodeID         string `json:"qr_code_id,omitempty"`
	Status           string `json:"status"`
	PaidAt           string `json:"paid_at"`
}

type TransactionResponse struct {
	ID               string            `json:"id"`
	BookingNumber    string            `json:"booking_number"`
	PayableAmount    int64             `json:"payable_amount"`
	TotalPaid        int64             `json:"total_paid"`
	RemainingBalance int64             `json:"remaining_balance"`
	IsFullyPaid      bool              `json:"is_fully_paid"`
	PaymentType      string            `json:"payment_type"`
	Payments         []PaymentResponse `json:"payments"`
	gDto.Metadata
}

func (r *TransactionResponse) FromModel(model model.Transaction) {
	r.ID = model.ID
	r.BookingNumber = model.BookingNumber
	r.PayableAmount = model.PayableAmount
	r.TotalPaid = model.TotalPaid
	r.RemainingBalance = model.RemainingBalance
	r.IsFullyPaid = model.IsFullyPaid
	r.PaymentType = model.PaymentType
	r.Metadata.FromModel(model.Metadata)

	r.Payments = make([]PaymentResponse, len(model.Payments.V))
	for i, payment := range model.Payments.V {
		r.Payments[i] = PaymentResponse{
			PaymentNumber:    payment.PaymentNumber,
			Method:           payment.Method,
			Amount:           payment.Amount,
			Reference:        payment.Reference,
			GatewayPaymentID: payment.GatewayPaymentID,
			PaymentLinkID:    payment.PaymentLinkID,
			QRCodeID:         payment.QRCodeID,
			Status:           payment.Status,
			PaidAt:           timezone.Format(payment.PaidAt, constant.DateFormat),
		}
	}
}

type GetTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	TotalPage    int                   `json:"total_page"`
	TotalData    int                   `json:"total_data"`
}

func (r *GetTransactionsResponse) FromModels(models []model.Transaction, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Transactions = make([]TransactionResponse, len(models))
	for i, mod := range models {
		r.Transactions[i].FromModel(mod)
	}
}
