package model

import (
	"hotelier/shared/model"
	"time"
)

const (
	TableName  = "transactions"
	EntityName = "transaction"

	FieldID               = "id"
	FieldBookingNumber    = "booking_number"
	FieldPayableAmount    = "payable_amount"
	FieldTotalPaid        = "total_paid"
	FieldRemainingBalance = "remaining_balance"
	FieldIsFullyPaid      = "is_fully_paid"
	FieldPaymentType      = "payment_type"
	FieldPayments         = "payments"
)

const (
	PaymentTypeAdvance = "advance"
	PaymentTypePartial = "partial"
	PaymentTypeFull    = "full"
	PaymentTypeBalance = "balance"
)

var PaymentTypes = []string{PaymentTypeAdvance, PaymentTypePartial, PaymentTypeFull, PaymentTypeBalance}

const (
	PaymentStatusCompleted = "completed"
)

type Payment struct {
	PaymentNumber    int       `json:"payment_number"`
	Method           string    `json:"method"`
	Amount           int64     `json:"amount"`
	Reference        string    `json:"reference,omitempty"`
	GatewayPaymentID string    `json:"gateway_payment_id,omitempty"`
	PaymentLinkID    string    `json:"payment_link_id,omitempty"`
	QRCodeID         string    `json:"qr_code_id,omitempty"`
	Status           string    `json:"status"`
	PaidAt           time.Time `json:"paid_at"`
	RecordedBy       string    `json:"recorded_by"`
}

// Transaction accumulates every payment made against one booking.
type Transaction struct {
	ID               string                `db:"id"`
	BookingNumber    string                `db:"booking_number"`
	PayableAmount    int64                 `db:"payable_amount"`
	TotalPaid        int64                 `db:"total_paid"`
	RemainingBalance int64                 `db:"remaining_balance"`
	IsFullyPaid      bool                  `db:"is_fully_paid"`
	PaymentType      string                `db:"payment_type"`
	Payments         model.JSON[[]Payment] `db:"payments"`
	model.Metadata
}

// Apply appends the payment and recomputes the running totals against payable.
func (t *Transaction) Apply(payment Payment, payable int64) {
	payment.PaymentNumber = len(t.Payments.V) + 1

	t.Payments.V = append(t.Payments.V, payment)
	t.PayableAmount = payable
	t.TotalPaid += payment.Amount
	t.RemainingBalance = max(0, payable-t.TotalPaid)
	t.IsFullyPaid = t.TotalPaid >= payable
}
