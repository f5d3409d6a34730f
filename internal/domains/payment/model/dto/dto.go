package dto

import (
	"hotelier/infras/razorpay"
	"hotelier/shared/money"
)

type CreateOrderRequest struct {
	Amount  float64           `json:"amount"  validate:"gt=0"`
	Receipt string            `json:"receipt" validate:"omitempty,max=40"`
	Notes   map[string]string `json:"notes"`
}

func (c *CreateOrderRequest) ToGateway() razorpay.OrderRequest {
	return razorpay.OrderRequest{
		Amount:  money.RoundToInt(c.Amount),
		Receipt: c.Receipt,
		Notes:   c.Notes,
	}
}

type OrderResponse struct {
	OrderID  string `json:"order_id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
	KeyID    string `json:"key_id"`
}

func (r *OrderResponse) FromGateway(order razorpay.Order, keyID string) {
	r.OrderID = order.ID
	r.Amount = order.Amount
	r.Currency = order.Currency
	r.Receipt = order.Receipt
	r.Status = order.Status
	r.KeyID = keyID
}

type CreatePaymentLinkRequest struct {
	Amount        float64 `json:"amount"         validate:"gt=0"`
	Description   string  `json:"description"    validate:"omitempty,max=2048"`
	ReferenceID   string  `json:"reference_id"   validate:"omitempty,max=40"`
	CustomerName  string  `json:"customer_name"  validate:"required,max=200"`
	CustomerEmail string  `json:"customer_email" validate:"required,email"`
	CustomerPhone string  `json:"customer_phone" validate:"required,max=20"`
	CallbackURL   string  `json:"callback_url"   validate:"omitempty,url"`
}

func (c *CreatePaymentLinkRequest) ToGateway() razorpay.PaymentLinkRequest {
	return razorpay.PaymentLinkRequest{
		Amount:        money.RoundToInt(c.Amount),
		Description:   c.Description,
		ReferenceID:   c.ReferenceID,
		CustomerName:  c.CustomerName,
		CustomerEmail: c.CustomerEmail,
		CustomerPhone: c.CustomerPhone,
		CallbackURL:   c.CallbackURL,
	}
}

type PaymentLinkResponse struct {
	PaymentLinkID string `json:"payment_link_id"`
	ShortURL      string `json:"short_url"`
	Status        string `json:"status"`
	Amount        int64  `json:"amount"`
	AmountPaid    int64  `json:"amount_paid"`
	ReferenceID   string `json:"reference_id,omitempty"`
}

func (r *PaymentLinkResponse) FromGateway(link razorpay.PaymentLink) {
	r.PaymentLinkID = link.ID
	r.ShortURL = link.ShortURL
	r.Status = link.Status
	r.Amount = link.Amount
	r.AmountPaid = link.AmountPaid
	r.ReferenceID = link.ReferenceID
}

type VerifyPaymentRequest struct {
	OrderID   string `json:"razorpay_order_id"   validate:"required"`
	PaymentID string `json:"razorpay_payment_id" validate:"required"`
	Signature string `json:"razorpay_signature"  validate:"required"`
}

type VerifyPaymentResponse struct {
	Verified  bool   `json:"verified"`
	OrderID   string `json:"order_id"`
	PaymentID string `json:"payment_id"`
}

type PaymentStatusResponse struct {
	PaymentLinkResponse
	Paid bool `json:"paid"`
}

func (r *PaymentStatusResponse) FromGateway(link razorpay.PaymentLink) {
	r.PaymentLinkResponse.FromGateway(link)
	r.Paid = link.Status == razorpay.PaymentLinkStatusPaid
}
