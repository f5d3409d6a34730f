package razorpay

//go:generate go run go.uber.org/mock/mockgen -source=./razorpay.go -destination=./mocks/razorpay_mock.go -package=mocks

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"hotelier/config"
	"hotelier/infras/otel"
	"hotelier/shared/constant"

	razorpayGo "github.com/razorpay/razorpay-go"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const (
	defaultCurrency = "INR"
	subunitFactor   = 100

	PaymentLinkStatusPaid = "paid"
)

var ErrMissingCredentials = errors.New("payment gateway credentials are not configured")

type Credentials struct {
	KeyID     string
	KeySecret string
}

func (c Credentials) Valid() bool {
	return c.KeyID != "" && c.KeySecret != ""
}

type OrderRequest struct {
	Amount  int64
	Receipt string
	Notes   map[string]string
}

type Order struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

type PaymentLinkRequest struct {
	Amount        int64
	Description   string
	ReferenceID   string
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	CallbackURL   string
}

type PaymentLink struct {
	ID          string `json:"id"`
	ShortURL    string `json:"short_url"`
	Status      string `json:"status"`
	Amount      int64  `json:"amount"`
	AmountPaid  int64  `json:"amount_paid"`
	ReferenceID string `json:"reference_id"`
}

// Gateway wraps the Razorpay REST API. Amounts are whole currency units; conversion to subunits happens here.
type Gateway interface {
	CreateOrder(ctx context.Context, creds Credentials, req OrderRequest) (Order, error)
	CreatePaymentLink(ctx context.Context, creds Credentials, req PaymentLinkRequest) (PaymentLink, error)
	FetchPaymentLink(ctx context.Context, creds Credentials, id string) (PaymentLink, error)
	VerifySignature(creds Credentials, orderID, paymentID, signature string) bool
}

type gatewayImpl struct {
	currency string
	otel     otel.Otel
}

func New(config *config.Config, otel otel.Otel) Gateway {
	currency := config.External.Razorpay.Currency
	if currency == "" {
		currency = defaultCurrency
	}

	return &gatewayImpl{
		currency: currency,
		otel:     otel,
	}
}

func (g *gatewayImpl) client(creds Credentials) (*razorpayGo.Client, error) {
	if !creds.Valid() {
		return nil, ErrMissingCredentials
	}

	return razorpayGo.NewClient(creds.KeyID, creds.KeySecret), nil
}

func (g *gatewayImpl) CreateOrder(ctx context.Context, creds Credentials, req OrderRequest) (res Order, err error) {
	_, scope := g.otel.NewScope(ctx, constant.OtelGatewayScopeName, constant.OtelGatewayScopeName+".CreateOrder")
	defer scope.End()
	defer scope.TraceIfError(err)

	client, err := g.client(creds)
	if err != nil {
		return res, err
	}

	payload := map[string]interface{}{
		"amount":   ToSubunits(req.Amount),
		"currency": g.currency,
		"receipt":  req.Receipt,
	}

	if len(req.Notes) > 0 {
		payload["notes"] = req.Notes
	}

	body, err := client.Order.Create(payload, nil)
	if err != nil {
		log.Error().Err(err).Str("receipt", req.Receipt).Msg("failed to create razorpay order")

		return res, fmt.Errorf("failed to create razorpay order: %w", err)
	}

	res = Order{
		ID:       stringField(body, "id"),
		Amount:   FromSubunits(numberField(body, "amount")),
		Currency: stringField(body, "currency"),
		Receipt:  stringField(body, "receipt"),
		Status:   stringField(body, "status"),
	}

	return res, nil
}

func (g *gatewayImpl) CreatePaymentLink(ctx context.Context, creds Credentials, req PaymentLinkRequest) (res PaymentLink, err error) {
	_, scope := g.otel.NewScope(ctx, constant.OtelGatewayScopeName, constant.OtelGatewayScopeName+".CreatePaymentLink")
	defer scope.End()
	defer scope.TraceIfError(err)

	client, err := g.client(creds)
	if err != nil {
		return res, err
	}

	payload := map[string]interface{}{
		"amount":       ToSubunits(req.Amount),
		"currency":     g.currency,
		"description":  req.Description,
		"reference_id": req.ReferenceID,
		"customer": map[string]interface{}{
			"name":    req.CustomerName,
			"email":   req.CustomerEmail,
			"contact": req.CustomerPhone,
		},
		"notify": map[string]interface{}{
			"sms":   req.CustomerPhone != "",
			"email": req.CustomerEmail != "",
		},
	}

	if req.CallbackURL != "" {
		payload["callback_url"] = req.CallbackURL
		payload["callback_method"] = "get"
	}

	body, err := client.PaymentLink.Create(payload, nil)
	if err != nil {
		log.Error().Err(err).Str("reference", req.ReferenceID).Msg("failed to create razorpay payment link")

		return res, fmt.Errorf("failed to create razorpay payment link: %w", err)
	}

	return paymentLinkFromBody(body), nil
}

func (g *gatewayImpl) FetchPaymentLink(ctx context.Context, creds Credentials, id string) (res PaymentLink, err error) {
	_, scope := g.otel.NewScope(ctx, constant.OtelGatewayScopeName, constant.OtelGatewayScopeName+".FetchPaymentLink")
	defer scope.End()
	defer scope.TraceIfError(err)

	client, err := g.client(creds)
	if err != nil {
		return res, err
	}

	body, err := client.PaymentLink.Fetch(id, nil, nil)
	if err != nil {
		log.Error().Err(err).Str("paymentLinkId", id).Msg("failed to fetch razorpay payment link")

		return res, fmt.Errorf("failed to fetch razorpay payment link: %w", err)
	}

	return paymentLinkFromBody(body), nil
}

// VerifySignature checks the checkout signature, an HMAC-SHA256 of "orderId|paymentId" keyed by the secret.
func (g *gatewayImpl) VerifySignature(creds Credentials, orderID, paymentID, signature string) bool {
	return VerifySignature(creds.KeySecret, orderID, paymentID, signature)
}

func VerifySignature(secret, orderID, paymentID, signature string) bool {
	if secret == "" || orderID == "" || paymentID == "" || signature == "" {
		return false
	}

	return hmac.Equal([]byte(Sign(secret, orderID, paymentID)), []byte(signature))
}

func Sign(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))

	return hex.EncodeToString(mac.Sum(nil))
}

func ToSubunits(amount int64) int64 {
	return decimal.NewFromInt(amount).Mul(decimal.NewFromInt(subunitFactor)).IntPart()
}

func FromSubunits(amount int64) int64 {
	return decimal.NewFromInt(amount).Div(decimal.NewFromInt(subunitFactor)).Round(0).IntPart()
}

func paymentLinkFromBody(body map[string]interface{}) PaymentLink {
	return PaymentLink{
		ID:          stringField(body, "id"),
		ShortURL:    stringField(body, "short_url"),
		Status:      stringField(body, "status"),
		Amount:      FromSubunits(numberField(body, "amount")),
		AmountPaid:  FromSubunits(numberField(body, "amount_paid")),
		ReferenceID: stringField(body, "reference_id"),
	}
}

func stringField(body map[string]interface{}, key string) string {
	value, _ := body[key].(string)

	return value
}

func numberField(body map[string]interface{}, key string) int64 {
	switch value := body[key].(type) {
	case float64:
		return int64(value)
	case int64:
		return value
	case int:
		return int64(value)
	default:
		return 0
	}
}
