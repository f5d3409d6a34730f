package model

import "time"

const (
	CollectionName = "api_keys"

	FieldProvider  = "provider"
	FieldIsActive  = "is_active"
	FieldCreatedAt = "created_at"

	ProviderRazorpay = "razorpay"
)

// APIKey is a gateway credential document managed outside this service.
type APIKey struct {
	ID        string    `bson:"_id,omitempty"`
	Provider  string    `bson:"provider"`
	KeyID     string    `bson:"key_id"`
	KeySecret string    `bson:"key_secret"`
	IsActive  bool      `bson:"is_active"`
	CreatedAt time.Time `bson:"created_at"`
}
