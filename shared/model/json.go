package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
)

var errUnsupportedJSONSource = errors.New("unsupported JSON column source")

// JSON stores V in a JSONB column.
type JSON[V any] struct {
	V V
}

func NewJSON[V any](v V) JSON[V] {
	return JSON[V]{V: v}
}

// Value implements driver.Valuer.
func (j JSON[V]) Value() (driver.Value, error) {
	raw, err := json.Marshal(j.V)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON column: %w", err)
	}

	return raw, nil
}

// Scan implements sql.Scanner.
func (j *JSON[V]) Scan(src any) error {
	var raw []byte

	switch value := src.(type) {
	case nil:
		var zero V
		j.V = zero

		return nil
	case []byte:
		raw = value
	case string:
		raw = []byte(value)
	default:
		return fmt.Errorf("%w: %T", errUnsupportedJSONSource, src)
	}

	if err := json.Unmarshal(raw, &j.V); err != nil {
		return fmt.Errorf("failed to unmarshal JSON column: %w", err)
	}

	return nil
}

func (j JSON[V]) MarshalJSON() ([]byte, error) {
	return json.Marshal(j.V)
}

func (j *JSON[V]) UnmarshalJSON(raw []byte) error {
	return json.Unmarshal(raw, &j.V)
}
