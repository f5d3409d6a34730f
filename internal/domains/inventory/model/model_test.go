package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"hotelier/internal/domains/inventory/model"
)

func TestStockStatus(t *testing.T) {
	tests := []struct {
		name      string
		quantity  int
		threshold int
		expected  string
	}{
		{name: "empty", quantity: 0, threshold: 5, expected: model.StatusOutOfStock},
		{name: "at threshold", quantity: 5, threshold: 5, expected: model.StatusLowStock},
		{name: "below threshold", quantity: 2, threshold: 5, expected: model.StatusLowStock},
		{name: "above threshold", quantity: 6, threshold: 5, expected: model.StatusInStock},
		{name: "no threshold", quantity: 1, threshold: 0, expected: model.StatusInStock},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, model.StockStatus(tt.quantity, tt.threshold))
		})
	}
}
