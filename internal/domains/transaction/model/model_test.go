package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"hotelier/internal/domains/transaction/model"
)

func TestTransaction_Apply(t *testing.T) {
	tests := []struct {
		name          string
		payable       int64
		amounts       []int64
		wantPaid      int64
		wantRemaining int64
		wantFullyPaid bool
	}{
		{
			name:          "single partial payment",
			payable:       5000,
			amounts:       []int64{1500},
			wantPaid:      1500,
			wantRemaining: 3500,
		},
		{
			name:          "payments summing to payable",
			payable:       5000,
			amounts:       []int64{1500, 2000, 1500},
			wantPaid:      5000,
			wantRemaining: 0,
			wantFullyPaid: true,
		},
		{
			name:          "overpayment clamps remaining balance",
			payable:       5000,
			amounts:       []int64{4000, 2000},
			wantPaid:      6000,
			wantRemaining: 0,
			wantFullyPaid: true,
		},
		{
			name:          "zero payable is fully paid",
			payable:       0,
			amounts:       []int64{0},
			wantPaid:      0,
			wantRemaining: 0,
			wantFullyPaid: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var txn model.Transaction

			for _, amount := range tt.amounts {
				txn.Apply(model.Payment{Amount: amount}, tt.payable)
			}

			assert.Equal(t, tt.wantPaid, txn.TotalPaid)
			assert.Equal(t, tt.wantRemaining, txn.RemainingBalance)
			assert.Equal(t, tt.wantFullyPaid, txn.IsFullyPaid)
			assert.Len(t, txn.Payments.V, len(tt.amounts))

			for i, payment := range txn.Payments.V {
				assert.Equal(t, i+1, payment.PaymentNumber)
			}
		})
	}
}
