package domain_test

import (
	"testing"

	"github.com/DeveloperWK/product-inventory-api/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTransaction_Delta(t *testing.T) {
	tests := []struct {
		name string
		txn  domain.Transaction
		want decimal.Decimal
	}{
		{
			name: "income adds the amount",
			txn: domain.Transaction{
				TxnType: domain.TxnIncome,
				Amount:  decimal.NewFromInt(500),
			},
			want: decimal.NewFromInt(500),
		},
		{
			name: "expense subtracts the amount",
			txn: domain.Transaction{
				TxnType: domain.TxnExpense,
				Amount:  decimal.NewFromInt(500),
			},
			want: decimal.NewFromInt(-500),
		},
		{
			name: "outgoing transfer leg subtracts",
			txn: domain.Transaction{
				TxnType:     domain.TxnTransfer,
				Amount:      decimal.NewFromInt(250),
				TransferOut: true,
			},
			want: decimal.NewFromInt(-250),
		},
		{
			name: "incoming transfer leg adds",
			txn: domain.Transaction{
				TxnType:     domain.TxnTransfer,
				Amount:      decimal.NewFromInt(250),
				TransferOut: false,
			},
			want: decimal.NewFromInt(250),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.want.Equal(tt.txn.Delta()), "want %s got %s", tt.want, tt.txn.Delta())
		})
	}
}
