package ledger_test

import (
	"testing"

	"go-inventory-ledger/internal/ledger"
	"go-inventory-ledger/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(f float64) decimal.Decimal { return decimal.NewFromFloat(f) }

func TestEffectivePrice(t *testing.T) {
	tests := []struct {
		name         string
		unitPrice    float64
		discount     float64
		discountType model.DiscountType
		expected     float64
	}{
		{"no discount", 50, 0, "", 50},
		{"flat discount", 50, 5, model.DiscountFlat, 45},
		{"percent discount", 50, 10, model.DiscountPercent, 45},
		{"flat discount exceeding price clamps to zero", 50, 80, model.DiscountFlat, 0},
		{"percent discount over 100 clamps to zero", 50, 150, model.DiscountPercent, 0},
		{"negative discount is ignored", 50, -10, model.DiscountFlat, 50},
		{"full flat discount", 50, 50, model.DiscountFlat, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ledger.EffectivePrice(dec(tt.unitPrice), dec(tt.discount), tt.discountType)
			assert.True(t, got.Equal(dec(tt.expected)), "got %s, want %v", got, tt.expected)
		})
	}
}

func TestSaleProfit(t *testing.T) {
	tests := []struct {
		name         string
		unitPrice    float64
		discount     float64
		discountType model.DiscountType
		costPrice    float64
		quantity     int
		expected     float64
	}{
		{"no discount", 50, 0, "", 25, 5, 125},
		{"ten percent on fifty, two units, cost thirty", 50, 10, model.DiscountPercent, 30, 2, 30},
		{"flat five", 50, 5, model.DiscountFlat, 30, 3, 45},
		{"selling below cost is a loss", 20, 0, "", 25, 2, -10},
		{"fractional prices", 19.99, 0, "", 12.49, 4, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ledger.SaleProfit(dec(tt.unitPrice), dec(tt.discount), tt.discountType, dec(tt.costPrice), tt.quantity)
			assert.True(t, got.Equal(dec(tt.expected)), "got %s, want %v", got, tt.expected)
		})
	}
}
