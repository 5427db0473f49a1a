package ledger

import (
	"go-inventory-ledger/internal/model"

	"github.com/shopspring/decimal"
)

var percentDivisor = decimal.NewFromInt(100)

// DiscountAmount resolves a discount into an absolute amount per unit,
// clamped to [0, unitPrice] so the effective price is never negative.
func DiscountAmount(unitPrice, discount decimal.Decimal, discountType model.DiscountType) decimal.Decimal {
	if discount.IsZero() {
		return decimal.Zero
	}

	amount := discount
	if discountType == model.DiscountPercent {
		amount = unitPrice.Mul(discount).Div(percentDivisor)
	}

	if amount.IsNegative() {
		return decimal.Zero
	}
	if amount.GreaterThan(unitPrice) {
		return unitPrice
	}
	return amount
}

// EffectivePrice is the per-unit price after the discount is applied.
func EffectivePrice(unitPrice, discount decimal.Decimal, discountType model.DiscountType) decimal.Decimal {
	return unitPrice.Sub(DiscountAmount(unitPrice, discount, discountType))
}

// SaleProfit computes (effectivePrice - costPrice) * quantity.
func SaleProfit(unitPrice, discount decimal.Decimal, discountType model.DiscountType, costPrice decimal.Decimal, quantity int) decimal.Decimal {
	effective := EffectivePrice(unitPrice, discount, discountType)
	return effective.Sub(costPrice).Mul(decimal.NewFromInt(int64(quantity)))
}
