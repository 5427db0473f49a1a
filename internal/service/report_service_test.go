package service_test

import (
	"testing"
	"time"

	"go-inventory-ledger/internal/model"
	"go-inventory-ledger/internal/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func saleAt(ts time.Time, quantity int, unitPrice, profit float64) model.Transaction {
	tx := model.Transaction{
		Type:      model.MovementSale,
		Quantity:  quantity,
		UnitPrice: decimal.NewFromFloat(unitPrice),
		Profit:    decimal.NewFromFloat(profit),
	}
	tx.CreatedAt = ts
	return tx
}

func TestAggregateSalesByMonth(t *testing.T) {
	jan := time.Date(2026, time.January, 12, 10, 0, 0, 0, time.UTC)
	feb := time.Date(2026, time.February, 3, 15, 30, 0, 0, time.UTC)

	fixture := []model.Transaction{
		saleAt(jan, 2, 50, 50),
		saleAt(jan.AddDate(0, 0, 5), 3, 50, 75),
		saleAt(feb, 1, 19.99, 7.50),
		saleAt(feb.Add(4*time.Hour), 4, 19.99, 30),
	}

	report := service.AggregateSalesByMonth(fixture)

	require.Len(t, report, 2)

	assert.Equal(t, "2026-01", report[0].Month)
	assert.Equal(t, 5, report[0].Units)
	// 2*50 + 3*50
	assert.True(t, report[0].Revenue.Equal(decimal.NewFromInt(250)), "got %s", report[0].Revenue)
	assert.True(t, report[0].Profit.Equal(decimal.NewFromInt(125)), "got %s", report[0].Profit)

	assert.Equal(t, "2026-02", report[1].Month)
	assert.Equal(t, 5, report[1].Units)
	// 1*19.99 + 4*19.99
	assert.True(t, report[1].Revenue.Equal(decimal.NewFromFloat(99.95)), "got %s", report[1].Revenue)
	assert.True(t, report[1].Profit.Equal(decimal.NewFromFloat(37.50)), "got %s", report[1].Profit)
}

func TestAggregateSalesByMonth_Empty(t *testing.T) {
	report := service.AggregateSalesByMonth(nil)
	assert.Empty(t, report)
}

func TestAggregateSalesByMonth_SumMatchesRows(t *testing.T) {
	// Property: the monthly sum equals the sum over the underlying rows.
	base := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)

	var fixture []model.Transaction
	expectedRevenue := decimal.Zero
	expectedUnits := 0
	for day := 0; day < 28; day++ {
		qty := (day % 5) + 1
		tx := saleAt(base.AddDate(0, 0, day), qty, 12.50, 0)
		fixture = append(fixture, tx)
		expectedUnits += qty
		expectedRevenue = expectedRevenue.Add(tx.UnitPrice.Mul(decimal.NewFromInt(int64(qty))))
	}

	report := service.AggregateSalesByMonth(fixture)

	require.Len(t, report, 1)
	assert.Equal(t, "2026-03", report[0].Month)
	assert.Equal(t, expectedUnits, report[0].Units)
	assert.True(t, report[0].Revenue.Equal(expectedRevenue), "got %s, want %s", report[0].Revenue, expectedRevenue)
}
