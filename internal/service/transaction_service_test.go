package service_test

import (
	"testing"

	"go-inventory-ledger/internal/ledger"
	"go-inventory-ledger/internal/ledger/mocks"
	"go-inventory-ledger/internal/model"
	"go-inventory-ledger/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServiceUnderTest(variants ...*model.Variant) (service.TransactionService, *mocks.MemUnitOfWork) {
	uow := mocks.NewMemUnitOfWork(variants...)
	svc := service.NewTransactionService(ledger.New(uow), nil, nil)
	return svc, uow
}

func testVariant(quantity int) *model.Variant {
	v := &model.Variant{
		ProductID:    uuid.New(),
		SKU:          "TSH-BLK-M",
		CostPrice:    decimal.NewFromInt(25),
		SellingPrice: decimal.NewFromInt(50),
		Quantity:     quantity,
	}
	v.ID = uuid.New()
	return v
}

func TestSell_ShapesMovement(t *testing.T) {
	variant := testVariant(10)
	svc, uow := newServiceUnderTest(variant)

	result, err := svc.Sell(&service.SellRequest{
		VariantID: variant.ID,
		Quantity:  4,
	}, "user-1", "Alice")

	require.NoError(t, err)
	assert.Equal(t, 6, result.NewQuantity)

	tx := uow.LastTransaction()
	assert.Equal(t, model.MovementSale, tx.Type)
	assert.Equal(t, 4, tx.Quantity)
	assert.True(t, tx.UnitPrice.Equal(decimal.NewFromInt(50)))
}

func TestSell_Validation(t *testing.T) {
	variant := testVariant(10)
	svc, uow := newServiceUnderTest(variant)

	tests := []struct {
		name string
		req  service.SellRequest
	}{
		{"missing variant", service.SellRequest{Quantity: 1}},
		{"zero quantity", service.SellRequest{VariantID: variant.ID}},
		{"negative quantity", service.SellRequest{VariantID: variant.ID, Quantity: -2}},
		{"discount without type", service.SellRequest{
			VariantID: variant.ID,
			Quantity:  1,
			Discount:  decimal.NewFromInt(5),
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Sell(&tt.req, "user-1", "Alice")
			require.ErrorIs(t, err, ledger.ErrInvalidMovement)
		})
	}

	assert.Equal(t, 10, uow.Quantity(variant.ID))
	assert.Empty(t, uow.Transactions)
}

func TestRefillAndPurchase_IncreaseStock(t *testing.T) {
	variant := testVariant(10)
	svc, uow := newServiceUnderTest(variant)

	result, err := svc.Refill(&service.RefillRequest{VariantID: variant.ID, Quantity: 5}, "user-1", "Alice")
	require.NoError(t, err)
	assert.Equal(t, 15, result.NewQuantity)
	assert.Equal(t, model.MovementRefill, uow.LastTransaction().Type)

	result, err = svc.RecordPurchase(&service.RefillRequest{VariantID: variant.ID, Quantity: 3}, "user-1", "Alice")
	require.NoError(t, err)
	assert.Equal(t, 18, result.NewQuantity)
	assert.Equal(t, model.MovementPurchase, uow.LastTransaction().Type)
}

func TestAdjust_SetsAbsoluteQuantity(t *testing.T) {
	variant := testVariant(10)
	svc, uow := newServiceUnderTest(variant)

	result, err := svc.Adjust(&service.AdjustRequest{VariantID: variant.ID, NewQuantity: 2}, "user-1", "Alice")
	require.NoError(t, err)
	assert.Equal(t, 2, result.NewQuantity)
	assert.Equal(t, model.MovementAdjustment, uow.LastTransaction().Type)
	assert.Equal(t, 8, uow.LastTransaction().Quantity)
}

func TestRecord_DispatchesByType(t *testing.T) {
	variant := testVariant(10)
	svc, uow := newServiceUnderTest(variant)

	tests := []struct {
		name         string
		req          service.MovementRequest
		wantQuantity int
	}{
		{"sale", service.MovementRequest{Type: model.MovementSale, VariantID: variant.ID, Quantity: 2}, 8},
		{"refill", service.MovementRequest{Type: model.MovementRefill, VariantID: variant.ID, Quantity: 4}, 12},
		{"purchase", service.MovementRequest{Type: model.MovementPurchase, VariantID: variant.ID, Quantity: 1}, 13},
		{"adjustment", service.MovementRequest{Type: model.MovementAdjustment, VariantID: variant.ID, Quantity: 6}, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := svc.Record(&tt.req, "user-1", "Alice")
			require.NoError(t, err)
			assert.Equal(t, tt.wantQuantity, result.NewQuantity)
			assert.Equal(t, tt.req.Type, uow.LastTransaction().Type)
		})
	}
}

func TestRecord_RejectsUnknownType(t *testing.T) {
	variant := testVariant(10)
	svc, _ := newServiceUnderTest(variant)

	_, err := svc.Record(&service.MovementRequest{
		Type:      "GIVEAWAY",
		VariantID: variant.ID,
		Quantity:  1,
	}, "user-1", "Alice")

	require.ErrorIs(t, err, ledger.ErrInvalidMovement)
}

func TestSell_InsufficientStockSurfacesAvailable(t *testing.T) {
	variant := testVariant(3)
	svc, _ := newServiceUnderTest(variant)

	_, err := svc.Sell(&service.SellRequest{VariantID: variant.ID, Quantity: 5}, "user-1", "Alice")

	var insufficient *ledger.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, 3, insufficient.Available)
}
