package ledger_test

import (
	"sync"
	"testing"
	"time"

	"go-inventory-ledger/internal/ledger"
	"go-inventory-ledger/internal/ledger/mocks"
	"go-inventory-ledger/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestVariant(quantity int, costPrice, sellingPrice float64) *model.Variant {
	v := &model.Variant{
		ProductID:    uuid.New(),
		SKU:          "SKU-123",
		Color:        "black",
		CostPrice:    decimal.NewFromFloat(costPrice),
		SellingPrice: decimal.NewFromFloat(sellingPrice),
		Quantity:     quantity,
	}
	v.ID = uuid.New()
	return v
}

func saleContext() ledger.MovementContext {
	return ledger.MovementContext{Type: model.MovementSale, UserID: "user-1", UserName: "Alice"}
}

func refillContext() ledger.MovementContext {
	return ledger.MovementContext{Type: model.MovementRefill, UserID: "user-1", UserName: "Alice"}
}

// ============================================
// Validation
// ============================================

func TestApplyMovement_InvalidMovements(t *testing.T) {
	tests := []struct {
		name  string
		delta int
		mc    ledger.MovementContext
	}{
		{"unknown type", -1, ledger.MovementContext{Type: "VOID"}},
		{"zero delta", 0, saleContext()},
		{"sale increasing stock", 3, saleContext()},
		{"refill decreasing stock", -3, refillContext()},
		{"purchase decreasing stock", -3, ledger.MovementContext{Type: model.MovementPurchase}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			variant := newTestVariant(10, 25, 50)
			uow := mocks.NewMemUnitOfWork(variant)
			l := ledger.New(uow)

			_, err := l.ApplyMovement(variant.ID, tt.delta, tt.mc)

			require.ErrorIs(t, err, ledger.ErrInvalidMovement)
			assert.Equal(t, 0, uow.Commits, "no store writes expected")
			assert.Equal(t, 10, uow.Quantity(variant.ID))
		})
	}
}

func TestApplyMovement_VariantNotFound(t *testing.T) {
	uow := mocks.NewMemUnitOfWork()
	l := ledger.New(uow)

	_, err := l.ApplyMovement(uuid.New(), -1, saleContext())

	require.ErrorIs(t, err, ledger.ErrVariantNotFound)
	assert.Empty(t, uow.Transactions)
	assert.Empty(t, uow.Activities)
}

// ============================================
// Quantity invariants
// ============================================

func TestApplyMovement_SequenceOfMovements(t *testing.T) {
	variant := newTestVariant(20, 25, 50)
	uow := mocks.NewMemUnitOfWork(variant)
	l := ledger.New(uow)

	deltas := []struct {
		delta int
		mc    ledger.MovementContext
	}{
		{+10, refillContext()},
		{-5, saleContext()},
		{+4, ledger.MovementContext{Type: model.MovementPurchase}},
		{-12, saleContext()},
		{-7, saleContext()},
	}

	expected := 20
	for _, step := range deltas {
		result, err := l.ApplyMovement(variant.ID, step.delta, step.mc)
		require.NoError(t, err)

		expected += step.delta
		assert.Equal(t, expected, result.NewQuantity)
		assert.GreaterOrEqual(t, result.NewQuantity, 0, "quantity must never go negative")
		assert.Equal(t, expected, uow.Quantity(variant.ID))
	}

	assert.Equal(t, 20+10-5+4-12-7, uow.Quantity(variant.ID))
	assert.Len(t, uow.Transactions, len(deltas))
	assert.Len(t, uow.Activities, len(deltas))
}

func TestApplyMovement_InsufficientStockIsNoOp(t *testing.T) {
	variant := newTestVariant(4, 25, 50)
	uow := mocks.NewMemUnitOfWork(variant)
	l := ledger.New(uow)

	_, err := l.ApplyMovement(variant.ID, -5, saleContext())

	require.ErrorIs(t, err, ledger.ErrInsufficientStock)

	var insufficient *ledger.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, 5, insufficient.Requested)
	assert.Equal(t, 4, insufficient.Available)

	assert.Equal(t, 4, uow.Quantity(variant.ID), "quantity unchanged after rejection")
	assert.Empty(t, uow.Transactions, "no transaction row on failure")
	assert.Empty(t, uow.Activities, "no activity row on failure")
}

// ============================================
// Transaction + activity pairing
// ============================================

func TestApplyMovement_ExactlyOneTransactionAndActivity(t *testing.T) {
	variant := newTestVariant(20, 25, 50)
	uow := mocks.NewMemUnitOfWork(variant)
	l := ledger.New(uow)

	result, err := l.ApplyMovement(variant.ID, -3, saleContext())
	require.NoError(t, err)

	require.Len(t, uow.Transactions, 1)
	require.Len(t, uow.Activities, 1)

	tx := uow.LastTransaction()
	entry := uow.LastActivity()

	assert.Equal(t, variant.ID, tx.VariantID)
	assert.Equal(t, variant.ProductID, tx.ProductID)
	require.NotNil(t, entry.VariantID)
	require.NotNil(t, entry.ProductID)
	assert.Equal(t, variant.ID, *entry.VariantID)
	assert.Equal(t, variant.ProductID, *entry.ProductID)
	assert.Equal(t, model.ActivitySellProduct, entry.Type)

	// Both rows describe the same logical event.
	assert.WithinDuration(t, tx.CreatedAt, entry.CreatedAt, time.Second)
	assert.Equal(t, result.Transaction.ID, tx.ID)
}

func TestApplyMovement_ActivityDetails(t *testing.T) {
	variant := newTestVariant(20, 45.75, 50)
	uow := mocks.NewMemUnitOfWork(variant)
	l := ledger.New(uow)

	_, err := l.ApplyMovement(variant.ID, -3, saleContext())
	require.NoError(t, err)

	assert.Equal(t, "Sold 3 × SKU-123 — profit 12.75", uow.LastActivity().Details)
}

// ============================================
// Profit
// ============================================

func TestApplyMovement_ProfitNoDiscount(t *testing.T) {
	variant := newTestVariant(20, 25, 50)
	uow := mocks.NewMemUnitOfWork(variant)
	l := ledger.New(uow)

	_, err := l.ApplyMovement(variant.ID, -5, saleContext())
	require.NoError(t, err)

	tx := uow.LastTransaction()
	assert.True(t, tx.Profit.Equal(decimal.NewFromInt(125)), "got profit %s", tx.Profit)
}

func TestApplyMovement_ProfitPercentDiscount(t *testing.T) {
	// 10% off a $50 item, 2 units, $30 cost: effective 45, profit (45-30)*2 = 30
	variant := newTestVariant(20, 30, 50)
	uow := mocks.NewMemUnitOfWork(variant)
	l := ledger.New(uow)

	mc := saleContext()
	mc.Discount = decimal.NewFromInt(10)
	mc.DiscountType = model.DiscountPercent

	_, err := l.ApplyMovement(variant.ID, -2, mc)
	require.NoError(t, err)

	tx := uow.LastTransaction()
	assert.True(t, tx.Profit.Equal(decimal.NewFromInt(30)), "got profit %s", tx.Profit)
}

func TestApplyMovement_NoProfitOnRefill(t *testing.T) {
	variant := newTestVariant(20, 25, 50)
	uow := mocks.NewMemUnitOfWork(variant)
	l := ledger.New(uow)

	_, err := l.ApplyMovement(variant.ID, 5, refillContext())
	require.NoError(t, err)

	tx := uow.LastTransaction()
	assert.True(t, tx.Profit.IsZero())
	assert.True(t, tx.UnitPrice.Equal(variant.CostPrice), "inbound stock priced at cost")
}

// ============================================
// Adjustment
// ============================================

func TestApplyAdjustment(t *testing.T) {
	variant := newTestVariant(25, 25, 50)
	uow := mocks.NewMemUnitOfWork(variant)
	l := ledger.New(uow)

	result, err := l.ApplyAdjustment(variant.ID, 40, ledger.MovementContext{UserID: "user-1"})
	require.NoError(t, err)

	assert.Equal(t, 40, result.NewQuantity)
	assert.Equal(t, 40, uow.Quantity(variant.ID))

	tx := uow.LastTransaction()
	assert.Equal(t, model.MovementAdjustment, tx.Type)
	assert.Equal(t, 15, tx.Quantity)
	assert.Equal(t, model.ActivityAdjustStock, uow.LastActivity().Type)
	assert.Equal(t, "Adjusted SKU-123 from 25 to 40", uow.LastActivity().Details)
}

func TestApplyAdjustment_Rejections(t *testing.T) {
	variant := newTestVariant(25, 25, 50)
	uow := mocks.NewMemUnitOfWork(variant)
	l := ledger.New(uow)

	_, err := l.ApplyAdjustment(variant.ID, -1, ledger.MovementContext{})
	require.ErrorIs(t, err, ledger.ErrInvalidMovement)

	_, err = l.ApplyAdjustment(variant.ID, 25, ledger.MovementContext{})
	require.ErrorIs(t, err, ledger.ErrInvalidMovement, "adjusting to the current quantity is a no-op")

	assert.Equal(t, 25, uow.Quantity(variant.ID))
	assert.Empty(t, uow.Transactions)
}

// ============================================
// Concurrency
// ============================================

func TestConcurrentSells_ExactlyOneSucceeds(t *testing.T) {
	variant := newTestVariant(8, 25, 50)
	uow := mocks.NewMemUnitOfWork(variant)
	l := ledger.New(uow)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = l.ApplyMovement(variant.ID, -5, saleContext())
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			require.ErrorIs(t, err, ledger.ErrInsufficientStock)
		}
	}

	assert.Equal(t, 1, succeeded, "exactly one concurrent sale must win")
	assert.Equal(t, 3, uow.Quantity(variant.ID))
	assert.Len(t, uow.Transactions, 1)
	assert.Len(t, uow.Activities, 1)
}

// ============================================
// Conflict retry
// ============================================

func TestApplyMovement_RetriesOnConflict(t *testing.T) {
	variant := newTestVariant(20, 25, 50)
	uow := mocks.NewMemUnitOfWork(variant)
	uow.InjectConflicts(2)
	l := ledger.New(uow)

	result, err := l.ApplyMovement(variant.ID, -5, saleContext())

	require.NoError(t, err)
	assert.Equal(t, 15, result.NewQuantity)
	assert.Equal(t, 1, uow.Commits, "conflicted attempts must not commit")
	assert.Len(t, uow.Transactions, 1)
}

func TestApplyMovement_GivesUpAfterBoundedRetries(t *testing.T) {
	variant := newTestVariant(20, 25, 50)
	uow := mocks.NewMemUnitOfWork(variant)
	uow.InjectConflicts(10)
	l := ledger.New(uow)

	_, err := l.ApplyMovement(variant.ID, -5, saleContext())

	require.ErrorIs(t, err, ledger.ErrConflictRetryable)
	assert.Equal(t, 0, uow.Commits)
	assert.Equal(t, 20, uow.Quantity(variant.ID))
	assert.Empty(t, uow.Transactions)
}

// ============================================
// Scenario from the refill/sell workflow
// ============================================

func TestScenario_RefillThenSells(t *testing.T) {
	variant := newTestVariant(20, 25, 50)
	uow := mocks.NewMemUnitOfWork(variant)
	l := ledger.New(uow)

	result, err := l.ApplyMovement(variant.ID, 10, refillContext())
	require.NoError(t, err)
	assert.Equal(t, 30, result.NewQuantity)

	result, err = l.ApplyMovement(variant.ID, -5, saleContext())
	require.NoError(t, err)
	assert.Equal(t, 25, result.NewQuantity)
	assert.True(t, result.Transaction.Profit.Equal(decimal.NewFromInt(125)),
		"got profit %s", result.Transaction.Profit)

	_, err = l.ApplyMovement(variant.ID, -30, saleContext())
	require.ErrorIs(t, err, ledger.ErrInsufficientStock)
	assert.Equal(t, 25, uow.Quantity(variant.ID))
}
