package ledger

import (
	"errors"
	"fmt"

	"go-inventory-ledger/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// defaultMaxRetries bounds how often a movement is replayed after a
// serialization conflict before the failure is surfaced to the caller.
const defaultMaxRetries = 3

// MovementContext carries everything about a movement besides the quantity
// delta: what kind of movement it is, pricing, and who triggered it.
type MovementContext struct {
	Type model.MovementType

	// UnitPrice overrides the price snapshot taken from the variant
	// (selling price for sales, cost price otherwise).
	UnitPrice    *decimal.Decimal
	Discount     decimal.Decimal
	DiscountType model.DiscountType

	UserID   string
	UserName string
	Note     string
}

// MovementResult reports the durable outcome of one applied movement.
type MovementResult struct {
	Variant     *model.Variant
	NewQuantity int
	Transaction *model.Transaction
	Activity    *model.Activity
}

// Ledger is the sole authority for mutating Variant.Quantity. Every movement
// runs as one unit of work: quantity update, transaction insert, and activity
// insert commit together or not at all.
type Ledger struct {
	uow        UnitOfWork
	maxRetries int
}

func New(uow UnitOfWork) *Ledger {
	return &Ledger{uow: uow, maxRetries: defaultMaxRetries}
}

// ApplyMovement applies a signed quantity delta to a variant. Positive deltas
// are incoming stock, negative deltas outgoing. The delta's sign must agree
// with the movement type.
func (l *Ledger) ApplyMovement(variantID uuid.UUID, delta int, mc MovementContext) (*MovementResult, error) {
	if err := validateMovement(delta, mc); err != nil {
		return nil, err
	}
	return l.applyWithRetry(variantID, delta, nil, mc)
}

// ApplyAdjustment sets a variant's quantity to an absolute target. The delta
// is derived from the locked row inside the transaction, so concurrent
// movements cannot slip in between read and write.
func (l *Ledger) ApplyAdjustment(variantID uuid.UUID, newQuantity int, mc MovementContext) (*MovementResult, error) {
	if newQuantity < 0 {
		return nil, fmt.Errorf("%w: target quantity %d is negative", ErrInvalidMovement, newQuantity)
	}
	mc.Type = model.MovementAdjustment
	return l.applyWithRetry(variantID, 0, &newQuantity, mc)
}

func validateMovement(delta int, mc MovementContext) error {
	if !mc.Type.Valid() {
		return fmt.Errorf("%w: unknown type %q", ErrInvalidMovement, mc.Type)
	}
	if delta == 0 {
		return fmt.Errorf("%w: quantity must be non-zero", ErrInvalidMovement)
	}
	switch mc.Type {
	case model.MovementSale:
		if delta > 0 {
			return fmt.Errorf("%w: sale must decrease stock", ErrInvalidMovement)
		}
	case model.MovementRefill, model.MovementPurchase:
		if delta < 0 {
			return fmt.Errorf("%w: %s must increase stock", ErrInvalidMovement, mc.Type)
		}
	}
	return nil
}

func (l *Ledger) applyWithRetry(variantID uuid.UUID, delta int, target *int, mc MovementContext) (*MovementResult, error) {
	var (
		result *MovementResult
		err    error
	)
	for attempt := 0; attempt <= l.maxRetries; attempt++ {
		result, err = l.apply(variantID, delta, target, mc)
		if err == nil || !errors.Is(err, ErrConflictRetryable) {
			return result, err
		}
	}
	return nil, err
}

func (l *Ledger) apply(variantID uuid.UUID, delta int, target *int, mc MovementContext) (*MovementResult, error) {
	var result *MovementResult

	err := l.uow.WithinTx(func(s TxStores) error {
		variant, err := s.Variants().LockForUpdate(variantID)
		if err != nil {
			return err
		}

		d := delta
		if target != nil {
			d = *target - variant.Quantity
			if d == 0 {
				return fmt.Errorf("%w: quantity is already %d", ErrInvalidMovement, variant.Quantity)
			}
		}

		newQuantity := variant.Quantity + d
		if newQuantity < 0 {
			return &InsufficientStockError{
				VariantID: variant.ID,
				Requested: -d,
				Available: variant.Quantity,
			}
		}

		if err := s.Variants().UpdateQuantity(variant.ID, newQuantity, mc.UserID); err != nil {
			return err
		}

		tx := l.buildTransaction(variant, d, mc)
		if err := s.Transactions().Create(tx); err != nil {
			return err
		}

		entry := buildActivity(variant, tx, d, newQuantity, mc)
		if err := s.Activities().Create(entry); err != nil {
			return err
		}

		variant.Quantity = newQuantity
		result = &MovementResult{
			Variant:     variant,
			NewQuantity: newQuantity,
			Transaction: tx,
			Activity:    entry,
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return result, nil
}

func (l *Ledger) buildTransaction(variant *model.Variant, delta int, mc MovementContext) *model.Transaction {
	quantity := delta
	if quantity < 0 {
		quantity = -quantity
	}

	unitPrice := variant.CostPrice
	if mc.Type == model.MovementSale {
		unitPrice = variant.SellingPrice
	}
	if mc.UnitPrice != nil {
		unitPrice = *mc.UnitPrice
	}

	tx := &model.Transaction{
		VariantID:    variant.ID,
		ProductID:    variant.ProductID,
		Type:         mc.Type,
		Quantity:     quantity,
		UnitPrice:    unitPrice,
		Discount:     mc.Discount,
		DiscountType: mc.DiscountType,
		Note:         mc.Note,
	}
	if mc.Type == model.MovementSale {
		tx.Profit = SaleProfit(unitPrice, mc.Discount, mc.DiscountType, variant.CostPrice, quantity)
	}
	if mc.UserID != "" {
		userID := mc.UserID
		tx.CreatedByUserID = &userID
	}
	tx.CreatedBy = mc.UserID
	tx.UpdatedBy = mc.UserID

	return tx
}
