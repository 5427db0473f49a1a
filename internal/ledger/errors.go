package ledger

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrVariantNotFound = errors.New("variant not found")
	// ErrInvalidMovement is returned before any store access when the
	// movement type or quantity is malformed.
	ErrInvalidMovement = errors.New("invalid movement")
	// ErrInsufficientStock is the sentinel matched by errors.Is against
	// an *InsufficientStockError.
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrConflictRetryable marks a concurrent-update collision on the same
	// variant. The ledger retries these a bounded number of times.
	ErrConflictRetryable = errors.New("concurrent update conflict")
	ErrStoreUnavailable  = errors.New("store unavailable")
)

// InsufficientStockError carries the quantity actually on hand so callers can
// report it back to the client.
type InsufficientStockError struct {
	VariantID uuid.UUID
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock: requested %d, %d on hand", e.Requested, e.Available)
}

func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}
