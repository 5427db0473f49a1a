package ledger

import (
	"go-inventory-ledger/internal/model"

	"github.com/google/uuid"
)

// VariantStore gives the ledger exclusive access to a variant row for the
// duration of a unit of work. LockForUpdate must hold a row lock (or
// equivalent) until the enclosing transaction commits or rolls back.
type VariantStore interface {
	LockForUpdate(id uuid.UUID) (*model.Variant, error)
	UpdateQuantity(id uuid.UUID, quantity int, updatedBy string) error
}

type TransactionStore interface {
	Create(tx *model.Transaction) error
}

type ActivityStore interface {
	Create(entry *model.Activity) error
}

// TxStores exposes the stores bound to one in-flight transaction.
type TxStores interface {
	Variants() VariantStore
	Transactions() TransactionStore
	Activities() ActivityStore
}

// UnitOfWork runs fn inside a single durable transaction: either every write
// made through the TxStores commits, or none do. Implementations report
// serialization conflicts as ErrConflictRetryable and other persistence
// failures wrapped in ErrStoreUnavailable.
type UnitOfWork interface {
	WithinTx(fn func(s TxStores) error) error
}
