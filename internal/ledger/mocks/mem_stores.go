package mocks

import (
	"sync"
	"time"

	"go-inventory-ledger/internal/ledger"
	"go-inventory-ledger/internal/model"

	"github.com/google/uuid"
)

// MemUnitOfWork is an in-memory ledger.UnitOfWork for tests. Each WithinTx
// call runs under one mutex, mirroring the per-variant serialization a row
// lock provides, and stages writes so a failed unit of work leaves no trace.
type MemUnitOfWork struct {
	mu sync.Mutex

	variants     map[uuid.UUID]*model.Variant
	Transactions []model.Transaction
	Activities   []model.Activity

	// Commits counts successfully committed units of work.
	Commits int

	conflictsToInject int
}

func NewMemUnitOfWork(variants ...*model.Variant) *MemUnitOfWork {
	m := &MemUnitOfWork{variants: make(map[uuid.UUID]*model.Variant)}
	for _, v := range variants {
		if v.ID == uuid.Nil {
			v.ID = uuid.New()
		}
		m.variants[v.ID] = v
	}
	return m
}

// InjectConflicts makes the next n commits fail with ErrConflictRetryable,
// discarding their staged writes, the way a serialization failure would.
func (m *MemUnitOfWork) InjectConflicts(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.conflictsToInject = n
}

func (m *MemUnitOfWork) WithinTx(fn func(s ledger.TxStores) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	tx := &memTx{
		uow:        m,
		quantities: make(map[uuid.UUID]memQuantityUpdate),
	}

	if err := fn(tx); err != nil {
		return err
	}

	if m.conflictsToInject > 0 {
		m.conflictsToInject--
		return ledger.ErrConflictRetryable
	}

	// Commit staged writes.
	for id, update := range tx.quantities {
		m.variants[id].Quantity = update.quantity
		m.variants[id].UpdatedBy = update.updatedBy
	}
	m.Transactions = append(m.Transactions, tx.transactions...)
	m.Activities = append(m.Activities, tx.activities...)
	m.Commits++
	return nil
}

// Quantity reads the committed quantity of a variant.
func (m *MemUnitOfWork) Quantity(id uuid.UUID) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.variants[id].Quantity
}

func (m *MemUnitOfWork) LastTransaction() *model.Transaction {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Transactions) == 0 {
		return nil
	}
	return &m.Transactions[len(m.Transactions)-1]
}

func (m *MemUnitOfWork) LastActivity() *model.Activity {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Activities) == 0 {
		return nil
	}
	return &m.Activities[len(m.Activities)-1]
}

type memQuantityUpdate struct {
	quantity  int
	updatedBy string
}

type memTx struct {
	uow          *MemUnitOfWork
	quantities   map[uuid.UUID]memQuantityUpdate
	transactions []model.Transaction
	activities   []model.Activity
}

func (t *memTx) Variants() ledger.VariantStore         { return t }
func (t *memTx) Transactions() ledger.TransactionStore { return memTransactionStore{t} }
func (t *memTx) Activities() ledger.ActivityStore      { return memActivityStore{t} }

func (t *memTx) LockForUpdate(id uuid.UUID) (*model.Variant, error) {
	variant, ok := t.uow.variants[id]
	if !ok {
		return nil, ledger.ErrVariantNotFound
	}
	copied := *variant
	return &copied, nil
}

func (t *memTx) UpdateQuantity(id uuid.UUID, quantity int, updatedBy string) error {
	t.quantities[id] = memQuantityUpdate{quantity: quantity, updatedBy: updatedBy}
	return nil
}

type memTransactionStore struct {
	tx *memTx
}

func (s memTransactionStore) Create(tx *model.Transaction) error {
	if tx.ID == uuid.Nil {
		tx.ID = uuid.New()
	}
	if tx.CreatedAt.IsZero() {
		tx.CreatedAt = time.Now()
	}
	s.tx.transactions = append(s.tx.transactions, *tx)
	return nil
}

type memActivityStore struct {
	tx *memTx
}

func (s memActivityStore) Create(entry *model.Activity) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	s.tx.activities = append(s.tx.activities, *entry)
	return nil
}
