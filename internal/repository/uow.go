package repository

import (
	"errors"
	"fmt"

	"go-inventory-ledger/internal/ledger"
	"go-inventory-ledger/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormUnitOfWork implements ledger.UnitOfWork on top of a gorm transaction.
// Serialization failures and deadlocks surface as ledger.ErrConflictRetryable
// so the ledger can replay the movement with a fresh read.
type GormUnitOfWork struct {
	db *gorm.DB
}

func NewUnitOfWork(db *gorm.DB) *GormUnitOfWork {
	return &GormUnitOfWork{db: db}
}

func (u *GormUnitOfWork) WithinTx(fn func(s ledger.TxStores) error) error {
	err := u.db.Transaction(func(tx *gorm.DB) error {
		return fn(&txStores{tx: tx})
	})
	if err == nil {
		return nil
	}
	return classifyTxError(err)
}

// classifyTxError maps driver failures into the ledger's error taxonomy.
// Business errors raised inside the unit of work pass through untouched.
func classifyTxError(err error) error {
	if errors.Is(err, ledger.ErrVariantNotFound) ||
		errors.Is(err, ledger.ErrInsufficientStock) ||
		errors.Is(err, ledger.ErrInvalidMovement) ||
		errors.Is(err, ledger.ErrConflictRetryable) {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// 40001 serialization_failure, 40P01 deadlock_detected
		if pgErr.Code == "40001" || pgErr.Code == "40P01" {
			return fmt.Errorf("%w: %s", ledger.ErrConflictRetryable, pgErr.Code)
		}
	}

	return fmt.Errorf("%w: %v", ledger.ErrStoreUnavailable, err)
}

type txStores struct {
	tx *gorm.DB
}

func (s *txStores) Variants() ledger.VariantStore {
	return &txVariantStore{tx: s.tx}
}

func (s *txStores) Transactions() ledger.TransactionStore {
	return &txTransactionStore{tx: s.tx}
}

func (s *txStores) Activities() ledger.ActivityStore {
	return &txActivityStore{tx: s.tx}
}

type txVariantStore struct {
	tx *gorm.DB
}

// LockForUpdate holds a row lock on the variant until the transaction ends
// (Pessimistic Locking), serializing movements per variant.
func (s *txVariantStore) LockForUpdate(id uuid.UUID) (*model.Variant, error) {
	var variant model.Variant
	if err := s.tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&variant, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ledger.ErrVariantNotFound
		}
		return nil, err
	}
	return &variant, nil
}

func (s *txVariantStore) UpdateQuantity(id uuid.UUID, quantity int, updatedBy string) error {
	return s.tx.Model(&model.Variant{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"quantity":   quantity,
			"updated_by": updatedBy,
		}).Error
}

type txTransactionStore struct {
	tx *gorm.DB
}

func (s *txTransactionStore) Create(transaction *model.Transaction) error {
	return s.tx.Create(transaction).Error
}

type txActivityStore struct {
	tx *gorm.DB
}

func (s *txActivityStore) Create(entry *model.Activity) error {
	return s.tx.Create(entry).Error
}
