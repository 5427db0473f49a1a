package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type MovementType string

const (
	MovementSale       MovementType = "SALE"
	MovementPurchase   MovementType = "PURCHASE"
	MovementRefill     MovementType = "REFILL"
	MovementAdjustment MovementType = "ADJUSTMENT"
)

// Valid reports whether t is one of the known movement types.
func (t MovementType) Valid() bool {
	switch t {
	case MovementSale, MovementPurchase, MovementRefill, MovementAdjustment:
		return true
	}
	return false
}

type DiscountType string

const (
	DiscountFlat    DiscountType = "FLAT"
	DiscountPercent DiscountType = "PERCENT"
)

// Transaction is the immutable record of a stock-affecting event. Rows are
// inserted by the ledger and never updated or deleted.
type Transaction struct {
	BaseModel
	VariantID uuid.UUID `gorm:"type:uuid;not null;index" json:"variant_id" validate:"uuid_required"`
	Variant   *Variant  `json:"variant,omitempty" validate:"-"`
	// Denormalized for report queries that group by product.
	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	Product   *Product  `json:"product,omitempty" validate:"-"`

	Type     MovementType `gorm:"type:varchar(15);not null;index" json:"type" validate:"required,oneof=SALE PURCHASE REFILL ADJUSTMENT"`
	Quantity int          `gorm:"not null" json:"quantity" validate:"required,gt=0"` // magnitude; sign carried by Type

	UnitPrice    decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"unit_price"` // snapshot at time of movement
	Discount     decimal.Decimal `gorm:"type:numeric(12,2);default:0" json:"discount"`
	DiscountType DiscountType    `gorm:"type:varchar(10)" json:"discount_type,omitempty"`
	Profit       decimal.Decimal `gorm:"type:numeric(12,2);default:0" json:"profit"` // SALE only

	Note string `json:"note"`

	// User tracking
	CreatedByUserID *string `gorm:"type:varchar(255)" json:"created_by_user_id,omitempty"`
	CreatedByUser   *User   `gorm:"foreignKey:CreatedByUserID;references:ID" json:"created_by_user,omitempty"`
}
