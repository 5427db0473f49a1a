package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Variant is the unit stock is tracked against. Quantity never goes below
// zero; the ledger is the only writer of that column.
type Variant struct {
	BaseModel
	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id" validate:"uuid_required"`
	Product   *Product  `json:"product,omitempty" validate:"-"`

	SKU   string `gorm:"type:varchar(50);uniqueIndex;not null" json:"sku" validate:"required"`
	Color string `gorm:"type:varchar(50)" json:"color"`
	Size  string `gorm:"type:varchar(20)" json:"size,omitempty"`

	CostPrice    decimal.Decimal `gorm:"type:numeric(12,2);default:0" json:"cost_price"`
	SellingPrice decimal.Decimal `gorm:"type:numeric(12,2);default:0" json:"selling_price"`
	Quantity     int             `gorm:"not null;default:0" json:"quantity" validate:"gte=0"`
}
