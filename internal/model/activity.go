package model

import "github.com/google/uuid"

type ActivityType string

const (
	ActivityCreateProduct  ActivityType = "CREATE_PRODUCT"
	ActivityUpdateProduct  ActivityType = "UPDATE_PRODUCT"
	ActivityDeleteProduct  ActivityType = "DELETE_PRODUCT"
	ActivitySellProduct    ActivityType = "SELL_PRODUCT"
	ActivityRefillStock    ActivityType = "REFILL_STOCK"
	ActivityRecordPurchase ActivityType = "RECORD_PURCHASE"
	ActivityAdjustStock    ActivityType = "ADJUST_STOCK"
)

// Activity is an append-only audit entry shown in the activity feed.
type Activity struct {
	BaseModel
	Type    ActivityType `gorm:"type:varchar(30);not null;index" json:"type" validate:"required"`
	Details string       `gorm:"type:text;not null" json:"details"`

	UserID *string `gorm:"type:varchar(255)" json:"user_id,omitempty"`
	User   *User   `gorm:"foreignKey:UserID;references:ID" json:"user,omitempty"`

	ProductID *uuid.UUID `gorm:"type:uuid;index" json:"product_id,omitempty"`
	Product   *Product   `json:"product,omitempty" validate:"-"`
	VariantID *uuid.UUID `gorm:"type:uuid;index" json:"variant_id,omitempty"`
}
