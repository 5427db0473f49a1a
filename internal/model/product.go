package model

type Product struct {
	BaseModel
	BaseSKU     string `gorm:"type:varchar(50);uniqueIndex;not null" json:"base_sku" validate:"required"`
	Name        string `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Category    string `gorm:"type:varchar(100);index" json:"category"`
	Description string `gorm:"type:text" json:"description"`

	// User tracking
	CreatedByUserID *string `gorm:"type:varchar(255)" json:"created_by_user_id,omitempty"`
	UpdatedByUserID *string `gorm:"type:varchar(255)" json:"updated_by_user_id,omitempty"`
	CreatedByUser   *User   `gorm:"foreignKey:CreatedByUserID;references:ID" json:"created_by_user,omitempty"`
	UpdatedByUser   *User   `gorm:"foreignKey:UpdatedByUserID;references:ID" json:"updated_by_user,omitempty"`

	Variants []Variant `json:"variants,omitempty"`
}
