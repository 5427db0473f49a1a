package repository

import (
	"go-inventory-ledger/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VariantRepository interface {
	Create(variant *model.Variant) error
	FindByID(id uuid.UUID) (*model.Variant, error)
	FindBySKU(sku string) (*model.Variant, error)
	FindByProduct(productID uuid.UUID) ([]model.Variant, error)
	Update(variant *model.Variant) error
	Delete(id uuid.UUID, deletedBy string) error
	HasTransactions(id uuid.UUID) (bool, error)
}

type variantRepo struct {
	db *gorm.DB
}

func NewVariantRepo(db *gorm.DB) VariantRepository {
	return &variantRepo{db}
}

func (r *variantRepo) Create(variant *model.Variant) error {
	return r.db.Create(variant).Error
}

func (r *variantRepo) FindByID(id uuid.UUID) (*model.Variant, error) {
	var variant model.Variant
	err := r.db.Preload("Product").First(&variant, "id = ?", id).Error
	return &variant, err
}

func (r *variantRepo) FindBySKU(sku string) (*model.Variant, error) {
	var variant model.Variant
	err := r.db.First(&variant, "sku = ?", sku).Error
	return &variant, err
}

func (r *variantRepo) FindByProduct(productID uuid.UUID) ([]model.Variant, error) {
	var variants []model.Variant
	err := r.db.Where("product_id = ?", productID).Find(&variants).Error
	return variants, err
}

// Update writes catalog fields only. Quantity is owned by the ledger and is
// deliberately left out of the column list.
func (r *variantRepo) Update(variant *model.Variant) error {
	return r.db.Model(variant).
		Select("sku", "color", "size", "cost_price", "selling_price", "updated_by").
		Updates(variant).Error
}

func (r *variantRepo) Delete(id uuid.UUID, deletedBy string) error {
	if err := r.db.Model(&model.Variant{}).Where("id = ?", id).
		Update("deleted_by", deletedBy).Error; err != nil {
		return err
	}
	return r.db.Delete(&model.Variant{}, "id = ?", id).Error
}

func (r *variantRepo) HasTransactions(id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Model(&model.Transaction{}).Where("variant_id = ?", id).Count(&count).Error
	return count > 0, err
}
