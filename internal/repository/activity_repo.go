package repository

import (
	"go-inventory-ledger/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ActivityRepository interface {
	Create(entry *model.Activity) error
	FindPage(page, pageSize int) ([]model.Activity, int64, error)
	FindByProduct(productID uuid.UUID, page, pageSize int) ([]model.Activity, int64, error)
}

type activityRepo struct {
	db *gorm.DB
}

func NewActivityRepo(db *gorm.DB) ActivityRepository {
	return &activityRepo{db}
}

func (r *activityRepo) Create(entry *model.Activity) error {
	return r.db.Create(entry).Error
}

// FindPage returns activities newest first. Pages are 1-based.
func (r *activityRepo) FindPage(page, pageSize int) ([]model.Activity, int64, error) {
	return r.findPage(r.db, page, pageSize)
}

func (r *activityRepo) FindByProduct(productID uuid.UUID, page, pageSize int) ([]model.Activity, int64, error) {
	return r.findPage(r.db.Where("product_id = ?", productID), page, pageSize)
}

func (r *activityRepo) findPage(query *gorm.DB, page, pageSize int) ([]model.Activity, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	var total int64
	if err := query.Model(&model.Activity{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var activities []model.Activity
	err := query.Model(&model.Activity{}).
		Preload("User").Preload("Product").
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&activities).Error
	return activities, total, err
}
