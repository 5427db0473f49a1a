package repository

import (
	"time"

	"go-inventory-ledger/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type TransactionRepository interface {
	FindAll() ([]model.Transaction, error)
	FindByID(id uuid.UUID) (*model.Transaction, error)
	FindByTypeInRange(txType model.MovementType, startDate, endDate time.Time) ([]model.Transaction, error)
	GetStockMovement(startDate, endDate time.Time) ([]StockMovementData, error)
	GetDashboardStats() (*DashboardStats, error)
	GetCategoryBreakdown(startDate, endDate time.Time) ([]CategorySales, error)
	GetValuation() ([]ProductValuation, error)
}

// StockMovementData untuk chart data
type StockMovementData struct {
	Date     string `json:"date"`
	Inbound  int    `json:"inbound"`
	Outbound int    `json:"outbound"`
}

// DashboardStats untuk overview stats
type DashboardStats struct {
	TotalProducts  int64           `json:"total_products"`
	TotalVariants  int64           `json:"total_variants"`
	LowStockCount  int64           `json:"low_stock_count"`
	TotalValuation decimal.Decimal `json:"total_valuation"`
}

// CategorySales is one row of the category breakdown report.
type CategorySales struct {
	Category string          `json:"category"`
	Units    int             `json:"units"`
	Revenue  decimal.Decimal `json:"revenue"`
}

// ProductValuation is stock-on-hand valued at cost price, per product.
type ProductValuation struct {
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	Units     int             `json:"units"`
	Valuation decimal.Decimal `json:"valuation"`
}

// lowStockThreshold flags variants for the dashboard stats.
const lowStockThreshold = 10

type transactionRepo struct {
	db *gorm.DB
}

func NewTransactionRepo(db *gorm.DB) TransactionRepository {
	return &transactionRepo{db}
}

func (r *transactionRepo) FindAll() ([]model.Transaction, error) {
	var transactions []model.Transaction
	err := r.db.Preload("Variant").Preload("Product").Preload("CreatedByUser").
		Order("created_at DESC").Find(&transactions).Error
	return transactions, err
}

func (r *transactionRepo) FindByID(id uuid.UUID) (*model.Transaction, error) {
	var transaction model.Transaction
	err := r.db.Preload("Variant").Preload("Product").Preload("CreatedByUser").
		First(&transaction, "id = ?", id).Error
	return &transaction, err
}

func (r *transactionRepo) FindByTypeInRange(txType model.MovementType, startDate, endDate time.Time) ([]model.Transaction, error) {
	var transactions []model.Transaction
	err := r.db.
		Where("type = ? AND created_at BETWEEN ? AND ?", txType, startDate, endDate).
		Order("created_at ASC").
		Find(&transactions).Error
	return transactions, err
}

func (r *transactionRepo) GetStockMovement(startDate, endDate time.Time) ([]StockMovementData, error) {
	var results []StockMovementData

	// Aggregate transactions per hari
	rows, err := r.db.Model(&model.Transaction{}).
		Select(`
			DATE(created_at) as date,
			COALESCE(SUM(CASE WHEN type IN ('REFILL', 'PURCHASE') THEN quantity ELSE 0 END), 0) as inbound,
			COALESCE(SUM(CASE WHEN type = 'SALE' THEN quantity ELSE 0 END), 0) as outbound
		`).
		Where("created_at BETWEEN ? AND ?", startDate, endDate).
		Group("DATE(created_at)").
		Order("date ASC").
		Rows()

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var data StockMovementData
		if err := rows.Scan(&data.Date, &data.Inbound, &data.Outbound); err != nil {
			return nil, err
		}
		results = append(results, data)
	}

	return results, nil
}

func (r *transactionRepo) GetDashboardStats() (*DashboardStats, error) {
	var stats DashboardStats

	r.db.Model(&model.Product{}).Count(&stats.TotalProducts)
	r.db.Model(&model.Variant{}).Count(&stats.TotalVariants)

	r.db.Model(&model.Variant{}).Where("quantity < ?", lowStockThreshold).Count(&stats.LowStockCount)

	// Stock-on-hand valued at cost
	r.db.Model(&model.Variant{}).
		Select("COALESCE(SUM(quantity * cost_price), 0)").
		Scan(&stats.TotalValuation)

	return &stats, nil
}

func (r *transactionRepo) GetCategoryBreakdown(startDate, endDate time.Time) ([]CategorySales, error) {
	var results []CategorySales

	rows, err := r.db.Model(&model.Transaction{}).
		Select(`
			products.category as category,
			COALESCE(SUM(transactions.quantity), 0) as units,
			COALESCE(SUM(transactions.quantity * transactions.unit_price), 0) as revenue
		`).
		Joins("JOIN products ON products.id = transactions.product_id").
		Where("transactions.type = ? AND transactions.created_at BETWEEN ? AND ?", model.MovementSale, startDate, endDate).
		Group("products.category").
		Order("category ASC").
		Rows()

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var data CategorySales
		if err := rows.Scan(&data.Category, &data.Units, &data.Revenue); err != nil {
			return nil, err
		}
		results = append(results, data)
	}

	return results, nil
}

func (r *transactionRepo) GetValuation() ([]ProductValuation, error) {
	var results []ProductValuation

	rows, err := r.db.Model(&model.Variant{}).
		Select(`
			products.id as product_id,
			products.name as name,
			COALESCE(SUM(variants.quantity), 0) as units,
			COALESCE(SUM(variants.quantity * variants.cost_price), 0) as valuation
		`).
		Joins("JOIN products ON products.id = variants.product_id").
		Group("products.id, products.name").
		Order("name ASC").
		Rows()

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var data ProductValuation
		if err := rows.Scan(&data.ProductID, &data.Name, &data.Units, &data.Valuation); err != nil {
			return nil, err
		}
		results = append(results, data)
	}

	return results, nil
}
