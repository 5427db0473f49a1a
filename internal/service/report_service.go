package service

import (
	"sort"
	"time"

	"go-inventory-ledger/internal/model"
	"go-inventory-ledger/internal/repository"

	"github.com/shopspring/decimal"
)

type ReportService interface {
	SalesByMonth(startDate, endDate time.Time) ([]MonthlySales, error)
	InventoryValuation() ([]repository.ProductValuation, error)
	CategoryBreakdown(startDate, endDate time.Time) ([]repository.CategorySales, error)
	DashboardStats() (*repository.DashboardStats, error)
	StockMovement(days int) ([]repository.StockMovementData, error)
}

// MonthlySales is one month of the sales report. Revenue is the undiscounted
// quantity × unit-price sum; discounts are reflected in Profit.
type MonthlySales struct {
	Month   string          `json:"month"` // YYYY-MM
	Units   int             `json:"units"`
	Revenue decimal.Decimal `json:"revenue"`
	Profit  decimal.Decimal `json:"profit"`
}

type reportService struct {
	txRepo repository.TransactionRepository
}

func NewReportService(txRepo repository.TransactionRepository) ReportService {
	return &reportService{txRepo: txRepo}
}

func (s *reportService) SalesByMonth(startDate, endDate time.Time) ([]MonthlySales, error) {
	sales, err := s.txRepo.FindByTypeInRange(model.MovementSale, startDate, endDate)
	if err != nil {
		return nil, err
	}
	return AggregateSalesByMonth(sales), nil
}

// AggregateSalesByMonth groups SALE transactions by calendar month of their
// timestamp and sums units, revenue and profit. Sums match the underlying
// rows exactly; no rounding happens here.
func AggregateSalesByMonth(sales []model.Transaction) []MonthlySales {
	byMonth := make(map[string]*MonthlySales)
	for _, tx := range sales {
		month := tx.CreatedAt.Format("2006-01")
		entry, ok := byMonth[month]
		if !ok {
			entry = &MonthlySales{Month: month}
			byMonth[month] = entry
		}
		entry.Units += tx.Quantity
		entry.Revenue = entry.Revenue.Add(tx.UnitPrice.Mul(decimal.NewFromInt(int64(tx.Quantity))))
		entry.Profit = entry.Profit.Add(tx.Profit)
	}

	results := make([]MonthlySales, 0, len(byMonth))
	for _, entry := range byMonth {
		results = append(results, *entry)
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Month < results[j].Month })
	return results
}

func (s *reportService) InventoryValuation() ([]repository.ProductValuation, error) {
	return s.txRepo.GetValuation()
}

func (s *reportService) CategoryBreakdown(startDate, endDate time.Time) ([]repository.CategorySales, error) {
	return s.txRepo.GetCategoryBreakdown(startDate, endDate)
}

func (s *reportService) DashboardStats() (*repository.DashboardStats, error) {
	return s.txRepo.GetDashboardStats()
}

func (s *reportService) StockMovement(days int) ([]repository.StockMovementData, error) {
	endDate := time.Now()
	startDate := endDate.AddDate(0, 0, -days)

	return s.txRepo.GetStockMovement(startDate, endDate)
}
