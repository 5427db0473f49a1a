package handler

import (
	"strconv"
	"time"

	"go-inventory-ledger/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ReportHandler struct {
	service service.ReportService
}

func NewReportHandler(s service.ReportService) *ReportHandler {
	return &ReportHandler{service: s}
}

// dateRange resolves the "range" query param (7d, 1m, 3m, 6m, 12m).
func dateRange(c *fiber.Ctx) (time.Time, time.Time) {
	rangeParam := c.Query("range", "12m")
	now := time.Now()

	switch rangeParam {
	case "7d":
		return now.AddDate(0, 0, -7), now
	case "1m":
		return now.AddDate(0, -1, 0), now
	case "3m":
		return now.AddDate(0, -3, 0), now
	case "6m":
		return now.AddDate(0, -6, 0), now
	case "12m":
		return now.AddDate(0, -12, 0), now
	}
	return now.AddDate(0, -12, 0), now
}

// GET /api/v1/reports/sales-by-month
func (h *ReportHandler) GetSalesByMonth(c *fiber.Ctx) error {
	startDate, endDate := dateRange(c)

	report, err := h.service.SalesByMonth(startDate, endDate)
	if err != nil {
		return fail(c, 500, err.Error())
	}
	return c.JSON(report)
}

// GET /api/v1/reports/valuation
func (h *ReportHandler) GetValuation(c *fiber.Ctx) error {
	report, err := h.service.InventoryValuation()
	if err != nil {
		return fail(c, 500, err.Error())
	}
	return c.JSON(report)
}

// GET /api/v1/reports/category-breakdown
func (h *ReportHandler) GetCategoryBreakdown(c *fiber.Ctx) error {
	startDate, endDate := dateRange(c)

	report, err := h.service.CategoryBreakdown(startDate, endDate)
	if err != nil {
		return fail(c, 500, err.Error())
	}
	return c.JSON(report)
}

// GET /api/v1/dashboard/stats
func (h *ReportHandler) GetDashboardStats(c *fiber.Ctx) error {
	stats, err := h.service.DashboardStats()
	if err != nil {
		return fail(c, 500, err.Error())
	}
	return c.JSON(stats)
}

// GET /api/v1/dashboard/stock-movement?days=30
func (h *ReportHandler) GetStockMovement(c *fiber.Ctx) error {
	days, err := strconv.Atoi(c.Query("days", "30"))
	if err != nil || days < 1 || days > 365 {
		days = 30
	}

	movement, err := h.service.StockMovement(days)
	if err != nil {
		return fail(c, 500, err.Error())
	}
	return c.JSON(movement)
}
