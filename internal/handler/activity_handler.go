package handler

import (
	"strconv"

	"go-inventory-ledger/internal/repository"

	"github.com/gofiber/fiber/v2"
)

type ActivityHandler struct {
	activityRepo repository.ActivityRepository
}

func NewActivityHandler(aRepo repository.ActivityRepository) *ActivityHandler {
	return &ActivityHandler{activityRepo: aRepo}
}

func pageParams(c *fiber.Ctx) (int, int) {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	pageSize, _ := strconv.Atoi(c.Query("page_size", "20"))
	return page, pageSize
}

// GetActivities returns the activity feed, newest first.
// GET /api/v1/activity
func (h *ActivityHandler) GetActivities(c *fiber.Ctx) error {
	page, pageSize := pageParams(c)

	activities, total, err := h.activityRepo.FindPage(page, pageSize)
	if err != nil {
		return fail(c, 500, "Internal Server Error")
	}

	return c.JSON(fiber.Map{
		"data":      activities,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// GetProductActivities returns the feed filtered to one product.
// GET /api/v1/activity/product/:id
func (h *ActivityHandler) GetProductActivities(c *fiber.Ctx) error {
	productID, err := parseUUID(c.Params("id"))
	if err != nil {
		return fail(c, 400, "Invalid product ID")
	}

	page, pageSize := pageParams(c)

	activities, total, err := h.activityRepo.FindByProduct(productID, page, pageSize)
	if err != nil {
		return fail(c, 500, "Internal Server Error")
	}

	return c.JSON(fiber.Map{
		"data":      activities,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}
