package handler

import (
	"errors"

	"go-inventory-ledger/internal/ledger"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Helper untuk ambil User Info dari JWT Context (set by auth middleware)
func getUserID(c *fiber.Ctx) string {
	userID := c.Locals("user_id")
	if userID == nil {
		return "system" // shouldn't happen in protected routes
	}
	return userID.(string)
}

func getUserName(c *fiber.Ctx) string {
	userName := c.Locals("user_name")
	if userName == nil {
		return "Unknown"
	}
	return userName.(string)
}

func parseUUID(id string) (uuid.UUID, error) {
	return uuid.Parse(id)
}

func fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"success": false, "message": message})
}

// movementError maps ledger errors onto the uniform error envelope.
func movementError(c *fiber.Ctx, err error) error {
	var insufficient *ledger.InsufficientStockError
	switch {
	case errors.As(err, &insufficient):
		return c.Status(409).JSON(fiber.Map{
			"success":   false,
			"message":   err.Error(),
			"available": insufficient.Available,
		})
	case errors.Is(err, ledger.ErrVariantNotFound):
		return fail(c, 404, err.Error())
	case errors.Is(err, ledger.ErrInvalidMovement):
		return fail(c, 400, err.Error())
	case errors.Is(err, ledger.ErrConflictRetryable):
		return fail(c, 503, "concurrent update conflict, please retry")
	case errors.Is(err, ledger.ErrStoreUnavailable):
		return fail(c, 500, "storage unavailable")
	}
	return fail(c, 500, err.Error())
}
