package handler

import (
	"go-inventory-ledger/internal/service"

	"github.com/gofiber/fiber/v2"
)

type TransactionHandler struct {
	service service.TransactionService
}

func NewTransactionHandler(s service.TransactionService) *TransactionHandler {
	return &TransactionHandler{service: s}
}

// Sell records a sale of N units of a variant.
// POST /api/v1/sell
func (h *TransactionHandler) Sell(c *fiber.Ctx) error {
	var req service.SellRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, 400, "Invalid JSON")
	}

	result, err := h.service.Sell(&req, getUserID(c), getUserName(c))
	if err != nil {
		return movementError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{
		"success":      true,
		"message":      "Sale recorded",
		"new_quantity": result.NewQuantity,
		"transaction":  result.Transaction,
	})
}

// Refill records incoming stock for a variant.
// POST /api/v1/refill
func (h *TransactionHandler) Refill(c *fiber.Ctx) error {
	var req service.RefillRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, 400, "Invalid JSON")
	}

	result, err := h.service.Refill(&req, getUserID(c), getUserName(c))
	if err != nil {
		return movementError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{
		"success":      true,
		"message":      "Stock refilled",
		"new_quantity": result.NewQuantity,
		"transaction":  result.Transaction,
	})
}

// CreateTransaction records a generic movement dispatched by type.
// POST /api/v1/transactions
func (h *TransactionHandler) CreateTransaction(c *fiber.Ctx) error {
	var req service.MovementRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, 400, "Invalid JSON")
	}

	result, err := h.service.Record(&req, getUserID(c), getUserName(c))
	if err != nil {
		return movementError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{
		"success":      true,
		"message":      "Transaction recorded",
		"new_quantity": result.NewQuantity,
		"transaction":  result.Transaction,
	})
}

func (h *TransactionHandler) GetTransactions(c *fiber.Ctx) error {
	transactions, err := h.service.GetAllTransactions()
	if err != nil {
		return fail(c, 500, "Internal Server Error")
	}
	return c.JSON(transactions)
}

func (h *TransactionHandler) GetTransaction(c *fiber.Ctx) error {
	txID, err := parseUUID(c.Params("id"))
	if err != nil {
		return fail(c, 400, "Invalid transaction ID")
	}

	tx, err := h.service.GetTransactionByID(txID)
	if err != nil {
		return fail(c, 404, "Transaction not found")
	}
	return c.JSON(tx)
}
