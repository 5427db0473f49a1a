package handler

import (
	"errors"

	"go-inventory-ledger/internal/service"

	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// GetUsers returns all staff accounts
// GET /api/v1/users
func (h *UserHandler) GetUsers(c *fiber.Ctx) error {
	users, err := h.userService.GetAllUsers()
	if err != nil {
		return fail(c, 500, "Failed to fetch users")
	}
	return c.JSON(users)
}

// GetUser returns a single staff account
// GET /api/v1/users/:id
func (h *UserHandler) GetUser(c *fiber.Ctx) error {
	userID, err := parseUUID(c.Params("id"))
	if err != nil {
		return fail(c, 400, "Invalid user ID")
	}

	user, err := h.userService.GetUserByID(userID)
	if err != nil {
		return fail(c, 404, "User not found")
	}
	return c.JSON(user)
}

// CreateUser creates a staff account
// POST /api/v1/users
func (h *UserHandler) CreateUser(c *fiber.Ctx) error {
	var req service.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, 400, "Invalid JSON")
	}

	user, err := h.userService.CreateUser(&req, getUserID(c))
	if err != nil {
		if errors.Is(err, service.ErrUsernameExists) {
			return fail(c, 409, err.Error())
		}
		return fail(c, 400, err.Error())
	}

	return c.Status(201).JSON(fiber.Map{"success": true, "message": "User created", "data": user.ToResponse()})
}
