package handler

import (
	"go-inventory-ledger/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ResetPasswordRequest represents the reset password request body
type ResetPasswordRequest struct {
	Username    string `json:"username"`
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// Login handles user authentication
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, 400, "Invalid JSON")
	}

	if req.Username == "" || req.Password == "" {
		return fail(c, 400, "Username and password are required")
	}

	response, err := h.authService.Login(req.Username, req.Password)
	if err != nil {
		return fail(c, 401, err.Error())
	}

	return c.JSON(response)
}

// ResetPassword handles password change
// POST /api/v1/auth/reset-password
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var req ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, 400, "Invalid JSON")
	}

	if req.Username == "" || req.OldPassword == "" || req.NewPassword == "" {
		return fail(c, 400, "Username, old_password, and new_password are required")
	}

	if len(req.NewPassword) < 6 {
		return fail(c, 400, "New password must be at least 6 characters")
	}

	if err := h.authService.ResetPassword(req.Username, req.OldPassword, req.NewPassword); err != nil {
		return fail(c, 400, err.Error())
	}

	return c.JSON(fiber.Map{"success": true, "message": "Password updated successfully"})
}

func (h *AuthHandler) Heartbeat(c *fiber.Ctx) error {
	userID := c.Locals("user_id")
	if userID == nil {
		return fail(c, 401, "Unauthorized")
	}

	id, err := uuid.Parse(userID.(string))
	if err != nil {
		return fail(c, 400, "Invalid user ID")
	}

	if err := h.authService.Heartbeat(id); err != nil {
		return fail(c, 500, "Failed to update heartbeat")
	}

	return c.JSON(fiber.Map{"success": true, "message": "Heartbeat received", "status": "online"})
}

// ValidateTokenRequest represents the validate token request body
type ValidateTokenRequest struct {
	Token string `json:"token"`
}

// ValidateToken handles JWT token validation
// POST /api/v1/auth/validate-token
func (h *AuthHandler) ValidateToken(c *fiber.Ctx) error {
	var req ValidateTokenRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, 400, "Invalid JSON")
	}

	if req.Token == "" {
		return fail(c, 400, "Token is required")
	}

	response, err := h.authService.ValidateToken(req.Token)
	if err != nil {
		return fail(c, 401, err.Error())
	}

	return c.JSON(response)
}
