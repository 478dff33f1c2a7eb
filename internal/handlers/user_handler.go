package handlers

import (
	"storerating/internal/middleware"
	"storerating/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// UserHandler serves the caller's own account.
type UserHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(authService *services.AuthService) *UserHandler {
	return &UserHandler{
		authService: authService,
		validate:    newValidator(),
	}
}

// RegisterRoutes registers the user routes.
func (h *UserHandler) RegisterRoutes(router fiber.Router) {
	userRoutes := router.Group("/users")
	userRoutes.Patch("/change-password", middleware.AuthRequired(h.authService), h.HandleChangePassword)
}

// HandleChangePassword changes the caller's password.
func (h *UserHandler) HandleChangePassword(c *fiber.Ctx) error {
	var req ChangePasswordRequest
	if err := parseBody(c, h.validate, &req); err != nil {
		return respondError(c, "", err)
	}

	identity := middleware.IdentityFrom(c)
	if err := h.authService.ChangePassword(identity.ID, req.CurrentPassword, req.NewPassword); err != nil {
		return respondError(c, "user", err)
	}
	return c.JSON(fiber.Map{
		"message": "Password updated successfully",
	})
}
