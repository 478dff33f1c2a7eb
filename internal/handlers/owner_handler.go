package handlers

import (
	"storerating/internal/middleware"
	"storerating/internal/models"
	"storerating/internal/services"

	"github.com/gofiber/fiber/v2"
)

// OwnerHandler serves the store owner dashboard.
type OwnerHandler struct {
	storeService *services.StoreService
	verifier     middleware.TokenVerifier
}

// NewOwnerHandler creates a new OwnerHandler.
func NewOwnerHandler(storeService *services.StoreService, verifier middleware.TokenVerifier) *OwnerHandler {
	return &OwnerHandler{
		storeService: storeService,
		verifier:     verifier,
	}
}

// RegisterRoutes registers the owner routes.
func (h *OwnerHandler) RegisterRoutes(router fiber.Router) {
	ownerOnly := []fiber.Handler{middleware.AuthRequired(h.verifier), middleware.RequireRoles(models.RoleStoreOwner)}

	ownerRoutes := router.Group("/owner")
	ownerRoutes.Get("/dashboard", append(ownerOnly, h.HandleDashboard)...)
}

// HandleDashboard returns the owner's store and its raters.
func (h *OwnerHandler) HandleDashboard(c *fiber.Ctx) error {
	dashboard, err := h.storeService.OwnerDashboard(middleware.IdentityFrom(c).ID)
	if err != nil {
		return respondError(c, "store", err)
	}
	return c.JSON(dashboard)
}
