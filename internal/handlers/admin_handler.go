package handlers

import (
	"storerating/internal/middleware"
	"storerating/internal/models"
	"storerating/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AdminHandler serves the administrator API. Every route requires ADMIN.
type AdminHandler struct {
	adminService *services.AdminService
	userService  *services.UserService
	storeService *services.StoreService
	verifier     middleware.TokenVerifier
	validate     *validator.Validate
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(adminService *services.AdminService, userService *services.UserService, storeService *services.StoreService, verifier middleware.TokenVerifier) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
		userService:  userService,
		storeService: storeService,
		verifier:     verifier,
		validate:     newValidator(),
	}
}

// RegisterRoutes registers the admin routes.
func (h *AdminHandler) RegisterRoutes(router fiber.Router) {
	// Guards are attached per route so unknown /admin paths still 404.
	adminOnly := func(handler fiber.Handler) []fiber.Handler {
		return []fiber.Handler{middleware.AuthRequired(h.verifier), middleware.RequireRoles(models.RoleAdmin), handler}
	}

	adminRoutes := router.Group("/admin")
	adminRoutes.Get("/stats", adminOnly(h.HandleStats)...)
	adminRoutes.Get("/users", adminOnly(h.HandleListUsers)...)
	adminRoutes.Post("/users", adminOnly(h.HandleCreateUser)...)
	adminRoutes.Get("/stores", adminOnly(h.HandleListStores)...)
	adminRoutes.Post("/stores", adminOnly(h.HandleCreateStore)...)
}

// HandleStats returns platform counters.
func (h *AdminHandler) HandleStats(c *fiber.Ctx) error {
	stats, err := h.adminService.Stats()
	if err != nil {
		return respondError(c, "", err)
	}
	return c.JSON(stats)
}

// HandleListUsers lists users filtered by role and search, sorted on request.
func (h *AdminHandler) HandleListUsers(c *fiber.Ctx) error {
	users, err := h.userService.ListUsers(services.ListUsersInput{
		Role:      c.Query("role"),
		Search:    c.Query("search"),
		SortBy:    c.Query("sortBy"),
		SortOrder: c.Query("sortOrder"),
	})
	if err != nil {
		return respondError(c, "user", err)
	}
	return c.JSON(users)
}

// HandleCreateUser creates an account with an explicit role.
func (h *AdminHandler) HandleCreateUser(c *fiber.Ctx) error {
	var req CreateUserRequest
	if err := parseBody(c, h.validate, &req); err != nil {
		return respondError(c, "", err)
	}

	user, err := h.userService.CreateUser(services.CreateUserInput{
		AccountInput: req.account(),
		Role:         req.Role,
	})
	if err != nil {
		return respondError(c, "", err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// HandleListStores is the admin store listing.
func (h *AdminHandler) HandleListStores(c *fiber.Ctx) error {
	stores, err := h.storeService.ListStoresForAdmin(storeFilter(c))
	if err != nil {
		return respondError(c, "store", err)
	}
	return c.JSON(stores)
}

// HandleCreateStore creates a store.
func (h *AdminHandler) HandleCreateStore(c *fiber.Ctx) error {
	return createStore(c, h.validate, h.storeService)
}
