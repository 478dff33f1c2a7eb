package handlers

import (
	"storerating/internal/middleware"
	"storerating/internal/models"
	"storerating/internal/repositories"
	"storerating/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// StoreHandler handles HTTP requests for stores.
type StoreHandler struct {
	storeService *services.StoreService
	verifier     middleware.TokenVerifier
	validate     *validator.Validate
}

// NewStoreHandler creates a new StoreHandler.
func NewStoreHandler(storeService *services.StoreService, verifier middleware.TokenVerifier) *StoreHandler {
	return &StoreHandler{
		storeService: storeService,
		verifier:     verifier,
		validate:     newValidator(),
	}
}

// RegisterRoutes registers the store routes. Static paths come before /:id.
func (h *StoreHandler) RegisterRoutes(router fiber.Router) {
	required := middleware.AuthRequired(h.verifier)
	optional := middleware.AuthOptional(h.verifier)

	storeRoutes := router.Group("/stores")
	storeRoutes.Get("/", optional, h.HandleListStores)
	storeRoutes.Get("/admin/list", required, middleware.RequireRoles(models.RoleAdmin), h.HandleAdminListStores)
	storeRoutes.Get("/owner", required, middleware.RequireRoles(models.RoleStoreOwner), h.HandleOwnerStores)
	storeRoutes.Post("/", required, middleware.RequireRoles(models.RoleAdmin), h.HandleCreateStore)
	storeRoutes.Get("/:id/ratings", required, middleware.RequireRoles(models.RoleStoreOwner, models.RoleAdmin), h.HandleStoreRatings)
	storeRoutes.Get("/:id", optional, h.HandleGetStore)
}

// HandleListStores lists every store, personalized when the caller is known.
func (h *StoreHandler) HandleListStores(c *fiber.Ctx) error {
	stores, err := h.storeService.ListStores(middleware.IdentityFrom(c))
	if err != nil {
		return respondError(c, "store", err)
	}
	return c.JSON(stores)
}

// HandleGetStore returns a store with its distribution and the caller's rating.
func (h *StoreHandler) HandleGetStore(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return respondError(c, "store", err)
	}

	detail, err := h.storeService.GetStoreDetail(id, middleware.IdentityFrom(c))
	if err != nil {
		return respondError(c, "store", err)
	}
	return c.JSON(detail)
}

// HandleAdminListStores is the filtered, sorted admin listing.
func (h *StoreHandler) HandleAdminListStores(c *fiber.Ctx) error {
	stores, err := h.storeService.ListStoresForAdmin(storeFilter(c))
	if err != nil {
		return respondError(c, "store", err)
	}
	return c.JSON(stores)
}

// HandleOwnerStores lists the caller's own stores.
func (h *StoreHandler) HandleOwnerStores(c *fiber.Ctx) error {
	stores, err := h.storeService.ListOwnedStores(middleware.IdentityFrom(c).ID)
	if err != nil {
		return respondError(c, "store", err)
	}
	return c.JSON(stores)
}

// HandleStoreRatings lists who rated a store; owners only see their own stores.
func (h *StoreHandler) HandleStoreRatings(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return respondError(c, "store", err)
	}

	raters, err := h.storeService.ListStoreRaters(middleware.IdentityFrom(c), id)
	if err != nil {
		return respondError(c, "store", err)
	}
	return c.JSON(raters)
}

// HandleCreateStore creates a store.
func (h *StoreHandler) HandleCreateStore(c *fiber.Ctx) error {
	return createStore(c, h.validate, h.storeService)
}

func createStore(c *fiber.Ctx, v *validator.Validate, storeService *services.StoreService) error {
	var req CreateStoreRequest
	if err := parseBody(c, v, &req); err != nil {
		return respondError(c, "", err)
	}

	store, err := storeService.CreateStore(req.input())
	if err != nil {
		return respondError(c, "owner", err)
	}
	return c.Status(fiber.StatusCreated).JSON(store)
}

func storeFilter(c *fiber.Ctx) repositories.StoreFilter {
	return repositories.StoreFilter{
		Search:    c.Query("search"),
		SortBy:    c.Query("sortBy"),
		SortOrder: c.Query("sortOrder"),
	}
}
