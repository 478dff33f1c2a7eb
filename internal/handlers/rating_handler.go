package handlers

import (
	"storerating/internal/middleware"
	"storerating/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// RatingHandler handles rating submissions.
type RatingHandler struct {
	ratingService *services.RatingService
	verifier      middleware.TokenVerifier
	validate      *validator.Validate
}

// NewRatingHandler creates a new RatingHandler.
func NewRatingHandler(ratingService *services.RatingService, verifier middleware.TokenVerifier) *RatingHandler {
	return &RatingHandler{
		ratingService: ratingService,
		verifier:      verifier,
		validate:      newValidator(),
	}
}

// RegisterRoutes registers the rating routes.
func (h *RatingHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/ratings", middleware.AuthRequired(h.verifier), h.HandleSubmitRating)
}

// HandleSubmitRating creates or replaces the caller's rating of a store.
func (h *RatingHandler) HandleSubmitRating(c *fiber.Ctx) error {
	var req RatingRequest
	if err := parseBody(c, h.validate, &req); err != nil {
		return respondError(c, "", err)
	}

	rating, err := h.ratingService.Submit(middleware.IdentityFrom(c).ID, uint(req.StoreID), req.Rating)
	if err != nil {
		return respondError(c, "store", err)
	}
	return c.Status(fiber.StatusCreated).JSON(rating)
}
