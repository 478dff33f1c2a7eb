package handlers

import (
	"storerating/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	authService       *services.AuthService
	onboardingService *services.OnboardingService
	validate          *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, onboardingService *services.OnboardingService) *AuthHandler {
	return &AuthHandler{
		authService:       authService,
		onboardingService: onboardingService,
		validate:          newValidator(),
	}
}

// RegisterRoutes registers the authentication routes with the Fiber app.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/register", h.HandleRegister)
	authRoutes.Post("/signup", h.HandleRegister)
	authRoutes.Post("/login", h.HandleLogin)
	authRoutes.Post("/signup-owner", h.HandleSignupOwner)
}

// HandleRegister handles new user registration.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := parseBody(c, h.validate, &req); err != nil {
		return respondError(c, "", err)
	}

	user, err := h.authService.Register(req.account())
	if err != nil {
		return respondError(c, "", err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "User registered successfully",
		"user":    user,
	})
}

// HandleLogin handles user login and issues a JWT token.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := parseBody(c, h.validate, &req); err != nil {
		return respondError(c, "", err)
	}

	token, user, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		return respondError(c, "", err)
	}

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"token":   token,
		"user":    user,
	})
}

// HandleSignupOwner creates a store owner and its store in one step.
func (h *AuthHandler) HandleSignupOwner(c *fiber.Ctx) error {
	var req OwnerSignupRequest
	if err := parseBody(c, h.validate, &req); err != nil {
		return respondError(c, "", err)
	}

	result, err := h.onboardingService.SignupOwner(services.OwnerSignupInput{
		AccountInput: req.account(),
		StoreName:    req.StoreName,
		StoreAddress: req.StoreAddress,
	})
	if err != nil {
		return respondError(c, "", err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Store owner and store created successfully.",
		"user":    result.Owner,
		"store":   result.Store,
	})
}
