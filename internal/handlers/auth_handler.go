package handlers

import (
	"fmt"
	"log"

	"bazaar/internal/models"
	"bazaar/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles HTTP requests for registration and login.
type AuthHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the authentication routes with the Fiber app.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/customers/register", h.HandleRegisterCustomer)
	authRoutes.Post("/customers/login", h.HandleLoginCustomer)
	authRoutes.Post("/sellers/register", h.HandleRegisterSeller)
	authRoutes.Post("/sellers/login", h.HandleLoginSeller)
}

// HandleRegisterCustomer handles new customer registration.
func (h *AuthHandler) HandleRegisterCustomer(c *fiber.Ctx) error {
	var customer models.Customer
	if err := c.BodyParser(&customer); err != nil {
		log.Printf("Error parsing customer register body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(customer); err != nil {
		return validationResponse(c, err)
	}

	if err := h.authService.RegisterCustomer(&customer); err != nil {
		log.Printf("Error registering customer: %v", err)
		return c.Status(statusForError(err)).JSON(fiber.Map{
			"message": "Registration failed",
			"error":   err.Error(),
		})
	}

	// For security, do not return the password hash
	customer.Password = ""
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "Customer registered successfully",
		"customer": customer,
	})
}

// HandleRegisterSeller handles new seller registration.
func (h *AuthHandler) HandleRegisterSeller(c *fiber.Ctx) error {
	var seller models.Seller
	if err := c.BodyParser(&seller); err != nil {
		log.Printf("Error parsing seller register body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(seller); err != nil {
		return validationResponse(c, err)
	}

	if err := h.authService.RegisterSeller(&seller); err != nil {
		log.Printf("Error registering seller: %v", err)
		return c.Status(statusForError(err)).JSON(fiber.Map{
			"message": "Registration failed",
			"error":   err.Error(),
		})
	}

	seller.Password = ""
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Seller registered successfully",
		"seller":  seller,
	})
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	ID       string `json:"id" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// HandleLoginCustomer handles customer login and issues a JWT token.
func (h *AuthHandler) HandleLoginCustomer(c *fiber.Ctx) error {
	return h.handleLogin(c, h.authService.LoginCustomer)
}

// HandleLoginSeller handles seller login and issues a JWT token.
func (h *AuthHandler) HandleLoginSeller(c *fiber.Ctx) error {
	return h.handleLogin(c, h.authService.LoginSeller)
}

func (h *AuthHandler) handleLogin(c *fiber.Ctx, login func(id, password string) (string, error)) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing login request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationResponse(c, err)
	}

	token, err := login(req.ID, req.Password)
	if err != nil {
		log.Printf("Error during login for %s: %v", req.ID, err)
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Authentication failed",
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"token":   token,
	})
}

// validationResponse renders validator errors as a 400 with per-field messages.
func validationResponse(c *fiber.Ctx, err error) error {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"error":   err.Error(),
		})
	}
	errorMessages := make(map[string]string)
	for _, e := range validationErrors {
		errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Validation failed",
		"errors":  errorMessages,
	})
}
