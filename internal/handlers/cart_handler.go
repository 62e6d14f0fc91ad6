package handlers

import (
	"log"

	"bazaar/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CartHandler handles HTTP requests for carts, checkout and payments. All
// routes require authentication; the customer is taken from the JWT claims.
type CartHandler struct {
	service  *services.OrderService
	validate *validator.Validate
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(service *services.OrderService) *CartHandler {
	return &CartHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the cart and payment routes with the Fiber app.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	cartRoutes := router.Group("/cart")
	cartRoutes.Get("/", h.HandleGetCart)
	cartRoutes.Post("/items", h.HandleAddItem)
	cartRoutes.Put("/items/:productId", h.HandleUpdateItem)
	cartRoutes.Delete("/items/:productId", h.HandleRemoveItem)
	cartRoutes.Post("/checkout", h.HandleCheckout)

	paymentRoutes := router.Group("/payments")
	paymentRoutes.Get("/", h.HandleGetPayments)
	paymentRoutes.Get("/:id", h.HandleGetPaymentByID)
}

// customerID extracts the authenticated customer from the request context.
func customerID(c *fiber.Ctx) (string, bool) {
	id, ok := c.Locals("subject_id").(string)
	return id, ok && id != ""
}

// HandleGetCart returns the customer's cart with items and product data.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	id, ok := customerID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Missing customer identity",
		})
	}

	cart, err := h.service.GetCart(id)
	if err != nil {
		log.Printf("Error getting cart of customer %s: %v", id, err)
		return c.Status(statusForError(err)).JSON(fiber.Map{
			"message": "Could not retrieve cart",
			"error":   err.Error(),
		})
	}
	return c.JSON(cart)
}

// AddItemRequest represents the request body for adding a product to the cart.
type AddItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

// HandleAddItem puts a product into the cart (or replaces its quantity).
func (h *CartHandler) HandleAddItem(c *fiber.Ctx) error {
	id, ok := customerID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Missing customer identity",
		})
	}

	var req AddItemRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing add-item body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationResponse(c, err)
	}

	item, err := h.service.AddItem(id, req.ProductID, req.Quantity)
	if err != nil {
		log.Printf("Error adding item %s for customer %s: %v", req.ProductID, id, err)
		return c.Status(statusForError(err)).JSON(fiber.Map{
			"message": "Could not add item to cart",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// UpdateItemRequest represents the request body for a quantity change.
type UpdateItemRequest struct {
	Quantity int `json:"quantity" validate:"required,gt=0"`
}

// HandleUpdateItem changes the wished quantity of an unpurchased item.
func (h *CartHandler) HandleUpdateItem(c *fiber.Ctx) error {
	id, ok := customerID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Missing customer identity",
		})
	}
	productID := c.Params("productId")

	var req UpdateItemRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing update-item body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationResponse(c, err)
	}

	if err := h.service.UpdateItemQuantity(id, productID, req.Quantity); err != nil {
		log.Printf("Error updating item %s for customer %s: %v", productID, id, err)
		return c.Status(statusForError(err)).JSON(fiber.Map{
			"message": "Could not update cart item",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"message": "Cart item updated successfully",
	})
}

// HandleRemoveItem drops an unpurchased item from the cart.
func (h *CartHandler) HandleRemoveItem(c *fiber.Ctx) error {
	id, ok := customerID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Missing customer identity",
		})
	}
	productID := c.Params("productId")

	if err := h.service.RemoveItem(id, productID); err != nil {
		log.Printf("Error removing item %s for customer %s: %v", productID, id, err)
		return c.Status(statusForError(err)).JSON(fiber.Map{
			"message": "Could not remove cart item",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"message": "Cart item removed successfully",
	})
}

// CheckoutRequest represents the request body for checkout.
type CheckoutRequest struct {
	CartID      string `json:"cart_id" validate:"required"`
	PaymentType string `json:"payment_type" validate:"required"`
}

// HandleCheckout converts the cart's unpurchased items into a payment.
func (h *CartHandler) HandleCheckout(c *fiber.Ctx) error {
	id, ok := customerID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Missing customer identity",
		})
	}

	var req CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing checkout body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationResponse(c, err)
	}

	payment, err := h.service.Checkout(id, req.CartID, req.PaymentType)
	if err != nil {
		log.Printf("Error during checkout of cart %s for customer %s: %v", req.CartID, id, err)
		return c.Status(statusForError(err)).JSON(fiber.Map{
			"message": "Checkout failed",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(payment)
}

// HandleGetPayments returns the customer's payment history, newest first.
func (h *CartHandler) HandleGetPayments(c *fiber.Ctx) error {
	id, ok := customerID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Missing customer identity",
		})
	}

	payments, err := h.service.GetPaymentHistory(id)
	if err != nil {
		log.Printf("Error getting payments of customer %s: %v", id, err)
		return c.Status(statusForError(err)).JSON(fiber.Map{
			"message": "Could not retrieve payments",
			"error":   err.Error(),
		})
	}
	return c.JSON(payments)
}

// HandleGetPaymentByID retrieves a single payment of the customer.
func (h *CartHandler) HandleGetPaymentByID(c *fiber.Ctx) error {
	id, ok := customerID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Missing customer identity",
		})
	}
	paymentID := c.Params("id")

	payment, err := h.service.GetPaymentByID(paymentID)
	if err != nil {
		log.Printf("Error getting payment %s: %v", paymentID, err)
		return c.Status(statusForError(err)).JSON(fiber.Map{
			"message": "Could not retrieve payment",
			"error":   err.Error(),
		})
	}
	if payment.CustomerID != id {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Could not retrieve payment",
		})
	}
	return c.JSON(payment)
}
