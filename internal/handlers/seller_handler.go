package handlers

import (
	"log"

	"bazaar/internal/models"
	"bazaar/internal/services"

	"github.com/gofiber/fiber/v2"
)

// SellerHandler handles HTTP requests for sellers.
type SellerHandler struct {
	service *services.SellerService
}

// NewSellerHandler creates a new SellerHandler.
func NewSellerHandler(service *services.SellerService) *SellerHandler {
	return &SellerHandler{
		service: service,
	}
}

// RegisterRoutes registers the seller routes with the Fiber app.
func (h *SellerHandler) RegisterRoutes(router fiber.Router) {
	sellerRoutes := router.Group("/sellers")
	sellerRoutes.Get("/", h.HandleGetSellers)
	sellerRoutes.Get("/:id", h.HandleGetSellerByID)
	sellerRoutes.Put("/:id", h.HandleUpdateSeller)
	sellerRoutes.Delete("/:id", h.HandleDeleteSeller)
}

// HandleGetSellers retrieves all sellers.
func (h *SellerHandler) HandleGetSellers(c *fiber.Ctx) error {
	sellers, err := h.service.GetAllSellers()
	if err != nil {
		log.Printf("Error getting all sellers: %v", err)
		return c.Status(statusForError(err)).JSON(fiber.Map{
			"message": "Could not retrieve sellers",
			"error":   err.Error(),
		})
	}
	for i := range sellers {
		sellers[i].Password = ""
	}
	return c.JSON(sellers)
}

// HandleGetSellerByID retrieves a single seller by its ID.
func (h *SellerHandler) HandleGetSellerByID(c *fiber.Ctx) error {
	sellerID := c.Params("id")
	seller, err := h.service.GetSellerByID(sellerID)
	if err != nil {
		log.Printf("Error getting seller by ID %s: %v", sellerID, err)
		return c.Status(statusForError(err)).JSON(fiber.Map{
			"message": "Could not retrieve seller",
			"error":   err.Error(),
		})
	}
	seller.Password = ""
	return c.JSON(seller)
}

// HandleUpdateSeller updates a seller's name and address.
func (h *SellerHandler) HandleUpdateSeller(c *fiber.Ctx) error {
	var seller models.Seller
	if err := c.BodyParser(&seller); err != nil {
		log.Printf("Error parsing seller body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	seller.ID = c.Params("id")

	if err := h.service.UpdateSeller(&seller); err != nil {
		log.Printf("Error updating seller %s: %v", seller.ID, err)
		return c.Status(statusForError(err)).JSON(fiber.Map{
			"message": "Could not update seller",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"message": "Seller updated successfully",
	})
}

// HandleDeleteSeller removes a seller: phone rows are deleted with it, its
// products lose their seller reference and have their stock zeroed.
func (h *SellerHandler) HandleDeleteSeller(c *fiber.Ctx) error {
	sellerID := c.Params("id")
	if err := h.service.DeleteSeller(sellerID); err != nil {
		log.Printf("Error deleting seller %s: %v", sellerID, err)
		return c.Status(statusForError(err)).JSON(fiber.Map{
			"message": "Could not delete seller",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"message": "Seller deleted successfully",
	})
}
