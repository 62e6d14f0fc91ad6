package handlers

import (
	"log"

	"bazaar/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ReportHandler handles HTTP requests for the reporting queries.
type ReportHandler struct {
	service *services.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(service *services.ReportService) *ReportHandler {
	return &ReportHandler{
		service: service,
	}
}

// RegisterRoutes registers the report routes with the Fiber app.
func (h *ReportHandler) RegisterRoutes(router fiber.Router) {
	reportRoutes := router.Group("/reports")
	reportRoutes.Get("/popular-product", h.HandleMostPopularProduct)
	reportRoutes.Get("/revenue-by-date", h.HandleRevenueByDate)
	reportRoutes.Get("/customers-without-payments", h.HandleCustomersWithoutPayments)
	reportRoutes.Get("/platform-profit", h.HandlePlatformProfit)
}

// HandleMostPopularProduct returns the product with the highest total
// purchased quantity.
func (h *ReportHandler) HandleMostPopularProduct(c *fiber.Ctx) error {
	popularity, err := h.service.MostPopularProduct()
	if err != nil {
		log.Printf("Error computing most popular product: %v", err)
		return c.Status(statusForError(err)).JSON(fiber.Map{
			"message": "Could not compute most popular product",
			"error":   err.Error(),
		})
	}
	return c.JSON(popularity)
}

// HandleRevenueByDate returns payment totals grouped by calendar date.
func (h *ReportHandler) HandleRevenueByDate(c *fiber.Ctx) error {
	revenues, err := h.service.RevenueByDate()
	if err != nil {
		log.Printf("Error computing revenue by date: %v", err)
		return c.Status(statusForError(err)).JSON(fiber.Map{
			"message": "Could not compute revenue by date",
			"error":   err.Error(),
		})
	}
	return c.JSON(revenues)
}

// HandleCustomersWithoutPayments lists customers that never checked out.
func (h *ReportHandler) HandleCustomersWithoutPayments(c *fiber.Ctx) error {
	customers, err := h.service.CustomersWithoutPayments()
	if err != nil {
		log.Printf("Error listing customers without payments: %v", err)
		return c.Status(statusForError(err)).JSON(fiber.Map{
			"message": "Could not list customers",
			"error":   err.Error(),
		})
	}
	for i := range customers {
		customers[i].Password = ""
	}
	return c.JSON(customers)
}

// HandlePlatformProfit returns the total commission retained on sold items.
func (h *ReportHandler) HandlePlatformProfit(c *fiber.Ctx) error {
	profit, err := h.service.PlatformProfit()
	if err != nil {
		log.Printf("Error computing platform profit: %v", err)
		return c.Status(statusForError(err)).JSON(fiber.Map{
			"message": "Could not compute platform profit",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"profit": profit,
	})
}
