package repositories

import (
	"bazaar/internal/models"
)

// SellerRepository defines the interface for seller data access.
type SellerRepository interface {
	Create(seller *models.Seller) error
	GetByID(id string) (*models.Seller, error)
	GetAll() ([]models.Seller, error)
	Update(seller *models.Seller) error
	// Delete removes the seller, cascades to its phone rows, zeroes stock on
	// the seller's products and clears their SellerID (the products
	// themselves survive). Returns how many products had stock zeroed.
	Delete(id string) (int64, error)
}
