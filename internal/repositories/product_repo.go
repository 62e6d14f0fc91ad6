package repositories

import (
	"bazaar/internal/models"

	"github.com/shopspring/decimal"
)

// ProductFilters narrows a catalog search. Zero-valued fields are ignored.
type ProductFilters struct {
	Type    string
	Color   string
	Size    string
	Gender  string
	MaxCost *decimal.Decimal
}

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	GetAll() ([]models.Product, error)
	GetByID(id string) (*models.Product, error)
	Search(filters ProductFilters) ([]models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id string) error
}
