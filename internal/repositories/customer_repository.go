package repositories

import (
	"bazaar/internal/models"
)

// CustomerRepository defines the interface for customer data access.
type CustomerRepository interface {
	// Create persists a new customer together with their cart.
	Create(customer *models.Customer) error
	GetByID(id string) (*models.Customer, error)
	GetByPhone(phone string) (*models.Customer, error)
}
