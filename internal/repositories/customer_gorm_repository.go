package repositories

import (
	"errors"
	"fmt"

	"bazaar/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMCustomerRepository is a GORM implementation of CustomerRepository.
type GORMCustomerRepository struct {
	db *gorm.DB
}

// NewGORMCustomerRepository creates a new instance of GORMCustomerRepository.
func NewGORMCustomerRepository(db *gorm.DB) *GORMCustomerRepository {
	return &GORMCustomerRepository{
		db: db,
	}
}

// Create inserts the customer and their cart in one transaction. A customer
// always owns exactly one cart, so the two rows are born together.
func (r *GORMCustomerRepository) Create(customer *models.Customer) error {
	if customer.ID == "" {
		customer.ID = uuid.New().String()
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		var existing models.Customer
		err := tx.First(&existing, "id = ?", customer.ID).Error
		if err == nil {
			return fmt.Errorf("customer with ID %s already exists: %w", customer.ID, models.ErrConflict)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to check customer %s: %w", customer.ID, err)
		}

		if customer.Cart == nil {
			customer.Cart = &models.Cart{}
		}
		if customer.Cart.ID == "" {
			customer.Cart.ID = uuid.New().String()
		}
		customer.Cart.CustomerID = customer.ID

		if err := tx.Create(customer).Error; err != nil {
			return fmt.Errorf("failed to create customer: %w", err)
		}
		return nil
	})
}

// GetByID retrieves a customer and their cart by customer ID.
func (r *GORMCustomerRepository) GetByID(id string) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.Preload("Cart").First(&customer, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("customer with ID %s: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get customer by ID %s: %w", id, err)
	}
	return &customer, nil
}

// GetByPhone retrieves a customer by their phone number.
func (r *GORMCustomerRepository) GetByPhone(phone string) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.Preload("Cart").First(&customer, "phone = ?", phone).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("customer with phone %s: %w", phone, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get customer by phone %s: %w", phone, err)
	}
	return &customer, nil
}
