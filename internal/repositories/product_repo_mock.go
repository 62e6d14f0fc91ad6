package repositories

import (
	"fmt"
	"sync"

	"bazaar/internal/models"

	"github.com/google/uuid"
)

// MockProductRepository is an in-memory implementation of ProductRepository.
type MockProductRepository struct {
	products map[string]models.Product
	mu       sync.RWMutex
}

// NewMockProductRepository creates a new instance of MockProductRepository.
func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{
		products: make(map[string]models.Product),
	}
}

// GetAll returns all products.
func (r *MockProductRepository) GetAll() ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	productList := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		productList = append(productList, p)
	}
	return productList, nil
}

// GetByID returns a product by its ID.
func (r *MockProductRepository) GetByID(id string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, fmt.Errorf("product with ID %s: %w", id, models.ErrNotFound)
	}
	return &product, nil
}

// Search returns products matching the filters.
func (r *MockProductRepository) Search(filters ProductFilters) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matches []models.Product
	for _, p := range r.products {
		if filters.Type != "" && p.Type != filters.Type {
			continue
		}
		if filters.Color != "" && p.Color != filters.Color {
			continue
		}
		if filters.Size != "" && p.Size != filters.Size {
			continue
		}
		if filters.Gender != "" && p.Gender != filters.Gender {
			continue
		}
		if filters.MaxCost != nil && p.Cost.GreaterThan(*filters.MaxCost) {
			continue
		}
		matches = append(matches, p)
	}
	return matches, nil
}

// Create adds a new product.
func (r *MockProductRepository) Create(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	if _, ok := r.products[product.ID]; ok {
		return fmt.Errorf("product with ID %s already exists: %w", product.ID, models.ErrConflict)
	}
	r.products[product.ID] = *product
	return nil
}

// Update modifies an existing product.
func (r *MockProductRepository) Update(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.products[product.ID]
	if !ok {
		return fmt.Errorf("product with ID %s: %w", product.ID, models.ErrNotFound)
	}
	r.products[product.ID] = *product
	return nil
}

// Delete removes a product by its ID.
func (r *MockProductRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.products[id]
	if !ok {
		return fmt.Errorf("product with ID %s: %w", id, models.ErrNotFound)
	}
	delete(r.products, id)
	return nil
}

// adjustQuantity applies a stock delta under the repository lock, refusing
// to go negative. Used by MockOrderRepository to simulate the transactional
// decrement of a real database.
func (r *MockProductRepository) adjustQuantity(id string, delta int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[id]
	if !ok {
		return fmt.Errorf("product with ID %s: %w", id, models.ErrNotFound)
	}
	if product.Quantity+delta < 0 {
		return fmt.Errorf("product %s has %d in stock, wished %d: %w",
			id, product.Quantity, -delta, models.ErrInsufficientInventory)
	}
	product.Quantity += delta
	r.products[id] = product
	return nil
}
