package repositories

import (
	"fmt"
	"sync"
	"time"

	"bazaar/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type cartItemKey struct {
	cartID    string
	productID string
}

// MockOrderRepository is an in-memory implementation of OrderRepository.
// It shares product state with a MockProductRepository so checkout can
// simulate the atomic stock decrement of a real database.
type MockOrderRepository struct {
	products *MockProductRepository
	carts    map[string]models.Cart
	items    map[cartItemKey]models.CartItem
	payments map[string]models.Payment
	mu       sync.Mutex
}

// NewMockOrderRepository creates a new instance of MockOrderRepository.
func NewMockOrderRepository(products *MockProductRepository) *MockOrderRepository {
	return &MockOrderRepository{
		products: products,
		carts:    make(map[string]models.Cart),
		items:    make(map[cartItemKey]models.CartItem),
		payments: make(map[string]models.Payment),
	}
}

// CreateCart registers a cart for a customer. The GORM stack creates carts
// through the customer repository; the mock exposes this directly.
func (r *MockOrderRepository) CreateCart(cartID, customerID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.carts[cartID] = models.Cart{ID: cartID, CustomerID: customerID}
}

// GetCartByID returns a cart with its items.
func (r *MockOrderRepository) GetCartByID(cartID string) (*models.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cartWithItems(cartID)
}

// GetCartByCustomerID returns the cart owned by the customer.
func (r *MockOrderRepository) GetCartByCustomerID(customerID string) (*models.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, cart := range r.carts {
		if cart.CustomerID == customerID {
			return r.cartWithItems(id)
		}
	}
	return nil, fmt.Errorf("cart of customer %s: %w", customerID, models.ErrNotFound)
}

func (r *MockOrderRepository) cartWithItems(cartID string) (*models.Cart, error) {
	cart, ok := r.carts[cartID]
	if !ok {
		return nil, fmt.Errorf("cart with ID %s: %w", cartID, models.ErrNotFound)
	}
	for key, item := range r.items {
		if key.cartID == cartID {
			cart.Items = append(cart.Items, item)
		}
	}
	return &cart, nil
}

// AddItem upserts an unpurchased cart item.
func (r *MockOrderRepository) AddItem(cartID, productID string, quantity int) (*models.CartItem, error) {
	if _, err := r.products.GetByID(productID); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.carts[cartID]; !ok {
		return nil, fmt.Errorf("cart with ID %s: %w", cartID, models.ErrNotFound)
	}

	key := cartItemKey{cartID: cartID, productID: productID}
	if existing, ok := r.items[key]; ok {
		if existing.Purchased {
			return nil, fmt.Errorf("product %s already purchased in cart %s: %w", productID, cartID, models.ErrConflict)
		}
		existing.Quantity = quantity
		r.items[key] = existing
		return &existing, nil
	}

	item := models.CartItem{
		CartID:    cartID,
		ProductID: productID,
		Quantity:  quantity,
		DateAdded: time.Now(),
		Purchased: false,
	}
	r.items[key] = item
	return &item, nil
}

// UpdateItemQuantity changes the wished quantity of an unpurchased item.
func (r *MockOrderRepository) UpdateItemQuantity(cartID, productID string, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := cartItemKey{cartID: cartID, productID: productID}
	item, ok := r.items[key]
	if !ok {
		return fmt.Errorf("item %s in cart %s: %w", productID, cartID, models.ErrNotFound)
	}
	if item.Purchased {
		return fmt.Errorf("item %s in cart %s is purchased and read-only: %w", productID, cartID, models.ErrConflict)
	}
	item.Quantity = quantity
	r.items[key] = item
	return nil
}

// RemoveItem deletes an unpurchased item from the cart.
func (r *MockOrderRepository) RemoveItem(cartID, productID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := cartItemKey{cartID: cartID, productID: productID}
	item, ok := r.items[key]
	if !ok {
		return fmt.Errorf("item %s in cart %s: %w", productID, cartID, models.ErrNotFound)
	}
	if item.Purchased {
		return fmt.Errorf("item %s in cart %s is purchased and read-only: %w", productID, cartID, models.ErrConflict)
	}
	delete(r.items, key)
	return nil
}

// Checkout simulates the checkout transaction: it decrements stock item by
// item and undoes the decrements already applied if any later one fails, so
// the all-or-nothing contract holds like in the database implementation.
func (r *MockOrderRepository) Checkout(customerID, cartID, paymentType string) (*models.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cart, ok := r.carts[cartID]
	if !ok || cart.CustomerID != customerID {
		return nil, fmt.Errorf("cart %s of customer %s: %w", cartID, customerID, models.ErrNotFound)
	}

	var keys []cartItemKey
	for key, item := range r.items {
		if key.cartID == cartID && !item.Purchased {
			keys = append(keys, key)
		}
	}
	if len(keys) == 0 {
		return nil, fmt.Errorf("cart %s: %w", cartID, models.ErrEmptyCart)
	}

	total := decimal.Zero
	var decremented []cartItemKey
	for _, key := range keys {
		item := r.items[key]
		product, err := r.products.GetByID(item.ProductID)
		if err == nil {
			err = r.products.adjustQuantity(item.ProductID, -item.Quantity)
		}
		if err != nil {
			for _, done := range decremented {
				_ = r.products.adjustQuantity(done.productID, r.items[done].Quantity)
			}
			return nil, err
		}
		decremented = append(decremented, key)
		total = total.Add(product.Cost.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	for _, key := range keys {
		item := r.items[key]
		item.Purchased = true
		r.items[key] = item
	}

	payment := models.Payment{
		ID:          uuid.New().String(),
		Date:        time.Now(),
		PaymentType: paymentType,
		CustomerID:  customerID,
		CartID:      cartID,
		TotalAmount: total,
	}
	r.payments[payment.ID] = payment
	return &payment, nil
}

// GetPaymentByID returns a payment by its ID.
func (r *MockOrderRepository) GetPaymentByID(id string) (*models.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	payment, ok := r.payments[id]
	if !ok {
		return nil, fmt.Errorf("payment with ID %s: %w", id, models.ErrNotFound)
	}
	return &payment, nil
}

// GetPaymentsByCustomerID returns all payments of a customer.
func (r *MockOrderRepository) GetPaymentsByCustomerID(customerID string) ([]models.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var payments []models.Payment
	for _, p := range r.payments {
		if p.CustomerID == customerID {
			payments = append(payments, p)
		}
	}
	return payments, nil
}
