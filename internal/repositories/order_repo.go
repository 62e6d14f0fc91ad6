package repositories

import (
	"bazaar/internal/models"
)

// OrderRepository defines the interface for cart, checkout and payment data
// access. Checkout is the one operation with real atomicity requirements:
// payment insertion, inventory decrement and the purchased flip must commit
// together or not at all.
type OrderRepository interface {
	GetCartByID(cartID string) (*models.Cart, error)
	GetCartByCustomerID(customerID string) (*models.Cart, error)

	// AddItem upserts an unpurchased (cart, product) row: re-adding a
	// product replaces its quantity. A purchased row for the same pair is
	// read-only and yields ErrConflict.
	AddItem(cartID, productID string, quantity int) (*models.CartItem, error)
	UpdateItemQuantity(cartID, productID string, quantity int) error
	RemoveItem(cartID, productID string) error

	// Checkout converts every unpurchased item of the cart into a payment,
	// decrementing product stock in the same transaction. It fails with
	// ErrNotFound on a cart/customer mismatch, ErrEmptyCart when nothing is
	// unpurchased, and ErrInsufficientInventory when any decrement would go
	// negative; on failure nothing is committed.
	Checkout(customerID, cartID, paymentType string) (*models.Payment, error)

	GetPaymentByID(id string) (*models.Payment, error)
	GetPaymentsByCustomerID(customerID string) ([]models.Payment, error)
}
