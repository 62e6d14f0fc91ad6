package repositories

import (
	"errors"
	"fmt"
	"time"

	"bazaar/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{
		db: db,
	}
}

// GetCartByID retrieves a cart with its items and their products.
func (r *GORMOrderRepository) GetCartByID(cartID string) (*models.Cart, error) {
	var cart models.Cart
	if err := r.db.Preload("Items").Preload("Items.Product").First(&cart, "id = ?", cartID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("cart with ID %s: %w", cartID, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get cart by ID %s: %w", cartID, err)
	}
	return &cart, nil
}

// GetCartByCustomerID retrieves a customer's cart with its items.
func (r *GORMOrderRepository) GetCartByCustomerID(customerID string) (*models.Cart, error) {
	var cart models.Cart
	if err := r.db.Preload("Items").Preload("Items.Product").First(&cart, "customer_id = ?", customerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("cart of customer %s: %w", customerID, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get cart of customer %s: %w", customerID, err)
	}
	return &cart, nil
}

// AddItem upserts an unpurchased cart item. The (cart, product) pair is the
// primary key, so re-adding replaces the wished quantity instead of creating
// a second row. A purchased row for the pair is historical and read-only.
func (r *GORMOrderRepository) AddItem(cartID, productID string, quantity int) (*models.CartItem, error) {
	var item models.CartItem
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&models.Cart{}, "id = ?", cartID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("cart with ID %s: %w", cartID, models.ErrNotFound)
			}
			return fmt.Errorf("failed to load cart %s: %w", cartID, err)
		}
		if err := tx.First(&models.Product{}, "id = ?", productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("product with ID %s: %w", productID, models.ErrNotFound)
			}
			return fmt.Errorf("failed to load product %s: %w", productID, err)
		}

		err := tx.First(&item, "cart_id = ? AND product_id = ?", cartID, productID).Error
		switch {
		case err == nil:
			if item.Purchased {
				return fmt.Errorf("product %s already purchased in cart %s: %w", productID, cartID, models.ErrConflict)
			}
			item.Quantity = quantity
			return tx.Model(&models.CartItem{}).
				Where("cart_id = ? AND product_id = ?", cartID, productID).
				Update("quantity", quantity).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			item = models.CartItem{
				CartID:    cartID,
				ProductID: productID,
				Quantity:  quantity,
				DateAdded: time.Now(),
				Purchased: false,
			}
			if err := tx.Create(&item).Error; err != nil {
				return fmt.Errorf("failed to add item to cart %s: %w", cartID, err)
			}
			return nil
		default:
			return fmt.Errorf("failed to load cart item: %w", err)
		}
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateItemQuantity changes the wished quantity of an unpurchased item.
func (r *GORMOrderRepository) UpdateItemQuantity(cartID, productID string, quantity int) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		item, err := loadUnpurchasedItem(tx, cartID, productID)
		if err != nil {
			return err
		}
		item.Quantity = quantity
		return tx.Model(&models.CartItem{}).
			Where("cart_id = ? AND product_id = ?", cartID, productID).
			Update("quantity", quantity).Error
	})
}

// RemoveItem deletes an unpurchased item from the cart.
func (r *GORMOrderRepository) RemoveItem(cartID, productID string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if _, err := loadUnpurchasedItem(tx, cartID, productID); err != nil {
			return err
		}
		return tx.Where("cart_id = ? AND product_id = ?", cartID, productID).
			Delete(&models.CartItem{}).Error
	})
}

func loadUnpurchasedItem(tx *gorm.DB, cartID, productID string) (*models.CartItem, error) {
	var item models.CartItem
	if err := tx.First(&item, "cart_id = ? AND product_id = ?", cartID, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("item %s in cart %s: %w", productID, cartID, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load cart item: %w", err)
	}
	if item.Purchased {
		return nil, fmt.Errorf("item %s in cart %s is purchased and read-only: %w", productID, cartID, models.ErrConflict)
	}
	return &item, nil
}

// Checkout runs the whole cart-to-payment flow in a single transaction:
// total computation, per-product stock decrement, purchased flip and payment
// insertion commit together or roll back together. The stock decrement is a
// conditional UPDATE guarded by `quantity >= wished`, so the non-negative
// invariant holds under concurrent checkouts: the row lock taken by the
// UPDATE serializes two checkouts touching the same product, and the loser
// re-evaluates the guard against the committed quantity. The purchased flip
// is guarded the same way: it must touch exactly the totaled items, so two
// checkouts of the same cart can never both produce a payment.
func (r *GORMOrderRepository) Checkout(customerID, cartID, paymentType string) (*models.Payment, error) {
	payment := &models.Payment{
		ID:          uuid.New().String(),
		Date:        time.Now(),
		PaymentType: paymentType,
		CustomerID:  customerID,
		CartID:      cartID,
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var cart models.Cart
		if err := tx.First(&cart, "id = ?", cartID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("cart with ID %s: %w", cartID, models.ErrNotFound)
			}
			return fmt.Errorf("failed to load cart %s: %w", cartID, err)
		}
		if cart.CustomerID != customerID {
			return fmt.Errorf("cart %s does not belong to customer %s: %w", cartID, customerID, models.ErrNotFound)
		}

		var items []models.CartItem
		if err := tx.Where("cart_id = ? AND purchased = ?", cartID, false).Find(&items).Error; err != nil {
			return fmt.Errorf("failed to load items of cart %s: %w", cartID, err)
		}
		if len(items) == 0 {
			return fmt.Errorf("cart %s: %w", cartID, models.ErrEmptyCart)
		}

		total := decimal.Zero
		for _, item := range items {
			var product models.Product
			if err := tx.First(&product, "id = ?", item.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("product with ID %s: %w", item.ProductID, models.ErrNotFound)
				}
				return fmt.Errorf("failed to load product %s: %w", item.ProductID, err)
			}
			total = total.Add(product.Cost.Mul(decimal.NewFromInt(int64(item.Quantity))))

			res := tx.Model(&models.Product{}).
				Where("id = ? AND quantity >= ?", item.ProductID, item.Quantity).
				UpdateColumn("quantity", gorm.Expr("quantity - ?", item.Quantity))
			if res.Error != nil {
				return fmt.Errorf("failed to decrement stock of product %s: %w", item.ProductID, res.Error)
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("product %s has %d in stock, wished %d: %w",
					item.ProductID, product.Quantity, item.Quantity, models.ErrInsufficientInventory)
			}
		}

		// Flip exactly the items that were totaled. A concurrent checkout of
		// the same cart can flip them first; then this update matches fewer
		// rows and the whole transaction must roll back, or the customer
		// would be charged twice for items purchased once.
		res := tx.Model(&models.CartItem{}).
			Where("cart_id = ? AND purchased = ?", cartID, false).
			Update("purchased", true)
		if res.Error != nil {
			return fmt.Errorf("failed to mark items of cart %s purchased: %w", cartID, res.Error)
		}
		if res.RowsAffected != int64(len(items)) {
			return fmt.Errorf("items of cart %s were checked out concurrently: %w", cartID, models.ErrConflict)
		}

		payment.TotalAmount = total
		if err := tx.Create(payment).Error; err != nil {
			return fmt.Errorf("failed to record payment for cart %s: %w", cartID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return payment, nil
}

// GetPaymentByID retrieves a single payment by its ID.
func (r *GORMOrderRepository) GetPaymentByID(id string) (*models.Payment, error) {
	var payment models.Payment
	if err := r.db.First(&payment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("payment with ID %s: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get payment by ID %s: %w", id, err)
	}
	return &payment, nil
}

// GetPaymentsByCustomerID retrieves a customer's payments, newest first.
func (r *GORMOrderRepository) GetPaymentsByCustomerID(customerID string) ([]models.Payment, error) {
	var payments []models.Payment
	if err := r.db.Where("customer_id = ?", customerID).Order("date DESC").Find(&payments).Error; err != nil {
		return nil, fmt.Errorf("failed to get payments of customer %s: %w", customerID, err)
	}
	return payments, nil
}
