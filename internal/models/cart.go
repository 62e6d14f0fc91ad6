package models

import (
	"time"

	"gorm.io/gorm"
)

// Cart is a customer's single, long-lived collection of desired products.
type Cart struct {
	ID         string     `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	CustomerID string     `json:"customer_id" gorm:"uniqueIndex;type:varchar(36);not null"`
	Items      []CartItem `json:"items,omitempty" gorm:"foreignKey:CartID"`
	gorm.Model            // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

// CartItem associates a cart with a product. The (CartID, ProductID) pair is
// the primary key: re-adding a product updates the row instead of duplicating
// it. Purchased rows are historical and read-only; only checkout flips the
// flag.
type CartItem struct {
	CartID    string    `json:"cart_id" gorm:"primaryKey;type:varchar(36)"`
	ProductID string    `json:"product_id" gorm:"primaryKey;type:varchar(36)"`
	Quantity  int       `json:"quantity" gorm:"not null" validate:"required,gt=0"`
	DateAdded time.Time `json:"date_added"`
	Purchased bool      `json:"purchased" gorm:"not null;default:false"`
	Product   *Product  `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}
