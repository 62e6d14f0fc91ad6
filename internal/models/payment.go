package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Payment records one checkout event. Rows are created inside the checkout
// transaction and never modified afterwards.
type Payment struct {
	ID          string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Date        time.Time       `json:"date" gorm:"not null"`
	PaymentType string          `json:"payment_type" gorm:"type:varchar(20);not null" validate:"required"`
	CustomerID  string          `json:"customer_id" gorm:"type:varchar(36);index;not null"`
	CartID      string          `json:"cart_id" gorm:"type:varchar(36);index;not null"`
	TotalAmount decimal.Decimal `json:"total_amount" gorm:"type:decimal(12,2)"`
	gorm.Model                  // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
