package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product represents a product in the catalog. Commission is the percentage
// of the unit cost the platform keeps on a sale. SellerID is nullable: it is
// cleared when the owning seller is removed.
type Product struct {
	ID         string          `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Type       string          `json:"type" validate:"required,min=2,max=50"`
	Color      string          `json:"color" validate:"omitempty,max=30"`
	Size       string          `json:"size" validate:"omitempty,max=10"`
	Gender     string          `json:"gender" validate:"omitempty,oneof=M F U"`
	Commission decimal.Decimal `json:"commission" gorm:"type:decimal(5,2)"`
	Cost       decimal.Decimal `json:"cost" gorm:"type:decimal(10,2);not null"`
	Quantity   int             `json:"quantity" gorm:"not null;default:0" validate:"gte=0"`
	SellerID   *string         `json:"seller_id" gorm:"type:varchar(36);index"`
	gorm.Model                 // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
