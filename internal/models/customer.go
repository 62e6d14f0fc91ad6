package models

import "gorm.io/gorm"

// Customer represents a registered buyer. Every customer owns exactly one
// cart, created together with the customer row.
type Customer struct {
	ID         string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name       string `json:"name" validate:"required,min=2,max=100"`
	Address    string `json:"address" validate:"omitempty,max=255"`
	Pincode    string `json:"pincode" validate:"omitempty,numeric,min=4,max=10"`
	Phone      string `json:"phone" gorm:"uniqueIndex;type:varchar(15)" validate:"required,min=7,max=15"`
	Password   string `gorm:"type:varchar(255)" validate:"required,min=6"` // No json tag for security
	Cart       *Cart  `json:"cart,omitempty" gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE"`
	gorm.Model        // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
