package models

import "gorm.io/gorm"

// Seller represents a merchant selling products on the platform.
// Deleting a seller removes its phone rows and orphans its products
// (Product.SellerID set to NULL) rather than deleting them.
type Seller struct {
	ID         string        `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name       string        `json:"name" validate:"required,min=2,max=100"`
	Address    string        `json:"address" validate:"omitempty,max=255"`
	Password   string        `gorm:"type:varchar(255)" validate:"required,min=6"` // No json tag for security
	Phones     []SellerPhone `json:"phones,omitempty" gorm:"foreignKey:SellerID;constraint:OnDelete:CASCADE"`
	Products   []Product     `json:"products,omitempty" gorm:"foreignKey:SellerID;constraint:OnDelete:SET NULL"`
	gorm.Model               // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

// SellerPhone is one phone number of a seller. A seller can have several.
type SellerPhone struct {
	SellerID string `json:"seller_id" gorm:"primaryKey;type:varchar(36)"`
	Phone    string `json:"phone" gorm:"primaryKey;type:varchar(15)" validate:"required,min=7,max=15"`
}
