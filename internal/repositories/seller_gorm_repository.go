package repositories

import (
	"errors"
	"fmt"

	"bazaar/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMSellerRepository is a GORM implementation of SellerRepository.
type GORMSellerRepository struct {
	db *gorm.DB
}

// NewGORMSellerRepository creates a new instance of GORMSellerRepository.
func NewGORMSellerRepository(db *gorm.DB) *GORMSellerRepository {
	return &GORMSellerRepository{
		db: db,
	}
}

// Create creates a new seller (with phone rows) in the database.
func (r *GORMSellerRepository) Create(seller *models.Seller) error {
	if seller.ID == "" {
		seller.ID = uuid.New().String()
	}
	for i := range seller.Phones {
		seller.Phones[i].SellerID = seller.ID
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		var existing models.Seller
		err := tx.First(&existing, "id = ?", seller.ID).Error
		if err == nil {
			return fmt.Errorf("seller with ID %s already exists: %w", seller.ID, models.ErrConflict)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to check seller %s: %w", seller.ID, err)
		}
		if err := tx.Create(seller).Error; err != nil {
			return fmt.Errorf("failed to create seller: %w", err)
		}
		return nil
	})
}

// GetByID retrieves a seller with phones and products by ID.
func (r *GORMSellerRepository) GetByID(id string) (*models.Seller, error) {
	var seller models.Seller
	if err := r.db.Preload("Phones").Preload("Products").First(&seller, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("seller with ID %s: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get seller by ID %s: %w", id, err)
	}
	return &seller, nil
}

// GetAll retrieves all sellers.
func (r *GORMSellerRepository) GetAll() ([]models.Seller, error) {
	var sellers []models.Seller
	if err := r.db.Preload("Phones").Find(&sellers).Error; err != nil {
		return nil, fmt.Errorf("failed to get all sellers: %w", err)
	}
	return sellers, nil
}

// Update updates an existing seller.
func (r *GORMSellerRepository) Update(seller *models.Seller) error {
	res := r.db.Model(&models.Seller{}).Where("id = ?", seller.ID).Updates(map[string]interface{}{
		"name":    seller.Name,
		"address": seller.Address,
	})
	if res.Error != nil {
		return fmt.Errorf("failed to update seller: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("seller with ID %s: %w", seller.ID, models.ErrNotFound)
	}
	return nil
}

// Delete removes the seller in one transaction: phone rows are deleted, the
// seller's products have their stock zeroed (so the orphaned listings cannot
// be checked out) and their seller reference cleared. The stock is zeroed
// before the reference is cleared, keeping the sweep scoped to this seller's
// products; catalog products that never had a seller are left alone. The
// referential actions are executed explicitly so behavior does not depend on
// driver-level foreign-key enforcement.
func (r *GORMSellerRepository) Delete(id string) (int64, error) {
	var swept int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var seller models.Seller
		if err := tx.First(&seller, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("seller with ID %s: %w", id, models.ErrNotFound)
			}
			return fmt.Errorf("failed to load seller %s: %w", id, err)
		}

		if err := tx.Where("seller_id = ?", id).Delete(&models.SellerPhone{}).Error; err != nil {
			return fmt.Errorf("failed to delete phones of seller %s: %w", id, err)
		}
		res := tx.Model(&models.Product{}).
			Where("seller_id = ? AND quantity > 0", id).
			Update("quantity", 0)
		if res.Error != nil {
			return fmt.Errorf("failed to zero stock of seller %s: %w", id, res.Error)
		}
		swept = res.RowsAffected
		if err := tx.Model(&models.Product{}).Where("seller_id = ?", id).
			Update("seller_id", nil).Error; err != nil {
			return fmt.Errorf("failed to orphan products of seller %s: %w", id, err)
		}
		if err := tx.Delete(&models.Seller{}, "id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to delete seller %s: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return swept, nil
}
