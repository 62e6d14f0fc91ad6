package repositories_test

import (
	"testing"

	"bazaar/internal/models"
	"bazaar/internal/repositories"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedSellerWithProducts(t *testing.T, db *gorm.DB, repo *repositories.GORMSellerRepository, sellerID string, phones []string, productIDs []string) {
	t.Helper()
	seller := &models.Seller{
		ID:       sellerID,
		Name:     "Seller " + sellerID,
		Password: "hashed",
	}
	for _, phone := range phones {
		seller.Phones = append(seller.Phones, models.SellerPhone{Phone: phone})
	}
	require.NoError(t, repo.Create(seller))

	for _, productID := range productIDs {
		id := sellerID
		require.NoError(t, db.Create(&models.Product{
			ID:       productID,
			Type:     "shirt",
			Cost:     decimal.NewFromInt(1000),
			Quantity: 5,
			SellerID: &id,
		}).Error)
	}
}

func TestGORMSellerRepository_CreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := repositories.NewGORMSellerRepository(db)

	seedSellerWithProducts(t, db, repo, "sid100", []string{"111", "222"}, []string{"pid1001"})

	seller, err := repo.GetByID("sid100")
	assert.NoError(t, err)
	assert.Len(t, seller.Phones, 2)
	assert.Len(t, seller.Products, 1)

	// Duplicate IDs are conflicts
	err = repo.Create(&models.Seller{ID: "sid100", Name: "Impostor", Password: "x"})
	assert.ErrorIs(t, err, models.ErrConflict)

	_, err = repo.GetByID("sid999")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestGORMSellerRepository_Update(t *testing.T) {
	db := setupTestDB(t)
	repo := repositories.NewGORMSellerRepository(db)

	seedSellerWithProducts(t, db, repo, "sid100", nil, nil)

	assert.NoError(t, repo.Update(&models.Seller{ID: "sid100", Name: "Renamed", Address: "New Street"}))

	seller, err := repo.GetByID("sid100")
	assert.NoError(t, err)
	assert.Equal(t, "Renamed", seller.Name)
	assert.Equal(t, "New Street", seller.Address)

	assert.ErrorIs(t, repo.Update(&models.Seller{ID: "sid999", Name: "Ghost"}), models.ErrNotFound)
}

func TestGORMSellerRepository_DeleteCascadesAndOrphans(t *testing.T) {
	db := setupTestDB(t)
	repo := repositories.NewGORMSellerRepository(db)

	seedSellerWithProducts(t, db, repo, "sid100", []string{"111", "222"}, []string{"pid1001", "pid1002"})
	seedSellerWithProducts(t, db, repo, "sid200", []string{"333"}, []string{"pid2001"})

	swept, err := repo.Delete("sid100")
	assert.NoError(t, err)
	assert.Equal(t, int64(2), swept)

	// Seller gone, phone rows cascaded
	_, err = repo.GetByID("sid100")
	assert.ErrorIs(t, err, models.ErrNotFound)

	var phoneCount int64
	require.NoError(t, db.Model(&models.SellerPhone{}).Where("seller_id = ?", "sid100").Count(&phoneCount).Error)
	assert.Equal(t, int64(0), phoneCount)

	// Products survive with the seller reference cleared and stock zeroed
	var orphans []models.Product
	require.NoError(t, db.Where("seller_id IS NULL").Order("id").Find(&orphans).Error)
	require.Len(t, orphans, 2)
	assert.Equal(t, "pid1001", orphans[0].ID)
	assert.Equal(t, 0, orphans[0].Quantity)
	assert.Equal(t, 0, orphans[1].Quantity)

	// The other seller is untouched
	other, err := repo.GetByID("sid200")
	assert.NoError(t, err)
	assert.Len(t, other.Phones, 1)
	assert.Len(t, other.Products, 1)
	assert.Equal(t, 5, other.Products[0].Quantity)

	_, err = repo.Delete("sid100")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestGORMSellerRepository_DeleteZeroesOnlyOwnProducts(t *testing.T) {
	db := setupTestDB(t)
	repo := repositories.NewGORMSellerRepository(db)

	seedSellerWithProducts(t, db, repo, "sid100", nil, []string{"pid1001"})

	// A catalog product that never had a seller
	require.NoError(t, db.Create(&models.Product{
		ID:       "pid9001",
		Type:     "jeans",
		Cost:     decimal.NewFromInt(2500),
		Quantity: 50,
	}).Error)

	swept, err := repo.Delete("sid100")
	assert.NoError(t, err)
	assert.Equal(t, int64(1), swept)

	// Only the deleted seller's product is zeroed
	var orphaned models.Product
	require.NoError(t, db.First(&orphaned, "id = ?", "pid1001").Error)
	assert.Equal(t, 0, orphaned.Quantity)

	var sellerless models.Product
	require.NoError(t, db.First(&sellerless, "id = ?", "pid9001").Error)
	assert.Equal(t, 50, sellerless.Quantity)
}
