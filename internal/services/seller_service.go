package services

import (
	"log"

	"bazaar/internal/models"
	"bazaar/internal/repositories"
)

// SellerService handles business logic related to sellers.
type SellerService struct {
	repo repositories.SellerRepository
}

// NewSellerService creates a new SellerService.
func NewSellerService(repo repositories.SellerRepository) *SellerService {
	return &SellerService{
		repo: repo,
	}
}

// GetAllSellers retrieves all sellers.
func (s *SellerService) GetAllSellers() ([]models.Seller, error) {
	return s.repo.GetAll()
}

// GetSellerByID retrieves a single seller by its ID.
func (s *SellerService) GetSellerByID(id string) (*models.Seller, error) {
	return s.repo.GetByID(id)
}

// UpdateSeller updates an existing seller.
func (s *SellerService) UpdateSeller(seller *models.Seller) error {
	return s.repo.Update(seller)
}

// DeleteSeller removes a seller. Phone rows go with it and its products are
// orphaned in the same transaction: stock zeroed so they cannot be checked
// out, seller reference cleared.
func (s *SellerService) DeleteSeller(id string) error {
	swept, err := s.repo.Delete(id)
	if err != nil {
		return err
	}
	if swept > 0 {
		log.Printf("Zeroed stock on %d products of deleted seller %s", swept, id)
	}
	return nil
}
