package services

import (
	"bazaar/internal/models"
	"bazaar/internal/repositories"

	"github.com/shopspring/decimal"
)

// ReportService exposes the read-only reporting queries.
type ReportService struct {
	repo repositories.ReportRepository
}

// NewReportService creates a new ReportService.
func NewReportService(repo repositories.ReportRepository) *ReportService {
	return &ReportService{
		repo: repo,
	}
}

// MostPopularProduct returns the product with the highest total purchased
// quantity (lowest product ID on ties).
func (s *ReportService) MostPopularProduct() (*models.ProductPopularity, error) {
	return s.repo.MostPopularProduct()
}

// RevenueByDate returns payment totals grouped by calendar date.
func (s *ReportService) RevenueByDate() ([]models.DailyRevenue, error) {
	return s.repo.RevenueByDate()
}

// CustomersWithoutPayments lists customers that never checked out.
func (s *ReportService) CustomersWithoutPayments() ([]models.Customer, error) {
	return s.repo.CustomersWithoutPayments()
}

// PlatformProfit returns the total commission retained on sold items.
func (s *ReportService) PlatformProfit() (decimal.Decimal, error) {
	return s.repo.PlatformProfit()
}
