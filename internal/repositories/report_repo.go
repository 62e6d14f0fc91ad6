package repositories

import (
	"bazaar/internal/models"

	"github.com/shopspring/decimal"
)

// ReportRepository defines read-only aggregation queries over the schema.
type ReportRepository interface {
	// MostPopularProduct ranks products by total purchased quantity and
	// returns the top one. Ties break on the lowest product ID.
	MostPopularProduct() (*models.ProductPopularity, error)
	RevenueByDate() ([]models.DailyRevenue, error)
	CustomersWithoutPayments() ([]models.Customer, error)
	// PlatformProfit sums quantity * cost * commission/100 over all
	// purchased items.
	PlatformProfit() (decimal.Decimal, error)
}
