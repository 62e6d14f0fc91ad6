package repositories

import (
	"fmt"

	"bazaar/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GORMReportRepository is a GORM implementation of ReportRepository.
type GORMReportRepository struct {
	db *gorm.DB
}

// NewGORMReportRepository creates a new instance of GORMReportRepository.
func NewGORMReportRepository(db *gorm.DB) *GORMReportRepository {
	return &GORMReportRepository{
		db: db,
	}
}

// MostPopularProduct groups purchased cart items by product and returns the
// one with the highest summed quantity. Tie-break is the lowest product ID
// so the result is deterministic.
func (r *GORMReportRepository) MostPopularProduct() (*models.ProductPopularity, error) {
	var result models.ProductPopularity
	err := r.db.Model(&models.CartItem{}).
		Select("product_id, SUM(quantity) AS total_quantity").
		Where("purchased = ?", true).
		Group("product_id").
		Order("total_quantity DESC, product_id ASC").
		Limit(1).
		Scan(&result).Error
	if err != nil {
		return nil, fmt.Errorf("failed to compute most popular product: %w", err)
	}
	if result.ProductID == "" {
		return nil, fmt.Errorf("no purchased items yet: %w", models.ErrNotFound)
	}
	return &result, nil
}

// RevenueByDate sums payment totals per calendar date, oldest first.
func (r *GORMReportRepository) RevenueByDate() ([]models.DailyRevenue, error) {
	var revenues []models.DailyRevenue
	err := r.db.Model(&models.Payment{}).
		Select("DATE(date) AS day, SUM(total_amount) AS revenue").
		Group("DATE(date)").
		Order("day ASC").
		Scan(&revenues).Error
	if err != nil {
		return nil, fmt.Errorf("failed to compute revenue by date: %w", err)
	}
	return revenues, nil
}

// CustomersWithoutPayments lists customers that never checked out.
func (r *GORMReportRepository) CustomersWithoutPayments() ([]models.Customer, error) {
	var customers []models.Customer
	sub := r.db.Model(&models.Payment{}).Select("customer_id")
	if err := r.db.Where("id NOT IN (?)", sub).Find(&customers).Error; err != nil {
		return nil, fmt.Errorf("failed to list customers without payments: %w", err)
	}
	return customers, nil
}

type profitRow struct {
	Quantity   int
	Cost       decimal.Decimal
	Commission decimal.Decimal
}

// PlatformProfit computes the commission retained on every sold item. The
// per-row arithmetic runs on decimals in Go rather than in SQL so the result
// is exact on every driver.
func (r *GORMReportRepository) PlatformProfit() (decimal.Decimal, error) {
	var rows []profitRow
	err := r.db.Model(&models.CartItem{}).
		Select("cart_items.quantity, products.cost, products.commission").
		Joins("JOIN products ON products.id = cart_items.product_id").
		Where("cart_items.purchased = ?", true).
		Scan(&rows).Error
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to load sold items: %w", err)
	}

	hundred := decimal.NewFromInt(100)
	profit := decimal.Zero
	for _, row := range rows {
		itemProfit := row.Cost.
			Mul(decimal.NewFromInt(int64(row.Quantity))).
			Mul(row.Commission).
			Div(hundred)
		profit = profit.Add(itemProfit)
	}
	return profit, nil
}
