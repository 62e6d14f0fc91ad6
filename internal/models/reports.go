package models

import "github.com/shopspring/decimal"

// ProductPopularity is one row of the purchased-quantity ranking.
type ProductPopularity struct {
	ProductID     string `json:"product_id"`
	TotalQuantity int    `json:"total_quantity"`
}

// DailyRevenue aggregates payment totals for one calendar date.
type DailyRevenue struct {
	Day     string          `json:"day" gorm:"column:day"`
	Revenue decimal.Decimal `json:"revenue"`
}
