package dto

import "github.com/shopspring/decimal"

type DashboardStatsResponse struct {
	TodaysSales    decimal.Decimal `json:"todays_sales"`
	ProductsCount  int64           `json:"products_count"`
	CustomersCount int64           `json:"customers_count"`
	OrdersCount    int64           `json:"orders_count"`
}

// AtividadeRecente is one entry of the merged recent-activity feed
// (latest sales, products and customers interleaved by creation time).
type AtividadeRecente struct {
	Type        string `json:"type"` // sale | product | customer
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	CreatedAt   string `json:"created_at"`
}
