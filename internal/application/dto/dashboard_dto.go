package dto

import "github.com/shopspring/decimal"

// DashboardStatsResponse contadores de GET /api/admin/stats.
type DashboardStatsResponse struct {
	TotalUsers          int64           `json:"total_users"`
	TotalProducts       int64           `json:"total_products"`
	TotalCategories     int64           `json:"total_categories"`
	LowStockProducts    int64           `json:"low_stock_products"`
	TotalInventoryValue decimal.Decimal `json:"total_inventory_value"`
}

// InventoryValueResponse Σ(price × quantity).
type InventoryValueResponse struct {
	TotalValue decimal.Decimal `json:"total_value"`
}
