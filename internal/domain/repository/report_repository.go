package repository

import (
	"context"

	"github.com/shopspring/decimal"
)

// InventoryLine valorización de un producto (quantity × price).
type InventoryLine struct {
	ProductID int64
	Name      string
	Quantity  int64
	Price     decimal.Decimal
	Value     decimal.Decimal
}

// ReportRepository consultas de solo lectura para agregados y dashboard.
// Todas devuelven cero sobre tablas vacías.
type ReportRepository interface {
	InventoryValue(ctx context.Context) (decimal.Decimal, error)
	InventoryLines(ctx context.Context) ([]InventoryLine, error)
	CountUsers(ctx context.Context) (int64, error)
	CountProducts(ctx context.Context) (int64, error)
	CountCategories(ctx context.Context) (int64, error)
	CountLowStock(ctx context.Context) (int64, error)
}
