package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventory-ledger-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas read-only de agregados. COALESCE garantiza cero sobre tablas vacías.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el repositorio.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// InventoryValue Σ(price × quantity) de productos vigentes.
func (r *ReportRepo) InventoryValue(ctx context.Context) (decimal.Decimal, error) {
	var v decimal.Decimal
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(SUM(price * quantity), 0) FROM products WHERE deleted_at IS NULL`).Scan(&v)
	if err != nil {
		return decimal.Zero, fmt.Errorf("inventory value: %w", err)
	}
	return v, nil
}

// InventoryLines una línea por producto vigente, ordenadas por nombre.
func (r *ReportRepo) InventoryLines(ctx context.Context) ([]repository.InventoryLine, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, name, quantity, price, price * quantity
		FROM products
		WHERE deleted_at IS NULL
		ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("inventory lines: %w", err)
	}
	defer rows.Close()
	var lines []repository.InventoryLine
	for rows.Next() {
		var l repository.InventoryLine
		if err := rows.Scan(&l.ProductID, &l.Name, &l.Quantity, &l.Price, &l.Value); err != nil {
			return nil, fmt.Errorf("scan inventory line: %w", err)
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

func (r *ReportRepo) CountUsers(ctx context.Context) (int64, error) {
	return r.count(ctx, "users", `SELECT COUNT(*) FROM users`)
}

func (r *ReportRepo) CountProducts(ctx context.Context) (int64, error) {
	return r.count(ctx, "products", `SELECT COUNT(*) FROM products WHERE deleted_at IS NULL`)
}

func (r *ReportRepo) CountCategories(ctx context.Context) (int64, error) {
	return r.count(ctx, "categories", `SELECT COUNT(*) FROM categories`)
}

// CountLowStock productos vigentes en o bajo su umbral.
func (r *ReportRepo) CountLowStock(ctx context.Context) (int64, error) {
	return r.count(ctx, "low stock",
		`SELECT COUNT(*) FROM products WHERE deleted_at IS NULL AND quantity <= low_stock_threshold`)
}

func (r *ReportRepo) count(ctx context.Context, what, query string) (int64, error) {
	var n int64
	if err := r.q.QueryRow(ctx, query).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", what, err)
	}
	return n, nil
}
