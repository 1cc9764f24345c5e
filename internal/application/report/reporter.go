// Package report agrega consultas de solo lectura sobre el ledger: valor del inventario,
// contadores del dashboard e historiales paginados. Ninguna operación tiene efectos.
package report

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/inventory-ledger-api/internal/domain/entity"
	"github.com/jhoicas/inventory-ledger-api/internal/domain/repository"
	"github.com/jhoicas/inventory-ledger-api/pkg/pagination"
)

// DashboardStats contadores del panel de administración.
type DashboardStats struct {
	TotalUsers      int64
	TotalProducts   int64
	TotalCategories int64
	LowStockCount   int64
	InventoryValue  decimal.Decimal
}

// InventoryReport valorización línea por línea (quantity × price) y total.
type InventoryReport struct {
	Lines       []repository.InventoryLine
	Total       decimal.Decimal
	GeneratedAt time.Time
}

// PDFRenderer genera la representación PDF del reporte de inventario.
type PDFRenderer interface {
	RenderInventoryReport(ctx context.Context, r *InventoryReport) ([]byte, error)
}

// Reporter rollups de solo lectura.
type Reporter struct {
	reports   repository.ReportRepository
	users     repository.UserRepository
	products  repository.ProductRepository
	movements repository.StockMovementRepository
	pdf       PDFRenderer
}

// NewReporter construye el caso de uso. pdf puede ser nil si no se expone el reporte PDF.
func NewReporter(
	reports repository.ReportRepository,
	users repository.UserRepository,
	products repository.ProductRepository,
	movements repository.StockMovementRepository,
	pdf PDFRenderer,
) *Reporter {
	return &Reporter{reports: reports, users: users, products: products, movements: movements, pdf: pdf}
}

// InventoryValue Σ(price × quantity) de los productos vigentes. Cero si no hay productos.
func (r *Reporter) InventoryValue(ctx context.Context) (decimal.Decimal, error) {
	v, err := r.reports.InventoryValue(ctx)
	if err != nil {
		return decimal.Zero, fmt.Errorf("reporte: valor de inventario: %w", err)
	}
	return v.Round(2), nil
}

// DashboardStats lanza las cinco consultas en paralelo; la primera que falle cancela el resto.
func (r *Reporter) DashboardStats(ctx context.Context) (*DashboardStats, error) {
	var stats DashboardStats
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		stats.TotalUsers, err = r.reports.CountUsers(gctx)
		return wrap("usuarios", err)
	})
	g.Go(func() (err error) {
		stats.TotalProducts, err = r.reports.CountProducts(gctx)
		return wrap("productos", err)
	})
	g.Go(func() (err error) {
		stats.TotalCategories, err = r.reports.CountCategories(gctx)
		return wrap("categorías", err)
	})
	g.Go(func() (err error) {
		stats.LowStockCount, err = r.reports.CountLowStock(gctx)
		return wrap("stock bajo", err)
	})
	g.Go(func() (err error) {
		stats.InventoryValue, err = r.reports.InventoryValue(gctx)
		stats.InventoryValue = stats.InventoryValue.Round(2)
		return wrap("valor de inventario", err)
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &stats, nil
}

func wrap(what string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("dashboard: %s: %w", what, err)
}

// ListUsers usuarios más recientes primero.
func (r *Reporter) ListUsers(ctx context.Context, page, limit int) (pagination.Page[*entity.User], error) {
	p := pagination.Normalize(page, limit)
	total, err := r.reports.CountUsers(ctx)
	if err != nil {
		return pagination.Page[*entity.User]{}, err
	}
	list, err := r.users.List(ctx, p.Limit, p.Offset())
	if err != nil {
		return pagination.Page[*entity.User]{}, err
	}
	return pagination.NewPage(list, total, p), nil
}

// ListProducts productos vigentes con nombre de categoría, más recientes primero.
func (r *Reporter) ListProducts(ctx context.Context, page, limit int) (pagination.Page[*entity.Product], error) {
	p := pagination.Normalize(page, limit)
	total, err := r.products.Count(ctx)
	if err != nil {
		return pagination.Page[*entity.Product]{}, err
	}
	list, err := r.products.List(ctx, p.Limit, p.Offset())
	if err != nil {
		return pagination.Page[*entity.Product]{}, err
	}
	return pagination.NewPage(list, total, p), nil
}

// ListStockOuts historial de salidas, más reciente primero.
func (r *Reporter) ListStockOuts(ctx context.Context, page, limit int) (pagination.Page[*entity.StockMovement], error) {
	return r.listMovements(ctx, entity.MovementKindOut, page, limit)
}

// ListStockIns historial de entradas, más reciente primero.
func (r *Reporter) ListStockIns(ctx context.Context, page, limit int) (pagination.Page[*entity.StockMovement], error) {
	return r.listMovements(ctx, entity.MovementKindIn, page, limit)
}

func (r *Reporter) listMovements(ctx context.Context, kind string, page, limit int) (pagination.Page[*entity.StockMovement], error) {
	p := pagination.Normalize(page, limit)
	total, err := r.movements.Count(ctx, kind)
	if err != nil {
		return pagination.Page[*entity.StockMovement]{}, err
	}
	list, err := r.movements.List(ctx, kind, p.Limit, p.Offset())
	if err != nil {
		return pagination.Page[*entity.StockMovement]{}, err
	}
	return pagination.NewPage(list, total, p), nil
}

// InventoryReport valorización detallada. El total es la suma de las líneas.
func (r *Reporter) InventoryReport(ctx context.Context) (*InventoryReport, error) {
	lines, err := r.reports.InventoryLines(ctx)
	if err != nil {
		return nil, fmt.Errorf("reporte: líneas de inventario: %w", err)
	}
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Value)
	}
	if lines == nil {
		lines = []repository.InventoryLine{}
	}
	return &InventoryReport{Lines: lines, Total: total.Round(2), GeneratedAt: time.Now()}, nil
}

// InventoryReportPDF reporte de inventario renderizado como PDF.
func (r *Reporter) InventoryReportPDF(ctx context.Context) ([]byte, error) {
	if r.pdf == nil {
		return nil, fmt.Errorf("reporte: generador PDF no configurado")
	}
	rep, err := r.InventoryReport(ctx)
	if err != nil {
		return nil, err
	}
	return r.pdf.RenderInventoryReport(ctx, rep)
}
