package repository

import (
	"context"

	"github.com/jhoicas/inventory-ledger-api/internal/domain/entity"
)

// StockMovementRepository define el puerto de persistencia del historial de movimientos (solo inserción).
type StockMovementRepository interface {
	// Create inserta en stock_in_history o stock_out_history según Kind y completa ID y CreatedAt.
	Create(ctx context.Context, movement *entity.StockMovement) error
	List(ctx context.Context, kind string, limit, offset int) ([]*entity.StockMovement, error)
	Count(ctx context.Context, kind string) (int64, error)
	ListByProduct(ctx context.Context, productID int64, limit, offset int) ([]*entity.StockMovement, error)
}
