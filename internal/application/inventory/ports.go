package inventory

import (
	"context"

	"github.com/jhoicas/inventory-ledger-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error se hace Rollback; si no, Commit. La conexión vuelve al pool en todos los casos.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		movRepo repository.StockMovementRepository,
	) error) error
}

// MovementMetrics recibe el resultado de cada movimiento (puede ser nil).
type MovementMetrics interface {
	ObserveMovement(kind, outcome string, seconds float64)
}
