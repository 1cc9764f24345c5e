package repository

import (
	"context"

	"github.com/jhoicas/inventory-ledger-api/internal/domain/entity"
)

// AlertRepository define el puerto de persistencia para alertas.
type AlertRepository interface {
	// ListLowStockCandidates productos con quantity <= low_stock_threshold sin alerta low_stock no leída.
	ListLowStockCandidates(ctx context.Context) ([]*entity.Product, error)
	// CreateIfNoUnread inserta la alerta salvo que ya exista una no leída del mismo tipo para el producto.
	CreateIfNoUnread(ctx context.Context, alert *entity.Alert) (bool, error)
	// List no leídas primero, luego por fecha descendente.
	List(ctx context.Context) ([]*entity.Alert, error)
	MarkRead(ctx context.Context, id int64) (bool, error)
	MarkAllRead(ctx context.Context) (int64, error)
	Delete(ctx context.Context, id int64) (bool, error)
}
