package repository

import (
	"context"

	"github.com/jhoicas/inventory-ledger-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// Quantity no se modifica con Update: solo con las operaciones de ledger, dentro de una transacción.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	SoftDelete(ctx context.Context, id int64) (bool, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Product, error)
	Count(ctx context.Context) (int64, error)

	// GetForUpdate lee el producto bloqueando su fila hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id int64) (*entity.Product, error)
	// IncreaseQuantity suma delta y devuelve la fila actualizada; nil si el producto no existe.
	IncreaseQuantity(ctx context.Context, id, delta int64) (*entity.Product, error)
	// DecreaseQuantity resta delta y devuelve la fila actualizada; nil si el producto no existe.
	DecreaseQuantity(ctx context.Context, id, delta int64) (*entity.Product, error)
}
