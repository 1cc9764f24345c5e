package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultLowStockThreshold umbral aplicado cuando el producto se crea sin uno explícito.
const DefaultLowStockThreshold = 10

// Product representa un producto del inventario.
// Quantity es el saldo del ledger: solo cambia vía movimientos (entrada/salida) y nunca es negativo.
type Product struct {
	ID                int64
	Name              string
	Price             decimal.Decimal
	Quantity          int64
	CategoryID        *int64
	CategoryName      string // solo lectura (join)
	LowStockThreshold int64
	ImageURL          string
	CreatedAt         time.Time
	UpdatedAt         time.Time
	DeletedAt         *time.Time // borrado lógico: el historial de movimientos sobrevive
}

// IsLowStock indica si la cantidad está en o por debajo del umbral.
func (p *Product) IsLowStock() bool {
	return p.Quantity <= p.LowStockThreshold
}
