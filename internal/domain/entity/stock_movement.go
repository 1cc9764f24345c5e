package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento del ledger.
const (
	MovementKindIn  = "stock_in"
	MovementKindOut = "stock_out"
)

// StockMovement registro inmutable de una entrada o salida de stock.
// Se crea una sola vez al confirmar la transacción; nunca se modifica ni se borra.
type StockMovement struct {
	ID        int64
	Kind      string // stock_in, stock_out
	ProductID int64
	Quantity  int64 // magnitud positiva
	ActorID   int64

	// Solo entradas
	Supplier      string
	PurchasePrice decimal.Decimal
	Notes         string

	// Solo salidas
	Reason string

	CreatedAt time.Time

	// Solo lectura (join)
	ProductName   string
	ActorUsername string
}
