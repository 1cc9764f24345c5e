package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventory-ledger-api/internal/domain/entity"
)

// StockInRequest body para POST /api/inventory/stock-in.
type StockInRequest struct {
	ProductID     int64           `json:"product_id" validate:"required,gt=0"`
	Quantity      int64           `json:"quantity" validate:"required,gt=0"`
	Supplier      string          `json:"supplier" validate:"required,min=1,max=200"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	Notes         string          `json:"notes" validate:"omitempty,max=1000"`
}

// StockOutRequest body para POST /api/inventory/stock-out. Reason es opcional.
type StockOutRequest struct {
	ProductID int64  `json:"product_id" validate:"required,gt=0"`
	Quantity  int64  `json:"quantity" validate:"required,gt=0"`
	Reason    string `json:"reason" validate:"omitempty,max=500"`
}

// MovementResultResponse producto tras aplicar el movimiento.
type MovementResultResponse struct {
	Message string          `json:"message"`
	Product ProductResponse `json:"product"`
}

// StockMovementResponse fila del historial.
type StockMovementResponse struct {
	ID            int64            `json:"id"`
	Type          string           `json:"type"`
	ProductID     int64            `json:"product_id"`
	ProductName   string           `json:"product_name"`
	Quantity      int64            `json:"quantity"`
	UserID        int64            `json:"user_id,omitempty"`
	Username      string           `json:"username,omitempty"`
	Supplier      string           `json:"supplier,omitempty"`
	PurchasePrice *decimal.Decimal `json:"purchase_price,omitempty"`
	Notes         string           `json:"notes,omitempty"`
	Reason        string           `json:"reason,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
}

// FromMovement mapea una fila del historial. PurchasePrice solo en entradas.
func FromMovement(m *entity.StockMovement) StockMovementResponse {
	r := StockMovementResponse{
		ID:          m.ID,
		Type:        m.Kind,
		ProductID:   m.ProductID,
		ProductName: m.ProductName,
		Quantity:    m.Quantity,
		UserID:      m.ActorID,
		Username:    m.ActorUsername,
		Supplier:    m.Supplier,
		Notes:       m.Notes,
		Reason:      m.Reason,
		CreatedAt:   m.CreatedAt,
	}
	if m.Kind == entity.MovementKindIn {
		price := m.PurchasePrice
		r.PurchasePrice = &price
	}
	return r
}
