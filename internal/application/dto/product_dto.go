package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventory-ledger-api/internal/domain/entity"
)

// CreateProductRequest entrada para crear un producto. Quantity es el saldo inicial.
type CreateProductRequest struct {
	Name              string          `json:"name" validate:"required,min=1,max=200"`
	Price             decimal.Decimal `json:"price"`
	Quantity          int64           `json:"quantity" validate:"gte=0"`
	CategoryID        *int64          `json:"category_id" validate:"omitempty,gt=0"`
	LowStockThreshold *int64          `json:"low_stock_threshold" validate:"omitempty,gte=0"`
	ImageURL          string          `json:"image_url" validate:"omitempty,url,max=500"`
}

// UpdateProductRequest entrada para actualizar un producto (sin quantity: solo vía movimientos).
type UpdateProductRequest struct {
	Name              *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Price             *decimal.Decimal `json:"price"`
	CategoryID        *int64           `json:"category_id" validate:"omitempty,gt=0"`
	LowStockThreshold *int64           `json:"low_stock_threshold" validate:"omitempty,gte=0"`
	ImageURL          *string          `json:"image_url" validate:"omitempty,max=500"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID                int64           `json:"id"`
	Name              string          `json:"name"`
	Price             decimal.Decimal `json:"price"`
	Quantity          int64           `json:"quantity"`
	CategoryID        *int64          `json:"category_id"`
	CategoryName      string          `json:"category_name,omitempty"`
	LowStockThreshold int64           `json:"low_stock_threshold"`
	IsLowStock        bool            `json:"is_low_stock"`
	ImageURL          string          `json:"image_url,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// FromProduct mapea la entidad a su respuesta.
func FromProduct(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:                p.ID,
		Name:              p.Name,
		Price:             p.Price,
		Quantity:          p.Quantity,
		CategoryID:        p.CategoryID,
		CategoryName:      p.CategoryName,
		LowStockThreshold: p.LowStockThreshold,
		IsLowStock:        p.IsLowStock(),
		ImageURL:          p.ImageURL,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}
