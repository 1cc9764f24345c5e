package dto

import (
	"time"

	"github.com/jhoicas/inventory-ledger-api/internal/domain/entity"
)

// AlertResponse alerta con el estado actual del producto.
type AlertResponse struct {
	ID           int64     `json:"id"`
	Type         string    `json:"type"`
	Title        string    `json:"title"`
	Message      string    `json:"message"`
	Severity     string    `json:"severity"`
	ProductID    int64     `json:"product_id"`
	ProductName  string    `json:"product_name,omitempty"`
	CurrentStock *int64    `json:"current_stock,omitempty"`
	MinStock     *int64    `json:"min_stock,omitempty"`
	IsRead       bool      `json:"is_read"`
	CreatedAt    time.Time `json:"created_at"`
}

func FromAlert(a *entity.Alert) AlertResponse {
	return AlertResponse{
		ID:           a.ID,
		Type:         a.Type,
		Title:        a.Title,
		Message:      a.Message,
		Severity:     a.Severity,
		ProductID:    a.ProductID,
		ProductName:  a.ProductName,
		CurrentStock: a.CurrentStock,
		MinStock:     a.MinStock,
		IsRead:       a.IsRead,
		CreatedAt:    a.CreatedAt,
	}
}

// AlertScanResponse resultado de POST /api/alerts/scan.
type AlertScanResponse struct {
	Created int `json:"created"`
}

// MarkAllReadResponse resultado de PUT /api/alerts/read-all.
type MarkAllReadResponse struct {
	Updated int64 `json:"updated"`
}
