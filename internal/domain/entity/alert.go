package entity

import "time"

// Tipos de alerta.
const (
	AlertTypeLowStock = "low_stock"
)

// Severidades de alerta, de menor a mayor.
const (
	SeverityLow      = "low"
	SeverityMedium   = "medium"
	SeverityHigh     = "high"
	SeverityCritical = "critical"
)

// Alert notificación derivada del estado de un producto.
// A lo sumo una alerta low_stock no leída por producto.
type Alert struct {
	ID        int64
	Type      string
	Title     string
	Message   string
	Severity  string
	ProductID int64
	IsRead    bool
	CreatedAt time.Time

	// Solo lectura (join con products)
	ProductName  string
	CurrentStock *int64
	MinStock     *int64
}
