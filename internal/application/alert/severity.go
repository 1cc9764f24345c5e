package alert

import (
	"fmt"

	"github.com/jhoicas/inventory-ledger-api/internal/domain/entity"
)

// Severity deriva la severidad de la fracción quantity/threshold:
// 0 → critical, ≤ 50% → high, ≤ 100% → medium, resto → low.
func Severity(quantity, threshold int64) string {
	switch {
	case quantity <= 0:
		return entity.SeverityCritical
	case quantity*2 <= threshold:
		return entity.SeverityHigh
	case quantity <= threshold:
		return entity.SeverityMedium
	default:
		return entity.SeverityLow
	}
}

// NewLowStockAlert construye la alerta low_stock para el estado actual del producto.
func NewLowStockAlert(p *entity.Product) *entity.Alert {
	title := "Alerta de stock bajo"
	if p.Quantity <= 0 {
		title = "Sin stock"
	}
	return &entity.Alert{
		Type:      entity.AlertTypeLowStock,
		Title:     title,
		Message:   fmt.Sprintf("%s tiene stock bajo. Stock actual: %d", p.Name, p.Quantity),
		Severity:  Severity(p.Quantity, p.LowStockThreshold),
		ProductID: p.ID,
	}
}
