package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrProductNotFound    = fmt.Errorf("producto no encontrado: %w", ErrNotFound)
	ErrAlertNotFound      = fmt.Errorf("alerta no encontrada: %w", ErrNotFound)
	ErrUserNotFound       = fmt.Errorf("usuario no encontrado: %w", ErrNotFound)
	ErrCategoryNotFound   = fmt.Errorf("categoría no encontrada: %w", ErrNotFound)
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrInvalidQuantity    = fmt.Errorf("la cantidad debe ser un entero positivo: %w", ErrInvalidInput)
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrContended          = errors.New("recurso bloqueado por otra operación, reintente")
	ErrTransactionFailure = errors.New("fallo en la transacción")
)

// InsufficientStockError reporta la cantidad realmente disponible al rechazar una salida.
// errors.Is(err, ErrInsufficientStock) es true.
type InsufficientStockError struct {
	ProductID int64
	Requested int64
	Available int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente: solo %d unidades disponibles", e.Available)
}

func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}
