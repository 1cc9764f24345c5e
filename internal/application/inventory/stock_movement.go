package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventory-ledger-api/internal/domain"
	"github.com/jhoicas/inventory-ledger-api/internal/domain/entity"
	"github.com/jhoicas/inventory-ledger-api/internal/domain/repository"
	"github.com/jhoicas/inventory-ledger-api/pkg/logger"
)

// Resultados de un intento de movimiento (etiqueta de métricas y logs).
const (
	OutcomeCommitted         = "committed"
	OutcomeInvalid           = "invalid"
	OutcomeNotFound          = "not_found"
	OutcomeInsufficientStock = "insufficient_stock"
	OutcomeContended         = "contended"
	OutcomeFailed            = "failed"
)

// StockMovementUseCase aplica entradas y salidas de stock de forma transaccional:
// muta products.quantity y agrega la fila de historial en la misma transacción.
// Las salidas bloquean la fila del producto (SELECT FOR UPDATE) para que dos salidas
// concurrentes nunca dejen la cantidad en negativo.
type StockMovementUseCase struct {
	txRunner TxRunner
	movRepo  repository.StockMovementRepository
	log      *logger.Logger
	metrics  MovementMetrics
}

// NewStockMovementUseCase construye el caso de uso. metrics puede ser nil.
func NewStockMovementUseCase(
	txRunner TxRunner,
	movRepo repository.StockMovementRepository,
	log *logger.Logger,
	metrics MovementMetrics,
) *StockMovementUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &StockMovementUseCase{
		txRunner: txRunner,
		movRepo:  movRepo,
		log:      log,
		metrics:  metrics,
	}
}

// StockInInput entrada de mercancía.
type StockInInput struct {
	ProductID     int64
	Quantity      int64
	Supplier      string
	PurchasePrice decimal.Decimal
	Notes         string
	ActorID       int64
}

// StockOutInput salida de mercancía. Reason es opcional.
type StockOutInput struct {
	ProductID int64
	Quantity  int64
	Reason    string
	ActorID   int64
}

// ApplyStockIn suma Quantity al producto y registra la entrada en stock_in_history.
// La existencia del producto se verifica dentro de la transacción: si no existe no sobrevive ninguna fila.
func (uc *StockMovementUseCase) ApplyStockIn(ctx context.Context, in StockInInput) (*entity.Product, error) {
	start := time.Now()
	if err := validateStockIn(in); err != nil {
		uc.finish(entity.MovementKindIn, in.ProductID, start, err)
		return nil, err
	}

	var updated *entity.Product
	err := uc.txRunner.Run(ctx, func(productRepo repository.ProductRepository, movRepo repository.StockMovementRepository) error {
		// El UPDATE atómico basta: una entrada nunca puede fallar por cantidad.
		p, err := productRepo.IncreaseQuantity(ctx, in.ProductID, in.Quantity)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrProductNotFound
		}
		mov := &entity.StockMovement{
			Kind:          entity.MovementKindIn,
			ProductID:     in.ProductID,
			Quantity:      in.Quantity,
			ActorID:       in.ActorID,
			Supplier:      in.Supplier,
			PurchasePrice: in.PurchasePrice,
			Notes:         in.Notes,
		}
		if err := movRepo.Create(ctx, mov); err != nil {
			return err
		}
		updated = p
		return nil
	})
	err = classify(err)
	uc.finish(entity.MovementKindIn, in.ProductID, start, err)
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// ApplyStockOut resta Quantity del producto bajo bloqueo de fila y registra la salida en stock_out_history.
// Si el stock disponible no alcanza devuelve *domain.InsufficientStockError y no muta nada.
func (uc *StockMovementUseCase) ApplyStockOut(ctx context.Context, in StockOutInput) (*entity.Product, error) {
	start := time.Now()
	if err := validateStockOut(in); err != nil {
		uc.finish(entity.MovementKindOut, in.ProductID, start, err)
		return nil, err
	}

	var updated *entity.Product
	err := uc.txRunner.Run(ctx, func(productRepo repository.ProductRepository, movRepo repository.StockMovementRepository) error {
		// Bloquea la fila del producto (SELECT FOR UPDATE) hasta Commit/Rollback
		current, err := productRepo.GetForUpdate(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if current == nil {
			return domain.ErrProductNotFound
		}
		if current.Quantity < in.Quantity {
			return &domain.InsufficientStockError{
				ProductID: in.ProductID,
				Requested: in.Quantity,
				Available: current.Quantity,
			}
		}
		p, err := productRepo.DecreaseQuantity(ctx, in.ProductID, in.Quantity)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrProductNotFound
		}
		mov := &entity.StockMovement{
			Kind:      entity.MovementKindOut,
			ProductID: in.ProductID,
			Quantity:  in.Quantity,
			ActorID:   in.ActorID,
			Reason:    in.Reason,
		}
		if err := movRepo.Create(ctx, mov); err != nil {
			return err
		}
		updated = p
		return nil
	})
	err = classify(err)
	uc.finish(entity.MovementKindOut, in.ProductID, start, err)
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// ListProductMovements historial de entradas y salidas de un producto, más reciente primero.
func (uc *StockMovementUseCase) ListProductMovements(ctx context.Context, productID int64, limit, offset int) ([]*entity.StockMovement, error) {
	if productID <= 0 {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.movRepo.ListByProduct(ctx, productID, limit, offset)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []*entity.StockMovement{}
	}
	return list, nil
}

func validateStockIn(in StockInInput) error {
	if in.ProductID <= 0 {
		return domain.ErrInvalidInput
	}
	if in.Quantity <= 0 {
		return domain.ErrInvalidQuantity
	}
	if strings.TrimSpace(in.Supplier) == "" || !in.PurchasePrice.IsPositive() {
		return domain.ErrInvalidInput
	}
	return nil
}

func validateStockOut(in StockOutInput) error {
	if in.ProductID <= 0 {
		return domain.ErrInvalidInput
	}
	if in.Quantity <= 0 {
		return domain.ErrInvalidQuantity
	}
	return nil
}

// classify deja pasar los errores de dominio y envuelve el resto como ErrTransactionFailure.
func classify(err error) error {
	if err == nil {
		return nil
	}
	for _, known := range []error{
		domain.ErrNotFound,
		domain.ErrInvalidInput,
		domain.ErrInsufficientStock,
		domain.ErrContended,
		domain.ErrDuplicate,
		domain.ErrConflict,
		domain.ErrTransactionFailure,
	} {
		if errors.Is(err, known) {
			return err
		}
	}
	return fmt.Errorf("%w: %w", domain.ErrTransactionFailure, err)
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return OutcomeCommitted
	case errors.Is(err, domain.ErrInvalidInput):
		return OutcomeInvalid
	case errors.Is(err, domain.ErrNotFound):
		return OutcomeNotFound
	case errors.Is(err, domain.ErrInsufficientStock):
		return OutcomeInsufficientStock
	case errors.Is(err, domain.ErrContended):
		return OutcomeContended
	default:
		return OutcomeFailed
	}
}

func (uc *StockMovementUseCase) finish(kind string, productID int64, start time.Time, err error) {
	elapsed := time.Since(start)
	outcome := outcomeOf(err)
	if uc.metrics != nil {
		uc.metrics.ObserveMovement(kind, outcome, elapsed.Seconds())
	}
	switch outcome {
	case OutcomeCommitted:
		uc.log.Debug().Str("kind", kind).Int64("product_id", productID).Dur("elapsed", elapsed).Msg("movimiento confirmado")
	case OutcomeFailed:
		uc.log.Error().Err(err).Str("kind", kind).Int64("product_id", productID).Msg("movimiento abortado")
	default:
		uc.log.Warn().Err(err).Str("kind", kind).Int64("product_id", productID).Str("outcome", outcome).Msg("movimiento rechazado")
	}
}
