// Package alert deriva alertas de stock bajo del estado de los productos.
// Es un cálculo por demanda (pull): no se dispara dentro de la transacción de movimientos.
package alert

import (
	"context"
	"fmt"

	"github.com/jhoicas/inventory-ledger-api/internal/domain"
	"github.com/jhoicas/inventory-ledger-api/internal/domain/entity"
	"github.com/jhoicas/inventory-ledger-api/internal/domain/repository"
	"github.com/jhoicas/inventory-ledger-api/pkg/logger"
)

// ScanMetrics recibe el resultado de cada escaneo (puede ser nil).
type ScanMetrics interface {
	ObserveScan(created int, err error)
}

// AlertUseCase escaneo de stock bajo y transiciones de lectura/borrado.
type AlertUseCase struct {
	repo    repository.AlertRepository
	log     *logger.Logger
	metrics ScanMetrics
}

// NewAlertUseCase construye el caso de uso. metrics puede ser nil.
func NewAlertUseCase(repo repository.AlertRepository, log *logger.Logger, metrics ScanMetrics) *AlertUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &AlertUseCase{repo: repo, log: log, metrics: metrics}
}

// Scan crea una alerta por cada producto en o bajo su umbral que no tenga ya una alerta no leída.
// Repetirlo sin cambios de stock no crea duplicados. Devuelve cuántas alertas creó.
func (uc *AlertUseCase) Scan(ctx context.Context) (int, error) {
	created, err := uc.scan(ctx)
	if uc.metrics != nil {
		uc.metrics.ObserveScan(created, err)
	}
	if err != nil {
		uc.log.Error().Err(err).Int("created", created).Msg("escaneo de alertas fallido")
		return created, err
	}
	uc.log.Debug().Int("created", created).Msg("escaneo de alertas completado")
	return created, nil
}

func (uc *AlertUseCase) scan(ctx context.Context) (int, error) {
	candidates, err := uc.repo.ListLowStockCandidates(ctx)
	if err != nil {
		return 0, fmt.Errorf("alertas: candidatos: %w", err)
	}
	created := 0
	for _, p := range candidates {
		if !p.IsLowStock() {
			continue
		}
		ok, err := uc.repo.CreateIfNoUnread(ctx, NewLowStockAlert(p))
		if err != nil {
			return created, fmt.Errorf("alertas: producto %d: %w", p.ID, err)
		}
		if ok {
			created++
		}
	}
	return created, nil
}

// List devuelve las alertas: no leídas primero, luego más recientes.
func (uc *AlertUseCase) List(ctx context.Context) ([]*entity.Alert, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []*entity.Alert{}
	}
	return list, nil
}

// MarkRead marca la alerta como leída. ErrAlertNotFound si no existe.
func (uc *AlertUseCase) MarkRead(ctx context.Context, id int64) error {
	ok, err := uc.repo.MarkRead(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrAlertNotFound
	}
	return nil
}

// MarkAllRead marca como leídas todas las alertas pendientes y devuelve cuántas cambió.
func (uc *AlertUseCase) MarkAllRead(ctx context.Context) (int64, error) {
	return uc.repo.MarkAllRead(ctx)
}

// Delete elimina la alerta. ErrAlertNotFound si no existe.
func (uc *AlertUseCase) Delete(ctx context.Context, id int64) error {
	ok, err := uc.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrAlertNotFound
	}
	return nil
}
