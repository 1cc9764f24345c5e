package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventory-ledger-api/internal/domain/entity"
	"github.com/jhoicas/inventory-ledger-api/internal/domain/repository"
)

var _ repository.AlertRepository = (*AlertRepo)(nil)

// AlertRepo persistencia de alertas sobre PostgreSQL.
type AlertRepo struct {
	q Querier
}

// NewAlertRepository construye el repositorio.
func NewAlertRepository(q Querier) *AlertRepo {
	return &AlertRepo{q: q}
}

// ListLowStockCandidates productos vigentes en o bajo su umbral sin alerta low_stock pendiente.
func (r *AlertRepo) ListLowStockCandidates(ctx context.Context) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, `
		SELECT p.id, p.name, p.quantity, p.low_stock_threshold
		FROM products p
		WHERE p.deleted_at IS NULL
		  AND p.quantity <= p.low_stock_threshold
		  AND NOT EXISTS (
		      SELECT 1 FROM alerts a
		      WHERE a.product_id = p.id AND a.type = 'low_stock' AND a.is_read = FALSE
		  )
		ORDER BY p.id`)
	if err != nil {
		return nil, fmt.Errorf("list low stock candidates: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Quantity, &p.LowStockThreshold); err != nil {
			return nil, fmt.Errorf("scan candidate: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// CreateIfNoUnread inserta la alerta salvo que el índice único parcial ya tenga una pendiente
// para el producto; en ese caso devuelve false sin error. Seguro ante escaneos concurrentes.
func (r *AlertRepo) CreateIfNoUnread(ctx context.Context, a *entity.Alert) (bool, error) {
	err := r.q.QueryRow(ctx, `
		INSERT INTO alerts (type, title, message, severity, product_id)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (product_id) WHERE type = 'low_stock' AND is_read = FALSE DO NOTHING
		RETURNING id, is_read, created_at`,
		a.Type, a.Title, a.Message, a.Severity, a.ProductID,
	).Scan(&a.ID, &a.IsRead, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, translateError("insert alert", err)
	}
	return true, nil
}

// List no leídas primero, luego más recientes, con el stock actual del producto.
func (r *AlertRepo) List(ctx context.Context) ([]*entity.Alert, error) {
	rows, err := r.q.Query(ctx, `
		SELECT a.id, a.type, a.title, a.message, a.severity, a.product_id, a.is_read, a.created_at,
		       p.name, p.quantity, p.low_stock_threshold
		FROM alerts a
		JOIN products p ON p.id = a.product_id
		ORDER BY a.is_read ASC, a.created_at DESC, a.id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list alerts: %w", err)
	}
	defer rows.Close()
	var list []*entity.Alert
	for rows.Next() {
		var (
			a        entity.Alert
			current  int64
			minStock int64
		)
		if err := rows.Scan(&a.ID, &a.Type, &a.Title, &a.Message, &a.Severity, &a.ProductID,
			&a.IsRead, &a.CreatedAt, &a.ProductName, &current, &minStock); err != nil {
			return nil, fmt.Errorf("scan alert: %w", err)
		}
		a.CurrentStock = &current
		a.MinStock = &minStock
		list = append(list, &a)
	}
	return list, rows.Err()
}

// MarkRead false si la alerta no existe.
func (r *AlertRepo) MarkRead(ctx context.Context, id int64) (bool, error) {
	cmd, err := r.q.Exec(ctx, `UPDATE alerts SET is_read = TRUE WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("mark alert read: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// MarkAllRead devuelve cuántas alertas pasaron a leídas.
func (r *AlertRepo) MarkAllRead(ctx context.Context) (int64, error) {
	cmd, err := r.q.Exec(ctx, `UPDATE alerts SET is_read = TRUE WHERE is_read = FALSE`)
	if err != nil {
		return 0, fmt.Errorf("mark all alerts read: %w", err)
	}
	return cmd.RowsAffected(), nil
}

func (r *AlertRepo) Delete(ctx context.Context, id int64) (bool, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM alerts WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete alert: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}
