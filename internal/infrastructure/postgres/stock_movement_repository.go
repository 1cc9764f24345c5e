package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventory-ledger-api/internal/domain"
	"github.com/jhoicas/inventory-ledger-api/internal/domain/entity"
	"github.com/jhoicas/inventory-ledger-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo historial append-only sobre stock_in_history y stock_out_history.
// No expone Update ni Delete.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el repositorio (pool o tx).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Proyecciones con la misma forma para ambas tablas, para poder unirlas.
const (
	stockInSelect = `
		SELECT h.id, 'stock_in'::text AS kind, h.product_id, h.quantity, COALESCE(h.user_id, 0) AS user_id,
		       h.supplier, h.purchase_price, h.notes, ''::text AS reason, h.created_at,
		       p.name AS product_name, COALESCE(u.username, '') AS username
		FROM stock_in_history h
		JOIN products p ON p.id = h.product_id
		LEFT JOIN users u ON u.id = h.user_id`
	stockOutSelect = `
		SELECT h.id, 'stock_out'::text AS kind, h.product_id, h.quantity, COALESCE(h.user_id, 0) AS user_id,
		       ''::text AS supplier, 0::numeric AS purchase_price, ''::text AS notes, h.reason, h.created_at,
		       p.name AS product_name, COALESCE(u.username, '') AS username
		FROM stock_out_history h
		JOIN products p ON p.id = h.product_id
		LEFT JOIN users u ON u.id = h.user_id`
)

func historyTable(kind string) (string, error) {
	switch kind {
	case entity.MovementKindIn:
		return "stock_in_history", nil
	case entity.MovementKindOut:
		return "stock_out_history", nil
	}
	return "", fmt.Errorf("tipo de movimiento %q: %w", kind, domain.ErrInvalidInput)
}

// Create inserta la fila de historial según Kind y completa ID y CreatedAt.
// ActorID 0 se guarda como NULL.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	var row pgx.Row
	switch m.Kind {
	case entity.MovementKindIn:
		row = r.q.QueryRow(ctx, `
			INSERT INTO stock_in_history (product_id, quantity, user_id, supplier, purchase_price, notes)
			VALUES ($1, $2, NULLIF($3, 0), $4, $5, $6)
			RETURNING id, created_at`,
			m.ProductID, m.Quantity, m.ActorID, m.Supplier, m.PurchasePrice, m.Notes)
	case entity.MovementKindOut:
		row = r.q.QueryRow(ctx, `
			INSERT INTO stock_out_history (product_id, quantity, user_id, reason)
			VALUES ($1, $2, NULLIF($3, 0), $4)
			RETURNING id, created_at`,
			m.ProductID, m.Quantity, m.ActorID, m.Reason)
	default:
		_, err := historyTable(m.Kind)
		return err
	}
	if err := row.Scan(&m.ID, &m.CreatedAt); err != nil {
		return translateError("insert "+m.Kind, err)
	}
	return nil
}

// List historial de un tipo, más reciente primero.
func (r *StockMovementRepo) List(ctx context.Context, kind string, limit, offset int) ([]*entity.StockMovement, error) {
	var base string
	switch kind {
	case entity.MovementKindIn:
		base = stockInSelect
	case entity.MovementKindOut:
		base = stockOutSelect
	default:
		_, err := historyTable(kind)
		return nil, err
	}
	return r.query(ctx, "list "+kind,
		base+` ORDER BY h.created_at DESC, h.id DESC LIMIT $1 OFFSET $2`, limit, offset)
}

// Count filas del historial de un tipo.
func (r *StockMovementRepo) Count(ctx context.Context, kind string) (int64, error) {
	table, err := historyTable(kind)
	if err != nil {
		return 0, err
	}
	var n int64
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM `+table).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", kind, err)
	}
	return n, nil
}

// ListByProduct entradas y salidas del producto mezcladas, más reciente primero.
// Incluye productos borrados lógicamente: el historial sobrevive al borrado.
func (r *StockMovementRepo) ListByProduct(ctx context.Context, productID int64, limit, offset int) ([]*entity.StockMovement, error) {
	query := `SELECT * FROM (` +
		stockInSelect + ` WHERE h.product_id = $1
		UNION ALL` +
		stockOutSelect + ` WHERE h.product_id = $1
	) m ORDER BY m.created_at DESC, m.id DESC LIMIT $2 OFFSET $3`
	return r.query(ctx, "list product movements", query, productID, limit, offset)
}

func (r *StockMovementRepo) query(ctx context.Context, op, query string, args ...any) ([]*entity.StockMovement, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		if err := rows.Scan(
			&m.ID, &m.Kind, &m.ProductID, &m.Quantity, &m.ActorID,
			&m.Supplier, &m.PurchasePrice, &m.Notes, &m.Reason, &m.CreatedAt,
			&m.ProductName, &m.ActorUsername,
		); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
