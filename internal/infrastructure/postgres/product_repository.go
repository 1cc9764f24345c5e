package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventory-ledger-api/internal/domain"
	"github.com/jhoicas/inventory-ledger-api/internal/domain/entity"
	"github.com/jhoicas/inventory-ledger-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
// Los productos borrados lógicamente (deleted_at) no son visibles para ninguna operación.
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `p.id, p.name, p.price, p.quantity, p.category_id, p.low_stock_threshold,
	p.image_url, p.created_at, p.updated_at, p.deleted_at`

const productSelectWithCategory = `SELECT ` + productColumns + `, COALESCE(c.name, '')
	FROM products p LEFT JOIN categories c ON c.id = p.category_id`

func scanProduct(row pgx.Row, withCategory bool) (*entity.Product, error) {
	var p entity.Product
	dest := []any{
		&p.ID, &p.Name, &p.Price, &p.Quantity, &p.CategoryID, &p.LowStockThreshold,
		&p.ImageURL, &p.CreatedAt, &p.UpdatedAt, &p.DeletedAt,
	}
	if withCategory {
		dest = append(dest, &p.CategoryName)
	}
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &p, nil
}

// Create persiste un nuevo producto y completa ID y timestamps.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	query := `
		INSERT INTO products (name, price, quantity, category_id, low_stock_threshold, image_url)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`
	err := r.q.QueryRow(ctx, query,
		product.Name, product.Price, product.Quantity, product.CategoryID,
		product.LowStockThreshold, product.ImageURL,
	).Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("categoría inexistente: %w", domain.ErrInvalidInput)
		}
		if isCheckViolation(err) {
			return fmt.Errorf("insert product: %w", domain.ErrInvalidInput)
		}
		return translateError("insert product", err)
	}
	return nil
}

// GetByID obtiene un producto vigente por ID; nil, nil si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx,
		productSelectWithCategory+` WHERE p.id = $1 AND p.deleted_at IS NULL`, id), true)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// Update actualiza los datos descriptivos. Quantity no se toca: solo cambia vía movimientos.
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	query := `
		UPDATE products
		SET name = $2, price = $3, category_id = $4, low_stock_threshold = $5, image_url = $6, updated_at = now()
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING quantity, updated_at`
	err := r.q.QueryRow(ctx, query,
		product.ID, product.Name, product.Price, product.CategoryID,
		product.LowStockThreshold, product.ImageURL,
	).Scan(&product.Quantity, &product.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrProductNotFound
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("categoría inexistente: %w", domain.ErrInvalidInput)
		}
		return translateError("update product", err)
	}
	return nil
}

// SoftDelete marca deleted_at. El historial de movimientos permanece intacto.
func (r *ProductRepo) SoftDelete(ctx context.Context, id int64) (bool, error) {
	cmd, err := r.q.Exec(ctx,
		`UPDATE products SET deleted_at = now(), updated_at = now() WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		return false, translateError("delete product", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// List productos vigentes, más recientes primero.
func (r *ProductRepo) List(ctx context.Context, limit, offset int) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, productSelectWithCategory+`
		WHERE p.deleted_at IS NULL
		ORDER BY p.created_at DESC, p.id DESC
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows, true)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Count productos vigentes.
func (r *ProductRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM products WHERE deleted_at IS NULL`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}

// GetForUpdate lee el producto con SELECT ... FOR UPDATE. Solo tiene sentido dentro de una tx:
// el bloqueo se mantiene hasta Commit/Rollback.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products p WHERE p.id = $1 AND p.deleted_at IS NULL FOR UPDATE`, id), false)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, translateError("get product for update", err)
	}
	return p, nil
}

// IncreaseQuantity suma delta en un único UPDATE atómico; nil, nil si el producto no existe.
func (r *ProductRepo) IncreaseQuantity(ctx context.Context, id, delta int64) (*entity.Product, error) {
	return r.adjustQuantity(ctx, "increase quantity", `
		UPDATE products p SET quantity = quantity + $2, updated_at = now()
		WHERE p.id = $1 AND p.deleted_at IS NULL
		RETURNING `+productColumns, id, delta)
}

// DecreaseQuantity resta delta. El CHECK (quantity >= 0) de la tabla es la última barrera.
func (r *ProductRepo) DecreaseQuantity(ctx context.Context, id, delta int64) (*entity.Product, error) {
	return r.adjustQuantity(ctx, "decrease quantity", `
		UPDATE products p SET quantity = quantity - $2, updated_at = now()
		WHERE p.id = $1 AND p.deleted_at IS NULL
		RETURNING `+productColumns, id, delta)
}

func (r *ProductRepo) adjustQuantity(ctx context.Context, op, query string, id, delta int64) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, query, id, delta), false)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		if isCheckViolation(err) {
			return nil, fmt.Errorf("%s: %w", op, domain.ErrInsufficientStock)
		}
		return nil, translateError(op, err)
	}
	return p, nil
}
