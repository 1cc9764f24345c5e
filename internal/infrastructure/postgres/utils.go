package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/inventory-ledger-api/internal/domain"
)

// Códigos SQLSTATE usados para clasificar errores.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
	codeLockNotAvailable    = "55P03"
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	return pgCode(err) == codeUniqueViolation
}

func isForeignKeyViolation(err error) bool {
	return pgCode(err) == codeForeignKeyViolation
}

func isCheckViolation(err error) bool {
	return pgCode(err) == codeCheckViolation
}

// isLockNotAvailable lock_timeout vencido esperando un bloqueo de fila.
func isLockNotAvailable(err error) bool {
	return pgCode(err) == codeLockNotAvailable
}

// translateError traduce códigos conocidos a errores de dominio y envuelve el resto con op.
func translateError(op string, err error) error {
	if err == nil {
		return nil
	}
	switch {
	case isLockNotAvailable(err):
		return fmt.Errorf("%s: %w", op, domain.ErrContended)
	case isUniqueViolation(err):
		return fmt.Errorf("%s: %w", op, domain.ErrDuplicate)
	}
	return fmt.Errorf("%s: %w", op, err)
}
