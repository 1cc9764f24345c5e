// Package migrate aplica las migraciones SQL (goose) embebidas en el binario.
package migrate

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// DefaultDir directorio de migraciones relativo a la raíz del repo (create/validate).
const DefaultDir = "pkg/migrate/migrations"

// embeddedDir ruta dentro de Migrations.
const embeddedDir = "migrations"

//go:embed migrations/*.sql
var Migrations embed.FS

func setup() error {
	goose.SetBaseFS(Migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	return nil
}

// Run ejecuta un comando goose (up, down, status, ...) con las migraciones embebidas.
func Run(ctx context.Context, db *sql.DB, command string, args ...string) error {
	if db == nil {
		return fmt.Errorf("db requerido")
	}
	if err := setup(); err != nil {
		return err
	}
	if err := goose.RunContext(ctx, command, db, embeddedDir, args...); err != nil {
		return fmt.Errorf("goose %s: %w", command, err)
	}
	return nil
}

// RunPool adapta el pool pgx a *sql.DB y ejecuta el comando.
func RunPool(ctx context.Context, pool *pgxpool.Pool, command string, args ...string) error {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()
	return Run(ctx, db, command, args...)
}

// MigrateToVersion sube o baja hasta la versión indicada (YYYYMMDDHHMMSS).
func MigrateToVersion(ctx context.Context, db *sql.DB, targetVersion string) error {
	target, err := strconv.ParseInt(targetVersion, 10, 64)
	if err != nil {
		return fmt.Errorf("versión inválida %q (se espera YYYYMMDDHHMMSS): %w", targetVersion, err)
	}
	if err := setup(); err != nil {
		return err
	}
	current, err := goose.GetDBVersionContext(ctx, db)
	if err != nil {
		return fmt.Errorf("leer versión de la BD: %w", err)
	}
	switch {
	case target > current:
		err = goose.UpToContext(ctx, db, embeddedDir, target)
	case target < current:
		err = goose.DownToContext(ctx, db, embeddedDir, target)
	default:
		return nil
	}
	if err != nil {
		return fmt.Errorf("migrar a %d: %w", target, err)
	}
	return nil
}
