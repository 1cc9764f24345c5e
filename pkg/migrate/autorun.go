package migrate

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/inventory-ledger-api/pkg/config"
	"github.com/jhoicas/inventory-ledger-api/pkg/logger"
)

// MaybeRunOnStartup aplica "up" al arrancar la API si DB_AUTO_MIGRATE está activo.
func MaybeRunOnStartup(ctx context.Context, cfg *config.Config, log *logger.Logger, pool *pgxpool.Pool) error {
	if !cfg.DB.AutoMigrate {
		return nil
	}
	log.Info().Str("env", cfg.App.Env).Msg("aplicando migraciones (auto-migrate)")
	if err := RunPool(ctx, pool, "up"); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	log.Info().Msg("migraciones aplicadas")
	return nil
}
