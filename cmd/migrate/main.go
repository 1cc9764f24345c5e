package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/stdlib"

	"github.com/jhoicas/inventory-ledger-api/internal/infrastructure/postgres"
	"github.com/jhoicas/inventory-ledger-api/pkg/config"
	"github.com/jhoicas/inventory-ledger-api/pkg/logger"
	"github.com/jhoicas/inventory-ledger-api/pkg/migrate"
)

func main() {
	cmd := flag.String("cmd", "up", "comando: up|down|status|version|create|validate")
	dir := flag.String("dir", migrate.DefaultDir, "directorio de migraciones (create/validate)")
	name := flag.String("name", "", "nombre de la migración (create)")
	version := flag.String("version", "", "versión destino YYYYMMDDHHMMSS (version)")
	flag.Parse()

	// Sin DB
	switch *cmd {
	case "create":
		if *name == "" {
			fmt.Fprintln(os.Stderr, "falta -name para create")
			os.Exit(1)
		}
		path, err := migrate.CreateSQLMigration(*dir, *name)
		if err != nil {
			fmt.Fprintf(os.Stderr, "crear migración: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("migración creada:", path)
		return
	case "validate":
		if err := migrate.ValidateDir(os.DirFS(*dir), "."); err != nil {
			fmt.Fprintf(os.Stderr, "validación de migraciones: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("migraciones válidas")
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).Named("migrate")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	log.Info().Str("cmd", *cmd).Str("env", cfg.App.Env).Msg("migrate listo")

	switch *cmd {
	case "up", "down", "status":
		err = migrate.Run(ctx, db, *cmd)
	case "version":
		if *version == "" {
			fmt.Fprintln(os.Stderr, "falta -version para el comando version")
			os.Exit(1)
		}
		err = migrate.MigrateToVersion(ctx, db, *version)
	default:
		fmt.Fprintln(os.Stderr, "valor -cmd desconocido:", *cmd)
		os.Exit(1)
	}
	if err != nil {
		log.Error().Err(err).Str("cmd", *cmd).Msg("migración fallida")
		os.Exit(1)
	}
	log.Info().Str("cmd", *cmd).Msg("migración completada")
}
