package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/inventory-ledger-api/internal/application/alert"
	"github.com/jhoicas/inventory-ledger-api/internal/application/auth"
	"github.com/jhoicas/inventory-ledger-api/internal/application/inventory"
	"github.com/jhoicas/inventory-ledger-api/internal/application/report"
	"github.com/jhoicas/inventory-ledger-api/internal/application/usecase"
	infrapdf "github.com/jhoicas/inventory-ledger-api/internal/infrastructure/pdf"
	"github.com/jhoicas/inventory-ledger-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/inventory-ledger-api/internal/interfaces/http"
	"github.com/jhoicas/inventory-ledger-api/pkg/config"
	"github.com/jhoicas/inventory-ledger-api/pkg/logger"
	"github.com/jhoicas/inventory-ledger-api/pkg/metrics"
	"github.com/jhoicas/inventory-ledger-api/pkg/migrate"
	pkgredis "github.com/jhoicas/inventory-ledger-api/pkg/redis"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := migrate.MaybeRunOnStartup(ctx, cfg, log, pool); err != nil {
		log.Fatal().Err(err).Msg("migraciones al arrancar")
	}

	// Métricas: registro propio para no exponer los collectors globales de librerías.
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	ledgerMetrics := metrics.NewLedgerMetrics(registry)

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	alertRepo := postgres.NewAlertRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	txRunner := postgres.NewTxRunner(pool, cfg.DB.LockTimeout)

	movementUC := inventory.NewStockMovementUseCase(txRunner, movementRepo, log.Named("ledger"), ledgerMetrics)
	alertUC := alert.NewAlertUseCase(alertRepo, log.Named("alerts"), ledgerMetrics)
	productUC := usecase.NewProductUseCase(productRepo, categoryRepo)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo)
	userUC := usecase.NewUserUseCase(userRepo)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	// PDF: valorización del inventario
	pdfGenerator := infrapdf.NewMarotoPDFGenerator(cfg.App.Name)
	reporter := report.NewReporter(reportRepo, userRepo, productRepo, movementRepo, pdfGenerator)

	// Escaneo periódico de stock bajo. Con Redis el lock es compartido entre instancias.
	var scanLock alert.Lock
	if cfg.Redis.Enabled() {
		rdb, err := pkgredis.New(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer rdb.Close()
		redisLock, err := alert.NewRedisLock(rdb, alert.ScanLockKey, cfg.Alerts.LockTTL)
		if err != nil {
			log.Fatal().Err(err).Msg("lock de escaneo")
		}
		scanLock = redisLock
	}
	if cfg.Alerts.ScanInterval > 0 {
		scheduler, err := alert.NewScheduler(alertUC, scanLock, cfg.Alerts.ScanInterval, log.Named("alert-scheduler"))
		if err != nil {
			log.Fatal().Err(err).Msg("scheduler de alertas")
		}
		go func() {
			if err := scheduler.Run(ctx); err != nil && ctx.Err() == nil {
				log.Error().Err(err).Msg("scheduler de alertas detenido")
			}
		}()
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Named("http")))

	// Swagger UI en local: http://localhost:<port>/docs (solo si se generó docs/swagger.json)
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Inventory Ledger API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.Context()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	if cfg.Metrics.Enabled {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		UserUC:     userUC,
		ProductUC:  productUC,
		CategoryUC: categoryUC,
		MovementUC: movementUC,
		AlertUC:    alertUC,
		Reporter:   reporter,
		JWTSecret:  cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
