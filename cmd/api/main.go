package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/pos-discount-dashboard/internal/application/analytics"
	"github.com/jhoicas/pos-discount-dashboard/internal/application/cooldown"
	"github.com/jhoicas/pos-discount-dashboard/internal/application/discount"
	"github.com/jhoicas/pos-discount-dashboard/internal/application/ports"
	"github.com/jhoicas/pos-discount-dashboard/internal/application/report"
	"github.com/jhoicas/pos-discount-dashboard/internal/domain/repository"
	infrachart "github.com/jhoicas/pos-discount-dashboard/internal/infrastructure/chart"
	"github.com/jhoicas/pos-discount-dashboard/internal/infrastructure/memory"
	"github.com/jhoicas/pos-discount-dashboard/internal/infrastructure/messaging"
	infrapdf "github.com/jhoicas/pos-discount-dashboard/internal/infrastructure/pdf"
	"github.com/jhoicas/pos-discount-dashboard/internal/infrastructure/postgres"
	"github.com/jhoicas/pos-discount-dashboard/internal/infrastructure/redisstore"
	"github.com/jhoicas/pos-discount-dashboard/internal/infrastructure/salesapi"
	"github.com/jhoicas/pos-discount-dashboard/internal/infrastructure/sqlite"
	httpRouter "github.com/jhoicas/pos-discount-dashboard/internal/interfaces/http"
	"github.com/jhoicas/pos-discount-dashboard/pkg/config"
	"github.com/jhoicas/pos-discount-dashboard/pkg/logger"
)

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
		Str("cooldown_store", cfg.Cooldown.Store).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es obligatorio")
	}

	ctx := context.Background()

	// Persistencia del cooldown y auditoría. El historial vive en PostgreSQL solo
	// cuando es también el store del cooldown; en los demás casos queda en memoria.
	var (
		cooldownRepo repository.CooldownRepository
		historyRepo  repository.DiscountApplicationRepository = memory.NewDiscountApplicationRepository()
	)
	switch cfg.Cooldown.Store {
	case config.CooldownStorePostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("esquema PostgreSQL")
		}
		cooldownRepo = postgres.NewCooldownRepository(pool)
		historyRepo = postgres.NewDiscountApplicationRepository(pool)

	case config.CooldownStoreRedis:
		rdb, err := redisstore.NewClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer func() { _ = rdb.Close() }()
		cooldownRepo = redisstore.NewCooldownRepository(rdb)

	case config.CooldownStoreSQLite:
		db, err := sqlite.Open(ctx, cfg.SQLite.Path)
		if err != nil {
			log.Fatal().Err(err).Msg("apertura de SQLite")
		}
		defer func() { _ = db.Close() }()
		cooldownRepo = sqlite.NewCooldownRepository(db)

	default:
		log.Warn().Msg("cooldown en memoria: se pierde al reiniciar")
		cooldownRepo = memory.NewCooldownRepository()
	}

	var events ports.EventPublisher = messaging.NopPublisher{}
	if cfg.RabbitMQ.URL != "" {
		events = messaging.NewRabbitMQPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Queue, log)
	}

	backend := salesapi.NewClient(cfg.SalesAPI.BaseURL, cfg.SalesAPI.Timeout)
	cooldownCtrl := cooldown.NewController(cooldownRepo, cooldown.Config{
		Window:    cfg.Cooldown.Duration,
		KeyPrefix: cfg.Cooldown.KeyPrefix,
	}, log)
	dashboardUC := analytics.NewDashboardUseCase(backend, cooldownCtrl, analytics.Navigation{
		ProductsPath:    cfg.UI.ProductsPath,
		AIAssistantPath: cfg.UI.AIAssistantPath,
	})
	discountUC := discount.NewApplyDiscountUseCase(backend, cooldownCtrl, dashboardUC, historyRepo, events, log)

	chartRenderer := infrachart.NewRenderer()
	reportUC := report.NewReportUseCase(dashboardUC, chartRenderer, infrapdf.NewMarotoReportGenerator(), report.Config{
		Title:      cfg.Report.Title,
		SignerName: cfg.Report.SignerName,
		SignerRole: cfg.Report.SignerRole,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "POS Discount Dashboard API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		DashboardUC: dashboardUC,
		Cooldown:    cooldownCtrl,
		DiscountUC:  discountUC,
		ReportUC:    reportUC,
		Charts:      chartRenderer,
		JWTSecret:   cfg.JWT.Secret,
		JWTIssuer:   cfg.JWT.Issuer,
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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
