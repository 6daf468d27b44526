package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/Inventario-dashboard/internal/application/dashboard"
	"github.com/jhoicas/Inventario-dashboard/internal/application/dto"
	"github.com/jhoicas/Inventario-dashboard/internal/application/lookup"
	"github.com/jhoicas/Inventario-dashboard/internal/application/ports"
	"github.com/jhoicas/Inventario-dashboard/internal/application/pricing"
	"github.com/jhoicas/Inventario-dashboard/internal/domain/entity"
	"github.com/jhoicas/Inventario-dashboard/internal/infrastructure/cache"
	"github.com/jhoicas/Inventario-dashboard/internal/infrastructure/inventoryapi"
	"github.com/jhoicas/Inventario-dashboard/internal/infrastructure/scheduler"
	httpRouter "github.com/jhoicas/Inventario-dashboard/internal/interfaces/http"
	"github.com/jhoicas/Inventario-dashboard/pkg/config"
	"github.com/jhoicas/Inventario-dashboard/pkg/logger"
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
		Str("inventory_api", cfg.Inventory.BaseURL).
		Msg("iniciando aplicación")

	loc, err := time.LoadLocation(cfg.Dashboard.DisplayTimezone)
	if err != nil {
		log.Fatal().Err(err).Str("tz", cfg.Dashboard.DisplayTimezone).Msg("zona horaria inválida")
	}
	mode, _ := entity.ParseAggregationMode(cfg.Dashboard.AggregationMode)

	client := inventoryapi.NewClient(inventoryapi.Config{
		BaseURL: cfg.Inventory.BaseURL,
		Timeout: cfg.Inventory.Timeout(),
	}, log)

	// Caché de desglose: Redis si está configurado (varias réplicas), si no en memoria.
	var breakdownCache ports.BreakdownCache
	if cfg.Redis.Enabled() {
		rdb := cache.NewRedisClient(cache.RedisConfig{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			log.Fatal().Err(err).Str("addr", cfg.Redis.Addr).Msg("conexión a Redis")
		}
		cancel()
		defer rdb.Close()
		breakdownCache = cache.NewRedisBreakdownCache(rdb, cfg.Dashboard.BreakdownTTL())
		log.Info().Str("addr", cfg.Redis.Addr).Msg("caché de desglose en Redis")
	} else {
		breakdownCache = cache.NewMemoryBreakdownCache(cfg.Dashboard.BreakdownTTL())
	}

	dashboardUC := dashboard.NewUseCase(client, dashboard.Config{
		WindowDays: cfg.Dashboard.LogWindowDays,
		Mode:       mode,
	}, log)
	reconciler := pricing.NewReconciler(client, breakdownCache, log)
	resolver := lookup.NewResolver(client, log)

	refresher, err := scheduler.NewLogRefresher(cfg.Dashboard.LogRefreshSchedule, dashboardUC, log)
	if err != nil {
		log.Fatal().Err(err).Msg("programar refresco del log")
	}

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
		Title:    "Inventory Dashboard API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(dto.HealthResponse{Status: "ok", Service: cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		DashboardUC: dashboardUC,
		Reconciler:  reconciler,
		Resolver:    resolver,
		Reports:     client,
		Location:    loc,
		Logger:      log,
	})

	// Primera foto del log antes del primer tick; un fallo aquí no impide arrancar.
	if _, err := refresher.RunOnce(context.Background()); err != nil {
		log.Warn().Err(err).Msg("lectura inicial del log fallida")
	}
	refresher.Start()

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

	if err := refresher.Stop(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("detener refresco del log")
	}
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
