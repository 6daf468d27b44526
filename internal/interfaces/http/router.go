package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-dashboard/internal/application/dashboard"
	"github.com/jhoicas/Inventario-dashboard/internal/application/lookup"
	"github.com/jhoicas/Inventario-dashboard/internal/application/ports"
	"github.com/jhoicas/Inventario-dashboard/internal/application/pricing"
	"github.com/jhoicas/Inventario-dashboard/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	DashboardUC *dashboard.UseCase
	Reconciler  *pricing.Reconciler
	Resolver    *lookup.Resolver
	Reports     ports.ReportAPI
	Location    *time.Location // zona horaria de las fechas mostradas
	Logger      *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}
	api := app.Group("/api", RequestLogger(log))

	dashboardHandler := NewDashboardHandler(deps.DashboardUC, deps.Location)
	breakdownHandler := NewBreakdownHandler(deps.Reconciler)
	lookupHandler := NewLookupHandler(deps.Resolver, deps.Reports)

	// Bodega y desglose por master SKU
	warehouse := api.Group("/warehouse")
	warehouse.Get("/", dashboardHandler.Warehouse)
	warehouse.Get("/:master_sku_id/breakdown", breakdownHandler.Get)
	warehouse.Post("/:master_sku_id/breakdown/:product_id/focus", breakdownHandler.Focus)
	warehouse.Post("/:master_sku_id/breakdown/:product_id/blur", breakdownHandler.Blur)
	warehouse.Post("/:master_sku_id/breakdown/:product_id/price", breakdownHandler.CommitPrice)

	// Log de despachos
	shipments := api.Group("/shipments")
	shipments.Get("/", dashboardHandler.ShipmentLog)
	shipments.Post("/refresh", dashboardHandler.RefreshShipments)
	api.Put("/visibility", dashboardHandler.SetVisibility)

	api.Get("/manual-review", dashboardHandler.ManualReview)
	api.Get("/lookup", lookupHandler.Lookup)
	api.Get("/reports/monthly", lookupHandler.MonthlyReport)
}
