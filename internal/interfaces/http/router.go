package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-discount-dashboard/internal/application/analytics"
	"github.com/jhoicas/pos-discount-dashboard/internal/application/cooldown"
	"github.com/jhoicas/pos-discount-dashboard/internal/application/discount"
	"github.com/jhoicas/pos-discount-dashboard/internal/application/ports"
	"github.com/jhoicas/pos-discount-dashboard/internal/application/report"
	"github.com/jhoicas/pos-discount-dashboard/pkg/jwt"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	DashboardUC *analytics.DashboardUseCase
	Cooldown    *cooldown.Controller
	DiscountUC  *discount.ApplyDiscountUseCase
	ReportUC    *report.ReportUseCase
	Charts      ports.ChartRenderer
	JWTSecret   string
	JWTIssuer   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Dashboard de descuentos (requiere Bearer Token y rol admin)
	dash := api.Group("/dashboard",
		AuthMiddleware(deps.JWTSecret, deps.JWTIssuer),
		RequireRole(jwt.RoleAdmin),
	)

	dashboardHandler := NewDashboardHandler(deps.DashboardUC, deps.Cooldown, deps.Charts)
	dash.Get("/", dashboardHandler.GetDashboard)
	dash.Get("/cooldown", dashboardHandler.GetCooldown)
	dash.Get("/charts/hourly-sales.png", dashboardHandler.GetHourlySalesChart)
	dash.Get("/charts/item-sales.png", dashboardHandler.GetItemSalesChart)

	discountHandler := NewDiscountHandler(deps.DiscountUC)
	dash.Post("/discount", discountHandler.Apply)
	dash.Get("/discount/history", discountHandler.History)

	reportHandler := NewReportHandler(deps.ReportUC)
	dash.Get("/report", reportHandler.Download)
}
