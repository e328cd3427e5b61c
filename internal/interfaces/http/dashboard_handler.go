package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/pos-discount-dashboard/internal/application/analytics"
	"github.com/jhoicas/pos-discount-dashboard/internal/application/cooldown"
	"github.com/jhoicas/pos-discount-dashboard/internal/application/ports"
)

// DashboardHandler maneja los endpoints de lectura del dashboard de descuentos.
type DashboardHandler struct {
	uc       *appanalytics.DashboardUseCase
	cooldown *cooldown.Controller
	charts   ports.ChartRenderer
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase, cooldown *cooldown.Controller, charts ports.ChartRenderer) *DashboardHandler {
	return &DashboardHandler{uc: uc, cooldown: cooldown, charts: charts}
}

// GetDashboard godoc
// @Summary      Dashboard de ventas y descuentos
// @Description  Gráficos por hora y por ítem, rankings, horas e ítems con descuento,
//               estado del botón "Apply Discount Now" y acciones disponibles.
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardViewDTO
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/dashboard [get]
func (h *DashboardHandler) GetDashboard(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return missingCompany(c)
	}

	view, err := h.uc.GetDashboard(c.UserContext(), companyID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(view)
}

// GetCooldown godoc
// @Summary      Estado del cooldown de "Apply Discount Now"
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CooldownStatusDTO
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/dashboard/cooldown [get]
func (h *DashboardHandler) GetCooldown(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return missingCompany(c)
	}

	st, err := h.cooldown.Status(c.UserContext(), companyID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(st)
}

// GetHourlySalesChart godoc
// @Summary      Gráfico "Sales per Hour" en PNG
// @Tags         dashboard
// @Security     Bearer
// @Produce      png
// @Success      200
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/dashboard/charts/hourly-sales.png [get]
func (h *DashboardHandler) GetHourlySalesChart(c *fiber.Ctx) error {
	return h.sendChart(c, func(img *ports.ChartImages) []byte { return img.HourlySales })
}

// GetItemSalesChart godoc
// @Summary      Gráfico "Sales per Item" en PNG
// @Description  204 si no hay ventas por ítem que dibujar.
// @Tags         dashboard
// @Security     Bearer
// @Produce      png
// @Success      200
// @Success      204
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/dashboard/charts/item-sales.png [get]
func (h *DashboardHandler) GetItemSalesChart(c *fiber.Ctx) error {
	return h.sendChart(c, func(img *ports.ChartImages) []byte { return img.ItemSales })
}

func (h *DashboardHandler) sendChart(c *fiber.Ctx, pick func(*ports.ChartImages) []byte) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return missingCompany(c)
	}

	view, err := h.uc.GetDashboard(c.UserContext(), companyID)
	if err != nil {
		return writeError(c, err)
	}
	imgs, err := h.charts.RenderCharts(c.UserContext(), view)
	if err != nil {
		return writeError(c, err)
	}
	png := pick(imgs)
	if len(png) == 0 {
		return c.SendStatus(fiber.StatusNoContent)
	}
	c.Set(fiber.HeaderContentType, "image/png")
	c.Set(fiber.HeaderCacheControl, "no-store")
	return c.Send(png)
}
