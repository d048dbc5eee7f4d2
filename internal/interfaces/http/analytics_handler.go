package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mnsts/ims-api/internal/application/analytics"
	"github.com/mnsts/ims-api/internal/application/dto"
)

// AnalyticsHandler maneja el dashboard, los gráficos y el tablero de alertas.
type AnalyticsHandler struct {
	dashboard *analytics.DashboardUseCase
	charts    *analytics.ChartsUseCase
	alerts    *analytics.AlertsUseCase
}

// NewAnalyticsHandler construye el handler.
func NewAnalyticsHandler(
	dashboard *analytics.DashboardUseCase,
	charts *analytics.ChartsUseCase,
	alerts *analytics.AlertsUseCase,
) *AnalyticsHandler {
	return &AnalyticsHandler{dashboard: dashboard, charts: charts, alerts: alerts}
}

// Dashboard godoc
// @Summary      Resumen del inventario para la pantalla principal
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/dashboard [get]
func (h *AnalyticsHandler) Dashboard(c *fiber.Ctx) error {
	resp, err := h.dashboard.Get(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(resp)
}

// LowStockAlerts godoc
// @Summary      Tablero de alertas de stock bajo (máx 10, más urgentes primero)
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.LowStockAlertDTO
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/alerts/low-stock [get]
func (h *AnalyticsHandler) LowStockAlerts(c *fiber.Ctx) error {
	alerts, err := h.alerts.LowStock()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"total": len(alerts), "alerts": alerts})
}

// StockOverview godoc
// @Summary      Serie mensual de existencias (6 meses)
// @Tags         charts
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.StockOverviewPointDTO
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/charts/stock-overview [get]
func (h *AnalyticsHandler) StockOverview(c *fiber.Ctx) error {
	points, err := h.charts.StockOverview(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(points)
}

// StockMovements godoc
// @Summary      Unidades entrantes y salientes por día (7 días)
// @Tags         charts
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.MovementChartPointDTO
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/charts/stock-movements [get]
func (h *AnalyticsHandler) StockMovements(c *fiber.Ctx) error {
	points, err := h.charts.StockMovements(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(points)
}

// CategoryDistribution godoc
// @Summary      Distribución de artículos por categoría
// @Tags         charts
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.CategorySliceDTO
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/charts/category-distribution [get]
func (h *AnalyticsHandler) CategoryDistribution(c *fiber.Ctx) error {
	slices, err := h.charts.CategoryDistribution(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(slices)
}
