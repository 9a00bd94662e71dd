package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"nyumbani/internal/common"
	"nyumbani/internal/services"
)

type DashboardHandlers struct {
	dashboardSvc services.DashboardService
}

func NewDashboardHandlers(dashboardSvc services.DashboardService) *DashboardHandlers {
	return &DashboardHandlers{dashboardSvc: dashboardSvc}
}

// GetFinancialSummary returns the cached rent/fee aggregate for the
// dashboard cards.
func (h *DashboardHandlers) GetFinancialSummary(c echo.Context) error {
	summary, err := h.dashboardSvc.FinancialSummary(c.Request().Context())
	if err != nil {
		return common.SendServerError(c, "Failed to compute financial summary")
	}
	return c.JSON(http.StatusOK, summary)
}

func (h *DashboardHandlers) GetOccupancy(c echo.Context) error {
	rate, err := h.dashboardSvc.OccupancyRate(c.Request().Context())
	if err != nil {
		return common.SendServerError(c, "Failed to compute occupancy")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"occupancy_rate": rate})
}
