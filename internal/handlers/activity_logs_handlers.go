package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"nyumbani/internal/common"
	"nyumbani/internal/services"
)

type ActivityLogHandlers struct {
	activitySvc services.ActivityLogService
}

func NewActivityLogHandlers(activitySvc services.ActivityLogService) *ActivityLogHandlers {
	return &ActivityLogHandlers{activitySvc: activitySvc}
}

func (h *ActivityLogHandlers) ListLogs(c echo.Context) error {
	limit, offset := paginationFromQuery(c)

	if entityType := c.QueryParam("entity_type"); entityType != "" {
		logs, err := h.activitySvc.ListByEntity(c.Request().Context(), entityType, limit, offset)
		if err != nil {
			return common.SendServerError(c, "Failed to list activity logs")
		}
		return c.JSON(http.StatusOK, map[string]interface{}{
			"logs":   logs,
			"limit":  limit,
			"offset": offset,
		})
	}

	logs, err := h.activitySvc.List(c.Request().Context(), limit, offset)
	if err != nil {
		return common.SendServerError(c, "Failed to list activity logs")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"logs":   logs,
		"limit":  limit,
		"offset": offset,
	})
}
