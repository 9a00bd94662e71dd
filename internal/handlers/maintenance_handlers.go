package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"nyumbani/internal/common"
	"nyumbani/internal/repositories"
	"nyumbani/internal/services"
)

type MaintenanceHandlers struct {
	maintenanceSvc services.MaintenanceService
}

func NewMaintenanceHandlers(maintenanceSvc services.MaintenanceService) *MaintenanceHandlers {
	return &MaintenanceHandlers{maintenanceSvc: maintenanceSvc}
}

func (h *MaintenanceHandlers) CreateRequest(c echo.Context) error {
	var req services.CreateMaintenanceRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	mr, err := h.maintenanceSvc.Create(c.Request().Context(), &req)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return common.SendNotFoundError(c, "Tenant")
		}
		return common.SendClientError(c, err.Error())
	}
	return c.JSON(http.StatusCreated, mr)
}

func (h *MaintenanceHandlers) GetRequest(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	mr, err := h.maintenanceSvc.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return common.SendNotFoundError(c, "Maintenance request")
		}
		return common.SendServerError(c, "Failed to load maintenance request")
	}
	return c.JSON(http.StatusOK, mr)
}

type maintenanceStatusRequest struct {
	Status string `json:"status"`
}

func (h *MaintenanceHandlers) UpdateStatus(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	var req maintenanceStatusRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	if err := h.maintenanceSvc.SetStatus(c.Request().Context(), id, req.Status); err != nil {
		return common.SendClientError(c, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *MaintenanceHandlers) ListRequests(c echo.Context) error {
	ctx := c.Request().Context()

	if c.QueryParam("open") == "true" {
		requests, err := h.maintenanceSvc.ListOpen(ctx)
		if err != nil {
			return common.SendServerError(c, "Failed to list maintenance requests")
		}
		return c.JSON(http.StatusOK, map[string]interface{}{"requests": requests})
	}

	if tenantParam := c.QueryParam("tenant_id"); tenantParam != "" {
		tenantID, err := common.ValidateUUID(tenantParam, "tenant_id")
		if err != nil {
			return common.SendValidationError(c, "tenant_id", err.Error())
		}
		requests, err := h.maintenanceSvc.ListByTenant(ctx, tenantID)
		if err != nil {
			return common.SendServerError(c, "Failed to list maintenance requests")
		}
		return c.JSON(http.StatusOK, map[string]interface{}{"requests": requests})
	}

	limit, offset := paginationFromQuery(c)
	requests, err := h.maintenanceSvc.List(ctx, limit, offset)
	if err != nil {
		return common.SendServerError(c, "Failed to list maintenance requests")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"requests": requests,
		"limit":    limit,
		"offset":   offset,
	})
}
