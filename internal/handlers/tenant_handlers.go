package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"nyumbani/internal/common"
	"nyumbani/internal/models"
	"nyumbani/internal/repositories"
	"nyumbani/internal/services"
)

type TenantHandlers struct {
	tenantSvc services.TenantService
}

func NewTenantHandlers(tenantSvc services.TenantService) *TenantHandlers {
	return &TenantHandlers{tenantSvc: tenantSvc}
}

func (h *TenantHandlers) CreateTenant(c echo.Context) error {
	var req services.CreateTenantRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	tenant, err := h.tenantSvc.Create(c.Request().Context(), &req)
	if err != nil {
		return common.SendClientError(c, err.Error())
	}
	return c.JSON(http.StatusCreated, tenant)
}

func (h *TenantHandlers) GetTenant(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	tenant, err := h.tenantSvc.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return common.SendNotFoundError(c, "Tenant")
		}
		return common.SendServerError(c, "Failed to load tenant")
	}
	return c.JSON(http.StatusOK, tenant)
}

func (h *TenantHandlers) UpdateTenant(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	var tenant models.Tenant
	if err := c.Bind(&tenant); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	tenant.ID = id

	if err := h.tenantSvc.Update(c.Request().Context(), &tenant); err != nil {
		return common.SendClientError(c, err.Error())
	}
	return c.JSON(http.StatusOK, tenant)
}

type paymentStatusRequest struct {
	Status string `json:"status"`
}

func (h *TenantHandlers) UpdatePaymentStatus(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	var req paymentStatusRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	if err := h.tenantSvc.SetPaymentStatus(c.Request().Context(), id, req.Status); err != nil {
		return common.SendClientError(c, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *TenantHandlers) ArchiveTenant(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	if err := h.tenantSvc.Archive(c.Request().Context(), id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return common.SendNotFoundError(c, "Tenant")
		}
		return common.SendServerError(c, "Failed to archive tenant")
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *TenantHandlers) ListTenants(c echo.Context) error {
	limit, offset := paginationFromQuery(c)
	includeArchived := c.QueryParam("include_archived") == "true"

	tenants, err := h.tenantSvc.List(c.Request().Context(), includeArchived, limit, offset)
	if err != nil {
		return common.SendServerError(c, "Failed to list tenants")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"tenants": tenants,
		"limit":   limit,
		"offset":  offset,
	})
}
