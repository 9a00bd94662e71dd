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

type PropertyHandlers struct {
	propertySvc services.PropertyService
	tenantSvc   services.TenantService
}

func NewPropertyHandlers(propertySvc services.PropertyService, tenantSvc services.TenantService) *PropertyHandlers {
	return &PropertyHandlers{propertySvc: propertySvc, tenantSvc: tenantSvc}
}

func (h *PropertyHandlers) CreateProperty(c echo.Context) error {
	var req services.CreatePropertyRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	property, err := h.propertySvc.Create(c.Request().Context(), &req)
	if err != nil {
		return common.SendClientError(c, err.Error())
	}
	return c.JSON(http.StatusCreated, property)
}

func (h *PropertyHandlers) GetProperty(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	property, err := h.propertySvc.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return common.SendNotFoundError(c, "Property")
		}
		return common.SendServerError(c, "Failed to load property")
	}
	return c.JSON(http.StatusOK, property)
}

func (h *PropertyHandlers) UpdateProperty(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	var property models.Property
	if err := c.Bind(&property); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	property.ID = id

	if err := h.propertySvc.Update(c.Request().Context(), &property); err != nil {
		return common.SendClientError(c, err.Error())
	}
	return c.JSON(http.StatusOK, property)
}

type unitStatusRequest struct {
	UnitName string `json:"unit_name"`
	Status   string `json:"status"`
}

func (h *PropertyHandlers) UpdateUnitStatus(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	var req unitStatusRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	if err := h.propertySvc.SetUnitStatus(c.Request().Context(), id, req.UnitName, req.Status); err != nil {
		return common.SendClientError(c, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *PropertyHandlers) DeleteProperty(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	if err := h.propertySvc.Delete(c.Request().Context(), id); err != nil {
		return common.SendClientError(c, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *PropertyHandlers) ListProperties(c echo.Context) error {
	limit, offset := paginationFromQuery(c)

	properties, err := h.propertySvc.List(c.Request().Context(), limit, offset)
	if err != nil {
		return common.SendServerError(c, "Failed to list properties")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"properties": properties,
		"limit":      limit,
		"offset":     offset,
	})
}

// ListPropertyTenants returns the active tenants of one property.
func (h *PropertyHandlers) ListPropertyTenants(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	tenants, err := h.tenantSvc.ListByProperty(c.Request().Context(), id)
	if err != nil {
		return common.SendServerError(c, "Failed to list property tenants")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"tenants": tenants})
}
