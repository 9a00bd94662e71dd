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

type LandlordHandlers struct {
	landlordSvc services.LandlordService
	propertySvc services.PropertyService
}

func NewLandlordHandlers(landlordSvc services.LandlordService, propertySvc services.PropertyService) *LandlordHandlers {
	return &LandlordHandlers{landlordSvc: landlordSvc, propertySvc: propertySvc}
}

func (h *LandlordHandlers) CreateLandlord(c echo.Context) error {
	var req services.CreateLandlordRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	landlord, err := h.landlordSvc.Create(c.Request().Context(), &req)
	if err != nil {
		return common.SendClientError(c, err.Error())
	}
	return c.JSON(http.StatusCreated, landlord)
}

func (h *LandlordHandlers) GetLandlord(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	landlord, err := h.landlordSvc.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return common.SendNotFoundError(c, "Landlord")
		}
		return common.SendServerError(c, "Failed to load landlord")
	}
	return c.JSON(http.StatusOK, landlord)
}

func (h *LandlordHandlers) UpdateLandlord(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	var landlord models.Landlord
	if err := c.Bind(&landlord); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	landlord.ID = id

	if err := h.landlordSvc.Update(c.Request().Context(), &landlord); err != nil {
		return common.SendClientError(c, err.Error())
	}
	return c.JSON(http.StatusOK, landlord)
}

func (h *LandlordHandlers) DeleteLandlord(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	if err := h.landlordSvc.Delete(c.Request().Context(), id); err != nil {
		return common.SendClientError(c, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *LandlordHandlers) ListLandlords(c echo.Context) error {
	limit, offset := paginationFromQuery(c)

	landlords, err := h.landlordSvc.List(c.Request().Context(), limit, offset)
	if err != nil {
		return common.SendServerError(c, "Failed to list landlords")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"landlords": landlords,
		"limit":     limit,
		"offset":    offset,
	})
}

// ListLandlordProperties returns the properties a landlord owns.
func (h *LandlordHandlers) ListLandlordProperties(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	properties, err := h.propertySvc.ListByLandlord(c.Request().Context(), id)
	if err != nil {
		return common.SendServerError(c, "Failed to list landlord properties")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"properties": properties})
}
