package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"nyumbani/internal/common"
	"nyumbani/internal/services"
)

type ProfileHandlers struct {
	profileSvc services.ProfileService
}

func NewProfileHandlers(profileSvc services.ProfileService) *ProfileHandlers {
	return &ProfileHandlers{profileSvc: profileSvc}
}

func (h *ProfileHandlers) CreateProfile(c echo.Context) error {
	var req services.CreateProfileRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	profile, err := h.profileSvc.Create(c.Request().Context(), &req)
	if err != nil {
		return common.SendClientError(c, err.Error())
	}
	return c.JSON(http.StatusCreated, profile)
}

func (h *ProfileHandlers) GetProfile(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	profile, err := h.profileSvc.GetByID(c.Request().Context(), id)
	if err != nil {
		return common.SendNotFoundError(c, "Profile")
	}
	return c.JSON(http.StatusOK, profile)
}

type updateRoleRequest struct {
	Role string `json:"role"`
}

func (h *ProfileHandlers) UpdateRole(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	var req updateRoleRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	if err := h.profileSvc.UpdateRole(c.Request().Context(), id, req.Role); err != nil {
		return common.SendClientError(c, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *ProfileHandlers) ListProfiles(c echo.Context) error {
	limit, offset := paginationFromQuery(c)
	profiles, err := h.profileSvc.List(c.Request().Context(), limit, offset)
	if err != nil {
		return common.SendServerError(c, "Failed to list profiles")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"profiles": profiles,
		"limit":    limit,
		"offset":   offset,
	})
}
