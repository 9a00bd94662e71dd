package handlers

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"nyumbani/internal/common"
	"nyumbani/internal/repositories"
	"nyumbani/internal/services"
)

// PortalHandlers serve the tenant self-service surface. Every read and
// write here is scoped to the tenant linked to the session profile;
// tenant identifiers supplied by the client are never honored.
type PortalHandlers struct {
	profileSvc     services.ProfileService
	paymentSvc     services.PaymentService
	maintenanceSvc services.MaintenanceService
	documentSvc    services.DocumentService
}

func NewPortalHandlers(profileSvc services.ProfileService, paymentSvc services.PaymentService,
	maintenanceSvc services.MaintenanceService, documentSvc services.DocumentService) *PortalHandlers {
	return &PortalHandlers{
		profileSvc:     profileSvc,
		paymentSvc:     paymentSvc,
		maintenanceSvc: maintenanceSvc,
		documentSvc:    documentSvc,
	}
}

// sessionTenantID resolves the tenant the session belongs to. Staff
// profiles and profiles without a tenant link have no portal scope. When
// ok is false the response has already been written.
func (h *PortalHandlers) sessionTenantID(c echo.Context) (uuid.UUID, bool, error) {
	ctx := c.Request().Context()

	userID, found := common.GetUserIDFromContext(ctx)
	if !found {
		return uuid.Nil, false, common.SendUnauthorizedError(c)
	}

	profile, err := h.profileSvc.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return uuid.Nil, false, common.SendForbiddenError(c)
		}
		return uuid.Nil, false, common.SendServerError(c, "Failed to resolve profile")
	}
	if profile.IsStaff() || profile.TenantID == nil {
		return uuid.Nil, false, common.SendForbiddenError(c)
	}
	return *profile.TenantID, true, nil
}

func (h *PortalHandlers) ListMyPayments(c echo.Context) error {
	tenantID, ok, err := h.sessionTenantID(c)
	if !ok {
		return err
	}

	payments, err := h.paymentSvc.ListByTenant(c.Request().Context(), tenantID)
	if err != nil {
		return common.SendServerError(c, "Failed to list payments")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"payments": payments})
}

func (h *PortalHandlers) ListMyMaintenance(c echo.Context) error {
	tenantID, ok, err := h.sessionTenantID(c)
	if !ok {
		return err
	}

	requests, err := h.maintenanceSvc.ListByTenant(c.Request().Context(), tenantID)
	if err != nil {
		return common.SendServerError(c, "Failed to list maintenance requests")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"requests": requests})
}

// portalMaintenanceRequest deliberately has no tenant field: the request
// is always opened against the session's own tenant.
type portalMaintenanceRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (h *PortalHandlers) CreateMaintenanceRequest(c echo.Context) error {
	tenantID, ok, err := h.sessionTenantID(c)
	if !ok {
		return err
	}

	var req portalMaintenanceRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	mr, err := h.maintenanceSvc.Create(c.Request().Context(), &services.CreateMaintenanceRequest{
		TenantID:    tenantID,
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return common.SendNotFoundError(c, "Tenant")
		}
		return common.SendClientError(c, err.Error())
	}
	return c.JSON(http.StatusCreated, mr)
}

func (h *PortalHandlers) ListMyDocuments(c echo.Context) error {
	tenantID, ok, err := h.sessionTenantID(c)
	if !ok {
		return err
	}

	docs, err := h.documentSvc.ListByTenant(c.Request().Context(), tenantID)
	if err != nil {
		return common.SendServerError(c, "Failed to list documents")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"documents": docs})
}
