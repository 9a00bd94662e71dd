package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"nyumbani/internal/common"
	"nyumbani/internal/repositories"
	"nyumbani/internal/services"
)

type PaymentHandlers struct {
	paymentSvc services.PaymentService
}

func NewPaymentHandlers(paymentSvc services.PaymentService) *PaymentHandlers {
	return &PaymentHandlers{paymentSvc: paymentSvc}
}

func (h *PaymentHandlers) RecordPayment(c echo.Context) error {
	var req services.RecordPaymentRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	payment, err := h.paymentSvc.Record(c.Request().Context(), &req)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return common.SendNotFoundError(c, "Tenant")
		}
		return common.SendClientError(c, err.Error())
	}
	return c.JSON(http.StatusCreated, payment)
}

func (h *PaymentHandlers) GetPayment(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	payment, err := h.paymentSvc.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return common.SendNotFoundError(c, "Payment")
		}
		return common.SendServerError(c, "Failed to load payment")
	}
	return c.JSON(http.StatusOK, payment)
}

// GetPaymentBreakdown returns the management-fee split for one payment.
func (h *PaymentHandlers) GetPaymentBreakdown(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	breakdown, err := h.paymentSvc.Breakdown(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return common.SendNotFoundError(c, "Payment")
		}
		return common.SendClientError(c, err.Error())
	}
	return c.JSON(http.StatusOK, breakdown)
}

func (h *PaymentHandlers) ListPayments(c echo.Context) error {
	ctx := c.Request().Context()

	if tenantParam := c.QueryParam("tenant_id"); tenantParam != "" {
		tenantID, err := common.ValidateUUID(tenantParam, "tenant_id")
		if err != nil {
			return common.SendValidationError(c, "tenant_id", err.Error())
		}
		payments, err := h.paymentSvc.ListByTenant(ctx, tenantID)
		if err != nil {
			return common.SendServerError(c, "Failed to list payments")
		}
		return c.JSON(http.StatusOK, map[string]interface{}{"payments": payments})
	}

	limit, offset := paginationFromQuery(c)
	payments, err := h.paymentSvc.ListAll(ctx, limit, offset)
	if err != nil {
		return common.SendServerError(c, "Failed to list payments")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"payments": payments,
		"limit":    limit,
		"offset":   offset,
	})
}
