package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"nyumbani/internal/common"
	"nyumbani/internal/repositories"
	"nyumbani/internal/services"
)

type ExportHandlers struct {
	exportSvc services.ExportService
}

func NewExportHandlers(exportSvc services.ExportService) *ExportHandlers {
	return &ExportHandlers{exportSvc: exportSvc}
}

// periodFromQuery parses from/to query dates, defaulting to the current
// calendar month.
func periodFromQuery(c echo.Context) (time.Time, time.Time, error) {
	now := time.Now()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	to := from.AddDate(0, 1, 0)

	if v := c.QueryParam("from"); v != "" {
		if err := common.ValidateDateFormat(v, "from"); err != nil {
			return time.Time{}, time.Time{}, err
		}
		from, _ = time.Parse("2006-01-02", v)
	}
	if v := c.QueryParam("to"); v != "" {
		if err := common.ValidateDateFormat(v, "to"); err != nil {
			return time.Time{}, time.Time{}, err
		}
		to, _ = time.Parse("2006-01-02", v)
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, fmt.Errorf("to must not be before from")
	}
	return from, to, nil
}

// GetPaymentReceipt streams the PDF receipt for one payment.
func (h *ExportHandlers) GetPaymentReceipt(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	pdf, err := h.exportSvc.PaymentReceipt(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return common.SendNotFoundError(c, "Payment")
		}
		return common.SendServerError(c, "Failed to render receipt")
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="receipt-%s.pdf"`, id))
	return c.Blob(http.StatusOK, "application/pdf", pdf)
}

// GetLandlordStatement streams the landlord's PDF statement for a period.
func (h *ExportHandlers) GetLandlordStatement(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}
	from, to, err := periodFromQuery(c)
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	pdf, err := h.exportSvc.LandlordStatement(c.Request().Context(), id, from, to)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return common.SendNotFoundError(c, "Landlord")
		}
		return common.SendServerError(c, "Failed to render statement")
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="statement-%s.pdf"`, id))
	return c.Blob(http.StatusOK, "application/pdf", pdf)
}

// GetPaymentLedger streams the XLSX payment ledger for a period.
func (h *ExportHandlers) GetPaymentLedger(c echo.Context) error {
	from, to, err := periodFromQuery(c)
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	ledger, err := h.exportSvc.PaymentLedgerXLSX(c.Request().Context(), from, to)
	if err != nil {
		return common.SendServerError(c, "Failed to render payment ledger")
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="payments-%s.xlsx"`, from.Format("2006-01")))
	return c.Blob(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", ledger)
}
