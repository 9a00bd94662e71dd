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

type DocumentHandlers struct {
	documentSvc services.DocumentService
}

func NewDocumentHandlers(documentSvc services.DocumentService) *DocumentHandlers {
	return &DocumentHandlers{documentSvc: documentSvc}
}

// UploadDocument accepts a multipart file plus optional tenant/property
// associations.
func (h *DocumentHandlers) UploadDocument(c echo.Context) error {
	ctx := c.Request().Context()

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return common.SendValidationError(c, "file", "file is required")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return common.SendServerError(c, "Failed to read uploaded file")
	}
	defer file.Close()

	req := &services.UploadDocumentRequest{
		Name:        fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Size:        fileHeader.Size,
		Reader:      file,
	}

	if v := c.FormValue("tenant_id"); v != "" {
		tenantID, err := common.ValidateUUID(v, "tenant_id")
		if err != nil {
			return common.SendValidationError(c, "tenant_id", err.Error())
		}
		req.TenantID = &tenantID
	}
	if v := c.FormValue("property_id"); v != "" {
		propertyID, err := common.ValidateUUID(v, "property_id")
		if err != nil {
			return common.SendValidationError(c, "property_id", err.Error())
		}
		req.PropertyID = &propertyID
	}
	if userID, ok := common.GetUserIDFromContext(ctx); ok {
		uid := userID
		req.UploadedBy = &uid
	}

	doc, err := h.documentSvc.Upload(ctx, req)
	if err != nil {
		return common.SendServerError(c, "Failed to store document")
	}
	return c.JSON(http.StatusCreated, doc)
}

// GetDownloadURL hands back a short-lived presigned URL instead of
// proxying the bytes.
func (h *DocumentHandlers) GetDownloadURL(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	url, err := h.documentSvc.DownloadURL(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return common.SendNotFoundError(c, "Document")
		}
		return common.SendServerError(c, "Failed to create download URL")
	}
	return c.JSON(http.StatusOK, map[string]string{"url": url})
}

func (h *DocumentHandlers) DeleteDocument(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	if err := h.documentSvc.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return common.SendNotFoundError(c, "Document")
		}
		return common.SendServerError(c, "Failed to delete document")
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *DocumentHandlers) ListDocuments(c echo.Context) error {
	ctx := c.Request().Context()

	if tenantParam := c.QueryParam("tenant_id"); tenantParam != "" {
		tenantID, err := uuid.Parse(tenantParam)
		if err != nil {
			return common.SendValidationError(c, "tenant_id", "tenant_id is not a valid UUID")
		}
		docs, err := h.documentSvc.ListByTenant(ctx, tenantID)
		if err != nil {
			return common.SendServerError(c, "Failed to list documents")
		}
		return c.JSON(http.StatusOK, map[string]interface{}{"documents": docs})
	}

	limit, offset := paginationFromQuery(c)
	docs, err := h.documentSvc.List(ctx, limit, offset)
	if err != nil {
		return common.SendServerError(c, "Failed to list documents")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"documents": docs,
		"limit":     limit,
		"offset":    offset,
	})
}
