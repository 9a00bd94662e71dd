package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"nyumbani/internal/common"
	"nyumbani/internal/insights"
)

type InsightsHandlers struct {
	client insights.Client
}

func NewInsightsHandlers(client insights.Client) *InsightsHandlers {
	return &InsightsHandlers{client: client}
}

type draftNoticeRequest struct {
	TenantName string `json:"tenant_name"`
	Subject    string `json:"subject"`
}

// DraftNotice generates a tenant notice draft for staff to review.
func (h *InsightsHandlers) DraftNotice(c echo.Context) error {
	var req draftNoticeRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if req.TenantName == "" || req.Subject == "" {
		return common.SendClientError(c, "tenant_name and subject are required")
	}

	text, err := h.client.DraftNotice(c.Request().Context(), req.TenantName, req.Subject)
	if err != nil {
		return common.SendServerError(c, "Failed to generate notice draft")
	}
	return c.JSON(http.StatusOK, map[string]string{"text": text})
}

type generateRequest struct {
	Prompt string `json:"prompt"`
}

func (h *InsightsHandlers) Generate(c echo.Context) error {
	var req generateRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if req.Prompt == "" {
		return common.SendValidationError(c, "prompt", "prompt is required")
	}

	text, err := h.client.GenerateText(c.Request().Context(), req.Prompt)
	if err != nil {
		return common.SendServerError(c, "Failed to generate text")
	}
	return c.JSON(http.StatusOK, map[string]string{"text": text})
}
