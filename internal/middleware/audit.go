package middleware

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"nyumbani/internal/common"
	"nyumbani/internal/services"
)

// AuditMiddleware writes an activity-log entry for every mutating request.
type AuditMiddleware struct {
	activitySvc services.ActivityLogService
}

func NewAuditMiddleware(activitySvc services.ActivityLogService) *AuditMiddleware {
	return &AuditMiddleware{activitySvc: activitySvc}
}

// Audit records mutations against the given entity type. Reads pass
// through untouched.
func (m *AuditMiddleware) Audit(entityType string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)

			method := c.Request().Method
			if method == http.MethodGet || method == http.MethodHead || method == http.MethodOptions {
				return err
			}

			ctx := c.Request().Context()
			var userPtr *uuid.UUID
			if userID, ok := common.GetUserIDFromContext(ctx); ok {
				userPtr = &userID
			}

			var entityID *string
			if id := c.Param("id"); id != "" {
				entityID = &id
			}

			action := fmt.Sprintf("%s %s", method, c.Path())
			var detail *string
			if err != nil {
				msg := err.Error()
				detail = &msg
			}

			m.activitySvc.Record(ctx, userPtr, action, entityType, entityID, detail)
			return err
		}
	}
}
