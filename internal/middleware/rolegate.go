package middleware

import (
	"github.com/labstack/echo/v4"

	"nyumbani/internal/accessctrl"
	"nyumbani/internal/common"
	"nyumbani/internal/models"
)

// RequireRoles allows the request through only when the session role is
// one of the listed roles.
func RequireRoles(roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := common.GetRoleFromContext(c.Request().Context())
			if !ok {
				return common.SendUnauthorizedError(c)
			}
			if !allowed[role] {
				return common.SendForbiddenError(c)
			}
			return next(c)
		}
	}
}

// RequireSurface gates a route group with the access-control decision
// table: the tenant surface admits only tenant sessions, the admin
// surface admits staff and homeowners. Where the client would redirect,
// the API answers 403.
func RequireSurface(route accessctrl.RouteClass) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := common.GetRoleFromContext(c.Request().Context())
			if !ok {
				return common.SendUnauthorizedError(c)
			}

			state := accessctrl.State{
				Phase:   accessctrl.PhaseAuthenticated,
				Profile: &models.UserProfile{Role: role},
			}
			if accessctrl.Decide(state, route).Kind != accessctrl.ActionAllow {
				return common.SendForbiddenError(c)
			}
			return next(c)
		}
	}
}
