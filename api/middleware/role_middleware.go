package middleware

import (
	"net/http"

	"gatekeeper/internal/entity"

	"github.com/labstack/echo/v4"
)

// RequireRole gates a route on the role resolved at login. Roles are presence
// grants, not a hierarchy, so anything short of an exact match is forbidden.
func RequireRole(role entity.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			current, ok := RoleFromContext(c)
			if !ok || current != role {
				return echo.NewHTTPError(http.StatusForbidden, "forbidden")
			}
			return next(c)
		}
	}
}
