package middleware

import (
	"gatekeeper/internal/entity"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// Keys under which RequireAuth stores the caller's identity on the request.
// Handlers go through the typed accessors below, never through c.Get.
const (
	ctxUserIDKey    = "gk_user_id"
	ctxRoleKey      = "gk_role"
	ctxSessionIDKey = "gk_session_id"
)

func SetAuthContext(c echo.Context, userID uuid.UUID, role entity.Role, sessionID uuid.UUID) {
	c.Set(ctxUserIDKey, userID)
	c.Set(ctxRoleKey, role)
	c.Set(ctxSessionIDKey, sessionID)
}

func UserIDFromContext(c echo.Context) (uuid.UUID, bool) {
	userID, ok := c.Get(ctxUserIDKey).(uuid.UUID)
	return userID, ok
}

func RoleFromContext(c echo.Context) (entity.Role, bool) {
	role, ok := c.Get(ctxRoleKey).(entity.Role)
	return role, ok
}

func SessionIDFromContext(c echo.Context) (uuid.UUID, bool) {
	sessionID, ok := c.Get(ctxSessionIDKey).(uuid.UUID)
	return sessionID, ok
}
