package routes

import (
	"time"

	"gatekeeper/api/handler"
	"gatekeeper/api/middleware"
	"gatekeeper/internal/entity"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

type Router struct {
	Echo           *echo.Echo
	Auth           *handler.AuthHandler
	App            *handler.AppHandler
	Admin          *handler.AdminHandler
	AuthMiddleware middleware.AuthMiddleware
	AuthRate       *middleware.RateLimiter
	LoginRate      *middleware.RateLimiter
}

func NewRouter(
	e *echo.Echo,
	authHandler *handler.AuthHandler,
	appHandler *handler.AppHandler,
	adminHandler *handler.AdminHandler,
	authMiddleware middleware.AuthMiddleware,
) *Router {
	return &Router{
		Echo:           e,
		Auth:           authHandler,
		App:            appHandler,
		Admin:          adminHandler,
		AuthMiddleware: authMiddleware,
		AuthRate:       middleware.NewRateLimiter(middleware.RateLimiterConfig{Rate: rate.Limit(5), Burst: 10, IdleTTL: 5 * time.Minute}),
		LoginRate:      middleware.NewRateLimiter(middleware.RateLimiterConfig{Rate: rate.Limit(2), Burst: 4, IdleTTL: 10 * time.Minute}),
	}
}

func (r *Router) RegisterRoutes() {
	e := r.Echo

	e.POST("/auth/register", r.Auth.Register, r.AuthRate.Middleware())
	e.POST("/auth/verify-code", r.Auth.VerifyCode, r.AuthRate.Middleware())
	e.POST("/auth/resend-code", r.Auth.ResendCode, r.LoginRate.Middleware())
	e.POST("/auth/login", r.Auth.Login, r.LoginRate.Middleware())
	e.POST("/auth/refresh", r.Auth.Refresh, r.AuthRate.Middleware())
	e.POST("/auth/logout", r.Auth.Logout, r.AuthMiddleware.RequireAuth)
	e.POST("/auth/logout-all", r.Auth.LogoutAll, r.AuthMiddleware.RequireAuth)

	e.GET("/me", r.Auth.Me, r.AuthMiddleware.RequireAuth)
	e.GET("/app/state", r.App.State, r.AuthMiddleware.RequireAuth)
	e.GET("/app/messages", r.App.ListMessages, r.AuthMiddleware.RequireAuth)
	e.GET("/app/messages/stream", r.App.StreamMessages, r.AuthMiddleware.RequireAuth)

	admin := e.Group("/admin", r.AuthMiddleware.RequireAuth, middleware.RequireRole(entity.RoleAdmin))
	admin.GET("/users", r.Admin.ListUsers)
	admin.POST("/users/:id/status", r.Admin.SetUserStatus)
	admin.GET("/settings", r.Admin.GetSettings)
	admin.PUT("/settings", r.Admin.UpdateSettings)
	admin.POST("/maintenance/toggle", r.Admin.ToggleMaintenance)
	admin.POST("/broadcast", r.Admin.Broadcast)
}
