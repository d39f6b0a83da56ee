package router

import (
	"github.com/labstack/echo/v4"

	"souqmanaqil/internal/adapter/api/handler"
	"souqmanaqil/internal/adapter/api/middleware"
	"souqmanaqil/internal/infrastructure/ratelimit"
)

func SetupAuthRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, limiter *ratelimit.RateLimiter) {
	authHandler := handler.GetAuthHandler()

	public := e.Group("/v1/auth")
	public.POST("/toggle", authHandler.Toggle)
	public.POST("/guest", authHandler.Guest)
	public.POST("/submit", authHandler.Submit, middleware.RateLimit(limiter, ratelimit.ActionAuth))

	protected := e.Group("/v1/auth")
	protected.Use(authMiddleware.Authenticate)
	protected.POST("/logout", authHandler.Logout)
	protected.POST("/realtime-token", authHandler.RealtimeToken)
}
