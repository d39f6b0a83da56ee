package router

import (
	"github.com/labstack/echo/v4"

	"souqmanaqil/internal/adapter/api/handler"
	"souqmanaqil/internal/adapter/api/middleware"
	"souqmanaqil/internal/infrastructure/ratelimit"
)

func Setup(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, limiter *ratelimit.RateLimiter, wsHandler *handler.WebSocketHandler) {
	SetupAuthRouter(e, authMiddleware, limiter)
	SetupUserRouter(e, authMiddleware)
	SetupProductRouter(e, authMiddleware, limiter)
	SetupTraderRouter(e, authMiddleware)
	SetupAdminRouter(e, authMiddleware)
	SetupWalletRouter(e, authMiddleware)
	SetupFileRouter(e, authMiddleware, limiter)
	SetupWebSocketRouter(e, authMiddleware, wsHandler)
	SetupHealthRouter(e)
}
