package router

import (
	"github.com/labstack/echo/v4"

	"souqmanaqil/internal/adapter/api/handler"
	"souqmanaqil/internal/adapter/api/middleware"
)

func SetupWebSocketRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, wsHandler *handler.WebSocketHandler) {
	streams := e.Group("/v1/streams")

	streams.GET("/products", wsHandler.ProductStream, authMiddleware.Optional)
	streams.GET("/trader", wsHandler.TraderStream, authMiddleware.Authenticate, middleware.TraderOnly)
	streams.GET("/admin/:view", wsHandler.AdminStream, authMiddleware.Authenticate, middleware.AdminOnly)
}
