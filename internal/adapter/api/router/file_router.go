package router

import (
	"github.com/labstack/echo/v4"

	"souqmanaqil/internal/adapter/api/handler"
	"souqmanaqil/internal/adapter/api/middleware"
	"souqmanaqil/internal/infrastructure/ratelimit"
)

func SetupFileRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, limiter *ratelimit.RateLimiter) {
	fileHandler := handler.GetFileHandler()

	media := e.Group("/v1/media")
	media.Use(authMiddleware.Authenticate)
	media.POST("", fileHandler.UploadFile, middleware.RateLimit(limiter, ratelimit.ActionUpload))
}
