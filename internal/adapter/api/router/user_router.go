package router

import (
	"github.com/labstack/echo/v4"

	"souqmanaqil/internal/adapter/api/handler"
	"souqmanaqil/internal/adapter/api/middleware"
)

func SetupUserRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	userHandler := handler.GetUserHandler()
	diagnosisHandler := handler.GetDiagnosisHandler()

	e.GET("/v1/users/:id", userHandler.GetUser)

	me := e.Group("/v1/users/me")
	me.Use(authMiddleware.Authenticate)
	me.GET("", userHandler.GetMe)
	me.PATCH("", userHandler.UpdateMe)

	diagnoses := e.Group("/v1/diagnoses")
	diagnoses.Use(authMiddleware.Authenticate)
	diagnoses.GET("", diagnosisHandler.Mine)
	diagnoses.POST("", diagnosisHandler.Submit)
}
