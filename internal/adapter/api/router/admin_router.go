package router

import (
	"github.com/labstack/echo/v4"

	"souqmanaqil/internal/adapter/api/handler"
	"souqmanaqil/internal/adapter/api/middleware"
)

func SetupAdminRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	adminHandler := handler.GetAdminHandler()

	admin := e.Group("/v1/admin")
	admin.Use(authMiddleware.Authenticate)
	admin.Use(middleware.AdminOnly)

	admin.GET("/overview", adminHandler.Overview)

	admin.GET("/users", adminHandler.ListUsers)
	admin.PATCH("/users/:id/role", adminHandler.SetRole)

	admin.GET("/products", adminHandler.ListProducts)
	admin.POST("/products/:id/promote", adminHandler.TogglePromoted)
	admin.POST("/products/:id/active", adminHandler.ToggleActive)

	admin.GET("/transactions", adminHandler.ListTransactions)
	admin.GET("/diagnoses", adminHandler.ListDiagnoses)

	// Deletions are two-step: open a dialog, then confirm or cancel it.
	admin.POST("/deletions", adminHandler.RequestDelete)
	admin.GET("/deletions/current", adminHandler.PendingDelete)
	admin.POST("/deletions/:dialogId/confirm", adminHandler.ConfirmDelete)
	admin.DELETE("/deletions/:dialogId", adminHandler.CancelDelete)
	admin.DELETE("/deletions", adminHandler.CancelDelete)
}
