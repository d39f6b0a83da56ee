package router

import (
	"github.com/labstack/echo/v4"

	"souqmanaqil/internal/adapter/api/handler"
	"souqmanaqil/internal/adapter/api/middleware"
)

func SetupTraderRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	traderHandler := handler.GetTraderHandler()

	trader := e.Group("/v1/trader")
	trader.Use(authMiddleware.Authenticate)
	trader.Use(middleware.TraderOnly)

	trader.GET("/dashboard", traderHandler.Dashboard)
	trader.PATCH("/store", traderHandler.UpdateStore)

	trader.PATCH("/products/:id/stock", traderHandler.AdjustStock)
	trader.POST("/products/:id/visibility", traderHandler.ToggleVisibility)
	trader.POST("/products/:id/reviews/:reviewId/reply", traderHandler.ReplyToReview)

	trader.POST("/staff", traderHandler.AddStaff)
	trader.DELETE("/staff/:staffId", traderHandler.RemoveStaff)
}
