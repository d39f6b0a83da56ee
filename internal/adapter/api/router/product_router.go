package router

import (
	"github.com/labstack/echo/v4"

	"souqmanaqil/internal/adapter/api/handler"
	"souqmanaqil/internal/adapter/api/middleware"
	"souqmanaqil/internal/infrastructure/ratelimit"
)

func SetupProductRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, limiter *ratelimit.RateLimiter) {
	productHandler := handler.GetProductHandler()
	storyHandler := handler.GetStoryHandler()
	general := middleware.RateLimit(limiter, ratelimit.ActionGeneral)

	products := e.Group("/v1/products")
	products.Use(authMiddleware.Optional)
	products.GET("", productHandler.ListProducts)
	products.GET("/:id", productHandler.GetProduct)
	products.POST("/:id/like", productHandler.Like, general)

	e.GET("/v1/ticker", productHandler.Ticker)
	e.GET("/v1/stories", storyHandler.ListStories)

	auth := authMiddleware.Authenticate
	e.POST("/v1/products", productHandler.CreateProduct, auth, middleware.TraderOnly)
	e.POST("/v1/products/:id/reviews", productHandler.AddReview, auth, general)
	e.POST("/v1/stories", storyHandler.CreateStory, auth, middleware.TraderOnly)
	e.DELETE("/v1/stories/:id", storyHandler.DeleteStory, auth)
}
