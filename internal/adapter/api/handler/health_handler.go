package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	ws "souqmanaqil/internal/infrastructure/websocket"
)

type HealthHandler struct {
	wsManager *ws.Manager
	driver    string
}

var healthHandler *HealthHandler

func NewHealthHandler(wsManager *ws.Manager, driver string) *HealthHandler {
	return &HealthHandler{
		wsManager: wsManager,
		driver:    driver,
	}
}

func SetupHealthHandler(wsManager *ws.Manager, driver string) {
	healthHandler = NewHealthHandler(wsManager, driver)
}

func GetHealthHandler() *HealthHandler {
	return healthHandler
}

func (h *HealthHandler) CheckHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"datastore": h.driver,
		"streams":   h.wsManager.Count(),
		"time":      time.Now().Format(time.RFC3339),
	})
}
