package handler

import (
	"context"
	"net/http"

	gorillaws "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"souqmanaqil/internal/domain/entity"
	ws "souqmanaqil/internal/infrastructure/websocket"
	"souqmanaqil/internal/usecase"
	"souqmanaqil/pkg/errors"
	"souqmanaqil/pkg/logger"
	"souqmanaqil/pkg/response"
)

var upgrader = gorillaws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WebSocketHandler serves live streams: each connection runs one
// subscription and receives a snapshot on every change.
type WebSocketHandler struct {
	wsManager      *ws.Manager
	catalogUseCase *usecase.CatalogUseCase
	traderUseCase  *usecase.TraderUseCase
	adminUseCase   *usecase.AdminUseCase
}

func NewWebSocketHandler(
	wsManager *ws.Manager,
	catalogUseCase *usecase.CatalogUseCase,
	traderUseCase *usecase.TraderUseCase,
	adminUseCase *usecase.AdminUseCase,
) *WebSocketHandler {
	return &WebSocketHandler{
		wsManager:      wsManager,
		catalogUseCase: catalogUseCase,
		traderUseCase:  traderUseCase,
		adminUseCase:   adminUseCase,
	}
}

type subscription func(ctx context.Context, push func(interface{})) error

func (h *WebSocketHandler) ProductStream(c echo.Context) error {
	q, err := productQuery(c)
	if err != nil {
		return response.Error(c, err)
	}

	return h.serve(c, "products", func(ctx context.Context, push func(interface{})) error {
		return h.catalogUseCase.WatchProducts(ctx, q, func(products []*entity.Product) {
			push(products)
		})
	})
}

func (h *WebSocketHandler) TraderStream(c echo.Context) error {
	caller := identity(c)
	return h.serve(c, "trader", func(ctx context.Context, push func(interface{})) error {
		return h.traderUseCase.Watch(ctx, caller, func(d *usecase.Dashboard) {
			push(d)
		})
	})
}

func (h *WebSocketHandler) AdminStream(c echo.Context) error {
	view := usecase.AdminView(c.Param("view"))
	if !view.Valid() {
		return response.Error(c, errors.BadRequest("Unknown view", nil))
	}
	q, err := AdminQueryFrom(c)
	if err != nil {
		return response.Error(c, err)
	}

	caller := identity(c)
	return h.serve(c, "admin/"+string(view), func(ctx context.Context, push func(interface{})) error {
		return h.adminUseCase.Watch(ctx, caller, view, q, func(s *usecase.AdminSnapshot) {
			push(s)
		})
	})
}

func (h *WebSocketHandler) serve(c echo.Context, stream string, subscribe subscription) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// The upgrader has already answered the request.
		logger.Warn("Stream %s upgrade failed: %v", stream, err)
		return nil
	}

	client := ws.NewClient(identity(c).UserID, stream, conn)
	if !h.wsManager.Add(client) {
		conn.Close()
		return nil
	}

	go client.WritePump()
	go func() {
		err := subscribe(client.Context(), func(v interface{}) {
			h.wsManager.SendSnapshot(client, v)
		})
		if err != nil {
			code := errors.CodeInternal
			message := "Stream failed"
			if appErr, ok := errors.As(err); ok {
				code, message = appErr.Code, appErr.Message
			}
			logger.Error("Stream %s for %s ended: %v", stream, client.ID, err)
			h.wsManager.SendError(client, code, message)
		}
		// The queued error frame is flushed before the close frame.
		h.wsManager.Remove(client)
	}()
	go client.ReadPump(h.wsManager)

	return nil
}
