package websocket

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"souqmanaqil/pkg/logger"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBuffer     = 32
)

// Client is one live stream connection. Its subscription runs until the
// connection closes or the manager shuts down.
type Client struct {
	ID     string
	UserID string
	Stream string
	Conn   *websocket.Conn
	Send   chan []byte

	ctx    context.Context
	cancel context.CancelFunc
}

func NewClient(userID, stream string, conn *websocket.Conn) *Client {
	ctx, cancel := context.WithCancel(context.Background())
	return &Client{
		ID:     uuid.New().String(),
		UserID: userID,
		Stream: stream,
		Conn:   conn,
		Send:   make(chan []byte, sendBuffer),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Context is cancelled once the client is unregistered.
func (c *Client) Context() context.Context {
	return c.ctx
}

// Manager tracks live stream connections.
type Manager struct {
	clients    map[string]*Client
	Register   chan *Client
	Unregister chan *Client
	done       chan struct{}
	closed     bool
	mutex      sync.RWMutex
}

func NewManager() *Manager {
	return &Manager{
		clients:    make(map[string]*Client),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Start runs the manager's main loop in a goroutine. When ctx ends every
// client is dropped.
func (m *Manager) Start(ctx context.Context) {
	go func() {
		defer close(m.done)
		for {
			select {
			case client := <-m.Register:
				if !m.insert(client) {
					client.cancel()
				}

			case client := <-m.Unregister:
				m.drop(client)
				logger.Debug("Stream client unregistered: %s", client.ID)

			case <-ctx.Done():
				m.mutex.Lock()
				m.closed = true
				clients := make([]*Client, 0, len(m.clients))
				for _, c := range m.clients {
					clients = append(clients, c)
				}
				m.mutex.Unlock()
				for _, c := range clients {
					m.drop(c)
				}
				return
			}
		}
	}()
}

func (m *Manager) drop(client *Client) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, ok := m.clients[client.ID]; ok {
		delete(m.clients, client.ID)
		client.cancel()
		close(client.Send)
	}
}

// Add registers client unless the manager has shut down. The client can
// be pushed to as soon as Add returns.
func (m *Manager) Add(client *Client) bool {
	return m.insert(client)
}

func (m *Manager) insert(client *Client) bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.closed {
		return false
	}
	m.clients[client.ID] = client
	logger.Debug("Stream client registered: %s (%s, %s)", client.ID, client.UserID, client.Stream)
	return true
}

// Remove disconnects client. It never blocks past the manager's shutdown.
func (m *Manager) Remove(client *Client) {
	select {
	case m.Unregister <- client:
	case <-m.done:
	}
}

// Push queues a message for the client. A client that cannot keep up is
// disconnected; it reports false when the message was not queued.
func (m *Manager) Push(client *Client, message []byte) bool {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	if _, ok := m.clients[client.ID]; !ok {
		return false
	}
	select {
	case client.Send <- message:
		return true
	default:
		logger.Warn("Stream client %s is too slow, disconnecting", client.ID)
		go m.Remove(client)
		return false
	}
}

func (m *Manager) Count() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.clients)
}

// ReadPump reads control messages from the connection until it closes.
func (c *Client) ReadPump(m *Manager) {
	defer func() {
		m.Remove(c)
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		return c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Warn("Stream client %s read error: %v", c.ID, err)
			}
			return
		}
		m.HandleClientMessage(c, message)
	}
}

// WritePump sends queued messages and keeps the connection alive with pings.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				logger.Warn("Stream client %s write error: %v", c.ID, err)
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
