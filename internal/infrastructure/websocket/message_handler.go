package websocket

import (
	"encoding/json"
	"time"

	"souqmanaqil/pkg/logger"
)

const (
	MessageTypePing     = "ping"
	MessageTypePong     = "pong"
	MessageTypeSnapshot = "snapshot"
	MessageTypeError    = "error"
)

type WSMessage struct {
	Type      string      `json:"type"`
	Stream    string      `json:"stream,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp string      `json:"timestamp"`
}

type ErrorData struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

// HandleClientMessage answers the few messages a stream client may send.
// Streams are read-only; everything else is rejected.
func (m *Manager) HandleClientMessage(client *Client, messageBytes []byte) {
	var msg WSMessage
	if err := json.Unmarshal(messageBytes, &msg); err != nil {
		m.SendError(client, "", "Invalid message format")
		return
	}

	switch msg.Type {
	case MessageTypePing:
		m.send(client, WSMessage{Type: MessageTypePong})
	default:
		m.SendError(client, "", "Unsupported message type: "+msg.Type)
	}
}

// SendSnapshot pushes the latest state of the client's stream.
func (m *Manager) SendSnapshot(client *Client, data interface{}) bool {
	return m.send(client, WSMessage{
		Type:   MessageTypeSnapshot,
		Stream: client.Stream,
		Data:   data,
	})
}

func (m *Manager) SendError(client *Client, code, message string) bool {
	return m.send(client, WSMessage{
		Type:   MessageTypeError,
		Stream: client.Stream,
		Data:   ErrorData{Code: code, Message: message},
	})
}

func (m *Manager) send(client *Client, msg WSMessage) bool {
	msg.Timestamp = time.Now().UTC().Format(time.RFC3339)
	payload, err := json.Marshal(msg)
	if err != nil {
		logger.Error("Failed to encode %s message for %s: %v", msg.Type, client.ID, err)
		return false
	}
	return m.Push(client, payload)
}
