package ws

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"
)

// MessageType defines the type of WebSocket message
type MessageType string

// Host dashboard message types
const (
	MsgProfileCompleted MessageType = "profile_completed"
)

// Message is the WebSocket envelope format
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Hub fans dashboard events out to every connected host
type Hub struct {
	hostConns map[*Connection]struct{}

	mu        sync.RWMutex
	closeOnce sync.Once
	logger    *zap.Logger

	// Channels for coordination
	register   chan *Connection
	unregister chan *Connection
	broadcast  chan *Message
	done       chan struct{}
}

// Connection represents a host WebSocket connection
type Connection struct {
	HostID string
	Send   chan []byte
	Hub    *Hub
}

// NewHub creates a new WebSocket hub and starts its loop
func NewHub(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &Hub{
		hostConns:  make(map[*Connection]struct{}),
		logger:     logger,
		register:   make(chan *Connection),
		unregister: make(chan *Connection),
		broadcast:  make(chan *Message, 256),
		done:       make(chan struct{}),
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case <-h.done:
			h.mu.Lock()
			for conn := range h.hostConns {
				delete(h.hostConns, conn)
				close(conn.Send)
			}
			h.mu.Unlock()
			return

		case conn := <-h.register:
			h.mu.Lock()
			h.hostConns[conn] = struct{}{}
			h.mu.Unlock()
			h.logger.Info("host connected to dashboard", zap.String("hostId", conn.HostID))

		case conn := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.hostConns[conn]; ok {
				delete(h.hostConns, conn)
				close(conn.Send)
				h.logger.Info("host disconnected from dashboard", zap.String("hostId", conn.HostID))
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			data, err := json.Marshal(msg)
			if err != nil {
				h.logger.Error("failed to encode dashboard message", zap.Error(err))
				continue
			}
			h.mu.RLock()
			for conn := range h.hostConns {
				select {
				case conn.Send <- data:
				default:
					// Drop message if buffer full
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Register adds a connection
func (h *Hub) Register(conn *Connection) {
	select {
	case h.register <- conn:
	case <-h.done:
		close(conn.Send)
	}
}

// Unregister removes a connection
func (h *Hub) Unregister(conn *Connection) {
	select {
	case h.unregister <- conn:
	case <-h.done:
	}
}

// Count returns the number of connected hosts
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.hostConns)
}

// Close disconnects every host and stops the hub loop
func (h *Hub) Close() {
	h.closeOnce.Do(func() { close(h.done) })
}

// BroadcastToHosts sends a message to every connected host (implements service.Broadcaster)
func (h *Hub) BroadcastToHosts(msgType string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error("failed to encode dashboard payload", zap.String("type", msgType), zap.Error(err))
		return
	}
	msg := &Message{
		Type:    MessageType(msgType),
		Payload: data,
	}
	select {
	case h.broadcast <- msg:
	case <-h.done:
	default:
		h.logger.Warn("dashboard broadcast queue full, dropping message", zap.String("type", msgType))
	}
}
