package dev

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// MessageType represents the type of a rebuild notification.
type MessageType string

const (
	MessageRebuilt MessageType = "rebuilt"
	MessageError   MessageType = "error"
)

// Message is sent to WebSocket clients after each rebuild.
type Message struct {
	Type   MessageType `json:"type"`
	Routes int         `json:"routes,omitempty"`
	Error  string      `json:"error,omitempty"`
}

// Notifier receives the outcome of each rebuild.
type Notifier interface {
	NotifyRebuilt(routes int)
	NotifyError(err error)
}

// ReloadServer manages WebSocket connections that follow rebuilds.
type ReloadServer struct {
	clients  map[*websocket.Conn]bool
	mu       sync.RWMutex
	upgrader websocket.Upgrader
}

// NewReloadServer creates a new reload server.
func NewReloadServer() *ReloadServer {
	return &ReloadServer{
		clients: make(map[*websocket.Conn]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true // local tooling, any dev server origin
			},
		},
	}
}

// HandleWebSocket upgrades the connection and keeps it registered until
// the client disconnects.
func (r *ReloadServer) HandleWebSocket(w http.ResponseWriter, req *http.Request) {
	conn, err := r.upgrader.Upgrade(w, req, nil)
	if err != nil {
		return
	}

	r.mu.Lock()
	r.clients[conn] = true
	r.mu.Unlock()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	r.mu.Lock()
	delete(r.clients, conn)
	r.mu.Unlock()
	conn.Close()
}

// NotifyRebuilt tells all clients that a rebuild completed.
func (r *ReloadServer) NotifyRebuilt(routes int) {
	r.broadcast(Message{Type: MessageRebuilt, Routes: routes})
}

// NotifyError tells all clients that a rebuild failed.
func (r *ReloadServer) NotifyError(err error) {
	r.broadcast(Message{Type: MessageError, Error: err.Error()})
}

// broadcast sends a message to all connected clients, dropping the ones
// that fail.
func (r *ReloadServer) broadcast(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}

	r.mu.RLock()
	clients := make([]*websocket.Conn, 0, len(r.clients))
	for client := range r.clients {
		clients = append(clients, client)
	}
	r.mu.RUnlock()

	for _, client := range clients {
		if err := client.WriteMessage(websocket.TextMessage, data); err != nil {
			r.mu.Lock()
			delete(r.clients, client)
			r.mu.Unlock()
			client.Close()
		}
	}
}

// ClientCount returns the number of connected clients.
func (r *ReloadServer) ClientCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.clients)
}

// Close closes all client connections.
func (r *ReloadServer) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for client := range r.clients {
		client.Close()
		delete(r.clients, client)
	}
}
