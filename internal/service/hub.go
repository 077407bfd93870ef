package service

import (
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/isabel-dlai/process-viewer/internal/models"
)

const writeTimeout = 10 * time.Second

// Hub fans snapshots out to the connected dashboard sockets. All writes go
// through the hub so a broadcast never interleaves with a per-connection
// send on the same socket.
type Hub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]bool
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[*websocket.Conn]bool),
	}
}

// Register adds a connection to the broadcast set.
func (h *Hub) Register(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[conn] = true
}

// Unregister removes a connection and closes it.
func (h *Hub) Unregister(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[conn] {
		delete(h.clients, conn)
		conn.Close()
	}
}

// Publish sends a snapshot to every connected client. Clients that fail the
// write are dropped.
func (h *Hub) Publish(snap models.Snapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := conn.WriteJSON(snap); err != nil {
			log.Printf("dropping websocket client: %v", err)
			delete(h.clients, conn)
			conn.Close()
		}
	}
}

// Send delivers a snapshot to a single connection, serialized against
// concurrent broadcasts.
func (h *Hub) Send(conn *websocket.Conn, snap models.Snapshot) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return conn.WriteJSON(snap)
}

// ClientCount reports the number of connected dashboards.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}
