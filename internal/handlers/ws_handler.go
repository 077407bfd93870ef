package handlers

import (
	"log"
	"net/http"

	"github.com/isabel-dlai/process-viewer/internal/service"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The dashboard is a local dev tool, so cross-origin upgrades are fine.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type WSHandler struct {
	hub     *service.Hub
	monitor *service.Monitor
}

func NewWSHandler(hub *service.Hub, monitor *service.Monitor) *WSHandler {
	return &WSHandler{hub: hub, monitor: monitor}
}

// ServeWS upgrades the connection, sends the current snapshot immediately so
// the client never waits a full poll interval for its first paint, then keeps
// the connection registered for broadcasts until the client goes away.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	// The snapshot goes out before the connection joins the broadcast set,
	// so a broadcast can never reach the client ahead of its first frame.
	if snap, ok := h.monitor.Snapshot(); ok {
		if err := h.hub.Send(conn, snap); err != nil {
			conn.Close()
			return
		}
	}

	h.hub.Register(conn)
	go h.readLoop(conn)
}

// readLoop drains client messages. Any inbound message is treated as a
// refresh request and answered with the latest snapshot.
func (h *WSHandler) readLoop(conn *websocket.Conn) {
	defer h.hub.Unregister(conn)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
		if snap, ok := h.monitor.Snapshot(); ok {
			if err := h.hub.Send(conn, snap); err != nil {
				return
			}
		}
	}
}
