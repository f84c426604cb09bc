package web

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/airlens/airmon/internal/core/ports"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Same-origin dashboards only; reverse proxies strip Origin.
		return r.Header.Get("Origin") == ""
	},
}

// LiveMessage is the envelope pushed to connected dashboards.
type LiveMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// LiveHub broadcasts completed cycle snapshots to websocket clients.
// It implements ports.CycleListener.
type LiveHub struct {
	logger *zap.Logger

	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
}

// NewLiveHub creates an empty hub.
func NewLiveHub(logger *zap.Logger) *LiveHub {
	return &LiveHub{
		logger: logger,
		conns:  make(map[*websocket.Conn]struct{}),
	}
}

// HandleWebSocket upgrades the connection and registers it for cycle
// broadcasts.
func (h *LiveHub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	h.mu.Lock()
	h.conns[conn] = struct{}{}
	h.mu.Unlock()
	h.logger.Debug("websocket connected", zap.String("remote", conn.RemoteAddr().String()))

	// Drain reads until the peer goes away, then unregister.
	go func() {
		defer func() {
			conn.Close()
			h.mu.Lock()
			delete(h.conns, conn)
			h.mu.Unlock()
			h.logger.Debug("websocket disconnected", zap.String("remote", conn.RemoteAddr().String()))
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// CycleCompleted pushes the cycle's venue summary and offline APs to
// every connected client. Dead connections are dropped.
func (h *LiveHub) CycleCompleted(snap ports.CycleSnapshot) {
	msg := LiveMessage{
		Type: "cycle",
		Payload: map[string]interface{}{
			"cycleId":     snap.CycleID,
			"collectedAt": snap.CollectedAt,
			"venue":       snap.Venue,
			"offlineAPs":  snap.OfflineAPs,
		},
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.conns {
		if err := conn.WriteJSON(msg); err != nil {
			conn.Close()
			delete(h.conns, conn)
		}
	}
}
