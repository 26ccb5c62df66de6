package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/kennar-hris/kennar-backend-go/internal/pkg/metrics"
	"github.com/kennar-hris/kennar-backend-go/internal/pkg/realtime"
)

const (
	kioskWriteWait  = 10 * time.Second
	kioskPongWait   = 60 * time.Second
	kioskPingPeriod = (kioskPongWait * 9) / 10
	kioskReadLimit  = 512
)

type KioskHandler interface {
	// Connect upgrades to a websocket and streams hub events to the kiosk
	Connect(w http.ResponseWriter, r *http.Request)
}

type kioskHandlerImpl struct {
	hub      *realtime.Hub
	upgrader websocket.Upgrader
}

func NewKioskHandler(hub *realtime.Hub, allowedOrigins []string) KioskHandler {
	return &kioskHandlerImpl{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
	}
}

func originChecker(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, o := range allowed {
			if o == "*" || o == origin {
				return true
			}
		}
		return false
	}
}

// Connect handles GET /ws/kiosk?kiosk_id=...
func (h *kioskHandlerImpl) Connect(w http.ResponseWriter, r *http.Request) {
	kioskID := r.URL.Query().Get("kiosk_id")
	if kioskID == "" {
		kioskID = uuid.NewString()
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied to the client
		slog.Warn("Kiosk websocket upgrade failed", "kiosk_id", kioskID, "error", err)
		return
	}
	defer conn.Close()

	events, unsubscribe := h.hub.Subscribe(kioskID)
	metrics.KioskConnected()
	slog.Info("Kiosk connected", "kiosk_id", kioskID)

	defer func() {
		metrics.KioskDisconnected()
		h.hub.Broadcast(realtime.Event{Event: realtime.EventKioskDisconnected, KioskID: kioskID})
		slog.Info("Kiosk disconnected", "kiosk_id", kioskID)
	}()
	defer unsubscribe()

	h.hub.Send(kioskID, realtime.Event{
		Event:   realtime.EventKioskWelcome,
		KioskID: kioskID,
		Data: realtime.Welcome{
			Sessions: h.hub.SubscriberCount(kioskID),
			Online:   h.hub.TotalSubscribers(),
		},
	})
	h.hub.Broadcast(realtime.Event{Event: realtime.EventKioskConnected, KioskID: kioskID})

	// Reader only drains control frames and notices the close
	done := make(chan struct{})
	go func() {
		defer close(done)
		conn.SetReadLimit(kioskReadLimit)
		conn.SetReadDeadline(time.Now().Add(kioskPongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(kioskPongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(kioskPingPeriod)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			conn.SetWriteDeadline(time.Now().Add(kioskWriteWait))
			if err := conn.WriteJSON(event); err != nil {
				slog.Warn("Failed to write kiosk event", "kiosk_id", kioskID, "error", err)
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(kioskWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			return
		case <-r.Context().Done():
			return
		}
	}
}
