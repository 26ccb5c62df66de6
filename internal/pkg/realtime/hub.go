package realtime

import (
	"sync"
	"time"
)

// Event names broadcast on the kiosk channel
const (
	EventKioskWelcome      = "kiosk.welcome"
	EventKioskConnected    = "kiosk.connected"
	EventKioskDisconnected = "kiosk.disconnected"
)

// Welcome is the payload sent only to a kiosk that just connected
type Welcome struct {
	// Sessions counts open sockets sharing this kiosk_id, including this one
	Sessions int `json:"sessions"`
	// Online counts every open kiosk socket
	Online int `json:"online"`
}

// Event is a message fanned out to every connected client
type Event struct {
	Event   string      `json:"event"`
	KioskID string      `json:"kiosk_id,omitempty"`
	At      time.Time   `json:"at"`
	Data    interface{} `json:"data,omitempty"`
}

// Hub manages connected clients and event broadcasting
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan Event]struct{}
}

// NewHub creates a new Hub instance
func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[string]map[chan Event]struct{}),
	}
}

// Subscribe registers a client and returns its event channel and cleanup function
func (h *Hub) Subscribe(clientID string) (chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Event, 16)

	if h.subscribers[clientID] == nil {
		h.subscribers[clientID] = make(map[chan Event]struct{})
	}
	h.subscribers[clientID][ch] = struct{}{}

	var once sync.Once
	cleanup := func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			delete(h.subscribers[clientID], ch)
			close(ch)
			if len(h.subscribers[clientID]) == 0 {
				delete(h.subscribers, clientID)
			}
		})
	}

	return ch, cleanup
}

// Send delivers an event to the subscribers of one client
func (h *Hub) Send(clientID string, event Event) {
	if event.At.IsZero() {
		event.At = time.Now().UTC()
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for ch := range h.subscribers[clientID] {
		select {
		case ch <- event:
		default:
			// Skip if channel is full (non-blocking to prevent deadlock)
		}
	}
}

// Broadcast sends an event to every subscriber
func (h *Hub) Broadcast(event Event) {
	if event.At.IsZero() {
		event.At = time.Now().UTC()
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, subs := range h.subscribers {
		for ch := range subs {
			select {
			case ch <- event:
			default:
			}
		}
	}
}

// SubscriberCount returns the number of active subscribers for a client
func (h *Hub) SubscriberCount(clientID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.subscribers[clientID])
}

// TotalSubscribers returns the total number of active subscribers
func (h *Hub) TotalSubscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	total := 0
	for _, subs := range h.subscribers {
		total += len(subs)
	}
	return total
}
