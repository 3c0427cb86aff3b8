// Package activity keeps a bounded in-memory feed of recent store mutations
// for the admin dashboard. Events are not persisted; the snapshot storage
// holds exactly the four collection keys.
package activity

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"

	ws "github.com/vetlife/vetlife-be/internal/websocket"
)

// Event describes one recorded action.
type Event struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Level     string    `json:"level"`
	Message   string    `json:"message"`
	Actor     string    `json:"actor,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Log is a fixed-capacity ring of events, newest first on read.
type Log struct {
	mu       sync.RWMutex
	events   []Event
	capacity int
	hub      *ws.Hub
}

// NewLog creates a log holding at most capacity events. The hub may be nil
// in tests; live events are then simply not broadcast.
func NewLog(capacity int, hub *ws.Hub) *Log {
	return &Log{capacity: capacity, hub: hub}
}

// Record appends an event, evicting the oldest when full, and broadcasts it
// to connected dashboards.
func (l *Log) Record(eventType, level, message, actor string) {
	event := Event{
		ID:        uuid.New().String(),
		Type:      eventType,
		Level:     level,
		Message:   message,
		Actor:     actor,
		CreatedAt: time.Now(),
	}

	l.mu.Lock()
	l.events = append(l.events, event)
	if len(l.events) > l.capacity {
		l.events = l.events[len(l.events)-l.capacity:]
	}
	l.mu.Unlock()

	if l.hub != nil {
		data, _ := json.Marshal(ws.Message{Action: "event", Payload: event})
		l.hub.Broadcast <- data
	}
}

// Recent returns up to limit events, newest first.
func (l *Log) Recent(limit int) []Event {
	l.mu.RLock()
	defer l.mu.RUnlock()

	n := len(l.events)
	if limit <= 0 || limit > n {
		limit = n
	}

	out := make([]Event, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		out = append(out, l.events[i])
	}
	return out
}
