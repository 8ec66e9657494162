// Package events provides the append-only event log for the kitchen.
// Every meaningful state transition in a session leaves a record here.
package events

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// EventType defines the category of a game event.
type EventType string

const (
	EventTypeRoundStarted     EventType = "ROUND_STARTED"
	EventTypeItemPurchased    EventType = "ITEM_PURCHASED"
	EventTypeCustomItemMinted EventType = "CUSTOM_ITEM_MINTED"
	EventTypeItemPlaced       EventType = "ITEM_PLACED"
	EventTypeItemDiscarded    EventType = "ITEM_DISCARDED"
	EventTypeToolApplied      EventType = "TOOL_APPLIED"
	EventTypeMinigameResolved EventType = "MINIGAME_RESOLVED"
	EventTypeItemPlated       EventType = "ITEM_PLATED"
	EventTypePlateCleared     EventType = "PLATE_CLEARED"
	EventTypeDishSubmitted    EventType = "DISH_SUBMITTED"
	EventTypeDishJudged       EventType = "DISH_JUDGED"
	EventTypeWaterConsumed    EventType = "WATER_CONSUMED"
	EventTypeWaterRefilled    EventType = "WATER_REFILLED"
	EventTypeGoldChanged      EventType = "GOLD_CHANGED"
	EventTypeLevelUp          EventType = "LEVEL_UP"
	EventTypeActionRejected   EventType = "ACTION_REJECTED"
)

// GameEvent represents an immutable record of an action in the game.
type GameEvent struct {
	ID        string      `json:"id"`
	Timestamp time.Time   `json:"timestamp"`
	Type      EventType   `json:"type"`
	SessionID string      `json:"session_id"`
	ItemID    string      `json:"item_id,omitempty"` // Affected item, if any
	Payload   interface{} `json:"payload"`           // Event-specific data
	Round     int         `json:"round"`
}

// EventPersister defines how an event is durably stored.
type EventPersister interface {
	Append(event GameEvent) error
}

// EventLog is the in-memory append-only log of game events.
// Durable write-through goes to SQLite via the persister.
type EventLog struct {
	mu        sync.RWMutex
	events    []GameEvent
	persister EventPersister
}

// NewEventLog creates a new event log with an optional persister.
func NewEventLog(persister EventPersister) *EventLog {
	return &EventLog{
		events:    make([]GameEvent, 0),
		persister: persister,
	}
}

// Append adds a new event to the log. Events are immutable once appended.
func (el *EventLog) Append(event GameEvent) {
	el.mu.Lock()
	defer el.mu.Unlock()
	el.events = append(el.events, event)

	if el.persister != nil {
		go func(e GameEvent) {
			_ = el.persister.Append(e)
		}(event)
	}
}

// GetBySession returns all events for a specific session.
func (el *EventLog) GetBySession(sessionID string) []GameEvent {
	el.mu.RLock()
	defer el.mu.RUnlock()

	var result []GameEvent
	for _, e := range el.events {
		if e.SessionID == sessionID {
			result = append(result, e)
		}
	}
	return result
}

// GetByType returns all events of a specific type.
func (el *EventLog) GetByType(t EventType) []GameEvent {
	el.mu.RLock()
	defer el.mu.RUnlock()

	var result []GameEvent
	for _, e := range el.events {
		if e.Type == t {
			result = append(result, e)
		}
	}
	return result
}

// Replay returns the full history of events.
func (el *EventLog) Replay() []GameEvent {
	el.mu.RLock()
	defer el.mu.RUnlock()
	return el.events
}

// GenerateEventID creates a unique event identifier.
func GenerateEventID() string {
	return uuid.NewString()
}
