// Package storage provides the persistence layer for the kitchen server.
// This package implements the repository pattern to keep the domain pure.
package storage

import (
	"context"
	"time"
)

// GameEvent mirrors the domain event structure for persistence.
// The domain package should NOT import this; use interfaces instead.
type GameEvent struct {
	ID        string                 `json:"id" db:"id"`
	SessionID string                 `json:"session_id" db:"session_id"`
	Timestamp time.Time              `json:"timestamp" db:"timestamp"`
	EventType string                 `json:"event_type" db:"event_type"`
	ItemID    string                 `json:"item_id" db:"item_id"`
	Payload   map[string]interface{} `json:"payload" db:"payload"`
	Round     int                    `json:"round" db:"round"`
}

// EventRepository defines the interface for event persistence.
type EventRepository interface {
	// Append adds a new event to the immutable ledger.
	Append(ctx context.Context, event GameEvent) error

	// GetBySessionID retrieves all events for a session (for replay).
	GetBySessionID(ctx context.Context, sessionID string) ([]GameEvent, error)

	// GetByEventType retrieves all events of a specific type.
	GetByEventType(ctx context.Context, sessionID string, eventType string) ([]GameEvent, error)

	// GetByRound retrieves all events from one round.
	GetByRound(ctx context.Context, sessionID string, round int) ([]GameEvent, error)
}

// ProfileSnapshot is the persisted player state for quick session resume.
// The inventory rides along as JSON; it is small and always read whole.
type ProfileSnapshot struct {
	SessionID   string         `json:"session_id" db:"session_id"`
	Name        string         `json:"name" db:"name"`
	Gold        int            `json:"gold" db:"gold"`
	XP          int            `json:"xp" db:"xp"`
	Level       int            `json:"level" db:"level"`
	Water       int            `json:"water" db:"water"`
	Round       int            `json:"round" db:"round"`
	Inventory   map[string]int `json:"inventory" db:"inventory"`
	LastUpdated time.Time      `json:"last_updated" db:"last_updated"`
}

// ProfileRepository defines the interface for profile snapshots.
type ProfileRepository interface {
	// Upsert updates or inserts the session's profile snapshot.
	Upsert(ctx context.Context, snapshot ProfileSnapshot) error

	// GetBySessionID retrieves a session's snapshot, nil when absent.
	GetBySessionID(ctx context.Context, sessionID string) (*ProfileSnapshot, error)
}

// CustomItemRecord is a persisted player-invented ingredient. Custom
// items outlive the in-memory registry so resumed sessions resolve them.
type CustomItemRecord struct {
	ItemID      string    `json:"item_id" db:"item_id"`
	SessionID   string    `json:"session_id" db:"session_id"`
	Name        string    `json:"name" db:"name"`
	Emoji       string    `json:"emoji" db:"emoji"`
	Category    string    `json:"category" db:"category"`
	Price       int       `json:"price" db:"price"`
	Tier        int       `json:"tier" db:"tier"`
	LastUpdated time.Time `json:"last_updated" db:"last_updated"`
}

// CustomItemRepository defines the interface for custom ingredients.
type CustomItemRepository interface {
	// Upsert stores a minted custom ingredient.
	Upsert(ctx context.Context, record CustomItemRecord) error

	// GetBySessionID retrieves all custom ingredients for a session.
	GetBySessionID(ctx context.Context, sessionID string) ([]CustomItemRecord, error)
}
