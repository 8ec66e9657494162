// Package storage - reconstructor.go
// Rebuilds session state from the event log. This is the core of
// Event Sourcing: state = f(events).
package storage

import (
	"context"
	"fmt"
)

// Reconstructor rebuilds a session's profile and inventory from the
// event ledger. Used for:
// 1. Session resume when the profile snapshot is missing or stale
// 2. The end-of-round recap screen
// 3. Auditing and debugging
type Reconstructor struct {
	eventRepo EventRepository
}

// NewReconstructor creates a new state reconstructor.
func NewReconstructor(eventRepo EventRepository) *Reconstructor {
	return &Reconstructor{eventRepo: eventRepo}
}

// RecapEvent is a simplified event for the session recap screen.
type RecapEvent struct {
	Timestamp string `json:"timestamp"`
	EventType string `json:"event_type"`
	Summary   string `json:"summary"` // Human-readable description
	Impact    string `json:"impact"`  // "POSITIVE", "NEGATIVE", "NEUTRAL"
	Round     int    `json:"round"`
}

// RebuildProfile reconstructs the profile snapshot from events,
// starting from the given initial state. Inventory counts are replayed
// alongside the scalar fields.
func (r *Reconstructor) RebuildProfile(ctx context.Context, sessionID string, initial ProfileSnapshot) (*ProfileSnapshot, error) {
	events, err := r.eventRepo.GetBySessionID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session events: %w", err)
	}

	state := initial
	state.SessionID = sessionID
	if state.Inventory == nil {
		state.Inventory = make(map[string]int)
	}

	for _, e := range events {
		r.applyEventToState(&state, e)
	}

	return &state, nil
}

// GenerateRecap creates the recap feed for a session since a round.
func (r *Reconstructor) GenerateRecap(ctx context.Context, sessionID string, sinceRound int) ([]RecapEvent, error) {
	allEvents, err := r.eventRepo.GetBySessionID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	var recap []RecapEvent
	for _, e := range allEvents {
		if e.Round < sinceRound {
			continue
		}
		summary := r.summarizeEvent(e)
		if summary == "" {
			continue
		}
		recap = append(recap, RecapEvent{
			Timestamp: e.Timestamp.Format("15:04:05"),
			EventType: e.EventType,
			Summary:   summary,
			Impact:    r.determineImpact(e),
			Round:     e.Round,
		})
	}

	return recap, nil
}

// applyEventToState modifies state based on event type.
func (r *Reconstructor) applyEventToState(state *ProfileSnapshot, event GameEvent) {
	switch event.EventType {
	case "GOLD_CHANGED":
		if gold, ok := payloadInt(event.Payload, "gold"); ok {
			state.Gold = gold
		}
	case "WATER_CONSUMED", "WATER_REFILLED":
		if water, ok := payloadInt(event.Payload, "water"); ok {
			state.Water = water
		}
	case "LEVEL_UP":
		if level, ok := payloadInt(event.Payload, "level"); ok {
			state.Level = level
		}
	case "ROUND_STARTED":
		if event.Round > state.Round {
			state.Round = event.Round
		}
	case "ITEM_PURCHASED":
		qty, ok := payloadInt(event.Payload, "quantity")
		if !ok {
			qty = 1
		}
		state.Inventory[event.ItemID] += qty
	case "ITEM_PLACED":
		if state.Inventory[event.ItemID] > 0 {
			state.Inventory[event.ItemID]--
		}
	case "DISH_JUDGED":
		if gold, ok := payloadInt(event.Payload, "gold"); ok {
			state.Gold += gold
		}
		if xp, ok := payloadInt(event.Payload, "xp"); ok {
			state.XP += xp
		}
	}

	if state.Water < 0 {
		state.Water = 0
	}
	if state.Water > 100 {
		state.Water = 100
	}
}

// summarizeEvent creates a human-readable summary. Returns empty for
// event types the recap screen does not show.
func (r *Reconstructor) summarizeEvent(event GameEvent) string {
	switch event.EventType {
	case "ROUND_STARTED":
		return "Нові критики зайняли свої місця."
	case "ITEM_PURCHASED":
		return "Куплено інгредієнт: " + event.ItemID
	case "CUSTOM_ITEM_MINTED":
		return "Створено власний інгредієнт."
	case "MINIGAME_RESOLVED":
		if success, ok := event.Payload["success"].(bool); ok && !success {
			return "Обробка провалилась. Щось підгоріло..."
		}
		return "Обробка вдалася."
	case "DISH_JUDGED":
		return "Критики винесли вердикт."
	case "LEVEL_UP":
		return "Новий рівень кухаря!"
	case "WATER_REFILLED":
		return "Бак з водою наповнено."
	default:
		return ""
	}
}

// determineImpact classifies the event impact.
func (r *Reconstructor) determineImpact(event GameEvent) string {
	switch event.EventType {
	case "LEVEL_UP", "WATER_REFILLED":
		return "POSITIVE"
	case "MINIGAME_RESOLVED":
		if success, ok := event.Payload["success"].(bool); ok && !success {
			return "NEGATIVE"
		}
		return "POSITIVE"
	case "DISH_JUDGED":
		if score, ok := event.Payload["score"].(float64); ok && score < 3.0 {
			return "NEGATIVE"
		}
		return "NEUTRAL"
	case "ACTION_REJECTED":
		return "NEGATIVE"
	default:
		return "NEUTRAL"
	}
}

func payloadInt(payload map[string]interface{}, key string) (int, bool) {
	v, ok := payload[key]
	if !ok {
		return 0, false
	}
	f, ok := v.(float64)
	if !ok {
		return 0, false
	}
	return int(f), true
}
