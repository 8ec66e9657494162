package engine

import (
	"fmt"
	"time"

	"github.com/okovalenko/AlchemistChef/server/internal/domain/item"
	"github.com/okovalenko/AlchemistChef/server/internal/events"
	"github.com/okovalenko/AlchemistChef/server/internal/platform/logger"
)

// InventoryCreditPayload records items entering the ledger.
type InventoryCreditPayload struct {
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
	Reason   string `json:"reason"`
}

// InventoryDebitPayload records a unit leaving the ledger.
type InventoryDebitPayload struct {
	ItemID string `json:"item_id"`
	Reason string `json:"reason"`
}

// InventorySystem is the per-session ledger of owned item counts.
// Counts never go negative.
type InventorySystem struct {
	counts    map[string]int
	registry  *RegistrySystem
	eventLog  *events.EventLog
	logger    *logger.Logger
	sessionID string
}

func NewInventorySystem(registry *RegistrySystem, el *events.EventLog, log *logger.Logger, sessionID string) *InventorySystem {
	return &InventorySystem{
		counts:    make(map[string]int),
		registry:  registry,
		eventLog:  el,
		logger:    log,
		sessionID: sessionID,
	}
}

// Credit increases the count for an item. Custom items are registered
// before crediting so resolution never fails for an owned id.
func (is *InventorySystem) Credit(it item.Item, qty int, reason string) {
	if qty <= 0 {
		return
	}
	if it.IsCustom {
		is.registry.RegisterCustom(it, is.sessionID)
	}
	is.counts[it.ID] += qty

	is.eventLog.Append(events.GameEvent{
		ID:        events.GenerateEventID(),
		Timestamp: time.Now(),
		Type:      events.EventTypeItemPurchased,
		SessionID: is.sessionID,
		ItemID:    it.ID,
		Payload:   InventoryCreditPayload{ItemID: it.ID, Quantity: qty, Reason: reason},
	})
	is.logger.Info(fmt.Sprintf("[INVENTORY] Credit: %d x %s (%s)", qty, it.ID, reason))
}

// Debit removes one unit, floored at zero. Returns false when the item
// was not available; callers should check Count first, this is the last
// line of defence.
func (is *InventorySystem) Debit(id string, reason string) bool {
	if is.counts[id] <= 0 {
		is.logger.Warn("[INVENTORY] Debit refused, no stock: " + id)
		return false
	}
	is.counts[id]--

	is.eventLog.Append(events.GameEvent{
		ID:        events.GenerateEventID(),
		Timestamp: time.Now(),
		Type:      events.EventTypeItemPlaced,
		SessionID: is.sessionID,
		ItemID:    id,
		Payload:   InventoryDebitPayload{ItemID: id, Reason: reason},
	})
	return true
}

// Count returns the owned quantity for an item id.
func (is *InventorySystem) Count(id string) int {
	return is.counts[id]
}

// Snapshot returns a copy of all non-zero counts.
func (is *InventorySystem) Snapshot() map[string]int {
	out := make(map[string]int, len(is.counts))
	for id, n := range is.counts {
		if n > 0 {
			out[id] = n
		}
	}
	return out
}

// Restore overwrites the ledger from a persisted snapshot.
func (is *InventorySystem) Restore(counts map[string]int) {
	is.counts = make(map[string]int, len(counts))
	for id, n := range counts {
		if n > 0 {
			is.counts[id] = n
		}
	}
}
