package engine

import (
	"sync"
	"time"

	"github.com/okovalenko/AlchemistChef/server/internal/domain/item"
	"github.com/okovalenko/AlchemistChef/server/internal/events"
	"github.com/okovalenko/AlchemistChef/server/internal/platform/logger"
)

// RegistrySystem is the single source of truth for resolving an item id
// to its definition. Seeded from the static catalog at session start, it
// grows monotonically with player-authored and derived items and never
// shrinks. The static catalog remains a read-only fallback.
type RegistrySystem struct {
	mu       sync.RWMutex
	items    map[string]item.Item
	eventLog *events.EventLog
	logger   *logger.Logger
}

func NewRegistrySystem(el *events.EventLog, log *logger.Logger) *RegistrySystem {
	rs := &RegistrySystem{
		items:    make(map[string]item.Item),
		eventLog: el,
		logger:   log,
	}
	for _, it := range item.CatalogItems() {
		rs.items[it.ID] = it
	}
	return rs
}

// Resolve returns the definition for an item id, checking the registry
// first and the static catalog as a fallback.
func (rs *RegistrySystem) Resolve(id string) (item.Item, bool) {
	rs.mu.RLock()
	it, ok := rs.items[id]
	rs.mu.RUnlock()
	if ok {
		return it, true
	}
	return item.Lookup(id)
}

// RegisterCustom inserts a player-authored item. Idempotent: ids already
// present are left untouched. Non-custom items are rejected.
func (rs *RegistrySystem) RegisterCustom(it item.Item, sessionID string) bool {
	if !it.IsCustom {
		return false
	}
	rs.mu.Lock()
	if _, exists := rs.items[it.ID]; exists {
		rs.mu.Unlock()
		return false
	}
	rs.items[it.ID] = it
	rs.mu.Unlock()

	rs.eventLog.Append(events.GameEvent{
		ID:        events.GenerateEventID(),
		Timestamp: time.Now(),
		Type:      events.EventTypeCustomItemMinted,
		SessionID: sessionID,
		ItemID:    it.ID,
		Payload:   it,
	})
	rs.logger.Info("[REGISTRY] Custom item registered: " + it.ID + " (" + it.Name + ")")
	return true
}

// RecordDerived inserts a synthesized processed item so that every id
// that ever reaches the workstation or plate resolves here. Idempotent.
func (rs *RegistrySystem) RecordDerived(it item.Item) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	if _, exists := rs.items[it.ID]; !exists {
		rs.items[it.ID] = it
	}
}

// Snapshot returns a copy of all registered items.
func (rs *RegistrySystem) Snapshot() map[string]item.Item {
	rs.mu.RLock()
	defer rs.mu.RUnlock()
	out := make(map[string]item.Item, len(rs.items))
	for id, it := range rs.items {
		out[id] = it
	}
	return out
}
