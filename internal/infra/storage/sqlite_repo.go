package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// SQLiteEventRepository implements EventRepository for SQLite.
type SQLiteEventRepository struct {
	db *sql.DB
}

func NewSQLiteEventRepository(db *sql.DB) *SQLiteEventRepository {
	return &SQLiteEventRepository{db: db}
}

func (r *SQLiteEventRepository) Append(ctx context.Context, event GameEvent) error {
	payloadBytes, err := json.Marshal(event.Payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	query := `
		INSERT INTO events (id, session_id, timestamp, event_type, item_id, payload, round)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err = r.db.ExecContext(ctx, query,
		event.ID, event.SessionID, event.Timestamp, event.EventType,
		event.ItemID, string(payloadBytes), event.Round,
	)
	if err != nil {
		return fmt.Errorf("failed to append event: %w", err)
	}
	return nil
}

func (r *SQLiteEventRepository) getMany(ctx context.Context, query string, args ...interface{}) ([]GameEvent, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []GameEvent
	for rows.Next() {
		var e GameEvent
		var payloadStr string
		err := rows.Scan(&e.ID, &e.SessionID, &e.Timestamp, &e.EventType, &e.ItemID, &payloadStr, &e.Round)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(payloadStr), &e.Payload); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *SQLiteEventRepository) GetBySessionID(ctx context.Context, sessionID string) ([]GameEvent, error) {
	query := `SELECT id, session_id, timestamp, event_type, item_id, payload, round FROM events WHERE session_id = ? ORDER BY timestamp ASC`
	return r.getMany(ctx, query, sessionID)
}

func (r *SQLiteEventRepository) GetByEventType(ctx context.Context, sessionID string, eventType string) ([]GameEvent, error) {
	query := `SELECT id, session_id, timestamp, event_type, item_id, payload, round FROM events WHERE session_id = ? AND event_type = ? ORDER BY timestamp ASC`
	return r.getMany(ctx, query, sessionID, eventType)
}

func (r *SQLiteEventRepository) GetByRound(ctx context.Context, sessionID string, round int) ([]GameEvent, error) {
	query := `SELECT id, session_id, timestamp, event_type, item_id, payload, round FROM events WHERE session_id = ? AND round = ? ORDER BY timestamp ASC`
	return r.getMany(ctx, query, sessionID, round)
}

// ---------------------------------------------------------
// SQLiteProfileRepository
// ---------------------------------------------------------

type SQLiteProfileRepository struct {
	db *sql.DB
}

func NewSQLiteProfileRepository(db *sql.DB) *SQLiteProfileRepository {
	return &SQLiteProfileRepository{db: db}
}

func (r *SQLiteProfileRepository) Upsert(ctx context.Context, snapshot ProfileSnapshot) error {
	inventoryBytes, err := json.Marshal(snapshot.Inventory)
	if err != nil {
		return fmt.Errorf("failed to marshal inventory: %w", err)
	}

	query := `
		INSERT INTO profiles (session_id, name, gold, xp, level, water, round, inventory_json, last_updated)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(session_id) DO UPDATE SET
			name=excluded.name,
			gold=excluded.gold,
			xp=excluded.xp,
			level=excluded.level,
			water=excluded.water,
			round=excluded.round,
			inventory_json=excluded.inventory_json,
			last_updated=excluded.last_updated
	`
	_, err = r.db.ExecContext(ctx, query,
		snapshot.SessionID, snapshot.Name, snapshot.Gold, snapshot.XP,
		snapshot.Level, snapshot.Water, snapshot.Round, string(inventoryBytes), time.Now(),
	)
	return err
}

func (r *SQLiteProfileRepository) GetBySessionID(ctx context.Context, sessionID string) (*ProfileSnapshot, error) {
	query := `SELECT session_id, name, gold, xp, level, water, round, inventory_json, last_updated FROM profiles WHERE session_id = ?`
	var p ProfileSnapshot
	var inventoryStr string
	err := r.db.QueryRowContext(ctx, query, sessionID).Scan(
		&p.SessionID, &p.Name, &p.Gold, &p.XP, &p.Level, &p.Water, &p.Round, &inventoryStr, &p.LastUpdated,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	if err := json.Unmarshal([]byte(inventoryStr), &p.Inventory); err != nil {
		return nil, fmt.Errorf("failed to unmarshal inventory: %w", err)
	}
	return &p, nil
}

// ---------------------------------------------------------
// SQLiteCustomItemRepository
// ---------------------------------------------------------

type SQLiteCustomItemRepository struct {
	db *sql.DB
}

func NewSQLiteCustomItemRepository(db *sql.DB) *SQLiteCustomItemRepository {
	return &SQLiteCustomItemRepository{db: db}
}

func (r *SQLiteCustomItemRepository) Upsert(ctx context.Context, record CustomItemRecord) error {
	query := `
		INSERT INTO custom_items (item_id, session_id, name, emoji, category, price, tier, last_updated)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(item_id) DO UPDATE SET
			name=excluded.name,
			emoji=excluded.emoji,
			category=excluded.category,
			price=excluded.price,
			tier=excluded.tier,
			last_updated=excluded.last_updated
	`
	_, err := r.db.ExecContext(ctx, query,
		record.ItemID, record.SessionID, record.Name, record.Emoji,
		record.Category, record.Price, record.Tier, time.Now(),
	)
	return err
}

func (r *SQLiteCustomItemRepository) GetBySessionID(ctx context.Context, sessionID string) ([]CustomItemRecord, error) {
	query := `SELECT item_id, session_id, name, emoji, category, price, tier, last_updated FROM custom_items WHERE session_id = ? ORDER BY last_updated ASC`
	rows, err := r.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []CustomItemRecord
	for rows.Next() {
		var c CustomItemRecord
		if err := rows.Scan(&c.ItemID, &c.SessionID, &c.Name, &c.Emoji, &c.Category, &c.Price, &c.Tier, &c.LastUpdated); err != nil {
			return nil, err
		}
		records = append(records, c)
	}
	return records, rows.Err()
}
