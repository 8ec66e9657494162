// Package network - history.go
// History endpoint - JSON export of the session's event ledger.
//
// This is the cooking log viewer. It lets the frontend replay the
// immutable history of a session: purchases, transformations, verdicts.
package network

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/okovalenko/AlchemistChef/server/internal/events"
	"github.com/okovalenko/AlchemistChef/server/internal/platform/logger"
)

// HistoryHandler provides the session history API.
type HistoryHandler struct {
	eventLog *events.EventLog
	logger   *logger.Logger
}

// NewHistoryHandler creates a new history handler.
func NewHistoryHandler(el *events.EventLog, log *logger.Logger) *HistoryHandler {
	return &HistoryHandler{
		eventLog: el,
		logger:   log,
	}
}

// HistoryEvent is a sanitized event for the frontend viewer.
type HistoryEvent struct {
	ID        string                 `json:"id"`
	Timestamp string                 `json:"timestamp"`
	Round     int                    `json:"round"`
	Type      string                 `json:"type"`
	ItemID    string                 `json:"item_id,omitempty"`
	Summary   string                 `json:"summary"`
	Details   map[string]interface{} `json:"details,omitempty"`
}

// HistoryResponse is the API response for the history endpoint.
type HistoryResponse struct {
	SessionID   string         `json:"session_id"`
	TotalEvents int            `json:"total_events"`
	FilteredBy  string         `json:"filtered_by,omitempty"`
	GeneratedAt string         `json:"generated_at"`
	Events      []HistoryEvent `json:"events"`
}

// HandleHistory returns the event history for a session.
// GET /api/history?session_id=XXX&round=N&type=DISH_JUDGED
func (hh *HistoryHandler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		hh.jsonError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		hh.jsonError(w, "Missing session_id", http.StatusBadRequest)
		return
	}

	roundStr := r.URL.Query().Get("round")
	eventType := r.URL.Query().Get("type")

	allEvents := hh.eventLog.GetBySession(sessionID)

	var historyEvents []HistoryEvent
	filterDesc := ""

	for _, e := range allEvents {
		if roundStr != "" {
			round, _ := strconv.Atoi(roundStr)
			if e.Round != round {
				continue
			}
			filterDesc = "Round " + roundStr
		}
		if eventType != "" && string(e.Type) != eventType {
			continue
		}
		historyEvents = append(historyEvents, hh.convertToHistoryEvent(e))
	}

	response := HistoryResponse{
		SessionID:   sessionID,
		TotalEvents: len(historyEvents),
		FilteredBy:  filterDesc,
		GeneratedAt: time.Now().Format(time.RFC3339),
		Events:      historyEvents,
	}

	hh.logger.Event("HISTORY_EXPORT", sessionID, "Events:"+strconv.Itoa(len(historyEvents)))

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// HandleEventDetail returns details of a specific event.
// GET /api/history/event?event_id=XXX
func (hh *HistoryHandler) HandleEventDetail(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		hh.jsonError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	eventID := r.URL.Query().Get("event_id")
	if eventID == "" {
		hh.jsonError(w, "Missing event_id", http.StatusBadRequest)
		return
	}

	for _, e := range hh.eventLog.Replay() {
		if e.ID == eventID {
			detail := hh.convertToHistoryEvent(e)
			if payload, ok := e.Payload.(map[string]interface{}); ok {
				detail.Details = payload
			}
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(detail)
			return
		}
	}

	hh.jsonError(w, "Event not found", http.StatusNotFound)
}

// HandleStats returns aggregate statistics for a session.
// GET /api/history/stats?session_id=XXX
func (hh *HistoryHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		hh.jsonError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	sessionID := r.URL.Query().Get("session_id")
	allEvents := hh.eventLog.GetBySession(sessionID)

	stats := map[string]int{
		"total_events":     len(allEvents),
		"items_purchased":  0,
		"tools_applied":    0,
		"minigames_won":    0,
		"minigames_lost":   0,
		"dishes_judged":    0,
		"actions_rejected": 0,
	}

	for _, e := range allEvents {
		switch e.Type {
		case events.EventTypeItemPurchased:
			stats["items_purchased"]++
		case events.EventTypeToolApplied:
			stats["tools_applied"]++
		case events.EventTypeMinigameResolved:
			won := false
			if payload, ok := e.Payload.(map[string]interface{}); ok {
				won, _ = payload["success"].(bool)
			}
			if won {
				stats["minigames_won"]++
			} else {
				stats["minigames_lost"]++
			}
		case events.EventTypeDishJudged:
			stats["dishes_judged"]++
		case events.EventTypeActionRejected:
			stats["actions_rejected"]++
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"generated_at": time.Now().Format(time.RFC3339),
		"stats":        stats,
	})
}

// RegisterRoutes sets up the history API routes.
func (hh *HistoryHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/history", hh.HandleHistory)
	mux.HandleFunc("/api/history/event", hh.HandleEventDetail)
	mux.HandleFunc("/api/history/stats", hh.HandleStats)
}

// convertToHistoryEvent transforms an internal event to public format.
func (hh *HistoryHandler) convertToHistoryEvent(e events.GameEvent) HistoryEvent {
	return HistoryEvent{
		ID:        e.ID,
		Timestamp: e.Timestamp.Format("15:04:05"),
		Round:     e.Round,
		Type:      string(e.Type),
		ItemID:    e.ItemID,
		Summary:   hh.summarizeEvent(e),
	}
}

// summarizeEvent creates a human-readable summary.
func (hh *HistoryHandler) summarizeEvent(e events.GameEvent) string {
	switch e.Type {
	case events.EventTypeRoundStarted:
		return "Нові критики зайняли свої місця."
	case events.EventTypeItemPurchased:
		return "Куплено інгредієнт."
	case events.EventTypeCustomItemMinted:
		return "Створено власний інгредієнт."
	case events.EventTypeToolApplied:
		return "Інструмент застосовано, гра почалась."
	case events.EventTypeMinigameResolved:
		return "Обробку завершено."
	case events.EventTypeDishSubmitted:
		return "Страву подано критикам."
	case events.EventTypeDishJudged:
		return "Критики винесли вердикт."
	case events.EventTypeLevelUp:
		return "Новий рівень кухаря!"
	default:
		return "Щось сталося на кухні..."
	}
}

// jsonError sends an error response.
func (hh *HistoryHandler) jsonError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
