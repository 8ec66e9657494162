// Package network - api.go
// REST bridge for the frontend: state snapshot, catalog and recap.
package network

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/okovalenko/AlchemistChef/server/internal/domain/item"
	"github.com/okovalenko/AlchemistChef/server/internal/engine"
	"github.com/okovalenko/AlchemistChef/server/internal/infra/storage"
	"github.com/okovalenko/AlchemistChef/server/internal/platform/logger"
)

// KitchenAPI handles REST interactions next to the WebSocket channel.
type KitchenAPI struct {
	engine        *engine.KitchenEngine
	reconstructor *storage.Reconstructor
	sessionID     string
	logger        *logger.Logger
}

// NewKitchenAPI creates the REST handler set for a session.
func NewKitchenAPI(eng *engine.KitchenEngine, rec *storage.Reconstructor, sessionID string, log *logger.Logger) *KitchenAPI {
	return &KitchenAPI{
		engine:        eng,
		reconstructor: rec,
		sessionID:     sessionID,
		logger:        log,
	}
}

// HandleState returns the full session snapshot.
// GET /api/state
func (ka *KitchenAPI) HandleState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		ka.jsonError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	ka.jsonSuccess(w, ka.engine.Snapshot())
}

// HandleCatalog returns the purchasable base catalog.
// GET /api/catalog
func (ka *KitchenAPI) HandleCatalog(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		ka.jsonError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	ka.jsonSuccess(w, map[string]interface{}{
		"items":        item.CatalogItems(),
		"generated_at": time.Now().Unix(),
	})
}

// HandleRecap returns the recap feed rebuilt from the event ledger.
// GET /api/recap?since_round=N
func (ka *KitchenAPI) HandleRecap(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		ka.jsonError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	sinceRound := 0
	if s := r.URL.Query().Get("since_round"); s != "" {
		sinceRound, _ = strconv.Atoi(s)
	}

	recap, err := ka.reconstructor.GenerateRecap(r.Context(), ka.sessionID, sinceRound)
	if err != nil {
		ka.logger.Error("Recap generation failed: " + err.Error())
		ka.jsonError(w, "Failed to generate recap", http.StatusInternalServerError)
		return
	}

	ka.jsonSuccess(w, map[string]interface{}{
		"session_id":  ka.sessionID,
		"since_round": sinceRound,
		"events":      recap,
	})
}

// RegisterRoutes sets up the REST API routes.
func (ka *KitchenAPI) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/state", ka.HandleState)
	mux.HandleFunc("/api/catalog", ka.HandleCatalog)
	mux.HandleFunc("/api/recap", ka.HandleRecap)
}

// jsonError sends an error response.
func (ka *KitchenAPI) jsonError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// jsonSuccess sends a success response.
func (ka *KitchenAPI) jsonSuccess(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(data)
}
