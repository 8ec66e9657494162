// Package main is the entry point for the Alchemist Chef kitchen server.
// It only handles dependency injection and server initialization.
// NO business logic belongs here.
package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
	"github.com/joho/godotenv"

	"github.com/okovalenko/AlchemistChef/server/internal/domain/item"
	"github.com/okovalenko/AlchemistChef/server/internal/domain/player"
	"github.com/okovalenko/AlchemistChef/server/internal/domain/rules"
	"github.com/okovalenko/AlchemistChef/server/internal/engine"
	"github.com/okovalenko/AlchemistChef/server/internal/events"
	"github.com/okovalenko/AlchemistChef/server/internal/infra/ai"
	"github.com/okovalenko/AlchemistChef/server/internal/infra/storage"
	"github.com/okovalenko/AlchemistChef/server/internal/network"
	"github.com/okovalenko/AlchemistChef/server/internal/platform/config"
	"github.com/okovalenko/AlchemistChef/server/internal/platform/logger"
	"github.com/okovalenko/AlchemistChef/server/internal/platform/metrics"
)

// SQLitePersisterAdapter translates domain events to storage events.
type SQLitePersisterAdapter struct {
	repo *storage.SQLiteEventRepository
}

func (a *SQLitePersisterAdapter) Append(event events.GameEvent) error {
	payloadBytes, _ := json.Marshal(event.Payload)
	var payloadMap map[string]interface{}
	json.Unmarshal(payloadBytes, &payloadMap)

	storageEvent := storage.GameEvent{
		ID:        event.ID,
		SessionID: event.SessionID,
		Timestamp: event.Timestamp,
		EventType: string(event.Type),
		ItemID:    event.ItemID,
		Payload:   payloadMap,
		Round:     event.Round,
	}

	start := time.Now()
	err := a.repo.Append(context.Background(), storageEvent)
	metrics.Get().RecordEventWrite(time.Since(start), err)
	return err
}

// bootstrapSession restores the profile, inventory and custom items
// from SQLite, or seeds a fresh session when the database is empty.
func bootstrapSession(
	ctx context.Context,
	cfg *config.Config,
	profRepo *storage.SQLiteProfileRepository,
	customRepo *storage.SQLiteCustomItemRepository,
	registry *engine.RegistrySystem,
	inventory *engine.InventorySystem,
	appLogger *logger.Logger,
) *player.Profile {
	snap, err := profRepo.GetBySessionID(ctx, cfg.SessionID)
	if err != nil {
		appLogger.Error("Failed to query DB for profile: " + err.Error())
	}

	if snap == nil {
		appLogger.Info("Database empty. Seeding fresh chef profile...")
		profile := player.NewProfile(cfg.PlayerName)
		for _, id := range item.StarterKit {
			if def, ok := item.Lookup(id); ok {
				inventory.Credit(def, item.StarterQuantity, "starter_kit")
			}
		}
		_ = profRepo.Upsert(ctx, storage.ProfileSnapshot{
			SessionID: cfg.SessionID,
			Name:      profile.Name,
			Gold:      profile.Gold,
			XP:        profile.XP,
			Level:     profile.Level,
			Water:     profile.Water,
			Inventory: inventory.Snapshot(),
		})
		return profile
	}

	appLogger.Info("Reconstructing session from SQLite state...")
	profile := &player.Profile{
		Name:  snap.Name,
		Gold:  snap.Gold,
		XP:    snap.XP,
		Level: snap.Level,
		Water: snap.Water,
	}
	inventory.Restore(snap.Inventory)

	customs, err := customRepo.GetBySessionID(ctx, cfg.SessionID)
	if err != nil {
		appLogger.Error("Failed to load custom items: " + err.Error())
	}
	for _, c := range customs {
		registry.RegisterCustom(item.Item{
			ID:       c.ItemID,
			Name:     c.Name,
			Emoji:    c.Emoji,
			Category: item.Category(c.Category),
			Price:    c.Price,
			Tier:     c.Tier,
			State:    item.StateRaw,
			IsCustom: true,
		}, cfg.SessionID)
	}

	return profile
}

func newLLMProvider(cfg *config.Config, gate *ai.BudgetGate, appLogger *logger.Logger) ai.LLMProvider {
	var provider ai.LLMProvider
	switch cfg.LLMProvider {
	case "openai":
		provider = ai.NewOpenAIProvider(gate)
	case "anthropic":
		provider = ai.NewAnthropicProvider(gate)
	default:
		provider = ai.NewGeminiProvider(gate)
	}
	if !provider.IsAvailable() {
		appLogger.Warn("LLM provider '" + provider.Name() + "' has no API key; fallbacks will be served")
	}
	return provider
}

func main() {
	log.Println("[CHEF-SERVER] Initializing 'Alchemist Chef' Authoritative Kitchen Server...")

	_ = godotenv.Load()
	cfg := config.Load()

	appLogger := logger.NewLogger()

	appLogger.Info("Initializing SQLite database '" + cfg.DBPath + "'...")
	db, err := storage.InitSQLite(cfg.DBPath)
	if err != nil {
		appLogger.Error("Failed to initialize SQLite: " + err.Error())
		os.Exit(1)
	}
	eventRepo := storage.NewSQLiteEventRepository(db)
	eventPersister := &SQLitePersisterAdapter{repo: eventRepo}

	appLogger.Info("Bootstrapping EventLog...")
	eventLog := events.NewEventLog(eventPersister)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	appLogger.Info("Bootstrapping Kitchen Subsystems...")
	registry := engine.NewRegistrySystem(eventLog, appLogger)
	inventory := engine.NewInventorySystem(registry, eventLog, appLogger, cfg.SessionID)

	profRepo := storage.NewSQLiteProfileRepository(db)
	customRepo := storage.NewSQLiteCustomItemRepository(db)
	profile := bootstrapSession(ctx, cfg, profRepo, customRepo, registry, inventory, appLogger)

	appLogger.Info("Bootstrapping AI Critics...")
	budgetGate := ai.NewBudgetGate(cfg.DailyBudgetUSD, cfg.MonthlyBudgetUSD)
	llmProvider := newLLMProvider(cfg, budgetGate, appLogger)
	criticService := ai.NewCriticService(llmProvider, appLogger)

	rulebook := rules.NewRuleBook(rules.DefaultRules)
	kitchen := engine.NewKitchenEngine(
		cfg.SessionID, profile, registry, inventory, rulebook,
		criticService, eventLog, appLogger,
	)

	// Automated state backup routine
	go func() {
		backupTicker := time.NewTicker(5 * time.Second)
		defer backupTicker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-backupTicker.C:
				snap := kitchen.Snapshot()
				_ = profRepo.Upsert(ctx, storage.ProfileSnapshot{
					SessionID: cfg.SessionID,
					Name:      snap.Profile.Name,
					Gold:      snap.Profile.Gold,
					XP:        snap.Profile.XP,
					Level:     snap.Profile.Level,
					Water:     snap.Profile.Water,
					Round:     snap.Round,
					Inventory: snap.Inventory,
				})
				for _, it := range registry.Snapshot() {
					if !it.IsCustom {
						continue
					}
					_ = customRepo.Upsert(ctx, storage.CustomItemRecord{
						ItemID:    it.ID,
						SessionID: cfg.SessionID,
						Name:      it.Name,
						Emoji:     it.Emoji,
						Category:  string(it.Category),
						Price:     it.Price,
						Tier:      it.Tier,
					})
				}
			}
		}
	}()

	appLogger.Info("Bootstrapping WebSocket Hub...")
	hub := network.NewHub(kitchen, appLogger)
	go hub.Run(ctx)
	hub.StartEventPoller(ctx, eventLog)

	// Setup API routes
	mux := http.NewServeMux()

	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		serveWs(hub, w, r, appLogger)
	})

	reconstructor := storage.NewReconstructor(eventRepo)
	api := network.NewKitchenAPI(kitchen, reconstructor, cfg.SessionID, appLogger)
	api.RegisterRoutes(mux)

	history := network.NewHistoryHandler(eventLog, appLogger)
	history.RegisterRoutes(mux)

	mux.HandleFunc("/metrics", metrics.Handler())
	mux.HandleFunc("/metrics/prometheus", metrics.PrometheusHandler())

	server := &http.Server{Addr: ":" + cfg.Port, Handler: mux}
	go func() {
		log.Printf("[CHEF-SERVER] HTTP API & WS Server listening on :%s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	log.Println("[CHEF-SERVER] Server running. Press Ctrl+C to exit.")

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("[CHEF-SERVER] Shutting down...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = server.Shutdown(shutdownCtx)
	cancel()
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow cross-origin requests for the Vite dev server
	},
}

// serveWs handles websocket requests from the peer.
func serveWs(hub *network.Hub, w http.ResponseWriter, r *http.Request, log *logger.Logger) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("Failed to upgrade websocket connection")
		return
	}

	client := network.NewClient(hub, conn)
	client.Register()

	// Allow collection of memory referenced by the caller by doing all work in
	// new goroutines.
	go client.WritePump()
	go client.ReadPump()
}
