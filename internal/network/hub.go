package network

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/okovalenko/AlchemistChef/server/internal/engine"
	"github.com/okovalenko/AlchemistChef/server/internal/events"
	"github.com/okovalenko/AlchemistChef/server/internal/platform/logger"
	"github.com/okovalenko/AlchemistChef/server/internal/platform/metrics"
)

// ServerMessage is the envelope for everything pushed to clients.
type ServerMessage struct {
	Type    string      `json:"type"` // "STATE", "EVENT", "DISH_RESULT", "EXCUSE_REPLY", "ERROR"
	Payload interface{} `json:"payload"`
}

// Hub maintains the set of active clients and broadcasts messages to them.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	mu         sync.Mutex

	engine *engine.KitchenEngine
	logger *logger.Logger
}

// NewHub initializes a new WebSocket Hub bound to a session engine.
func NewHub(eng *engine.KitchenEngine, log *logger.Logger) *Hub {
	h := &Hub{
		broadcast:  make(chan []byte, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
		engine:     eng,
		logger:     log,
	}
	eng.OnStateChange = h.BroadcastState
	return h
}

// Run starts the Hub's main loop to handle client connections and broadcasts.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.logger.Info("WebSocket Hub shutting down.")
			return
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			metrics.Get().RecordWSConnection(1)
			h.logger.Info("New WebSocket client connected")
			client.SendMessage(ServerMessage{Type: "STATE", Payload: h.engine.Snapshot()})
		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				metrics.Get().RecordWSConnection(-1)
				h.logger.Info("WebSocket client disconnected")
			}
			h.mu.Unlock()
		case message := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.send <- message:
					metrics.Get().RecordWSMessage(false)
				default:
					close(client.send)
					delete(h.clients, client)
				}
			}
			h.mu.Unlock()
		}
	}
}

// BroadcastState pushes the full engine snapshot to every client.
// Wired as the engine's OnStateChange callback.
func (h *Hub) BroadcastState() {
	h.broadcastMessage(ServerMessage{Type: "STATE", Payload: h.engine.Snapshot()})
}

// BroadcastEvent serializes a GameEvent and sends it to all clients.
func (h *Hub) BroadcastEvent(event events.GameEvent) {
	h.broadcastMessage(ServerMessage{Type: "EVENT", Payload: event})
}

func (h *Hub) broadcastMessage(msg ServerMessage) {
	payload, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error("Failed to serialize message for WebSocket broadcast: " + err.Error())
		metrics.Get().RecordWSError()
		return
	}
	select {
	case h.broadcast <- payload:
	default:
		h.logger.Warn("Broadcast channel full, dropping message")
	}
}

// StartEventPoller spawns a goroutine that polls the EventLog and pushes
// new events to the Hub. This lets the Hub pick up events emitted from
// anywhere without coupling the engine to the transport.
func (h *Hub) StartEventPoller(ctx context.Context, eventLog *events.EventLog) {
	go func() {
		pollInterval := time.NewTicker(200 * time.Millisecond)
		defer pollInterval.Stop()

		lastProcessedEvent := 0

		for {
			select {
			case <-ctx.Done():
				return
			case <-pollInterval.C:
				allEvents := eventLog.Replay()
				if len(allEvents) > lastProcessedEvent {
					for _, event := range allEvents[lastProcessedEvent:] {
						h.BroadcastEvent(event)
					}
					lastProcessedEvent = len(allEvents)
				}
			}
		}
	}()
}
