// Package metrics provides observability for the kitchen server.
package metrics

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

// Collector gathers performance and gameplay metrics.
type Collector struct {
	// Gameplay metrics
	MinigamesWon    int64
	MinigamesLost   int64
	DishesSubmitted int64
	DishScoreSum    float64 // guarded by mu
	ItemsPurchased  int64
	CustomMinted    int64

	// Event metrics
	EventsWritten    int64
	EventWriteLatSum int64 // nanoseconds
	EventWriteLatMax int64
	EventWriteErrors int64

	// WebSocket metrics
	WSConnectionsActive int64
	WSMessagesIn        int64
	WSMessagesOut       int64
	WSErrors            int64

	// LLM metrics
	LLMRequests   int64
	LLMTokensUsed int64
	LLMCostUSD    float64 // guarded by mu
	LLMLatencySum int64

	// System
	StartTime time.Time
	mu        sync.RWMutex
}

// Global collector instance
var collector = &Collector{
	StartTime: time.Now(),
}

// Get returns the global collector.
func Get() *Collector {
	return collector
}

// RecordMinigame records a resolved minigame.
func (c *Collector) RecordMinigame(won bool) {
	if won {
		atomic.AddInt64(&c.MinigamesWon, 1)
	} else {
		atomic.AddInt64(&c.MinigamesLost, 1)
	}
}

// RecordDishJudged records a judged submission.
func (c *Collector) RecordDishJudged(score float64) {
	atomic.AddInt64(&c.DishesSubmitted, 1)
	c.mu.Lock()
	c.DishScoreSum += score
	c.mu.Unlock()
}

// RecordPurchase records a shop purchase.
func (c *Collector) RecordPurchase() {
	atomic.AddInt64(&c.ItemsPurchased, 1)
}

// RecordCustomMinted records a player-invented ingredient.
func (c *Collector) RecordCustomMinted() {
	atomic.AddInt64(&c.CustomMinted, 1)
}

// RecordEventWrite records an event write to the database.
func (c *Collector) RecordEventWrite(latency time.Duration, err error) {
	atomic.AddInt64(&c.EventsWritten, 1)
	atomic.AddInt64(&c.EventWriteLatSum, int64(latency))

	// Update max (non-atomic but acceptable for metrics)
	if int64(latency) > atomic.LoadInt64(&c.EventWriteLatMax) {
		atomic.StoreInt64(&c.EventWriteLatMax, int64(latency))
	}

	if err != nil {
		atomic.AddInt64(&c.EventWriteErrors, 1)
	}
}

// RecordWSConnection records WebSocket connection changes.
func (c *Collector) RecordWSConnection(delta int64) {
	atomic.AddInt64(&c.WSConnectionsActive, delta)
}

// RecordWSMessage records WebSocket messages.
func (c *Collector) RecordWSMessage(incoming bool) {
	if incoming {
		atomic.AddInt64(&c.WSMessagesIn, 1)
	} else {
		atomic.AddInt64(&c.WSMessagesOut, 1)
	}
}

// RecordWSError records a WebSocket error.
func (c *Collector) RecordWSError() {
	atomic.AddInt64(&c.WSErrors, 1)
}

// RecordLLMCall records an LLM API call.
func (c *Collector) RecordLLMCall(tokens int, cost float64, latency time.Duration) {
	atomic.AddInt64(&c.LLMRequests, 1)
	atomic.AddInt64(&c.LLMTokensUsed, int64(tokens))
	atomic.AddInt64(&c.LLMLatencySum, int64(latency))

	c.mu.Lock()
	c.LLMCostUSD += cost
	c.mu.Unlock()
}

// Snapshot returns current metrics as a map.
func (c *Collector) Snapshot() map[string]interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	eventsWritten := atomic.LoadInt64(&c.EventsWritten)
	llmRequests := atomic.LoadInt64(&c.LLMRequests)
	dishes := atomic.LoadInt64(&c.DishesSubmitted)

	var eventAvg, llmAvg, scoreAvg float64
	if eventsWritten > 0 {
		eventAvg = float64(atomic.LoadInt64(&c.EventWriteLatSum)) / float64(eventsWritten) / 1e6 // ms
	}
	if llmRequests > 0 {
		llmAvg = float64(atomic.LoadInt64(&c.LLMLatencySum)) / float64(llmRequests) / 1e9 // seconds
	}
	if dishes > 0 {
		scoreAvg = c.DishScoreSum / float64(dishes)
	}

	return map[string]interface{}{
		"uptime_seconds": time.Since(c.StartTime).Seconds(),

		"kitchen": map[string]interface{}{
			"minigames_won":    atomic.LoadInt64(&c.MinigamesWon),
			"minigames_lost":   atomic.LoadInt64(&c.MinigamesLost),
			"dishes_submitted": dishes,
			"avg_dish_score":   scoreAvg,
			"items_purchased":  atomic.LoadInt64(&c.ItemsPurchased),
			"custom_minted":    atomic.LoadInt64(&c.CustomMinted),
		},

		"events": map[string]interface{}{
			"written":          eventsWritten,
			"avg_write_lat_ms": eventAvg,
			"max_write_lat_ms": float64(atomic.LoadInt64(&c.EventWriteLatMax)) / 1e6,
			"errors":           atomic.LoadInt64(&c.EventWriteErrors),
		},

		"websocket": map[string]interface{}{
			"active_connections": atomic.LoadInt64(&c.WSConnectionsActive),
			"messages_in":        atomic.LoadInt64(&c.WSMessagesIn),
			"messages_out":       atomic.LoadInt64(&c.WSMessagesOut),
			"errors":             atomic.LoadInt64(&c.WSErrors),
		},

		"llm": map[string]interface{}{
			"requests":        llmRequests,
			"tokens_used":     atomic.LoadInt64(&c.LLMTokensUsed),
			"cost_usd":        c.LLMCostUSD,
			"avg_latency_sec": llmAvg,
		},
	}
}

// Handler returns an HTTP handler for the /metrics endpoint.
func Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-cache")

		snapshot := collector.Snapshot()
		json.NewEncoder(w).Encode(snapshot)
	}
}

// PrometheusHandler returns metrics in Prometheus format.
func PrometheusHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")

		c := collector

		fmt.Fprintf(w, "# HELP chef_minigames_total Resolved minigames\n")
		fmt.Fprintf(w, "# TYPE chef_minigames_total counter\n")
		fmt.Fprintf(w, "chef_minigames_total{result=\"won\"} %d\n", atomic.LoadInt64(&c.MinigamesWon))
		fmt.Fprintf(w, "chef_minigames_total{result=\"lost\"} %d\n\n", atomic.LoadInt64(&c.MinigamesLost))

		fmt.Fprintf(w, "# HELP chef_dishes_submitted Total judged submissions\n")
		fmt.Fprintf(w, "# TYPE chef_dishes_submitted counter\n")
		fmt.Fprintf(w, "chef_dishes_submitted %d\n\n", atomic.LoadInt64(&c.DishesSubmitted))

		fmt.Fprintf(w, "# HELP chef_items_purchased Total shop purchases\n")
		fmt.Fprintf(w, "# TYPE chef_items_purchased counter\n")
		fmt.Fprintf(w, "chef_items_purchased %d\n\n", atomic.LoadInt64(&c.ItemsPurchased))

		fmt.Fprintf(w, "# HELP chef_events_written Total events written\n")
		fmt.Fprintf(w, "# TYPE chef_events_written counter\n")
		fmt.Fprintf(w, "chef_events_written %d\n\n", atomic.LoadInt64(&c.EventsWritten))

		fmt.Fprintf(w, "# HELP chef_event_write_errors Total event write errors\n")
		fmt.Fprintf(w, "# TYPE chef_event_write_errors counter\n")
		fmt.Fprintf(w, "chef_event_write_errors %d\n\n", atomic.LoadInt64(&c.EventWriteErrors))

		fmt.Fprintf(w, "# HELP chef_ws_connections Active WebSocket connections\n")
		fmt.Fprintf(w, "# TYPE chef_ws_connections gauge\n")
		fmt.Fprintf(w, "chef_ws_connections %d\n\n", atomic.LoadInt64(&c.WSConnectionsActive))

		fmt.Fprintf(w, "# HELP chef_ws_messages_total Total WebSocket messages\n")
		fmt.Fprintf(w, "# TYPE chef_ws_messages_total counter\n")
		fmt.Fprintf(w, "chef_ws_messages_total{direction=\"in\"} %d\n", atomic.LoadInt64(&c.WSMessagesIn))
		fmt.Fprintf(w, "chef_ws_messages_total{direction=\"out\"} %d\n\n", atomic.LoadInt64(&c.WSMessagesOut))

		fmt.Fprintf(w, "# HELP chef_llm_requests Total LLM API requests\n")
		fmt.Fprintf(w, "# TYPE chef_llm_requests counter\n")
		fmt.Fprintf(w, "chef_llm_requests %d\n\n", atomic.LoadInt64(&c.LLMRequests))

		fmt.Fprintf(w, "# HELP chef_llm_tokens_used Total tokens consumed\n")
		fmt.Fprintf(w, "# TYPE chef_llm_tokens_used counter\n")
		fmt.Fprintf(w, "chef_llm_tokens_used %d\n\n", atomic.LoadInt64(&c.LLMTokensUsed))

		c.mu.RLock()
		fmt.Fprintf(w, "# HELP chef_llm_cost_usd Total LLM cost in USD\n")
		fmt.Fprintf(w, "# TYPE chef_llm_cost_usd counter\n")
		fmt.Fprintf(w, "chef_llm_cost_usd %.4f\n", c.LLMCostUSD)
		c.mu.RUnlock()
	}
}
