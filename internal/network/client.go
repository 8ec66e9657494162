package network

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/gorilla/websocket"

	"github.com/okovalenko/AlchemistChef/server/internal/domain/rules"
	"github.com/okovalenko/AlchemistChef/server/internal/platform/metrics"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second
	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second
	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10
	// Maximum message size allowed from peer.
	maxMessageSize = 2048
	// Slow-path calls hitting the LLM get this much time.
	actionTimeout = 45 * time.Second
)

// PlayerAction represents an incoming command from the frontend.
type PlayerAction struct {
	Type    string          `json:"type"` // "BUY", "PLACE_ITEM", "APPLY_TOOL", etc.
	Payload json.RawMessage `json:"payload"` // Action-specific data
}

// Client represents an active WebSocket connection.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// NewClient creates a new WebSocket client and returns it.
func NewClient(hub *Hub, conn *websocket.Conn) *Client {
	return &Client{
		hub:  hub,
		conn: conn,
		send: make(chan []byte, 256),
	}
}

// Register adds the client to the hub.
func (c *Client) Register() {
	c.hub.register <- c
}

// SendMessage serializes and queues a message for this client only.
func (c *Client) SendMessage(msg ServerMessage) {
	payload, err := json.Marshal(msg)
	if err != nil {
		c.hub.logger.Error("Failed to serialize client message: " + err.Error())
		return
	}
	select {
	case c.send <- payload:
		metrics.Get().RecordWSMessage(false)
	default:
	}
}

func (c *Client) sendError(action string, err error) {
	c.SendMessage(ServerMessage{Type: "ERROR", Payload: map[string]string{
		"action": action,
		"error":  err.Error(),
	}})
}

// ReadPump pumps messages from the websocket connection to the engine.
// Mashing minigames need rapid repeated input, so there is no
// per-action rate limit here; the engine validates everything.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("error: %v", err)
				metrics.Get().RecordWSError()
			}
			break
		}
		metrics.Get().RecordWSMessage(true)

		var action PlayerAction
		if err := json.Unmarshal(message, &action); err != nil {
			c.hub.logger.Error("Failed to parse PlayerAction from WebSocket. err: " + err.Error())
			continue
		}

		c.handlePlayerAction(action)
	}
}

func (c *Client) handlePlayerAction(action PlayerAction) {
	eng := c.hub.engine

	switch action.Type {
	case "START_ROUND":
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), actionTimeout)
			defer cancel()
			eng.StartRound(ctx)
		}()

	case "BUY":
		var parsed struct {
			ItemID string `json:"item_id"`
		}
		if err := json.Unmarshal(action.Payload, &parsed); err != nil {
			c.hub.logger.Warn("Failed to parse buy payload")
			return
		}
		if err := eng.Purchase(parsed.ItemID); err != nil {
			c.sendError(action.Type, err)
			return
		}
		metrics.Get().RecordPurchase()

	case "CREATE_CUSTOM":
		var parsed struct {
			Name  string `json:"name"`
			Price int    `json:"price"`
		}
		if err := json.Unmarshal(action.Payload, &parsed); err != nil {
			c.hub.logger.Warn("Failed to parse custom item payload")
			return
		}
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), actionTimeout)
			defer cancel()
			if _, err := eng.CreateCustomItem(ctx, parsed.Name, parsed.Price); err != nil {
				c.sendError(action.Type, err)
				return
			}
			metrics.Get().RecordCustomMinted()
		}()

	case "PLACE_ITEM":
		var parsed struct {
			ItemID string `json:"item_id"`
		}
		if err := json.Unmarshal(action.Payload, &parsed); err != nil {
			c.hub.logger.Warn("Failed to parse place payload")
			return
		}
		if err := eng.PlaceItem(parsed.ItemID); err != nil {
			c.sendError(action.Type, err)
		}

	case "APPLY_TOOL":
		var parsed struct {
			Tool string `json:"tool"`
		}
		if err := json.Unmarshal(action.Payload, &parsed); err != nil {
			c.hub.logger.Warn("Failed to parse tool payload")
			return
		}
		if err := eng.ApplyTool(rules.Tool(parsed.Tool)); err != nil {
			c.sendError(action.Type, err)
		}

	case "MINIGAME_ACT":
		if err := eng.MinigameAct(); err != nil {
			c.sendError(action.Type, err)
		}

	case "DISCARD":
		if err := eng.Discard(); err != nil {
			c.sendError(action.Type, err)
		}

	case "PLATE":
		if err := eng.PlateItem(); err != nil {
			c.sendError(action.Type, err)
		}

	case "CLEAR_PLATE":
		eng.ClearPlate()

	case "SUBMIT_DISH":
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), actionTimeout)
			defer cancel()
			result, err := eng.SubmitDish(ctx)
			if err != nil {
				c.sendError(action.Type, err)
				return
			}
			metrics.Get().RecordDishJudged(result.TotalScore)
			c.SendMessage(ServerMessage{Type: "DISH_RESULT", Payload: result})
		}()

	case "EXCUSE":
		var parsed struct {
			CriticName string `json:"critic_name"`
			Excuse     string `json:"excuse"`
		}
		if err := json.Unmarshal(action.Payload, &parsed); err != nil {
			c.hub.logger.Warn("Failed to parse excuse payload")
			return
		}
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), actionTimeout)
			defer cancel()
			reply, err := eng.ReplyToExcuse(ctx, parsed.CriticName, parsed.Excuse)
			if err != nil {
				c.sendError(action.Type, err)
				return
			}
			c.SendMessage(ServerMessage{Type: "EXCUSE_REPLY", Payload: map[string]string{
				"critic_name": parsed.CriticName,
				"text":        reply,
			}})
		}()

	case "REFILL_WATER":
		eng.RefillWater()

	default:
		c.hub.logger.Warn("Unknown PlayerAction type: " + action.Type)
	}
}

// WritePump pumps messages from the hub to the websocket connection.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel.
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			// Add queued messages to the current websocket message.
			n := len(c.send)
			for i := 0; i < n; i++ {
				w.Write([]byte{'\n'})
				w.Write(<-c.send)
			}

			if err := w.Close(); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
