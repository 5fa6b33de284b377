// Package ws pushes refresh lifecycle events to dashboard clients over
// WebSocket. The hub subscribes to the event bus channel the refresher
// publishes on and fans messages out to every connected client.
package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/alanyoungcy/edgefinder/internal/domain"
)

const (
	// writeWait is the maximum time to wait for a write to complete.
	writeWait = 10 * time.Second

	// pongWait is the maximum time to wait for a pong from the client.
	pongWait = 60 * time.Second

	// pingPeriod sends pings at this interval. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// maxMessageSize is the maximum size of an incoming message. Clients only
	// send pongs and close frames, so this stays small.
	maxMessageSize = 512

	// sendBufferSize is the channel buffer for outgoing messages per client.
	sendBufferSize = 64
)

// upgrader configures the WebSocket upgrade parameters.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// CORS-style origin checks happen in middleware; the hub accepts all.
		return true
	},
}

// StatusSource reports refresh state for the hello message sent on connect.
type StatusSource interface {
	Current() (domain.Snapshot, bool)
	Loading() bool
}

// client represents a single WebSocket connection.
type client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// Hub manages connected WebSocket clients and broadcasts refresh events from
// the event bus to all of them.
type Hub struct {
	clients    map[*client]bool
	broadcast  chan []byte
	register   chan *client
	unregister chan *client
	done       chan struct{}
	bus        domain.EventBus
	channel    string
	source     StatusSource
	mu         sync.RWMutex
	logger     *slog.Logger
}

// NewHub creates a hub that forwards messages published on the given bus
// channel to connected clients. source may be nil; the hello message then
// omits snapshot state.
func NewHub(bus domain.EventBus, channel string, source StatusSource, logger *slog.Logger) *Hub {
	return &Hub{
		clients:    make(map[*client]bool),
		broadcast:  make(chan []byte, 256),
		register:   make(chan *client),
		unregister: make(chan *client),
		done:       make(chan struct{}),
		bus:        bus,
		channel:    channel,
		source:     source,
		logger:     logger.With(slog.String("component", "ws")),
	}
}

// Run starts the hub's main event loop. It should be called once, in a
// goroutine, and exits when the provided context is cancelled. After Run
// returns, new connections are closed instead of registered.
func (h *Hub) Run(ctx context.Context) error {
	defer close(h.done)

	if h.bus != nil {
		go h.subscribe(ctx)
	}

	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for c := range h.clients {
				close(c.send)
				delete(h.clients, c)
			}
			h.mu.Unlock()
			return ctx.Err()

		case c := <-h.register:
			h.mu.Lock()
			h.clients[c] = true
			h.mu.Unlock()
			h.logger.Info("client connected", slog.Int("total_clients", h.clientCount()))

		case c := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}
			h.mu.Unlock()
			h.logger.Info("client disconnected", slog.Int("total_clients", h.clientCount()))

		case msg := <-h.broadcast:
			h.mu.RLock()
			for c := range h.clients {
				select {
				case c.send <- msg:
				default:
					// Client's send buffer is full; drop the message.
					h.logger.Warn("dropping message for slow client")
				}
			}
			h.mu.RUnlock()
		}
	}
}

// subscribe consumes the event bus channel and feeds the broadcast loop. It
// retries the subscription until the context ends so a Redis restart does not
// permanently silence the hub.
func (h *Hub) subscribe(ctx context.Context) {
	for {
		msgs, err := h.bus.Subscribe(ctx, h.channel)
		if err != nil {
			h.logger.Warn("event subscription failed",
				slog.String("channel", h.channel),
				slog.String("error", err.Error()),
			)
			select {
			case <-ctx.Done():
				return
			case <-time.After(5 * time.Second):
				continue
			}
		}
		for msg := range msgs {
			select {
			case h.broadcast <- msg:
			case <-ctx.Done():
				return
			}
		}
		if ctx.Err() != nil {
			return
		}
	}
}

func (h *Hub) clientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// HandleWS upgrades an HTTP request to a WebSocket connection and registers
// the client with the hub.
// GET /ws
func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("upgrade failed", slog.String("error", err.Error()))
		return
	}

	c := &client{
		hub:  h,
		conn: conn,
		send: make(chan []byte, sendBufferSize),
	}
	select {
	case h.register <- c:
	case <-h.done:
		conn.Close()
		return
	}

	c.queueHello()

	go c.writePump()
	go c.readPump()
}

// queueHello enqueues the connection greeting with the current refresh state.
func (c *client) queueHello() {
	hello := map[string]any{"event": "connected"}
	if c.hub.source != nil {
		hello["is_loading"] = c.hub.source.Loading()
		if snap, ok := c.hub.source.Current(); ok {
			hello["markets_loaded"] = len(snap.Markets)
			hello["refresh_id"] = snap.RefreshID
			hello["last_updated"] = snap.RefreshedAt
		}
	}
	if data, err := json.Marshal(hello); err == nil {
		select {
		case c.send <- data:
		default:
		}
	}
}

// readPump drains the connection so pings and close frames are processed.
// Clients do not send application messages; anything received is discarded.
func (c *client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

// writePump forwards queued messages to the connection and keeps it alive
// with periodic pings.
func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
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
