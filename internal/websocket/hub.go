package websocket

import (
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// Client is one live view connection. Writes are serialised because a
// gorilla connection supports a single concurrent writer.
type Client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

// NewClient wraps a connection that is not tracked by a Hub, such as an
// answer view.
func NewClient(conn *websocket.Conn) *Client {
	return &Client{conn: conn}
}

// Send writes v to the client.
func (c *Client) Send(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return WriteTyped(c.conn, v)
}

// SendError writes an error event to the client.
func (c *Client) SendError(msg string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return WriteError(c.conn, msg)
}

// Hub tracks the open overview views of this process.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
	log     zerolog.Logger
}

// NewHub creates an empty hub.
func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		clients: make(map[*Client]struct{}),
		log:     log.With().Str("component", "overview_hub").Logger(),
	}
}

// Register adds conn to the hub and returns its client handle.
func (h *Hub) Register(conn *websocket.Conn) *Client {
	c := NewClient(conn)
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
	return c
}

// Unregister drops c. It is safe to call more than once.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	delete(h.clients, c)
	h.mu.Unlock()
}

// Len returns the number of live overview views.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Broadcast sends v to every overview. Clients that fail are dropped.
func (h *Hub) Broadcast(v interface{}) {
	h.mu.RLock()
	clients := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		if err := c.Send(v); err != nil {
			h.log.Debug().Err(err).Msg("Dropping overview client")
			h.Unregister(c)
			c.conn.Close()
		}
	}
}

// MarkSubmitted pushes a targeted mark_submitted event to every overview.
func (h *Hub) MarkSubmitted(title string) {
	h.Broadcast(MarkSubmittedEvent{Event: EventMarkSubmitted, Title: title})
}
