// Package chat bridges the marketplace chat between browser clients over
// websockets. Connections are owned per view visit: a client registers when
// the chat view opens and is unregistered and closed when the view is left,
// so repeated navigation no longer leaks sockets.
package chat

import (
	"context"
	"time"

	"github.com/google/uuid"

	logx "github.com/supplyline-web/server/pkg/logger"
)

// Hub fans every incoming message out to all connected clients and mirrors
// it into the redis history buffer.
type Hub struct {
	mirror *RedisHistory

	clients    map[*Client]bool
	broadcast  chan Message
	register   chan *Client
	unregister chan *Client
}

func NewHub(mirror *RedisHistory) *Hub {
	return &Hub{
		mirror:     mirror,
		clients:    make(map[*Client]bool),
		broadcast:  make(chan Message, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run drives the hub until ctx is cancelled, then closes every remaining
// client.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			for c := range h.clients {
				h.drop(c)
			}
			return

		case c := <-h.register:
			h.clients[c] = true
			logx.Debug().Str("sender", c.sender).Int("clients", len(h.clients)).Msg("chat client joined")

		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				h.drop(c)
				logx.Debug().Str("sender", c.sender).Int("clients", len(h.clients)).Msg("chat client left")
			}

		case msg := <-h.broadcast:
			h.deliver(ctx, msg)
		}
	}
}

// Publish stamps and queues a message for delivery to every client.
func (h *Hub) Publish(msg Message) {
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now()
	}
	if msg.Status == "" {
		msg.Status = StatusSent
	}
	h.broadcast <- msg
}

func (h *Hub) deliver(ctx context.Context, msg Message) {
	// Mirror first, best effort. A redis hiccup must not hold up delivery.
	if h.mirror != nil {
		if err := h.mirror.Append(ctx, msg); err != nil {
			logx.Warn().Err(err).Msg("failed to mirror chat message")
		}
	}

	for c := range h.clients {
		select {
		case c.send <- msg:
		default:
			// The client stopped draining its queue; cut it loose.
			h.drop(c)
		}
	}
}

func (h *Hub) drop(c *Client) {
	delete(h.clients, c)
	close(c.send)
}
