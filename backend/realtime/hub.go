package realtime

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"project/backend/logger"
)

// Client is one connected SSE stream subscribed to a single channel.
// Outbound is bounded; a slow consumer drops messages instead of
// blocking the publisher.
type Client struct {
	ID       uuid.UUID
	Channel  string
	Outbound chan Event
	done     chan struct{}
}

func (c *Client) Done() <-chan struct{} {
	return c.done
}

type Hub struct {
	mu            sync.RWMutex
	log           *logger.Logger
	subscriptions map[string]map[*Client]bool
}

func NewHub(log *logger.Logger) *Hub {
	return &Hub{
		log:           log.With("component", "Hub"),
		subscriptions: make(map[string]map[*Client]bool),
	}
}

func (h *Hub) Subscribe(channel string) *Client {
	client := &Client{
		ID:       uuid.New(),
		Channel:  channel,
		Outbound: make(chan Event, 16),
		done:     make(chan struct{}),
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	clients, exists := h.subscriptions[channel]
	if !exists {
		clients = make(map[*Client]bool)
		h.subscriptions[channel] = clients
	}
	clients[client] = true

	h.log.Debug("client subscribed", "clientID", client.ID, "channel", channel)
	return client
}

func (h *Hub) Unsubscribe(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.subscriptions[client.Channel]
	if !ok || !clients[client] {
		return
	}
	delete(clients, client)
	if len(clients) == 0 {
		delete(h.subscriptions, client.Channel)
	}
	close(client.done)

	h.log.Debug("client unsubscribed", "clientID", client.ID, "channel", client.Channel)
}

func (h *Hub) Broadcast(event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if event.Channel == "" {
		return
	}
	clients, ok := h.subscriptions[event.Channel]
	if !ok {
		return
	}
	for c := range clients {
		select {
		case c.Outbound <- event:
		default:
			h.log.Warn("dropping event, outbound buffer full", "clientID", c.ID, "event", event.Name)
		}
	}
}

// Emit makes the Hub usable as a Notifier when running single-instance.
func (h *Hub) Emit(_ context.Context, event Event) {
	h.Broadcast(event)
}
