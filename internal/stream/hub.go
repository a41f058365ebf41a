package stream

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"github.com/redis/go-redis/v9"
)

// Hub fans display commands out to connected kiosk shells and routes events
// reported by the shells back into the engine. With a redis client attached,
// commands published by another process are delivered too.
type Hub struct {
	redis    *redis.Client
	clients  map[string]map[*Client]struct{}
	mu       sync.RWMutex
	handler  EventHandler
	handlerM sync.RWMutex
}

type Client struct {
	KioskID string
	Send    chan []byte
}

// Event is a frame reported by the kiosk shell: user input activity, a page
// change, an online/offline transition or a marker tap.
type Event struct {
	Type   string `json:"type"`
	Kind   string `json:"kind,omitempty"`
	Path   string `json:"path,omitempty"`
	Online *bool  `json:"online,omitempty"`
	POIID  string `json:"poiId,omitempty"`
}

const (
	EventActivity     = "activity"
	EventNavigate     = "navigate"
	EventConnectivity = "connectivity"
	EventSelect       = "select"
)

type EventHandler func(kioskID string, ev Event)

func NewHub(redisClient *redis.Client) *Hub {
	h := &Hub{
		redis:   redisClient,
		clients: map[string]map[*Client]struct{}{},
	}

	if redisClient != nil {
		go h.subscribeRedis()
	}
	return h
}

func (h *Hub) SetEventHandler(fn EventHandler) {
	h.handlerM.Lock()
	defer h.handlerM.Unlock()
	h.handler = fn
}

// Dispatch decodes an inbound frame and hands it to the registered handler.
// Unknown or malformed frames are dropped.
func (h *Hub) Dispatch(kioskID string, raw []byte) {
	var ev Event
	if err := json.Unmarshal(raw, &ev); err != nil || ev.Type == "" {
		return
	}

	h.handlerM.RLock()
	fn := h.handler
	h.handlerM.RUnlock()
	if fn != nil {
		fn(kioskID, ev)
	}
}

func (h *Hub) Register(kioskID string) *Client {
	client := &Client{
		KioskID: kioskID,
		Send:    make(chan []byte, 64),
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[kioskID] == nil {
		h.clients[kioskID] = map[*Client]struct{}{}
	}
	h.clients[kioskID][client] = struct{}{}
	return client
}

func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if kioskClients, ok := h.clients[client.KioskID]; ok {
		delete(kioskClients, client)
		if len(kioskClients) == 0 {
			delete(h.clients, client.KioskID)
		}
	}
	close(client.Send)
}

func (h *Hub) Broadcast(kioskID string, payload []byte) {
	h.mu.RLock()
	clients := h.clients[kioskID]
	h.mu.RUnlock()

	for client := range clients {
		select {
		case client.Send <- payload:
		default:
		}
	}

	if h.redis != nil {
		err := h.redis.Publish(context.Background(), redisChannel(kioskID), payload).Err()
		if err != nil {
			log.Printf("redis publish error: %v", err)
		}
	}
}

func (h *Hub) subscribeRedis() {
	ctx := context.Background()
	pubsub := h.redis.PSubscribe(ctx, "kiosk:*:display")
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		kioskID := kioskIDFromChannel(msg.Channel)
		h.mu.RLock()
		clients := h.clients[kioskID]
		h.mu.RUnlock()
		for client := range clients {
			select {
			case client.Send <- []byte(msg.Payload):
			default:
			}
		}
	}
}

func redisChannel(kioskID string) string {
	return "kiosk:" + kioskID + ":display"
}

func kioskIDFromChannel(ch string) string {
	// kiosk:{id}:display
	const prefix = "kiosk:"
	const suffix = ":display"
	if len(ch) <= len(prefix)+len(suffix) {
		return ""
	}
	return ch[len(prefix) : len(ch)-len(suffix)]
}
