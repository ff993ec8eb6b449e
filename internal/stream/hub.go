package stream

import (
	"context"
	"log"
	"sync"

	"github.com/redis/go-redis/v9"
)

// Hub fans live walk updates out to connected viewers. Local clients
// get the payload directly; Redis pub/sub carries it to viewers
// connected to other instances.
type Hub struct {
	redis   *redis.Client
	clients map[string]map[*Client]struct{}
	mu      sync.RWMutex
}

type Client struct {
	WalkID string
	Send   chan []byte
}

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

func (h *Hub) Register(walkID string) *Client {
	client := &Client{
		WalkID: walkID,
		Send:   make(chan []byte, 64),
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[walkID] == nil {
		h.clients[walkID] = map[*Client]struct{}{}
	}
	h.clients[walkID][client] = struct{}{}
	return client
}

func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if walkClients, ok := h.clients[client.WalkID]; ok {
		delete(walkClients, client)
		if len(walkClients) == 0 {
			delete(h.clients, client.WalkID)
		}
	}
	close(client.Send)
}

func (h *Hub) Broadcast(walkID string, payload []byte) {
	h.mu.RLock()
	clients := h.clients[walkID]
	h.mu.RUnlock()

	for client := range clients {
		select {
		case client.Send <- payload:
		default:
		}
	}

	if h.redis != nil {
		err := h.redis.Publish(context.Background(), redisChannel(walkID), payload).Err()
		if err != nil {
			log.Printf("redis publish error: %v", err)
		}
	}
}

func (h *Hub) subscribeRedis() {
	ctx := context.Background()
	pubsub := h.redis.PSubscribe(ctx, "walks:*:live")
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		walkID := walkIDFromChannel(msg.Channel)
		h.mu.RLock()
		clients := h.clients[walkID]
		h.mu.RUnlock()
		for client := range clients {
			select {
			case client.Send <- []byte(msg.Payload):
			default:
			}
		}
	}
}

func redisChannel(walkID string) string {
	return "walks:" + walkID + ":live"
}

func walkIDFromChannel(ch string) string {
	// walks:{walk}:live
	const prefix = "walks:"
	const suffix = ":live"
	if len(ch) <= len(prefix)+len(suffix) {
		return ""
	}
	return ch[len(prefix) : len(ch)-len(suffix)]
}
