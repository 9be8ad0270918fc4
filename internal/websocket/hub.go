package websocket

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"gitscout-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const clusterChannel = "gitscout_ws_events"

// Feed events pushed to connected clients. A client subscribed to
// uuid.Nil receives every event (the firehose); a client subscribed
// to a project id only receives events targeted at that project.
type FeedEvent struct {
	Type      string                 `json:"type"`
	ProjectId string                 `json:"project_id,omitempty"`
	Data      map[string]interface{} `json:"data"`
}

type Hub struct {
	// Connected clients map: ProjectID subscription -> clients.
	// uuid.Nil keys the firehose subscribers.
	clients map[uuid.UUID][]*Client

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	// Redis connection for cross-instance fan-out. Optional.
	rdb *redis.Client

	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[uuid.UUID][]*Client),
		rdb:        rdb,
		logger:     log,
	}
}

func (h *Hub) Run() {
	if h.rdb != nil {
		go h.subscribeToRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.ProjectId] = append(h.clients[client.ProjectId], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"project_id": client.ProjectId})

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.ProjectId]; ok {
				for i, c := range clients {
					if c == client {
						h.clients[client.ProjectId] = append(clients[:i], clients[i+1:]...)
						close(client.Send)
						break
					}
				}
				if len(h.clients[client.ProjectId]) == 0 {
					delete(h.clients, client.ProjectId)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Broadcast pushes an event to every connected client, regardless of
// subscription, and relays it to other instances via Redis.
func (h *Hub) Broadcast(event FeedEvent) {
	data, _ := json.Marshal(event)

	h.mu.RLock()
	for _, clients := range h.clients {
		for _, client := range clients {
			h.push(client, data)
		}
	}
	h.mu.RUnlock()

	h.relay("*", data)
}

// Publish pushes an event to clients subscribed to the given project,
// plus every firehose client.
func (h *Hub) Publish(projectId uuid.UUID, event FeedEvent) {
	event.ProjectId = projectId.String()
	data, _ := json.Marshal(event)

	h.mu.RLock()
	for _, client := range h.clients[projectId] {
		h.push(client, data)
	}
	for _, client := range h.clients[uuid.Nil] {
		h.push(client, data)
	}
	h.mu.RUnlock()

	h.relay(projectId.String(), data)
}

// push delivers without blocking. A client whose buffer is full is
// assumed dead and kicked.
func (h *Hub) push(client *Client, data []byte) {
	select {
	case client.Send <- data:
	default:
		h.logger.Warn("Hub", "Client send buffer full, dropping connection", map[string]interface{}{"project_id": client.ProjectId})
		// Hand off to the run loop; push is called under the read lock,
		// so the unregister send must not block here.
		go func() { h.unregister <- client }()
	}
}

func (h *Hub) relay(target string, data []byte) {
	if h.rdb == nil {
		return
	}
	payload, _ := json.Marshal(map[string]interface{}{
		"target_project_id": target,
		"origin":            h.originId(),
		"message":           json.RawMessage(data),
	})
	h.rdb.Publish(context.Background(), clusterChannel, payload)
}

var instanceId = uuid.New().String()

func (h *Hub) originId() string { return instanceId }

// subscribeToRedis delivers events relayed by other instances to local
// clients. Messages this instance published itself are skipped, since
// those were already delivered locally before the relay.
func (h *Hub) subscribeToRedis() {
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, clusterChannel)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		var payload struct {
			TargetProjectId string          `json:"target_project_id"`
			Origin          string          `json:"origin"`
			Message         json.RawMessage `json:"message"`
		}
		if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
			log.Printf("Redis msg parse error: %v", err)
			continue
		}
		if payload.Origin == h.originId() {
			continue
		}

		if payload.TargetProjectId == "*" {
			h.mu.RLock()
			for _, clients := range h.clients {
				for _, client := range clients {
					h.push(client, payload.Message)
				}
			}
			h.mu.RUnlock()
			continue
		}

		pid, err := uuid.Parse(payload.TargetProjectId)
		if err != nil {
			continue
		}

		h.mu.RLock()
		for _, client := range h.clients[pid] {
			h.push(client, payload.Message)
		}
		for _, client := range h.clients[uuid.Nil] {
			h.push(client, payload.Message)
		}
		h.mu.RUnlock()
	}
}
