package service

import (
	"context"
	"strings"

	"gitscout-be/internal/pkg/logger"
	"gitscout-be/internal/websocket"
	"gitscout-be/pkg/events"
	pkgNats "gitscout-be/pkg/nats"

	"github.com/google/uuid"
)

// FeedDelivery pushes real-time updates to connected clients.
// Implemented by the WebSocket hub.
type FeedDelivery interface {
	Broadcast(event websocket.FeedEvent)
	Publish(projectId uuid.UUID, event websocket.FeedEvent)
}

// FeedService bridges the durable event bus onto the live WebSocket
// feed. Events carrying a project_id go to that project's subscribers,
// everything else is broadcast.
type FeedService struct {
	subscriber *pkgNats.Subscriber
	delivery   FeedDelivery
	logger     logger.ILogger
}

func NewFeedService(sub *pkgNats.Subscriber, delivery FeedDelivery, log logger.ILogger) *FeedService {
	return &FeedService{
		subscriber: sub,
		delivery:   delivery,
		logger:     log,
	}
}

// Start begins listening to the event bus.
func (s *FeedService) Start() {
	err := s.subscriber.Subscribe("events.>", "ws-feed-worker", s.handleEvent)
	if err != nil {
		s.logger.Error("FeedService", "Failed to start feed subscriber", map[string]interface{}{"error": err})
		return
	}
	s.logger.Info("FeedService", "Feed service started, listening to events.>", nil)
}

func (s *FeedService) handleEvent(ctx context.Context, event events.Event) error {
	if s.delivery == nil {
		return nil
	}

	// The subject carries the stream prefix; clients only see the code.
	typeCode := strings.TrimPrefix(event.EventType(), "events.")
	payload := event.Payload()

	feed := websocket.FeedEvent{
		Type: typeCode,
		Data: payload,
	}

	if pidStr, ok := payload["project_id"].(string); ok {
		if pid, err := uuid.Parse(pidStr); err == nil {
			s.delivery.Publish(pid, feed)
			return nil
		}
	}

	s.delivery.Broadcast(feed)
	return nil
}
