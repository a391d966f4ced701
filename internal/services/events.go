package services

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// Routing keys of engagement events.
const (
	EventVideoReaction  = "engagement.reaction"
	EventCommentCreated = "engagement.comment.created"
	EventCommentDeleted = "engagement.comment.deleted"
	EventSubscription   = "engagement.subscription"
	EventCountersStale  = "counters.stale"
	EventVideoDeleted   = "video.deleted"
)

// EngagementEvent is the payload published after an engagement mutation.
type EngagementEvent struct {
	Type      string    `json:"type"`
	UserID    string    `json:"userId,omitempty"`
	VideoID   string    `json:"videoId,omitempty"`
	ChannelID string    `json:"channelId,omitempty"`
	CommentID string    `json:"commentId,omitempty"`
	Reaction  int8      `json:"reaction,omitempty"`
	Counter   string    `json:"counter,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// EventPublisher delivers engagement events to a message broker.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, payload interface{}) error
}

// publish sends evt if a publisher is configured. Delivery failures are
// logged and never fail the request.
func publish(ctx context.Context, p EventPublisher, evt EngagementEvent) {
	if p == nil {
		return
	}
	if evt.Timestamp.IsZero() {
		evt.Timestamp = time.Now().UTC()
	}
	if err := p.Publish(ctx, evt.Type, evt); err != nil {
		logrus.WithError(err).WithField("routing_key", evt.Type).Warn("failed to publish engagement event")
	}
}
