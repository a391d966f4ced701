package services

import (
	"context"

	"vidshare/internal/models"
	"vidshare/internal/repositories"

	"github.com/pkg/errors"
)

// ChannelService implements subscriptions between users and channels.
type ChannelService struct {
	users     repositories.UserRepository
	subs      repositories.SubscriptionRepository
	counters  *CounterService
	publisher EventPublisher
}

// NewChannelService creates a new ChannelService. publisher may be nil.
func NewChannelService(
	users repositories.UserRepository,
	subs repositories.SubscriptionRepository,
	counters *CounterService,
	publisher EventPublisher,
) *ChannelService {
	return &ChannelService{
		users:     users,
		subs:      subs,
		counters:  counters,
		publisher: publisher,
	}
}

// Subscribe makes userID a subscriber of channelID. Subscribing twice is a no-op.
func (s *ChannelService) Subscribe(ctx context.Context, userID, channelID string) (*ChannelView, error) {
	if userID == channelID {
		return nil, errors.Wrap(ErrConflict, "cannot subscribe to self")
	}
	channel, err := s.users.GetByID(ctx, channelID)
	if err != nil {
		return nil, translate(err, "channel %s", channelID)
	}

	if err := s.subs.Create(ctx, &models.Subscription{UserID: userID, ChannelID: channelID}); err != nil {
		return nil, err
	}
	if err := s.counters.ReconcileSubscribers(ctx, channel); err != nil {
		return nil, err
	}

	publish(ctx, s.publisher, EngagementEvent{Type: EventSubscription, UserID: userID, ChannelID: channelID, Reaction: 1})
	return NewChannelView(channel, true), nil
}

// Unsubscribe removes the subscription of userID to channelID if present.
func (s *ChannelService) Unsubscribe(ctx context.Context, userID, channelID string) (*ChannelView, error) {
	if userID == channelID {
		return nil, errors.Wrap(ErrConflict, "cannot unsubscribe from self")
	}
	channel, err := s.users.GetByID(ctx, channelID)
	if err != nil {
		return nil, translate(err, "channel %s", channelID)
	}

	if err := s.subs.Delete(ctx, userID, channelID); err != nil {
		return nil, err
	}
	if err := s.counters.ReconcileSubscribers(ctx, channel); err != nil {
		return nil, err
	}

	publish(ctx, s.publisher, EngagementEvent{Type: EventSubscription, UserID: userID, ChannelID: channelID, Reaction: -1})
	return NewChannelView(channel, false), nil
}

// GetChannel returns channelID as seen by viewerID. An empty viewerID is an
// anonymous viewer.
func (s *ChannelService) GetChannel(ctx context.Context, viewerID, channelID string) (*ChannelView, error) {
	channel, err := s.users.GetByID(ctx, channelID)
	if err != nil {
		return nil, translate(err, "channel %s", channelID)
	}

	subscribed := false
	if viewerID != "" {
		subscribed, err = s.subs.Exists(ctx, viewerID, channelID)
		if err != nil {
			return nil, err
		}
	}
	return NewChannelView(channel, subscribed), nil
}

// ListSubscriptions returns the channels userID is subscribed to.
func (s *ChannelService) ListSubscriptions(ctx context.Context, userID string) ([]ChannelSummary, error) {
	subs, err := s.subs.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	channels := make([]ChannelSummary, 0, len(subs))
	for _, sub := range subs {
		if sub.Channel == nil {
			continue
		}
		channels = append(channels, ChannelSummary{
			ID:       sub.Channel.ID,
			Username: sub.Channel.Username,
			Avatar:   sub.Channel.Avatar,
		})
	}
	return channels, nil
}
