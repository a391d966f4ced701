package repositories

import (
	"context"

	"vidshare/internal/models"
)

// SubscriptionRepository defines the interface for subscription edges.
type SubscriptionRepository interface {
	Exists(ctx context.Context, userID, channelID string) (bool, error)
	// Create inserts the edge if it is absent.
	Create(ctx context.Context, sub *models.Subscription) error
	// Delete removes the edge if it is present.
	Delete(ctx context.Context, userID, channelID string) error
	CountByChannel(ctx context.Context, channelID string) (int64, error)
	ListByUser(ctx context.Context, userID string) ([]models.Subscription, error)
	ChannelIDs(ctx context.Context, userID string) ([]string, error)
}
