package repositories

import (
	"context"

	"vidshare/internal/models"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMSubscriptionRepository is a GORM implementation of SubscriptionRepository.
type GORMSubscriptionRepository struct {
	db *gorm.DB
}

// NewGORMSubscriptionRepository creates a new instance of GORMSubscriptionRepository.
func NewGORMSubscriptionRepository(db *gorm.DB) *GORMSubscriptionRepository {
	return &GORMSubscriptionRepository{db: db}
}

// Exists reports whether userID is subscribed to channelID.
func (r *GORMSubscriptionRepository) Exists(ctx context.Context, userID, channelID string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Subscription{}).
		Where("user_id = ? AND channel_id = ?", userID, channelID).
		Count(&n).Error
	if err != nil {
		return false, errors.Wrapf(err, "failed to look up subscription of %s to %s", userID, channelID)
	}
	return n > 0, nil
}

// Create inserts the edge; the unique (user_id, channel_id) index makes a
// repeated subscribe a no-op.
func (r *GORMSubscriptionRepository) Create(ctx context.Context, sub *models.Subscription) error {
	if sub.ID == "" {
		sub.ID = uuid.New().String()
	}
	err := r.db.WithContext(ctx).Omit("Channel").Clauses(clause.OnConflict{DoNothing: true}).Create(sub).Error
	if err != nil {
		return errors.Wrap(err, "failed to create subscription")
	}
	return nil
}

// Delete removes the edge if present.
func (r *GORMSubscriptionRepository) Delete(ctx context.Context, userID, channelID string) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND channel_id = ?", userID, channelID).
		Delete(&models.Subscription{}).Error
	if err != nil {
		return errors.Wrapf(err, "failed to delete subscription of %s to %s", userID, channelID)
	}
	return nil
}

// CountByChannel counts the subscribers of a channel.
func (r *GORMSubscriptionRepository) CountByChannel(ctx context.Context, channelID string) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.Subscription{}).Where("channel_id = ?", channelID).Count(&n).Error; err != nil {
		return 0, errors.Wrapf(err, "failed to count subscribers of %s", channelID)
	}
	return n, nil
}

// ListByUser returns the subscriptions of userID with their channels loaded.
func (r *GORMSubscriptionRepository) ListByUser(ctx context.Context, userID string) ([]models.Subscription, error) {
	subs := []models.Subscription{}
	err := r.db.WithContext(ctx).
		Preload("Channel").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&subs).Error
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list subscriptions of %s", userID)
	}
	return subs, nil
}

// ChannelIDs returns the IDs of every channel userID is subscribed to.
func (r *GORMSubscriptionRepository) ChannelIDs(ctx context.Context, userID string) ([]string, error) {
	ids := []string{}
	err := r.db.WithContext(ctx).Model(&models.Subscription{}).
		Where("user_id = ?", userID).
		Pluck("channel_id", &ids).Error
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list channel IDs of %s", userID)
	}
	return ids, nil
}
