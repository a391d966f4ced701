package repositories

import (
	"context"

	"vidshare/internal/models"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMLikeRepository is a GORM implementation of LikeRepository.
type GORMLikeRepository struct {
	db *gorm.DB
}

// NewGORMLikeRepository creates a new instance of GORMLikeRepository.
func NewGORMLikeRepository(db *gorm.DB) *GORMLikeRepository {
	return &GORMLikeRepository{db: db}
}

// Find returns the edge between userID and videoID.
func (r *GORMLikeRepository) Find(ctx context.Context, userID, videoID string) (*models.Like, error) {
	var like models.Like
	err := r.db.WithContext(ctx).First(&like, "user_id = ? AND video_id = ?", userID, videoID).Error
	if err != nil {
		return nil, notFoundOr(err, "like of user %s on video %s", userID, videoID)
	}
	return &like, nil
}

// Create inserts the edge. The unique (user_id, video_id) index turns a
// concurrent duplicate into a no-op.
func (r *GORMLikeRepository) Create(ctx context.Context, like *models.Like) error {
	if like.ID == "" {
		like.ID = uuid.New().String()
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(like).Error
	if err != nil {
		return errors.Wrap(err, "failed to create like")
	}
	return nil
}

// UpdateSign flips the edge between like and dislike.
func (r *GORMLikeRepository) UpdateSign(ctx context.Context, id string, sign models.Reaction) error {
	err := r.db.WithContext(ctx).Model(&models.Like{}).Where("id = ?", id).Update("sign", sign).Error
	if err != nil {
		return errors.Wrapf(err, "failed to update like %s", id)
	}
	return nil
}

// Delete removes the edge. Deleting an already removed edge is not an error.
func (r *GORMLikeRepository) Delete(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Delete(&models.Like{}, "id = ?", id).Error; err != nil {
		return errors.Wrapf(err, "failed to delete like %s", id)
	}
	return nil
}

// CountByVideo counts the edges with the given sign on a video.
func (r *GORMLikeRepository) CountByVideo(ctx context.Context, videoID string, sign models.Reaction) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Like{}).Where("video_id = ? AND sign = ?", videoID, sign).Count(&n).Error
	if err != nil {
		return 0, errors.Wrapf(err, "failed to count likes of video %s", videoID)
	}
	return n, nil
}

// ListByUser returns one page of a user's edges with the given sign, newest first.
func (r *GORMLikeRepository) ListByUser(ctx context.Context, userID string, sign models.Reaction, page Page) ([]models.Like, error) {
	likes := []models.Like{}
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND sign = ?", userID, sign).
		Order("created_at DESC").
		Offset(page.Offset()).
		Limit(page.Limit()).
		Find(&likes).Error
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list likes of user %s", userID)
	}
	return likes, nil
}

// CountByUser counts a user's edges with the given sign.
func (r *GORMLikeRepository) CountByUser(ctx context.Context, userID string, sign models.Reaction) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Like{}).Where("user_id = ? AND sign = ?", userID, sign).Count(&n).Error
	if err != nil {
		return 0, errors.Wrapf(err, "failed to count likes of user %s", userID)
	}
	return n, nil
}
