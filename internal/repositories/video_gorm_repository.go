package repositories

import (
	"context"

	"vidshare/internal/models"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// GORMVideoRepository is a GORM implementation of VideoRepository.
type GORMVideoRepository struct {
	db *gorm.DB
}

// NewGORMVideoRepository creates a new instance of GORMVideoRepository.
func NewGORMVideoRepository(db *gorm.DB) *GORMVideoRepository {
	return &GORMVideoRepository{db: db}
}

func (r *GORMVideoRepository) filtered(ctx context.Context, filter VideoFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&models.Video{})
	if filter.OwnerIDs != nil {
		q = q.Where("user_id IN ?", filter.OwnerIDs)
	}
	return q
}

// Create inserts a new video.
func (r *GORMVideoRepository) Create(ctx context.Context, video *models.Video) error {
	if video.ID == "" {
		video.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Omit("User").Create(video).Error; err != nil {
		return errors.Wrap(err, "failed to create video")
	}
	return nil
}

// GetByID retrieves a video and its owner.
func (r *GORMVideoRepository) GetByID(ctx context.Context, id string) (*models.Video, error) {
	var video models.Video
	if err := r.db.WithContext(ctx).Preload("User").First(&video, "id = ?", id).Error; err != nil {
		return nil, notFoundOr(err, "video with ID %s", id)
	}
	return &video, nil
}

// GetByIDs retrieves the videos whose IDs are listed, in no particular order.
func (r *GORMVideoRepository) GetByIDs(ctx context.Context, ids []string) ([]models.Video, error) {
	videos := []models.Video{}
	if len(ids) == 0 {
		return videos, nil
	}
	if err := r.db.WithContext(ctx).Preload("User").Where("id IN ?", ids).Find(&videos).Error; err != nil {
		return nil, errors.Wrap(err, "failed to get videos by IDs")
	}
	return videos, nil
}

// List returns one page of videos, newest first.
func (r *GORMVideoRepository) List(ctx context.Context, filter VideoFilter, page Page) ([]models.Video, error) {
	videos := []models.Video{}
	err := r.filtered(ctx, filter).
		Preload("User").
		Order("created_at DESC").
		Offset(page.Offset()).
		Limit(page.Limit()).
		Find(&videos).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list videos")
	}
	return videos, nil
}

// Count returns the number of videos matching filter.
func (r *GORMVideoRepository) Count(ctx context.Context, filter VideoFilter) (int64, error) {
	var n int64
	if err := r.filtered(ctx, filter).Count(&n).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count videos")
	}
	return n, nil
}

// Update saves the editable fields of a video. The owner and the counters
// are never written here.
func (r *GORMVideoRepository) Update(ctx context.Context, video *models.Video) error {
	err := r.db.WithContext(ctx).Model(&models.Video{}).Where("id = ?", video.ID).Updates(map[string]interface{}{
		"title":        video.Title,
		"description":  video.Description,
		"vod_video_id": video.VodVideoID,
		"cover":        video.Cover,
	}).Error
	if err != nil {
		return errors.Wrapf(err, "failed to update video %s", video.ID)
	}
	return nil
}

// UpdateReactionCounts overwrites likes_count and dislikes_count in one statement.
func (r *GORMVideoRepository) UpdateReactionCounts(ctx context.Context, id string, likes, dislikes int64) error {
	err := r.db.WithContext(ctx).Model(&models.Video{}).Where("id = ?", id).Updates(map[string]interface{}{
		"likes_count":    likes,
		"dislikes_count": dislikes,
	}).Error
	if err != nil {
		return errors.Wrapf(err, "failed to update reaction counts of video %s", id)
	}
	return nil
}

// UpdateCommentsCount overwrites comments_count.
func (r *GORMVideoRepository) UpdateCommentsCount(ctx context.Context, id string, count int64) error {
	err := r.db.WithContext(ctx).Model(&models.Video{}).Where("id = ?", id).Update("comments_count", count).Error
	if err != nil {
		return errors.Wrapf(err, "failed to update comments count of video %s", id)
	}
	return nil
}

// DeleteCascade removes the video, its comments and its likes in one transaction.
func (r *GORMVideoRepository) DeleteCascade(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("video_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return errors.Wrapf(err, "failed to delete likes of video %s", id)
		}
		if err := tx.Where("video_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return errors.Wrapf(err, "failed to delete comments of video %s", id)
		}
		res := tx.Where("id = ?", id).Delete(&models.Video{})
		if res.Error != nil {
			return errors.Wrapf(res.Error, "failed to delete video %s", id)
		}
		if res.RowsAffected == 0 {
			return errors.Wrapf(ErrNotFound, "video with ID %s for deletion", id)
		}
		return nil
	})
}
