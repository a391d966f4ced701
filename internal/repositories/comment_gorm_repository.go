package repositories

import (
	"context"

	"vidshare/internal/models"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// GORMCommentRepository is a GORM implementation of CommentRepository.
type GORMCommentRepository struct {
	db *gorm.DB
}

// NewGORMCommentRepository creates a new instance of GORMCommentRepository.
func NewGORMCommentRepository(db *gorm.DB) *GORMCommentRepository {
	return &GORMCommentRepository{db: db}
}

// Create inserts a comment and loads its author.
func (r *GORMCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if comment.ID == "" {
		comment.ID = uuid.New().String()
	}
	db := r.db.WithContext(ctx)
	if err := db.Omit("User").Create(comment).Error; err != nil {
		return errors.Wrap(err, "failed to create comment")
	}
	var author models.User
	if err := db.First(&author, "id = ?", comment.UserID).Error; err == nil {
		comment.User = &author
	}
	return nil
}

// GetByID retrieves a comment by its ID.
func (r *GORMCommentRepository) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).First(&comment, "id = ?", id).Error; err != nil {
		return nil, notFoundOr(err, "comment with ID %s", id)
	}
	return &comment, nil
}

// ListByVideo returns one page of a video's comments, oldest first.
func (r *GORMCommentRepository) ListByVideo(ctx context.Context, videoID string, page Page) ([]models.Comment, error) {
	comments := []models.Comment{}
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("video_id = ?", videoID).
		Order("created_at ASC").
		Offset(page.Offset()).
		Limit(page.Limit()).
		Find(&comments).Error
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list comments of video %s", videoID)
	}
	return comments, nil
}

// CountByVideo counts the comments attached to a video.
func (r *GORMCommentRepository) CountByVideo(ctx context.Context, videoID string) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.Comment{}).Where("video_id = ?", videoID).Count(&n).Error; err != nil {
		return 0, errors.Wrapf(err, "failed to count comments of video %s", videoID)
	}
	return n, nil
}

// Delete removes a comment by its ID.
func (r *GORMCommentRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.Comment{}, "id = ?", id)
	if res.Error != nil {
		return errors.Wrap(res.Error, "failed to delete comment")
	}
	if res.RowsAffected == 0 {
		return errors.Wrapf(ErrNotFound, "comment with ID %s for deletion", id)
	}
	return nil
}
