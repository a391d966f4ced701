package repositories

import (
	"context"

	"vidshare/internal/models"
)

// VideoFilter narrows video listings. A nil OwnerIDs matches every owner.
type VideoFilter struct {
	OwnerIDs []string
}

// VideoRepository defines the interface for video data access.
type VideoRepository interface {
	Create(ctx context.Context, video *models.Video) error
	GetByID(ctx context.Context, id string) (*models.Video, error)
	GetByIDs(ctx context.Context, ids []string) ([]models.Video, error)
	List(ctx context.Context, filter VideoFilter, page Page) ([]models.Video, error)
	Count(ctx context.Context, filter VideoFilter) (int64, error)
	Update(ctx context.Context, video *models.Video) error
	UpdateReactionCounts(ctx context.Context, id string, likes, dislikes int64) error
	UpdateCommentsCount(ctx context.Context, id string, count int64) error
	// DeleteCascade removes the video together with its comments and likes.
	DeleteCascade(ctx context.Context, id string) error
}
