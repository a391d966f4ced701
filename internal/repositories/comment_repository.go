package repositories

import (
	"context"

	"vidshare/internal/models"
)

// CommentRepository defines the interface for comment data access.
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id string) (*models.Comment, error)
	ListByVideo(ctx context.Context, videoID string, page Page) ([]models.Comment, error)
	CountByVideo(ctx context.Context, videoID string) (int64, error)
	Delete(ctx context.Context, id string) error
}
