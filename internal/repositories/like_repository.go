package repositories

import (
	"context"

	"vidshare/internal/models"
)

// LikeRepository defines the interface for like/dislike edges.
type LikeRepository interface {
	// Find returns the edge between userID and videoID or ErrNotFound.
	Find(ctx context.Context, userID, videoID string) (*models.Like, error)
	// Create inserts the edge; an existing edge for the same pair is left as is.
	Create(ctx context.Context, like *models.Like) error
	UpdateSign(ctx context.Context, id string, sign models.Reaction) error
	Delete(ctx context.Context, id string) error
	CountByVideo(ctx context.Context, videoID string, sign models.Reaction) (int64, error)
	ListByUser(ctx context.Context, userID string, sign models.Reaction, page Page) ([]models.Like, error)
	CountByUser(ctx context.Context, userID string, sign models.Reaction) (int64, error)
}
