package services

import (
	"context"

	"vidshare/internal/models"
)

// VideoCache holds video rows keyed by video ID, without their owner. Cache
// errors are handled by the implementation; a failed Get is reported as a miss.
type VideoCache interface {
	Get(ctx context.Context, id string) (*models.Video, bool)
	Set(ctx context.Context, video *models.Video)
	Invalidate(ctx context.Context, id string)
}
