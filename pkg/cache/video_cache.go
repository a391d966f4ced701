package cache

import (
	"context"
	"encoding/json"
	"time"

	"vidshare/internal/models"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const keyPrefix = "video:"

// Config holds Redis connection settings.
type Config struct {
	Addr     string
	Password string
	DB       int
}

// NewClient connects to Redis and verifies the connection with a PING.
func NewClient(ctx context.Context, cfg Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, err
	}
	logrus.WithField("addr", cfg.Addr).Info("Connect Redis Success")
	return rdb, nil
}

// VideoCache stores videos as JSON under "video:<id>". Redis failures are
// logged and reported as misses so the database stays the source of truth.
type VideoCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewVideoCache creates a VideoCache. Entries expire after ttl.
func NewVideoCache(rdb *redis.Client, ttl time.Duration) *VideoCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &VideoCache{rdb: rdb, ttl: ttl}
}

func key(id string) string {
	return keyPrefix + id
}

// Get returns the cached video and whether it was found.
func (c *VideoCache) Get(ctx context.Context, id string) (*models.Video, bool) {
	data, err := c.rdb.Get(ctx, key(id)).Bytes()
	if err != nil {
		if err != redis.Nil {
			logrus.WithError(err).WithField("video_id", id).Warn("video cache get failed")
		}
		return nil, false
	}
	var video models.Video
	if err := json.Unmarshal(data, &video); err != nil {
		logrus.WithError(err).WithField("video_id", id).Warn("dropping corrupt video cache entry")
		c.Invalidate(ctx, id)
		return nil, false
	}
	return &video, true
}

// Set stores video until the TTL elapses.
func (c *VideoCache) Set(ctx context.Context, video *models.Video) {
	data, err := json.Marshal(video)
	if err != nil {
		logrus.WithError(err).WithField("video_id", video.ID).Warn("video cache encode failed")
		return
	}
	if err := c.rdb.Set(ctx, key(video.ID), data, c.ttl).Err(); err != nil {
		logrus.WithError(err).WithField("video_id", video.ID).Warn("video cache set failed")
	}
}

// Invalidate removes the entry for id.
func (c *VideoCache) Invalidate(ctx context.Context, id string) {
	if err := c.rdb.Del(ctx, key(id)).Err(); err != nil {
		logrus.WithError(err).WithField("video_id", id).Warn("video cache invalidate failed")
	}
}
