package services

import (
	"context"

	"vidshare/internal/models"
	"vidshare/internal/repositories"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Counter names carried by counters.stale events.
const (
	CounterReactions   = "reactions"
	CounterComments    = "comments"
	CounterSubscribers = "subscribers"
)

// CounterService recomputes denormalized counters from their source records.
// Counters are never incremented in place: each one is overwritten with the
// current count of its edge or child set, so a lost update heals on the next
// recompute.
//
// The recompute runs after the edge mutation without a surrounding
// transaction. If it fails the counter stays stale until the next mutation
// of the same set, or until the reconcile worker handles the counters.stale
// event published here.
type CounterService struct {
	videos    repositories.VideoRepository
	users     repositories.UserRepository
	likes     repositories.LikeRepository
	comments  repositories.CommentRepository
	subs      repositories.SubscriptionRepository
	cache     VideoCache
	publisher EventPublisher
}

// NewCounterService creates a new CounterService. cache and publisher may be nil.
func NewCounterService(
	videos repositories.VideoRepository,
	users repositories.UserRepository,
	likes repositories.LikeRepository,
	comments repositories.CommentRepository,
	subs repositories.SubscriptionRepository,
	cache VideoCache,
	publisher EventPublisher,
) *CounterService {
	return &CounterService{
		videos:    videos,
		users:     users,
		likes:     likes,
		comments:  comments,
		subs:      subs,
		cache:     cache,
		publisher: publisher,
	}
}

// ReconcileReactions recomputes likesCount and dislikesCount of video and
// updates the struct in place.
func (s *CounterService) ReconcileReactions(ctx context.Context, video *models.Video) error {
	return s.reconcileReactions(ctx, video, true)
}

// ReconcileComments recomputes commentsCount of video and updates the struct in place.
func (s *CounterService) ReconcileComments(ctx context.Context, video *models.Video) error {
	return s.reconcileComments(ctx, video, true)
}

// ReconcileSubscribers recomputes subscribersCount of channel and updates the struct in place.
func (s *CounterService) ReconcileSubscribers(ctx context.Context, channel *models.User) error {
	return s.reconcileSubscribers(ctx, channel, true)
}

// ReconcileVideoByID recomputes every counter of the video with the given ID.
// A video deleted in the meantime is not an error. A failure is returned
// without publishing counters.stale; the caller owns the retry.
func (s *CounterService) ReconcileVideoByID(ctx context.Context, id string) (*models.Video, error) {
	video, err := s.videos.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "failed to load video %s for reconciliation", id)
	}
	if err := s.reconcileReactions(ctx, video, false); err != nil {
		return nil, err
	}
	if err := s.reconcileComments(ctx, video, false); err != nil {
		return nil, err
	}
	return video, nil
}

// ReconcileChannelByID recomputes subscribersCount of the user with the given
// ID. Like ReconcileVideoByID it never publishes counters.stale.
func (s *CounterService) ReconcileChannelByID(ctx context.Context, id string) (*models.User, error) {
	channel, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "failed to load channel %s for reconciliation", id)
	}
	if err := s.reconcileSubscribers(ctx, channel, false); err != nil {
		return nil, err
	}
	return channel, nil
}

func (s *CounterService) reconcileReactions(ctx context.Context, video *models.Video, publishStale bool) error {
	stale := EngagementEvent{Type: EventCountersStale, VideoID: video.ID, Counter: CounterReactions}

	likes, err := s.likes.CountByVideo(ctx, video.ID, models.ReactionLike)
	if err != nil {
		return s.fail(ctx, stale, err, publishStale)
	}
	dislikes, err := s.likes.CountByVideo(ctx, video.ID, models.ReactionDislike)
	if err != nil {
		return s.fail(ctx, stale, err, publishStale)
	}
	if err := s.videos.UpdateReactionCounts(ctx, video.ID, likes, dislikes); err != nil {
		return s.fail(ctx, stale, err, publishStale)
	}

	video.LikesCount = likes
	video.DislikesCount = dislikes
	s.invalidate(ctx, video.ID)
	return nil
}

func (s *CounterService) reconcileComments(ctx context.Context, video *models.Video, publishStale bool) error {
	stale := EngagementEvent{Type: EventCountersStale, VideoID: video.ID, Counter: CounterComments}

	n, err := s.comments.CountByVideo(ctx, video.ID)
	if err != nil {
		return s.fail(ctx, stale, err, publishStale)
	}
	if err := s.videos.UpdateCommentsCount(ctx, video.ID, n); err != nil {
		return s.fail(ctx, stale, err, publishStale)
	}

	video.CommentsCount = n
	s.invalidate(ctx, video.ID)
	return nil
}

func (s *CounterService) reconcileSubscribers(ctx context.Context, channel *models.User, publishStale bool) error {
	stale := EngagementEvent{Type: EventCountersStale, ChannelID: channel.ID, Counter: CounterSubscribers}

	n, err := s.subs.CountByChannel(ctx, channel.ID)
	if err != nil {
		return s.fail(ctx, stale, err, publishStale)
	}
	if err := s.users.UpdateSubscribersCount(ctx, channel.ID, n); err != nil {
		return s.fail(ctx, stale, err, publishStale)
	}

	channel.SubscribersCount = n
	return nil
}

// fail logs a failed recompute and, when publishStale is set, reports the
// counter on counters.stale.
func (s *CounterService) fail(ctx context.Context, evt EngagementEvent, err error, publishStale bool) error {
	logrus.WithError(err).WithFields(logrus.Fields{
		"counter":    evt.Counter,
		"video_id":   evt.VideoID,
		"channel_id": evt.ChannelID,
	}).Error("counter reconciliation failed, counter is stale")
	if publishStale {
		publish(ctx, s.publisher, evt)
	}
	return errors.Wrapf(err, "failed to reconcile %s counter", evt.Counter)
}

func (s *CounterService) invalidate(ctx context.Context, videoID string) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, videoID)
	}
}
