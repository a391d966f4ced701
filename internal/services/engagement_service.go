package services

import (
	"context"

	"vidshare/internal/models"
	"vidshare/internal/repositories"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// EngagementService implements likes, dislikes and the comment lifecycle.
// Every mutation is followed by a recompute of the affected counters.
type EngagementService struct {
	videos    repositories.VideoRepository
	likes     repositories.LikeRepository
	comments  repositories.CommentRepository
	counters  *CounterService
	publisher EventPublisher
}

// NewEngagementService creates a new EngagementService. publisher may be nil.
func NewEngagementService(
	videos repositories.VideoRepository,
	likes repositories.LikeRepository,
	comments repositories.CommentRepository,
	counters *CounterService,
	publisher EventPublisher,
) *EngagementService {
	return &EngagementService{
		videos:    videos,
		likes:     likes,
		comments:  comments,
		counters:  counters,
		publisher: publisher,
	}
}

// SetReaction applies a like or dislike request from userID to videoID.
// Repeating the current reaction removes it; the opposite reaction flips it.
func (s *EngagementService) SetReaction(ctx context.Context, userID, videoID string, desired models.Reaction) (*VideoView, error) {
	if desired != models.ReactionLike && desired != models.ReactionDislike {
		return nil, errors.Errorf("invalid reaction %d", desired)
	}

	video, err := s.videos.GetByID(ctx, videoID)
	if err != nil {
		return nil, translate(err, "video %s", videoID)
	}

	current, err := s.likes.Find(ctx, userID, videoID)
	if err != nil {
		if !errors.Is(err, repositories.ErrNotFound) {
			return nil, errors.Wrap(err, "failed to load reaction")
		}
		current = nil
	}

	action := nextLikeAction(current, desired)
	switch action {
	case likeActionCreate:
		err = s.likes.Create(ctx, &models.Like{UserID: userID, VideoID: videoID, Sign: desired})
	case likeActionRemove:
		err = s.likes.Delete(ctx, current.ID)
	case likeActionFlip:
		err = s.likes.UpdateSign(ctx, current.ID, desired)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to apply reaction on video %s", videoID)
	}

	state := resultingReaction(action, desired)
	if action == likeActionCreate {
		// A concurrent request may have inserted the pair first.
		stored, err := s.likes.Find(ctx, userID, videoID)
		switch {
		case err == nil:
			state = stored.Sign
		case errors.Is(err, repositories.ErrNotFound):
			state = models.ReactionNone
		default:
			return nil, errors.Wrap(err, "failed to reload reaction")
		}
	}

	if err := s.counters.ReconcileReactions(ctx, video); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"user_id":  userID,
		"video_id": videoID,
		"reaction": state,
	}).Debug("reaction applied")
	publish(ctx, s.publisher, EngagementEvent{
		Type:     EventVideoReaction,
		UserID:   userID,
		VideoID:  videoID,
		Reaction: int8(state),
	})

	return &VideoView{
		Video:      *video,
		IsLiked:    state == models.ReactionLike,
		IsDisliked: state == models.ReactionDislike,
	}, nil
}

// CreateComment adds a comment by userID to videoID.
func (s *EngagementService) CreateComment(ctx context.Context, userID, videoID, content string) (*models.Comment, error) {
	video, err := s.videos.GetByID(ctx, videoID)
	if err != nil {
		return nil, translate(err, "video %s", videoID)
	}

	comment := &models.Comment{
		Content: content,
		UserID:  userID,
		VideoID: videoID,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, errors.Wrap(err, "failed to create comment")
	}

	if err := s.counters.ReconcileComments(ctx, video); err != nil {
		return nil, err
	}

	publish(ctx, s.publisher, EngagementEvent{
		Type:      EventCommentCreated,
		UserID:    userID,
		VideoID:   videoID,
		CommentID: comment.ID,
	})
	return comment, nil
}

// DeleteComment removes commentID from videoID. Only the comment's author may delete it.
func (s *EngagementService) DeleteComment(ctx context.Context, userID, videoID, commentID string) error {
	video, err := s.videos.GetByID(ctx, videoID)
	if err != nil {
		return translate(err, "video %s", videoID)
	}

	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return translate(err, "comment %s", commentID)
	}
	if comment.VideoID != videoID {
		return errors.Wrapf(ErrNotFound, "comment %s on video %s", commentID, videoID)
	}
	if comment.UserID != userID {
		return errors.Wrapf(ErrForbidden, "comment %s is not owned by user %s", commentID, userID)
	}

	if err := s.comments.Delete(ctx, commentID); err != nil {
		return translate(err, "comment %s", commentID)
	}

	if err := s.counters.ReconcileComments(ctx, video); err != nil {
		return err
	}

	publish(ctx, s.publisher, EngagementEvent{
		Type:      EventCommentDeleted,
		UserID:    userID,
		VideoID:   videoID,
		CommentID: commentID,
	})
	return nil
}

// ListComments returns one page of the comments on videoID.
func (s *EngagementService) ListComments(ctx context.Context, videoID string, page repositories.Page) (*CommentPage, error) {
	if _, err := s.videos.GetByID(ctx, videoID); err != nil {
		return nil, translate(err, "video %s", videoID)
	}

	result := &CommentPage{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		comments, err := s.comments.ListByVideo(gctx, videoID, page)
		result.Comments = comments
		return err
	})
	g.Go(func() error {
		n, err := s.comments.CountByVideo(gctx, videoID)
		result.CommentsCount = n
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}
