package services

import (
	"context"

	"vidshare/internal/models"
	"vidshare/internal/repositories"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// VideoInput carries the fields of a new video.
type VideoInput struct {
	Title       string
	Description string
	VodVideoID  string
	Cover       string
}

// VideoPatch carries the fields of a video edit. Nil fields are left unchanged.
type VideoPatch struct {
	Title       *string
	Description *string
	VodVideoID  *string
	Cover       *string
}

// VideoService handles business logic related to videos.
type VideoService struct {
	videos    repositories.VideoRepository
	users     repositories.UserRepository
	likes     repositories.LikeRepository
	subs      repositories.SubscriptionRepository
	cache     VideoCache
	publisher EventPublisher
}

// NewVideoService creates a new VideoService. cache and publisher may be nil.
func NewVideoService(
	videos repositories.VideoRepository,
	users repositories.UserRepository,
	likes repositories.LikeRepository,
	subs repositories.SubscriptionRepository,
	cache VideoCache,
	publisher EventPublisher,
) *VideoService {
	return &VideoService{
		videos:    videos,
		users:     users,
		likes:     likes,
		subs:      subs,
		cache:     cache,
		publisher: publisher,
	}
}

// CreateVideo publishes a new video owned by userID.
func (s *VideoService) CreateVideo(ctx context.Context, userID string, input VideoInput) (*models.Video, error) {
	video := &models.Video{
		UserID:      userID,
		Title:       input.Title,
		Description: input.Description,
		VodVideoID:  input.VodVideoID,
		Cover:       input.Cover,
	}
	if err := s.videos.Create(ctx, video); err != nil {
		return nil, err
	}
	return video, nil
}

// GetVideo returns videoID as seen by viewerID. An empty viewerID is an
// anonymous viewer whose flags are all false.
func (s *VideoService) GetVideo(ctx context.Context, viewerID, videoID string) (*VideoView, error) {
	video, err := s.load(ctx, videoID)
	if err != nil {
		return nil, err
	}

	owner, err := s.owner(ctx, video)
	if err != nil {
		return nil, err
	}
	view := &VideoView{Video: *video}
	if owner != nil {
		view.User = NewChannelView(owner, false)
	}
	if viewerID == "" {
		return view, nil
	}

	like, err := s.likes.Find(ctx, viewerID, videoID)
	switch {
	case err == nil:
		view.IsLiked = like.Sign == models.ReactionLike
		view.IsDisliked = like.Sign == models.ReactionDislike
	case !errors.Is(err, repositories.ErrNotFound):
		return nil, errors.Wrap(err, "failed to load viewer reaction")
	}

	if view.User != nil {
		subscribed, err := s.subs.Exists(ctx, viewerID, video.UserID)
		if err != nil {
			return nil, err
		}
		view.User.IsSubscribed = subscribed
	}
	return view, nil
}

// load reads a video through the cache. Only the video row is cached; the
// owner changes independently of the video and is never served from cache.
func (s *VideoService) load(ctx context.Context, videoID string) (*models.Video, error) {
	if s.cache != nil {
		if video, ok := s.cache.Get(ctx, videoID); ok {
			video.User = nil
			return video, nil
		}
	}
	video, err := s.videos.GetByID(ctx, videoID)
	if err != nil {
		return nil, translate(err, "video %s", videoID)
	}
	if s.cache != nil {
		row := *video
		row.User = nil
		s.cache.Set(ctx, &row)
	}
	return video, nil
}

// owner returns the owner of video, loading it when video came from cache.
// A missing owner yields nil.
func (s *VideoService) owner(ctx context.Context, video *models.Video) (*models.User, error) {
	if video.User != nil {
		return video.User, nil
	}
	u, err := s.users.GetByID(ctx, video.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to load video owner")
	}
	return u, nil
}

// ListVideos returns one page of all videos, newest first.
func (s *VideoService) ListVideos(ctx context.Context, page repositories.Page) (*VideoPage, error) {
	return s.page(ctx, repositories.VideoFilter{}, page)
}

// ListUserVideos returns one page of the videos owned by userID.
func (s *VideoService) ListUserVideos(ctx context.Context, userID string, page repositories.Page) (*VideoPage, error) {
	return s.page(ctx, repositories.VideoFilter{OwnerIDs: []string{userID}}, page)
}

// Feed returns one page of the videos of every channel userID subscribes to.
func (s *VideoService) Feed(ctx context.Context, userID string, page repositories.Page) (*VideoPage, error) {
	channelIDs, err := s.subs.ChannelIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(channelIDs) == 0 {
		return &VideoPage{Videos: []models.Video{}}, nil
	}
	return s.page(ctx, repositories.VideoFilter{OwnerIDs: channelIDs}, page)
}

func (s *VideoService) page(ctx context.Context, filter repositories.VideoFilter, page repositories.Page) (*VideoPage, error) {
	result := &VideoPage{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		videos, err := s.videos.List(gctx, filter, page)
		result.Videos = videos
		return err
	})
	g.Go(func() error {
		n, err := s.videos.Count(gctx, filter)
		result.VideosCount = n
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}

// LikedVideos returns one page of the videos userID liked, most recent like first.
func (s *VideoService) LikedVideos(ctx context.Context, userID string, page repositories.Page) (*VideoPage, error) {
	var (
		likes []models.Like
		total int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		likes, err = s.likes.ListByUser(gctx, userID, models.ReactionLike, page)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = s.likes.CountByUser(gctx, userID, models.ReactionLike)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(likes))
	for _, l := range likes {
		ids = append(ids, l.VideoID)
	}
	videos, err := s.videos.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]models.Video, len(videos))
	for _, v := range videos {
		byID[v.ID] = v
	}
	ordered := make([]models.Video, 0, len(videos))
	for _, id := range ids {
		if v, ok := byID[id]; ok {
			ordered = append(ordered, v)
		}
	}
	return &VideoPage{Videos: ordered, VideosCount: total}, nil
}

// UpdateVideo applies patch to videoID. Only the owner may edit a video.
func (s *VideoService) UpdateVideo(ctx context.Context, userID, videoID string, patch VideoPatch) (*models.Video, error) {
	video, err := s.owned(ctx, userID, videoID)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		video.Title = *patch.Title
	}
	if patch.Description != nil {
		video.Description = *patch.Description
	}
	if patch.VodVideoID != nil {
		video.VodVideoID = *patch.VodVideoID
	}
	if patch.Cover != nil {
		video.Cover = *patch.Cover
	}

	if err := s.videos.Update(ctx, video); err != nil {
		return nil, err
	}
	s.invalidate(ctx, videoID)
	return video, nil
}

// DeleteVideo removes videoID together with its comments and likes. Only the
// owner may delete a video.
func (s *VideoService) DeleteVideo(ctx context.Context, userID, videoID string) error {
	if _, err := s.owned(ctx, userID, videoID); err != nil {
		return err
	}
	if err := s.videos.DeleteCascade(ctx, videoID); err != nil {
		return translate(err, "video %s", videoID)
	}
	s.invalidate(ctx, videoID)

	logrus.WithFields(logrus.Fields{"user_id": userID, "video_id": videoID}).Info("video deleted")
	publish(ctx, s.publisher, EngagementEvent{Type: EventVideoDeleted, UserID: userID, VideoID: videoID})
	return nil
}

// owned loads videoID from the store and checks that userID owns it.
func (s *VideoService) owned(ctx context.Context, userID, videoID string) (*models.Video, error) {
	video, err := s.videos.GetByID(ctx, videoID)
	if err != nil {
		return nil, translate(err, "video %s", videoID)
	}
	if video.UserID != userID {
		return nil, errors.Wrapf(ErrForbidden, "video %s is not owned by user %s", videoID, userID)
	}
	return video, nil
}

func (s *VideoService) invalidate(ctx context.Context, videoID string) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, videoID)
	}
}
