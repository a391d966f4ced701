package services_test

import (
	"context"
	"testing"

	"vidshare/internal/models"
	"vidshare/internal/repositories"
	"vidshare/internal/services"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type engagementFixture struct {
	videos    *MockVideoRepository
	users     *MockUserRepository
	likes     *MockLikeRepository
	comments  *MockCommentRepository
	subs      *MockSubscriptionRepository
	publisher *MockPublisher
	service   *services.EngagementService
}

func newEngagementFixture() *engagementFixture {
	f := &engagementFixture{
		videos:    new(MockVideoRepository),
		users:     new(MockUserRepository),
		likes:     new(MockLikeRepository),
		comments:  new(MockCommentRepository),
		subs:      new(MockSubscriptionRepository),
		publisher: new(MockPublisher),
	}
	counters := services.NewCounterService(f.videos, f.users, f.likes, f.comments, f.subs, nil, f.publisher)
	f.service = services.NewEngagementService(f.videos, f.likes, f.comments, counters, f.publisher)
	return f
}

func (f *engagementFixture) expectReactionCounts(videoID string, likes, dislikes int64) {
	f.likes.On("CountByVideo", mock.Anything, videoID, models.ReactionLike).Return(likes, nil).Once()
	f.likes.On("CountByVideo", mock.Anything, videoID, models.ReactionDislike).Return(dislikes, nil).Once()
	f.videos.On("UpdateReactionCounts", mock.Anything, videoID, likes, dislikes).Return(nil).Once()
}

func (f *engagementFixture) assertAll(t *testing.T) {
	f.videos.AssertExpectations(t)
	f.likes.AssertExpectations(t)
	f.comments.AssertExpectations(t)
	f.publisher.AssertExpectations(t)
}

func TestEngagementService_SetReaction_CreatesEdge(t *testing.T) {
	f := newEngagementFixture()
	video := &models.Video{ID: "v1", UserID: "owner"}

	f.videos.On("GetByID", mock.Anything, "v1").Return(video, nil).Once()
	f.likes.On("Find", mock.Anything, "u1", "v1").Return(nil, notFound).Once()
	f.likes.On("Create", mock.Anything, mock.MatchedBy(func(l *models.Like) bool {
		return l.UserID == "u1" && l.VideoID == "v1" && l.Sign == models.ReactionLike
	})).Return(nil).Once()
	f.likes.On("Find", mock.Anything, "u1", "v1").Return(&models.Like{ID: "l1", Sign: models.ReactionLike}, nil).Once()
	f.expectReactionCounts("v1", 1, 0)
	f.publisher.On("Publish", mock.Anything, services.EventVideoReaction, mock.MatchedBy(func(e services.EngagementEvent) bool {
		return e.Reaction == int8(models.ReactionLike) && e.UserID == "u1"
	})).Return(nil).Once()

	view, err := f.service.SetReaction(context.Background(), "u1", "v1", models.ReactionLike)
	require.NoError(t, err)
	assert.True(t, view.IsLiked)
	assert.False(t, view.IsDisliked)
	assert.Equal(t, int64(1), view.LikesCount)
	assert.Zero(t, view.DislikesCount)
	f.assertAll(t)
}

func TestEngagementService_SetReaction_LostInsertReportsStoredEdge(t *testing.T) {
	f := newEngagementFixture()
	video := &models.Video{ID: "v1", UserID: "owner"}

	// A concurrent like wins the insert; this dislike is ignored by the store.
	f.videos.On("GetByID", mock.Anything, "v1").Return(video, nil).Once()
	f.likes.On("Find", mock.Anything, "u1", "v1").Return(nil, notFound).Once()
	f.likes.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
	f.likes.On("Find", mock.Anything, "u1", "v1").Return(&models.Like{ID: "l1", Sign: models.ReactionLike}, nil).Once()
	f.expectReactionCounts("v1", 1, 0)
	f.publisher.On("Publish", mock.Anything, services.EventVideoReaction, mock.MatchedBy(func(e services.EngagementEvent) bool {
		return e.Reaction == int8(models.ReactionLike)
	})).Return(nil).Once()

	view, err := f.service.SetReaction(context.Background(), "u1", "v1", models.ReactionDislike)
	require.NoError(t, err)
	assert.True(t, view.IsLiked)
	assert.False(t, view.IsDisliked)
	assert.Equal(t, int64(1), view.LikesCount)
	f.assertAll(t)
}

func TestEngagementService_SetReaction_RepeatRemovesEdge(t *testing.T) {
	f := newEngagementFixture()
	video := &models.Video{ID: "v1", UserID: "owner", DislikesCount: 1}
	existing := &models.Like{ID: "l1", UserID: "u1", VideoID: "v1", Sign: models.ReactionDislike}

	f.videos.On("GetByID", mock.Anything, "v1").Return(video, nil).Once()
	f.likes.On("Find", mock.Anything, "u1", "v1").Return(existing, nil).Once()
	f.likes.On("Delete", mock.Anything, "l1").Return(nil).Once()
	f.expectReactionCounts("v1", 0, 0)
	f.publisher.On("Publish", mock.Anything, services.EventVideoReaction, mock.Anything).Return(nil).Once()

	view, err := f.service.SetReaction(context.Background(), "u1", "v1", models.ReactionDislike)
	require.NoError(t, err)
	assert.False(t, view.IsLiked)
	assert.False(t, view.IsDisliked)
	assert.Zero(t, view.DislikesCount)
	f.assertAll(t)
}

func TestEngagementService_SetReaction_OppositeFlipsEdge(t *testing.T) {
	f := newEngagementFixture()
	video := &models.Video{ID: "v1", UserID: "owner", LikesCount: 1}
	existing := &models.Like{ID: "l1", UserID: "u1", VideoID: "v1", Sign: models.ReactionLike}

	f.videos.On("GetByID", mock.Anything, "v1").Return(video, nil).Once()
	f.likes.On("Find", mock.Anything, "u1", "v1").Return(existing, nil).Once()
	f.likes.On("UpdateSign", mock.Anything, "l1", models.ReactionDislike).Return(nil).Once()
	f.expectReactionCounts("v1", 0, 1)
	f.publisher.On("Publish", mock.Anything, services.EventVideoReaction, mock.Anything).Return(nil).Once()

	view, err := f.service.SetReaction(context.Background(), "u1", "v1", models.ReactionDislike)
	require.NoError(t, err)
	assert.False(t, view.IsLiked)
	assert.True(t, view.IsDisliked)
	assert.Zero(t, view.LikesCount)
	assert.Equal(t, int64(1), view.DislikesCount)
	f.assertAll(t)
}

func TestEngagementService_SetReaction_MissingVideo(t *testing.T) {
	f := newEngagementFixture()
	f.videos.On("GetByID", mock.Anything, "nope").Return(nil, notFound).Once()

	_, err := f.service.SetReaction(context.Background(), "u1", "nope", models.ReactionLike)
	assert.True(t, errors.Is(err, services.ErrNotFound))
	f.likes.AssertNotCalled(t, "Find", mock.Anything, mock.Anything, mock.Anything)
	f.assertAll(t)
}

func TestEngagementService_SetReaction_InvalidReaction(t *testing.T) {
	f := newEngagementFixture()
	_, err := f.service.SetReaction(context.Background(), "u1", "v1", models.ReactionNone)
	assert.Error(t, err)
	f.videos.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestEngagementService_SetReaction_ReconcileFailureMarksStale(t *testing.T) {
	f := newEngagementFixture()
	video := &models.Video{ID: "v1", UserID: "owner"}
	dbErr := errors.New("connection reset")

	f.videos.On("GetByID", mock.Anything, "v1").Return(video, nil).Once()
	f.likes.On("Find", mock.Anything, "u1", "v1").Return(nil, notFound).Once()
	f.likes.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
	f.likes.On("Find", mock.Anything, "u1", "v1").Return(&models.Like{ID: "l1", Sign: models.ReactionLike}, nil).Once()
	f.likes.On("CountByVideo", mock.Anything, "v1", models.ReactionLike).Return(int64(0), dbErr).Once()
	f.publisher.On("Publish", mock.Anything, services.EventCountersStale, mock.MatchedBy(func(e services.EngagementEvent) bool {
		return e.VideoID == "v1" && e.Counter == services.CounterReactions
	})).Return(nil).Once()

	_, err := f.service.SetReaction(context.Background(), "u1", "v1", models.ReactionLike)
	assert.Error(t, err)
	assert.True(t, errors.Is(err, dbErr))
	f.videos.AssertNotCalled(t, "UpdateReactionCounts", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.assertAll(t)
}

func TestEngagementService_CreateComment(t *testing.T) {
	f := newEngagementFixture()
	video := &models.Video{ID: "v1", UserID: "owner"}

	f.videos.On("GetByID", mock.Anything, "v1").Return(video, nil).Once()
	f.comments.On("Create", mock.Anything, mock.MatchedBy(func(c *models.Comment) bool {
		return c.UserID == "u1" && c.VideoID == "v1" && c.Content == "great"
	})).Run(func(args mock.Arguments) { args.Get(1).(*models.Comment).ID = "c1" }).Return(nil).Once()
	f.comments.On("CountByVideo", mock.Anything, "v1").Return(int64(3), nil).Once()
	f.videos.On("UpdateCommentsCount", mock.Anything, "v1", int64(3)).Return(nil).Once()
	f.publisher.On("Publish", mock.Anything, services.EventCommentCreated, mock.Anything).Return(nil).Once()

	comment, err := f.service.CreateComment(context.Background(), "u1", "v1", "great")
	require.NoError(t, err)
	assert.Equal(t, "c1", comment.ID)
	assert.Equal(t, int64(3), video.CommentsCount)
	f.assertAll(t)
}

func TestEngagementService_CreateComment_MissingVideo(t *testing.T) {
	f := newEngagementFixture()
	f.videos.On("GetByID", mock.Anything, "nope").Return(nil, notFound).Once()

	_, err := f.service.CreateComment(context.Background(), "u1", "nope", "hello")
	assert.True(t, errors.Is(err, services.ErrNotFound))
	f.comments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestEngagementService_DeleteComment(t *testing.T) {
	video := &models.Video{ID: "v1", UserID: "owner"}
	comment := &models.Comment{ID: "c1", UserID: "author", VideoID: "v1"}

	t.Run("author deletes", func(t *testing.T) {
		f := newEngagementFixture()
		f.videos.On("GetByID", mock.Anything, "v1").Return(video, nil).Once()
		f.comments.On("GetByID", mock.Anything, "c1").Return(comment, nil).Once()
		f.comments.On("Delete", mock.Anything, "c1").Return(nil).Once()
		f.comments.On("CountByVideo", mock.Anything, "v1").Return(int64(0), nil).Once()
		f.videos.On("UpdateCommentsCount", mock.Anything, "v1", int64(0)).Return(nil).Once()
		f.publisher.On("Publish", mock.Anything, services.EventCommentDeleted, mock.Anything).Return(nil).Once()

		require.NoError(t, f.service.DeleteComment(context.Background(), "author", "v1", "c1"))
		f.assertAll(t)
	})

	t.Run("non-author is forbidden", func(t *testing.T) {
		f := newEngagementFixture()
		f.videos.On("GetByID", mock.Anything, "v1").Return(video, nil).Once()
		f.comments.On("GetByID", mock.Anything, "c1").Return(comment, nil).Once()

		err := f.service.DeleteComment(context.Background(), "intruder", "v1", "c1")
		assert.True(t, errors.Is(err, services.ErrForbidden))
		f.comments.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
		f.comments.AssertNotCalled(t, "CountByVideo", mock.Anything, mock.Anything)
	})

	t.Run("comment on another video", func(t *testing.T) {
		f := newEngagementFixture()
		f.videos.On("GetByID", mock.Anything, "v2").Return(&models.Video{ID: "v2"}, nil).Once()
		f.comments.On("GetByID", mock.Anything, "c1").Return(comment, nil).Once()

		err := f.service.DeleteComment(context.Background(), "author", "v2", "c1")
		assert.True(t, errors.Is(err, services.ErrNotFound))
		f.comments.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("missing comment", func(t *testing.T) {
		f := newEngagementFixture()
		f.videos.On("GetByID", mock.Anything, "v1").Return(video, nil).Once()
		f.comments.On("GetByID", mock.Anything, "gone").Return(nil, notFound).Once()

		err := f.service.DeleteComment(context.Background(), "author", "v1", "gone")
		assert.True(t, errors.Is(err, services.ErrNotFound))
	})
}

func TestEngagementService_ListComments(t *testing.T) {
	f := newEngagementFixture()
	page := repositories.NewPage(2, 5)
	comments := []models.Comment{{ID: "c6"}, {ID: "c7"}}

	f.videos.On("GetByID", mock.Anything, "v1").Return(&models.Video{ID: "v1"}, nil).Once()
	f.comments.On("ListByVideo", mock.Anything, "v1", page).Return(comments, nil).Once()
	f.comments.On("CountByVideo", mock.Anything, "v1").Return(int64(7), nil).Once()

	result, err := f.service.ListComments(context.Background(), "v1", page)
	require.NoError(t, err)
	assert.Len(t, result.Comments, 2)
	assert.Equal(t, int64(7), result.CommentsCount)
	f.assertAll(t)
}
