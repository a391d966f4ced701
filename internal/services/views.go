package services

import "vidshare/internal/models"

// ChannelView is the public projection of a user seen as a channel.
type ChannelView struct {
	ID                 string `json:"id"`
	Username           string `json:"username"`
	Email              string `json:"email"`
	Avatar             string `json:"avatar"`
	Cover              string `json:"cover"`
	ChannelDescription string `json:"channelDescription"`
	SubscribersCount   int64  `json:"subscribersCount"`
	IsSubscribed       bool   `json:"isSubscribed"`
}

// NewChannelView projects u for a viewer whose subscription state is subscribed.
func NewChannelView(u *models.User, subscribed bool) *ChannelView {
	return &ChannelView{
		ID:                 u.ID,
		Username:           u.Username,
		Email:              u.Email,
		Avatar:             u.Avatar,
		Cover:              u.Cover,
		ChannelDescription: u.ChannelDescription,
		SubscribersCount:   u.SubscribersCount,
		IsSubscribed:       subscribed,
	}
}

// ChannelSummary is the short form used in subscription lists.
type ChannelSummary struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
}

// VideoView is a video together with the viewer's relation to it.
type VideoView struct {
	models.Video
	User       *ChannelView `json:"user,omitempty"`
	IsLiked    bool         `json:"isLiked"`
	IsDisliked bool         `json:"isDisliked"`
}

// VideoPage is one page of videos and the total matching count.
type VideoPage struct {
	Videos      []models.Video `json:"videos"`
	VideosCount int64          `json:"videosCount"`
}

// CommentPage is one page of comments and the total count on the video.
type CommentPage struct {
	Comments      []models.Comment `json:"comments"`
	CommentsCount int64            `json:"commentsCount"`
}
