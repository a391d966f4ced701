package models

import "time"

// Reaction is the sign stored on a Like edge.
type Reaction int8

const (
	ReactionNone    Reaction = 0
	ReactionLike    Reaction = 1
	ReactionDislike Reaction = -1
)

// Like is the signed edge between a user and a video. A missing row means the
// user has no reaction; at most one row exists per (user, video).
type Like struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID    string    `json:"userId" gorm:"type:varchar(36);not null;uniqueIndex:idx_like_user_video"`
	VideoID   string    `json:"videoId" gorm:"type:varchar(36);not null;uniqueIndex:idx_like_user_video;index:idx_like_video_sign"`
	Sign      Reaction  `json:"sign" gorm:"not null;index:idx_like_video_sign"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
