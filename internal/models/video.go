package models

import "time"

// Video is owned by exactly one user. LikesCount, DislikesCount and
// CommentsCount are denormalized and only written by counter reconciliation.
type Video struct {
	ID            string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID        string    `json:"userId" gorm:"type:varchar(36);not null;index"`
	User          *User     `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Title         string    `json:"title" gorm:"type:varchar(255);not null"`
	Description   string    `json:"description" gorm:"type:text"`
	VodVideoID    string    `json:"vodVideoId" gorm:"type:varchar(255)"`
	Cover         string    `json:"cover" gorm:"type:varchar(500)"`
	LikesCount    int64     `json:"likesCount" gorm:"not null;default:0"`
	DislikesCount int64     `json:"dislikesCount" gorm:"not null;default:0"`
	CommentsCount int64     `json:"commentsCount" gorm:"not null;default:0"`
	CreatedAt     time.Time `json:"createdAt" gorm:"index"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
