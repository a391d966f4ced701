package models

import "time"

// User represents an account on the platform. Every user is also a channel
// that other users can subscribe to.
type User struct {
	ID                 string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Username           string    `json:"username" gorm:"uniqueIndex;type:varchar(100);not null"`
	Email              string    `json:"email" gorm:"uniqueIndex;type:varchar(255);not null"`
	Password           string    `json:"-" gorm:"type:varchar(255);not null"` // bcrypt digest, never serialized
	Avatar             string    `json:"avatar" gorm:"type:varchar(500)"`
	Cover              string    `json:"cover" gorm:"type:varchar(500)"`
	ChannelDescription string    `json:"channelDescription" gorm:"type:text"`
	SubscribersCount   int64     `json:"subscribersCount" gorm:"not null;default:0"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}
