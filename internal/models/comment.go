package models

import "time"

// Comment belongs to one video and one author. Content is immutable.
type Comment struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	UserID    string    `json:"userId" gorm:"type:varchar(36);not null"`
	User      *User     `json:"user,omitempty" gorm:"foreignKey:UserID"`
	VideoID   string    `json:"videoId" gorm:"type:varchar(36);not null;index"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
