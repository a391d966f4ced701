package models

import "time"

// Subscription is the edge from a subscriber (UserID) to a channel (ChannelID).
// UserID never equals ChannelID.
type Subscription struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID    string    `json:"userId" gorm:"type:varchar(36);not null;uniqueIndex:idx_subscription_user_channel"`
	ChannelID string    `json:"channelId" gorm:"type:varchar(36);not null;uniqueIndex:idx_subscription_user_channel;index:idx_subscription_channel"`
	Channel   *User     `json:"channel,omitempty" gorm:"foreignKey:ChannelID"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
