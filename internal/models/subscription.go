package models

import (
	"time"

	"gorm.io/gorm"
)

// Subscription records that SubscriberID follows the channel ChannelID.
type Subscription struct {
	ID           string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	SubscriberID string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_subscriptions_pair;index" json:"subscriber_id"`
	ChannelID    string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_subscriptions_pair;index" json:"channel_id"`
	CreatedAt    time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM
func (Subscription) TableName() string {
	return "subscriptions"
}

// BeforeCreate assigns the subscription id.
func (s *Subscription) BeforeCreate(_ *gorm.DB) error {
	ensureID(&s.ID)
	return nil
}
