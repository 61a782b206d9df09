package models

import (
	"time"

	"gorm.io/gorm"
)

// Tweet is a short text post on a channel.
type Tweet struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	OwnerID   string    `gorm:"type:varchar(36);not null;index" json:"owner_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (Tweet) TableName() string {
	return "tweets"
}

// BeforeCreate assigns the tweet id.
func (t *Tweet) BeforeCreate(_ *gorm.DB) error {
	ensureID(&t.ID)
	return nil
}
