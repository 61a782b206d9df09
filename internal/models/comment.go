package models

import (
	"time"

	"gorm.io/gorm"
)

// Comment represents a comment left on a video.
type Comment struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	VideoID   string    `gorm:"type:varchar(36);not null;index:idx_comments_video" json:"video_id"`
	OwnerID   string    `gorm:"type:varchar(36);not null;index" json:"owner_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (Comment) TableName() string {
	return "comments"
}

// BeforeCreate assigns the comment id.
func (c *Comment) BeforeCreate(_ *gorm.DB) error {
	ensureID(&c.ID)
	return nil
}
