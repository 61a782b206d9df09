package models

import (
	"time"

	"gorm.io/gorm"
)

// Video represents an uploaded video owned by a channel.
type Video struct {
	ID              string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	OwnerID         string    `gorm:"type:varchar(36);not null;index:idx_videos_owner" json:"owner_id"`
	Title           string    `gorm:"size:200;not null" json:"title"`
	Description     string    `gorm:"type:text" json:"description"`
	MediaRef        string    `gorm:"size:500;not null" json:"media_ref"`
	ThumbnailRef    string    `gorm:"size:500" json:"thumbnail_ref"`
	DurationSeconds int       `gorm:"not null;default:0" json:"duration_seconds"`
	ViewCount       int64     `gorm:"not null;default:0" json:"view_count"`
	IsPublished     bool      `gorm:"not null;index:idx_videos_published" json:"is_published"`
	CreatedAt       time.Time `gorm:"index:idx_videos_created_at" json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (Video) TableName() string {
	return "videos"
}

// BeforeCreate assigns the video id.
func (v *Video) BeforeCreate(_ *gorm.DB) error {
	ensureID(&v.ID)
	return nil
}
