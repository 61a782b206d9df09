package models

import (
	"time"

	"gorm.io/gorm"
)

// Playlist is an ordered set of videos curated by its owner.
type Playlist struct {
	ID          string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	OwnerID     string    `gorm:"type:varchar(36);not null;index" json:"owner_id"`
	Name        string    `gorm:"size:200;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (Playlist) TableName() string {
	return "playlists"
}

// BeforeCreate assigns the playlist id.
func (p *Playlist) BeforeCreate(_ *gorm.DB) error {
	ensureID(&p.ID)
	return nil
}

// PlaylistVideo is one membership row. Position is the insertion order used
// for display; the (PlaylistID, VideoID) pair is unique.
type PlaylistVideo struct {
	PlaylistID string    `gorm:"type:varchar(36);primaryKey" json:"playlist_id"`
	VideoID    string    `gorm:"type:varchar(36);primaryKey" json:"video_id"`
	Position   int64     `gorm:"not null;index:idx_playlist_videos_position" json:"position"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM
func (PlaylistVideo) TableName() string {
	return "playlist_videos"
}
