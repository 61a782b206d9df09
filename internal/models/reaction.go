package models

import (
	"time"

	"gorm.io/gorm"
)

// Reaction is the viewer's current reaction to a video.
type Reaction string

const (
	// ReactionNone means the viewer neither likes nor dislikes the video.
	ReactionNone Reaction = "none"
	// ReactionLike marks a Like record.
	ReactionLike Reaction = "like"
	// ReactionDislike marks a Dislike record.
	ReactionDislike Reaction = "dislike"
)

// Opposite returns the reaction that must be retracted when r is set.
func (r Reaction) Opposite() Reaction {
	switch r {
	case ReactionLike:
		return ReactionDislike
	case ReactionDislike:
		return ReactionLike
	}
	return ReactionNone
}

// Like records that a user likes a video.
// The combination of VideoID and UserID must be unique.
type Like struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	VideoID   string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_likes_video_user" json:"video_id"`
	UserID    string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_likes_video_user;index" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM
func (Like) TableName() string {
	return "likes"
}

// BeforeCreate assigns the like id.
func (l *Like) BeforeCreate(_ *gorm.DB) error {
	ensureID(&l.ID)
	return nil
}

// Dislike mirrors Like in its own table.
type Dislike struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	VideoID   string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_dislikes_video_user" json:"video_id"`
	UserID    string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_dislikes_video_user;index" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM
func (Dislike) TableName() string {
	return "dislikes"
}

// BeforeCreate assigns the dislike id.
func (d *Dislike) BeforeCreate(_ *gorm.DB) error {
	ensureID(&d.ID)
	return nil
}

// ReactionTable returns the table backing a reaction kind.
func ReactionTable(r Reaction) string {
	switch r {
	case ReactionLike:
		return Like{}.TableName()
	case ReactionDislike:
		return Dislike{}.TableName()
	}
	return ""
}
