package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a channel owner and viewer account.
type User struct {
	ID           string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	Username     string    `gorm:"size:64;uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	DisplayName  string    `gorm:"size:128" json:"display_name"`
	Avatar       string    `gorm:"size:500" json:"avatar"`
	Cover        string    `gorm:"size:500" json:"cover"`
	Password     string    `gorm:"not null" json:"-"`
	RefreshToken *string   `json:"-"`
	// WatchHistory holds video ids, most recent first. Duplicates are kept.
	WatchHistory []string  `gorm:"type:text;serializer:json" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (User) TableName() string {
	return "users"
}

// BeforeCreate assigns the user id.
func (u *User) BeforeCreate(_ *gorm.DB) error {
	ensureID(&u.ID)
	return nil
}

// Summary returns the public projection of the user.
func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:          u.ID,
		Username:    u.Username,
		DisplayName: u.DisplayName,
		Avatar:      u.Avatar,
		Cover:       u.Cover,
	}
}

// UserSummary is the only shape in which a user is embedded in another view.
// It maps onto the users table but carries no credential columns, so loading it
// can never expose a password hash or refresh token.
type UserSummary struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Avatar      string `json:"avatar"`
	Cover       string `json:"cover,omitempty"`
}

// TableName specifies the table name for GORM
func (UserSummary) TableName() string {
	return "users"
}

// UserSummaryColumns lists the columns selected when loading a UserSummary.
var UserSummaryColumns = []string{"id", "username", "display_name", "avatar", "cover"}
