package database

import "videotube/internal/models"

// PersistentModels returns the authoritative set of schema-managed GORM models.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Video{},
		&models.Comment{},
		&models.Like{},
		&models.Dislike{},
		&models.Subscription{},
		&models.Playlist{},
		&models.PlaylistVideo{},
		&models.Tweet{},
	}
}
