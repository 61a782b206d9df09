package readmodel

import (
	"videotube/internal/models"

	"gorm.io/gorm"
)

// UsersByID embeds users as summaries only.
var UsersByID = Relation[models.UserSummary]{
	Name:    "users.by_id",
	Column:  "id",
	Columns: models.UserSummaryColumns,
	Key:     func(u *models.UserSummary) string { return u.ID },
}

// VideosByID loads videos regardless of publication state.
var VideosByID = Relation[models.Video]{
	Name:   "videos.by_id",
	Column: "id",
	Key:    func(v *models.Video) string { return v.ID },
}

// VideosByOwner lists a channel's videos, newest first.
var VideosByOwner = Relation[models.Video]{
	Name:    "videos.by_owner",
	Column:  "owner_id",
	OrderBy: "created_at DESC, id ASC",
	Key:     func(v *models.Video) string { return v.OwnerID },
}

// PlaylistEntries lists membership rows of playlists in position order.
var PlaylistEntries = Relation[models.PlaylistVideo]{
	Name:    "playlist_videos.by_playlist",
	Column:  "playlist_id",
	OrderBy: "position ASC, video_id ASC",
	Key:     func(p *models.PlaylistVideo) string { return p.PlaylistID },
}

// PlaylistsByOwner lists a user's playlists, newest first.
var PlaylistsByOwner = Relation[models.Playlist]{
	Name:    "playlists.by_owner",
	Column:  "owner_id",
	OrderBy: "created_at DESC, id ASC",
	Key:     func(p *models.Playlist) string { return p.OwnerID },
}

// publishedOnly restricts a video query to published rows.
func publishedOnly(db *gorm.DB) *gorm.DB {
	return db.Where("is_published = ?", true)
}
