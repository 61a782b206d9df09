package repository

import (
	"context"

	"videotube/internal/models"
	"videotube/internal/observability"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PlaylistRepository defines interface for playlist operations
type PlaylistRepository interface {
	Create(ctx context.Context, playlist *models.Playlist) error
	GetByID(ctx context.Context, id string) (*models.Playlist, error)
	Update(ctx context.Context, playlist *models.Playlist) error
	Delete(ctx context.Context, id string) error
	// AddVideo appends videoID unless it is already a member. It reports
	// whether a row was added.
	AddVideo(ctx context.Context, playlistID, videoID string) (bool, error)
	// RemoveVideo reports whether a membership row was removed.
	RemoveVideo(ctx context.Context, playlistID, videoID string) (bool, error)
}

type playlistRepository struct {
	db  *gorm.DB
	log *observability.RepoLogger
}

// NewPlaylistRepository creates a new PlaylistRepository
func NewPlaylistRepository(db *gorm.DB) PlaylistRepository {
	return &playlistRepository{db: db, log: observability.NewRepoLogger("playlists")}
}

func (r *playlistRepository) Create(ctx context.Context, playlist *models.Playlist) error {
	if err := r.db.WithContext(ctx).Create(playlist).Error; err != nil {
		return classify(err, "create", "Playlist", playlist.ID)
	}
	r.log.LogCreate(ctx, map[string]any{"id": playlist.ID, "owner_id": playlist.OwnerID})
	return nil
}

func (r *playlistRepository) GetByID(ctx context.Context, id string) (*models.Playlist, error) {
	var playlist models.Playlist
	if err := r.db.WithContext(ctx).First(&playlist, "id = ?", id).Error; err != nil {
		return nil, classify(err, "get", "Playlist", id)
	}
	return &playlist, nil
}

func (r *playlistRepository) Update(ctx context.Context, playlist *models.Playlist) error {
	err := r.db.WithContext(ctx).Model(playlist).Select("name", "description").Updates(playlist).Error
	return classify(err, "update", "Playlist", playlist.ID)
}

// Delete removes the playlist together with its own membership rows.
func (r *playlistRepository) Delete(ctx context.Context, id string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("playlist_id = ?", id).Delete(&models.PlaylistVideo{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Playlist{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return models.NewNotFoundError("Playlist", id)
		}
		return nil
	})
	if err != nil {
		return classify(err, "delete", "Playlist", id)
	}
	r.log.LogDelete(ctx, map[string]any{"id": id})
	return nil
}

func (r *playlistRepository) AddVideo(ctx context.Context, playlistID, videoID string) (bool, error) {
	var added bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var next int64
		if err := tx.Model(&models.PlaylistVideo{}).
			Where("playlist_id = ?", playlistID).
			Select("COALESCE(MAX(position), 0) + 1").
			Scan(&next).Error; err != nil {
			return err
		}

		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&models.PlaylistVideo{
			PlaylistID: playlistID,
			VideoID:    videoID,
			Position:   next,
		})
		if res.Error != nil {
			return res.Error
		}
		added = res.RowsAffected > 0
		return nil
	})
	if err != nil {
		return false, classify(err, "add video", "Playlist", playlistID)
	}
	return added, nil
}

func (r *playlistRepository) RemoveVideo(ctx context.Context, playlistID, videoID string) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("playlist_id = ? AND video_id = ?", playlistID, videoID).
		Delete(&models.PlaylistVideo{})
	if res.Error != nil {
		return false, classify(res.Error, "remove video", "Playlist", playlistID)
	}
	return res.RowsAffected > 0, nil
}
