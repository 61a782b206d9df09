package readmodel

import (
	"context"
	"errors"

	"videotube/internal/models"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// PlaylistDetail is a playlist with its owner and videos in position order.
type PlaylistDetail struct {
	models.Playlist
	Owner      *models.UserSummary `json:"owner"`
	Videos     []VideoCard         `json:"videos"`
	VideoCount int                 `json:"video_count"`
}

// PlaylistSummary is one entry of a user's playlist list.
type PlaylistSummary struct {
	models.Playlist
	VideoCount int64 `json:"video_count"`
}

// PlaylistDetail composes the playlist page. Entries pointing at deleted
// videos are skipped.
func (c *Composer) PlaylistDetail(ctx context.Context, playlistID string) (*PlaylistDetail, error) {
	if err := checkID("playlist id", playlistID); err != nil {
		return nil, err
	}

	var out *PlaylistDetail
	err := c.compose(ctx, "playlist_detail", func(ctx context.Context, db *gorm.DB) error {
		var playlist models.Playlist
		err := db.Take(&playlist, "id = ?", playlistID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Playlist", playlistID)
		}
		if err != nil {
			return err
		}

		var (
			owners  map[string]*models.UserSummary
			ordered []models.Video
		)
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() (err error) {
			owners, err = ownerSummaries(gctx, db, []string{playlist.OwnerID})
			return err
		})
		g.Go(func() error {
			entries, err := Resolve(gctx, db, []string{playlist.ID}, PlaylistEntries)
			if err != nil {
				return err
			}
			rows := entries[playlist.ID]
			ids := make([]string, 0, len(rows))
			for _, e := range rows {
				ids = append(ids, e.VideoID)
			}
			videos, err := ResolveOne(gctx, db, ids, VideosByID)
			if err != nil {
				return err
			}
			ordered = make([]models.Video, 0, len(ids))
			for _, id := range ids {
				if v := videos[id]; v != nil {
					ordered = append(ordered, *v)
				}
			}
			return nil
		})
		if err := g.Wait(); err != nil {
			return err
		}

		cards, err := attachOwners(ctx, db, ordered)
		if err != nil {
			return err
		}
		out = &PlaylistDetail{
			Playlist:   playlist,
			Owner:      owners[playlist.OwnerID],
			Videos:     cards,
			VideoCount: len(cards),
		}
		return nil
	}, attribute.String("playlist.id", playlistID))
	return out, err
}

// UserPlaylists lists ownerID's playlists, newest first, with their sizes.
func (c *Composer) UserPlaylists(ctx context.Context, ownerID string, req PageRequest) (Page[PlaylistSummary], error) {
	if err := checkID("user id", ownerID); err != nil {
		return Page[PlaylistSummary]{}, err
	}
	req = req.Normalize()

	var out Page[PlaylistSummary]
	err := c.compose(ctx, "user_playlists", func(ctx context.Context, db *gorm.DB) error {
		if _, err := loadUserSummary(ctx, db, "id = ?", ownerID); err != nil {
			return err
		}
		byOwner, err := Resolve(ctx, db, []string{ownerID}, PlaylistsByOwner)
		if err != nil {
			return err
		}
		page := Paginate(byOwner[ownerID], req.Page, req.Limit)

		ids := make([]string, 0, len(page.Items))
		for _, p := range page.Items {
			ids = append(ids, p.ID)
		}
		counts, err := CountBy(ctx, db, &models.PlaylistVideo{}, "playlist_id", ids)
		if err != nil {
			return err
		}

		items := make([]PlaylistSummary, 0, len(page.Items))
		for _, p := range page.Items {
			items = append(items, PlaylistSummary{Playlist: p, VideoCount: counts[p.ID]})
		}
		out = NewPage(items, req, page.Total)
		return nil
	}, attribute.String("user.id", ownerID))
	return out, err
}
