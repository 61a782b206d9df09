package readmodel

import (
	"context"

	"videotube/internal/models"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// ChannelStats are the dashboard totals of one channel.
type ChannelStats struct {
	TotalVideos      int64 `json:"total_videos"`
	TotalViews       int64 `json:"total_views"`
	TotalLikes       int64 `json:"total_likes"`
	TotalDislikes    int64 `json:"total_dislikes"`
	TotalSubscribers int64 `json:"total_subscribers"`
}

type videoTotals struct {
	TotalVideos int64
	TotalViews  int64
}

// ChannelStats aggregates ownerID's channel. A known owner without videos
// gets a zero record; an unknown owner is NotFound.
func (c *Composer) ChannelStats(ctx context.Context, ownerID string) (*ChannelStats, error) {
	if err := checkID("user id", ownerID); err != nil {
		return nil, err
	}

	var out *ChannelStats
	err := c.compose(ctx, "channel_stats", func(ctx context.Context, db *gorm.DB) error {
		if _, err := loadUserSummary(ctx, db, "id = ?", ownerID); err != nil {
			return err
		}

		var (
			videos videoTotals
			stats  ChannelStats
		)
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			return db.WithContext(gctx).
				Model(&models.Video{}).
				Select("COUNT(*) AS total_videos, CAST(COALESCE(SUM(view_count), 0) AS BIGINT) AS total_views").
				Where("owner_id = ?", ownerID).
				Scan(&videos).Error
		})
		g.Go(func() error {
			return reactionsOnOwner(gctx, db, &models.Like{}, models.ReactionLike, ownerID).Count(&stats.TotalLikes).Error
		})
		g.Go(func() error {
			return reactionsOnOwner(gctx, db, &models.Dislike{}, models.ReactionDislike, ownerID).Count(&stats.TotalDislikes).Error
		})
		g.Go(func() error {
			return db.WithContext(gctx).
				Model(&models.Subscription{}).
				Where("channel_id = ?", ownerID).
				Count(&stats.TotalSubscribers).Error
		})
		if err := g.Wait(); err != nil {
			return err
		}

		stats.TotalVideos = videos.TotalVideos
		stats.TotalViews = videos.TotalViews
		out = &stats
		return nil
	}, attribute.String("user.id", ownerID))
	return out, err
}

func reactionsOnOwner(ctx context.Context, db *gorm.DB, model interface{}, kind models.Reaction, ownerID string) *gorm.DB {
	table := models.ReactionTable(kind)
	return db.WithContext(ctx).
		Model(model).
		Joins("JOIN videos ON videos.id = "+table+".video_id").
		Where("videos.owner_id = ?", ownerID)
}
