package readmodel

import (
	"cmp"
	"context"

	"videotube/internal/models"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// ChannelVideo is one row of the channel dashboard.
type ChannelVideo struct {
	models.Video
	LikesCount    int64 `json:"likes_count"`
	DislikesCount int64 `json:"dislikes_count"`
}

var channelVideoSorts = map[string]string{
	"createdAt": "createdAt",
	"views":     "views",
	"likes":     "likes",
}

// ChannelVideos lists ownerID's videos with reaction counts. Unpublished
// videos are included only when the viewer is the owner.
func (c *Composer) ChannelVideos(ctx context.Context, ownerID, viewerID, sortBy, sortType string, req PageRequest) (Page[ChannelVideo], error) {
	if err := checkID("user id", ownerID); err != nil {
		return Page[ChannelVideo]{}, err
	}
	key, err := parseSortKey(sortBy, "createdAt", channelVideoSorts)
	if err != nil {
		return Page[ChannelVideo]{}, err
	}
	desc, err := parseDirection(sortType, true)
	if err != nil {
		return Page[ChannelVideo]{}, err
	}
	req = req.Normalize()

	rel := VideosByOwner
	if viewerOrAnonymous(viewerID) != ownerID {
		rel.Scope = publishedOnly
	}

	var out Page[ChannelVideo]
	err = c.compose(ctx, "channel_videos", func(ctx context.Context, db *gorm.DB) error {
		if _, err := loadUserSummary(ctx, db, "id = ?", ownerID); err != nil {
			return err
		}
		byOwner, err := Resolve(ctx, db, []string{ownerID}, rel)
		if err != nil {
			return err
		}
		videos := byOwner[ownerID]
		ids := make([]string, 0, len(videos))
		for _, v := range videos {
			ids = append(ids, v.ID)
		}

		var likes, dislikes map[string]int64
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() (err error) {
			likes, err = CountBy(gctx, db, &models.Like{}, "video_id", ids)
			return err
		})
		g.Go(func() (err error) {
			dislikes, err = CountBy(gctx, db, &models.Dislike{}, "video_id", ids)
			return err
		})
		if err := g.Wait(); err != nil {
			return err
		}

		rows := make([]ChannelVideo, 0, len(videos))
		for _, v := range videos {
			rows = append(rows, ChannelVideo{Video: v, LikesCount: likes[v.ID], DislikesCount: dislikes[v.ID]})
		}
		rows = SortStable(rows, channelVideoOrder(key), desc, func(v ChannelVideo) string { return v.ID })
		out = Paginate(rows, req.Page, req.Limit)
		return nil
	}, attribute.String("user.id", ownerID))
	return out, err
}

func channelVideoOrder(key string) func(a, b ChannelVideo) int {
	switch key {
	case "views":
		return func(a, b ChannelVideo) int { return cmp.Compare(a.ViewCount, b.ViewCount) }
	case "likes":
		return func(a, b ChannelVideo) int { return cmp.Compare(a.LikesCount, b.LikesCount) }
	}
	return func(a, b ChannelVideo) int { return a.CreatedAt.Compare(b.CreatedAt) }
}
