package readmodel

import (
	"context"
	"strings"

	"videotube/internal/models"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OwnerDetail is the channel block embedded in a video page.
type OwnerDetail struct {
	models.UserSummary
	SubscribersCount int64 `json:"subscribers_count"`
	IsSubscribed     bool  `json:"is_subscribed"`
}

// VideoDetail is the single video page.
type VideoDetail struct {
	models.Video
	// Owner is nil when the owning user no longer exists.
	Owner          *OwnerDetail    `json:"owner"`
	LikesCount     int64           `json:"likes_count"`
	DislikesCount  int64           `json:"dislikes_count"`
	ViewerReaction models.Reaction `json:"viewer_reaction"`
}

// VideoCard is a video with its owner summary, used by lists.
type VideoCard struct {
	models.Video
	Owner *models.UserSummary `json:"owner"`
}

// VideoDetail composes the video page for videoID as seen by viewerID. An
// empty or malformed viewer is anonymous and never subscribed or reacting.
func (c *Composer) VideoDetail(ctx context.Context, videoID, viewerID string) (*VideoDetail, error) {
	if err := checkID("video id", videoID); err != nil {
		return nil, err
	}
	viewerID = viewerOrAnonymous(viewerID)

	var out *VideoDetail
	err := c.compose(ctx, "video_detail", func(ctx context.Context, db *gorm.DB) error {
		video, err := loadVideo(ctx, db, videoID)
		if err != nil {
			return err
		}
		ownerKeys := []string{video.OwnerID}
		videoKeys := []string{video.ID}

		var (
			owners          map[string]*models.UserSummary
			subscribers     map[string]int64
			likes, dislikes map[string]int64
			subscribed      map[string]bool
			liked, disliked map[string]bool
		)
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() (err error) {
			owners, err = ownerSummaries(gctx, db, ownerKeys)
			return err
		})
		g.Go(func() (err error) {
			subscribers, err = CountBy(gctx, db, &models.Subscription{}, "channel_id", ownerKeys)
			return err
		})
		g.Go(func() (err error) {
			likes, err = CountBy(gctx, db, &models.Like{}, "video_id", videoKeys)
			return err
		})
		g.Go(func() (err error) {
			dislikes, err = CountBy(gctx, db, &models.Dislike{}, "video_id", videoKeys)
			return err
		})
		if viewerID != "" {
			g.Go(func() (err error) {
				subscribed, err = MembersOf(gctx, db, &models.Subscription{}, "channel_id", ownerKeys,
					map[string]interface{}{"subscriber_id": viewerID})
				return err
			})
			g.Go(func() (err error) {
				liked, err = MembersOf(gctx, db, &models.Like{}, "video_id", videoKeys,
					map[string]interface{}{"user_id": viewerID})
				return err
			})
			g.Go(func() (err error) {
				disliked, err = MembersOf(gctx, db, &models.Dislike{}, "video_id", videoKeys,
					map[string]interface{}{"user_id": viewerID})
				return err
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		out = &VideoDetail{
			Video:          *video,
			LikesCount:     likes[video.ID],
			DislikesCount:  dislikes[video.ID],
			ViewerReaction: models.ReactionNone,
		}
		if owner := owners[video.OwnerID]; owner != nil {
			out.Owner = &OwnerDetail{
				UserSummary:      *owner,
				SubscribersCount: subscribers[video.OwnerID],
				IsSubscribed:     subscribed[video.OwnerID],
			}
		}
		switch {
		case liked[video.ID]:
			out.ViewerReaction = models.ReactionLike
		case disliked[video.ID]:
			out.ViewerReaction = models.ReactionDislike
		}
		return nil
	}, attribute.String("video.id", videoID))
	return out, err
}

// VideoQuery filters and orders the public video listing.
type VideoQuery struct {
	// Query matches title or description, case-insensitively.
	Query string
	// OwnerID restricts the listing to one channel.
	OwnerID string
	// SortBy is one of views, duration, createdAt or relevance.
	SortBy string
	// SortType is asc or desc.
	SortType string
	PageRequest
}

var videoSortColumns = map[string]string{
	"views":     "view_count",
	"duration":  "duration_seconds",
	"createdAt": "created_at",
	"relevance": "relevance",
}

// VideoList returns one page of published videos matching q.
func (c *Composer) VideoList(ctx context.Context, q VideoQuery) (Page[VideoCard], error) {
	req := q.PageRequest.Normalize()
	if q.OwnerID != "" {
		if err := checkID("user id", q.OwnerID); err != nil {
			return Page[VideoCard]{}, err
		}
	}
	column, err := parseSortKey(q.SortBy, "createdAt", videoSortColumns)
	if err != nil {
		return Page[VideoCard]{}, err
	}
	desc, err := parseDirection(q.SortType, true)
	if err != nil {
		return Page[VideoCard]{}, err
	}
	term := strings.ToLower(strings.TrimSpace(q.Query))

	var out Page[VideoCard]
	err = c.compose(ctx, "video_list", func(ctx context.Context, db *gorm.DB) error {
		filtered := func() *gorm.DB {
			tx := db.Model(&models.Video{}).Scopes(publishedOnly)
			if q.OwnerID != "" {
				tx = tx.Where("owner_id = ?", q.OwnerID)
			}
			if term != "" {
				pattern := "%" + escapeLike(term) + "%"
				tx = tx.Where(`(LOWER(title) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\')`, pattern, pattern)
			}
			return tx
		}

		var (
			total  int64
			videos []models.Video
		)
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			return filtered().WithContext(gctx).Count(&total).Error
		})
		g.Go(func() error {
			return filtered().WithContext(gctx).
				Clauses(videoOrder(column, desc, term)).
				Offset(req.Offset()).
				Limit(req.Limit).
				Find(&videos).Error
		})
		if err := g.Wait(); err != nil {
			return err
		}

		cards, err := attachOwners(ctx, db, videos)
		if err != nil {
			return err
		}
		out = NewPage(cards, req, int(total))
		return nil
	}, attribute.String("video_list.sort", column))
	return out, err
}

// videoOrder builds the complete ORDER BY for the listing. Relevance ranks
// title matches ahead of description-only matches and falls back to recency.
func videoOrder(column string, desc bool, term string) clause.OrderBy {
	dir := "ASC"
	if desc {
		dir = "DESC"
	}
	if column != "relevance" {
		return clause.OrderBy{Expression: clause.Expr{
			SQL:                column + " " + dir + ", id ASC",
			WithoutParentheses: true,
		}}
	}
	if term == "" {
		return clause.OrderBy{Expression: clause.Expr{
			SQL:                "created_at " + dir + ", id ASC",
			WithoutParentheses: true,
		}}
	}
	rank := "ASC"
	if !desc {
		rank = "DESC"
	}
	return clause.OrderBy{Expression: clause.Expr{
		SQL:                `CASE WHEN LOWER(title) LIKE ? ESCAPE '\' THEN 0 ELSE 1 END ` + rank + ", created_at DESC, id ASC",
		Vars:               []interface{}{"%" + escapeLike(term) + "%"},
		WithoutParentheses: true,
	}}
}

// attachOwners pairs each video with its owner summary, preserving order.
func attachOwners(ctx context.Context, db *gorm.DB, videos []models.Video) ([]VideoCard, error) {
	ids := make([]string, 0, len(videos))
	for i := range videos {
		ids = append(ids, videos[i].OwnerID)
	}
	owners, err := ownerSummaries(ctx, db, ids)
	if err != nil {
		return nil, err
	}
	cards := make([]VideoCard, 0, len(videos))
	for i := range videos {
		cards = append(cards, VideoCard{Video: videos[i], Owner: owners[videos[i].OwnerID]})
	}
	return cards, nil
}
