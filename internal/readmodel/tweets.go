package readmodel

import (
	"context"

	"videotube/internal/models"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// TweetView is a tweet with its author summary.
type TweetView struct {
	models.Tweet
	Owner *models.UserSummary `json:"owner"`
}

// UserTweets returns one page of ownerID's tweets, newest first.
func (c *Composer) UserTweets(ctx context.Context, ownerID string, req PageRequest) (Page[TweetView], error) {
	if err := checkID("user id", ownerID); err != nil {
		return Page[TweetView]{}, err
	}
	req = req.Normalize()

	var out Page[TweetView]
	err := c.compose(ctx, "user_tweets", func(ctx context.Context, db *gorm.DB) error {
		owner, err := loadUserSummary(ctx, db, "id = ?", ownerID)
		if err != nil {
			return err
		}

		var (
			total  int64
			tweets []models.Tweet
		)
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			return db.WithContext(gctx).Model(&models.Tweet{}).Where("owner_id = ?", ownerID).Count(&total).Error
		})
		g.Go(func() error {
			return db.WithContext(gctx).
				Where("owner_id = ?", ownerID).
				Order("created_at DESC, id ASC").
				Offset(req.Offset()).
				Limit(req.Limit).
				Find(&tweets).Error
		})
		if err := g.Wait(); err != nil {
			return err
		}

		items := make([]TweetView, 0, len(tweets))
		for _, t := range tweets {
			items = append(items, TweetView{Tweet: t, Owner: owner})
		}
		out = NewPage(items, req, int(total))
		return nil
	}, attribute.String("user.id", ownerID))
	return out, err
}
