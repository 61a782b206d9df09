package readmodel

import (
	"context"
	"errors"

	"videotube/internal/models"

	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"
)

// WatchHistory returns userID's watched videos, most recent first. Repeated
// views appear as repeated entries and videos that no longer exist are
// skipped.
func (c *Composer) WatchHistory(ctx context.Context, userID string, req PageRequest) (Page[VideoCard], error) {
	if err := checkID("user id", userID); err != nil {
		return Page[VideoCard]{}, err
	}
	req = req.Normalize()

	var out Page[VideoCard]
	err := c.compose(ctx, "watch_history", func(ctx context.Context, db *gorm.DB) error {
		var user models.User
		err := db.Select("id", "watch_history").Take(&user, "id = ?", userID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("User", userID)
		}
		if err != nil {
			return err
		}

		videos, err := ResolveOne(ctx, db, user.WatchHistory, VideosByID)
		if err != nil {
			return err
		}
		ordered := make([]models.Video, 0, len(user.WatchHistory))
		for _, id := range user.WatchHistory {
			if v := videos[id]; v != nil {
				ordered = append(ordered, *v)
			}
		}

		page := Paginate(ordered, req.Page, req.Limit)
		cards, err := attachOwners(ctx, db, page.Items)
		if err != nil {
			return err
		}
		out = NewPage(cards, req, page.Total)
		return nil
	}, attribute.String("user.id", userID))
	return out, err
}
