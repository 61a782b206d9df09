package readmodel

import (
	"context"

	"videotube/internal/models"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// CommentView is a comment with its author summary.
type CommentView struct {
	models.Comment
	Owner *models.UserSummary `json:"owner"`
}

// CommentsForVideo returns one page of videoID's comments, newest first.
func (c *Composer) CommentsForVideo(ctx context.Context, videoID string, req PageRequest) (Page[CommentView], error) {
	if err := checkID("video id", videoID); err != nil {
		return Page[CommentView]{}, err
	}
	req = req.Normalize()

	var out Page[CommentView]
	err := c.compose(ctx, "comments_for_video", func(ctx context.Context, db *gorm.DB) error {
		if _, err := loadVideo(ctx, db, videoID); err != nil {
			return err
		}

		var (
			total    int64
			comments []models.Comment
		)
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			return db.WithContext(gctx).Model(&models.Comment{}).Where("video_id = ?", videoID).Count(&total).Error
		})
		g.Go(func() error {
			return db.WithContext(gctx).
				Where("video_id = ?", videoID).
				Order("created_at DESC, id ASC").
				Offset(req.Offset()).
				Limit(req.Limit).
				Find(&comments).Error
		})
		if err := g.Wait(); err != nil {
			return err
		}

		ownerIDs := make([]string, 0, len(comments))
		for _, cm := range comments {
			ownerIDs = append(ownerIDs, cm.OwnerID)
		}
		owners, err := ownerSummaries(ctx, db, ownerIDs)
		if err != nil {
			return err
		}
		items := make([]CommentView, 0, len(comments))
		for _, cm := range comments {
			items = append(items, CommentView{Comment: cm, Owner: owners[cm.OwnerID]})
		}
		out = NewPage(items, req, int(total))
		return nil
	}, attribute.String("video.id", videoID))
	return out, err
}
