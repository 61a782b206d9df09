package repository

import (
	"context"
	"fmt"

	"videotube/internal/models"
	"videotube/internal/observability"

	"gorm.io/gorm"
)

// ReactionRepository flips likes and dislikes on videos.
type ReactionRepository interface {
	// Toggle flips kind for (userID, videoID). Setting a reaction retracts the
	// opposite one in the same transaction.
	Toggle(ctx context.Context, kind models.Reaction, userID, videoID string) (models.ToggleState, error)
}

type reactionRepository struct {
	db *gorm.DB
}

// NewReactionRepository creates a new ReactionRepository
func NewReactionRepository(db *gorm.DB) ReactionRepository {
	return &reactionRepository{db: db}
}

func reactionRows(kind models.Reaction, userID, videoID string) (empty, row interface{}, err error) {
	switch kind {
	case models.ReactionLike:
		return &models.Like{}, &models.Like{UserID: userID, VideoID: videoID}, nil
	case models.ReactionDislike:
		return &models.Dislike{}, &models.Dislike{UserID: userID, VideoID: videoID}, nil
	}
	return nil, nil, fmt.Errorf("unknown reaction %q", kind)
}

func (r *reactionRepository) Toggle(ctx context.Context, kind models.Reaction, userID, videoID string) (models.ToggleState, error) {
	empty, row, err := reactionRows(kind, userID, videoID)
	if err != nil {
		return "", err
	}
	opposite, _, err := reactionRows(kind.Opposite(), userID, videoID)
	if err != nil {
		return "", err
	}

	ctx, span := observability.TraceRepositoryMethod(ctx, "toggle_"+string(kind), models.ReactionTable(kind))
	defer span.End()

	cond := map[string]interface{}{"user_id": userID, "video_id": videoID}

	var state models.ToggleState
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var txErr error
		state, txErr = togglePair(tx, empty, cond, row, string(kind))
		if txErr != nil {
			return txErr
		}
		if state == models.TogglePresent {
			return tx.Where(cond).Delete(opposite).Error
		}
		return nil
	})
	if err != nil {
		span.RecordError(err)
		return "", err
	}
	return state, nil
}
