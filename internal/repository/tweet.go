package repository

import (
	"context"

	"videotube/internal/models"
	"videotube/internal/observability"

	"gorm.io/gorm"
)

// TweetRepository defines interface for tweet operations
type TweetRepository interface {
	Create(ctx context.Context, tweet *models.Tweet) error
	GetByID(ctx context.Context, id string) (*models.Tweet, error)
	Update(ctx context.Context, tweet *models.Tweet) error
	Delete(ctx context.Context, id string) error
}

type tweetRepository struct {
	db  *gorm.DB
	log *observability.RepoLogger
}

// NewTweetRepository creates a new TweetRepository
func NewTweetRepository(db *gorm.DB) TweetRepository {
	return &tweetRepository{db: db, log: observability.NewRepoLogger("tweets")}
}

func (r *tweetRepository) Create(ctx context.Context, tweet *models.Tweet) error {
	if err := r.db.WithContext(ctx).Create(tweet).Error; err != nil {
		return classify(err, "create", "Tweet", tweet.ID)
	}
	r.log.LogCreate(ctx, map[string]any{"id": tweet.ID})
	return nil
}

func (r *tweetRepository) GetByID(ctx context.Context, id string) (*models.Tweet, error) {
	var tweet models.Tweet
	if err := r.db.WithContext(ctx).First(&tweet, "id = ?", id).Error; err != nil {
		return nil, classify(err, "get", "Tweet", id)
	}
	return &tweet, nil
}

func (r *tweetRepository) Update(ctx context.Context, tweet *models.Tweet) error {
	err := r.db.WithContext(ctx).Model(tweet).Select("content").Updates(tweet).Error
	return classify(err, "update", "Tweet", tweet.ID)
}

func (r *tweetRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.Tweet{}, "id = ?", id)
	if res.Error != nil {
		return classify(res.Error, "delete", "Tweet", id)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Tweet", id)
	}
	r.log.LogDelete(ctx, map[string]any{"id": id})
	return nil
}
