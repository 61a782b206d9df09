package repository

import (
	"context"

	"videotube/internal/models"
	"videotube/internal/observability"

	"gorm.io/gorm"
)

// SubscriptionRepository flips channel subscriptions.
type SubscriptionRepository interface {
	Toggle(ctx context.Context, subscriberID, channelID string) (models.ToggleState, error)
}

type subscriptionRepository struct {
	db *gorm.DB
}

// NewSubscriptionRepository creates a new SubscriptionRepository
func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

func (r *subscriptionRepository) Toggle(ctx context.Context, subscriberID, channelID string) (models.ToggleState, error) {
	ctx, span := observability.TraceRepositoryMethod(ctx, "toggle_subscription", "subscriptions")
	defer span.End()

	cond := map[string]interface{}{"subscriber_id": subscriberID, "channel_id": channelID}
	row := &models.Subscription{SubscriberID: subscriberID, ChannelID: channelID}

	var state models.ToggleState
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var txErr error
		state, txErr = togglePair(tx, &models.Subscription{}, cond, row, "subscription")
		return txErr
	})
	if err != nil {
		span.RecordError(err)
		return "", err
	}
	return state, nil
}
