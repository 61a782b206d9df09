package service

import (
	"context"

	"videotube/internal/models"
	"videotube/internal/observability"
	"videotube/internal/repository"
)

// DefaultToggleRetries is used when NewToggleService is given a negative count.
const DefaultToggleRetries = 3

// ToggleService flips subscriptions and reactions. Each flip is a single
// atomic repository call; a Conflict from a concurrent writer is retried.
type ToggleService struct {
	subscriptions repository.SubscriptionRepository
	reactions     repository.ReactionRepository
	users         repository.UserRepository
	videos        repository.VideoRepository
	maxRetries    int
}

func NewToggleService(
	subscriptions repository.SubscriptionRepository,
	reactions repository.ReactionRepository,
	users repository.UserRepository,
	videos repository.VideoRepository,
	maxRetries int,
) *ToggleService {
	if maxRetries < 0 {
		maxRetries = DefaultToggleRetries
	}
	return &ToggleService{
		subscriptions: subscriptions,
		reactions:     reactions,
		users:         users,
		videos:        videos,
		maxRetries:    maxRetries,
	}
}

// ToggleSubscription subscribes subscriberID to channelID, or unsubscribes if
// already subscribed.
func (s *ToggleService) ToggleSubscription(ctx context.Context, subscriberID, channelID string) (models.ToggleState, error) {
	if err := requireIDs("subscriber id", subscriberID, "channel id", channelID); err != nil {
		return "", err
	}
	if subscriberID == channelID {
		return "", models.NewValidationError("You cannot subscribe to your own channel")
	}
	if err := mustExist(ctx, s.users.Exists, "Channel", channelID); err != nil {
		return "", err
	}
	return s.withRetry(ctx, "subscription", func() (models.ToggleState, error) {
		return s.subscriptions.Toggle(ctx, subscriberID, channelID)
	})
}

// ToggleLike flips the like of userID on videoID. Liking retracts a dislike.
func (s *ToggleService) ToggleLike(ctx context.Context, userID, videoID string) (models.ToggleState, error) {
	return s.toggleReaction(ctx, models.ReactionLike, userID, videoID)
}

// ToggleDislike flips the dislike of userID on videoID. Disliking retracts a like.
func (s *ToggleService) ToggleDislike(ctx context.Context, userID, videoID string) (models.ToggleState, error) {
	return s.toggleReaction(ctx, models.ReactionDislike, userID, videoID)
}

func (s *ToggleService) toggleReaction(ctx context.Context, kind models.Reaction, userID, videoID string) (models.ToggleState, error) {
	if err := requireIDs("user id", userID, "video id", videoID); err != nil {
		return "", err
	}
	if err := mustExist(ctx, s.videos.Exists, "Video", videoID); err != nil {
		return "", err
	}
	return s.withRetry(ctx, string(kind), func() (models.ToggleState, error) {
		return s.reactions.Toggle(ctx, kind, userID, videoID)
	})
}

func (s *ToggleService) withRetry(ctx context.Context, kind string, fn func() (models.ToggleState, error)) (models.ToggleState, error) {
	for attempt := 0; ; attempt++ {
		state, err := fn()
		if err == nil {
			observability.ToggleTotal.WithLabelValues(kind, string(state)).Inc()
			return state, nil
		}
		if !models.IsCode(err, models.CodeConflict) || attempt >= s.maxRetries {
			return "", err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		observability.ToggleConflictRetries.WithLabelValues(kind).Inc()
	}
}
