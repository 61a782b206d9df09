package readmodel

import (
	"context"
	"strings"

	"videotube/internal/models"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// ChannelProfile is the public channel page. Email is never included.
type ChannelProfile struct {
	models.UserSummary
	SubscribersCount  int64 `json:"subscribers_count"`
	SubscribedToCount int64 `json:"subscribed_to_count"`
	IsSubscribed      bool  `json:"is_subscribed"`
}

// SubscribedChannel is one entry of a user's subscription list.
type SubscribedChannel struct {
	models.UserSummary
	SubscribersCount int64 `json:"subscribers_count"`
}

// ChannelProfile composes the channel page for username.
func (c *Composer) ChannelProfile(ctx context.Context, username, viewerID string) (*ChannelProfile, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, models.NewInvalidIDError("username", username)
	}
	viewerID = viewerOrAnonymous(viewerID)

	var out *ChannelProfile
	err := c.compose(ctx, "channel_profile", func(ctx context.Context, db *gorm.DB) error {
		user, err := loadUserSummary(ctx, db, "username = ?", username)
		if err != nil {
			return err
		}
		keys := []string{user.ID}

		var (
			subscribers, subscribedTo map[string]int64
			subscribed                map[string]bool
		)
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() (err error) {
			subscribers, err = CountBy(gctx, db, &models.Subscription{}, "channel_id", keys)
			return err
		})
		g.Go(func() (err error) {
			subscribedTo, err = CountBy(gctx, db, &models.Subscription{}, "subscriber_id", keys)
			return err
		})
		if viewerID != "" {
			g.Go(func() (err error) {
				subscribed, err = MembersOf(gctx, db, &models.Subscription{}, "channel_id", keys,
					map[string]interface{}{"subscriber_id": viewerID})
				return err
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		out = &ChannelProfile{
			UserSummary:       *user,
			SubscribersCount:  subscribers[user.ID],
			SubscribedToCount: subscribedTo[user.ID],
			IsSubscribed:      subscribed[user.ID],
		}
		return nil
	}, attribute.String("channel.username", username))
	return out, err
}

// SubscribersOf lists the users subscribed to channelID, newest subscription
// first. Subscriptions whose subscriber no longer exists are not listed.
func (c *Composer) SubscribersOf(ctx context.Context, channelID string, req PageRequest) (Page[models.UserSummary], error) {
	if err := checkID("channel id", channelID); err != nil {
		return Page[models.UserSummary]{}, err
	}
	req = req.Normalize()

	var out Page[models.UserSummary]
	err := c.compose(ctx, "subscribers_of", func(ctx context.Context, db *gorm.DB) error {
		if _, err := loadUserSummary(ctx, db, "id = ?", channelID); err != nil {
			return err
		}
		users, total, err := subscriptionPage(ctx, db, "subscriber_id", "channel_id", channelID, req)
		if err != nil {
			return err
		}
		out = NewPage(users, req, int(total))
		return nil
	}, attribute.String("channel.id", channelID))
	return out, err
}

// SubscribedTo lists the channels subscriberID follows with each channel's
// subscriber count, newest subscription first.
func (c *Composer) SubscribedTo(ctx context.Context, subscriberID string, req PageRequest) (Page[SubscribedChannel], error) {
	if err := checkID("user id", subscriberID); err != nil {
		return Page[SubscribedChannel]{}, err
	}
	req = req.Normalize()

	var out Page[SubscribedChannel]
	err := c.compose(ctx, "subscribed_to", func(ctx context.Context, db *gorm.DB) error {
		if _, err := loadUserSummary(ctx, db, "id = ?", subscriberID); err != nil {
			return err
		}
		channels, total, err := subscriptionPage(ctx, db, "channel_id", "subscriber_id", subscriberID, req)
		if err != nil {
			return err
		}

		ids := make([]string, 0, len(channels))
		for _, ch := range channels {
			ids = append(ids, ch.ID)
		}
		counts, err := CountBy(ctx, db, &models.Subscription{}, "channel_id", ids)
		if err != nil {
			return err
		}

		items := make([]SubscribedChannel, 0, len(channels))
		for _, ch := range channels {
			items = append(items, SubscribedChannel{UserSummary: ch, SubscribersCount: counts[ch.ID]})
		}
		out = NewPage(items, req, int(total))
		return nil
	}, attribute.String("user.id", subscriberID))
	return out, err
}

// subscriptionPage joins subscriptions matching anchorCol = anchorID to the
// users named by userCol and returns one page of them with the total.
func subscriptionPage(ctx context.Context, db *gorm.DB, userCol, anchorCol, anchorID string, req PageRequest) ([]models.UserSummary, int64, error) {
	base := func(ctx context.Context) *gorm.DB {
		return db.WithContext(ctx).
			Model(&models.Subscription{}).
			Joins("JOIN users ON users.id = subscriptions."+userCol).
			Where("subscriptions."+anchorCol+" = ?", anchorID)
	}

	var (
		total int64
		users []models.UserSummary
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return base(gctx).Count(&total).Error
	})
	g.Go(func() error {
		return base(gctx).
			Select("users.id, users.username, users.display_name, users.avatar, users.cover").
			Order("subscriptions.created_at DESC, users.id ASC").
			Offset(req.Offset()).
			Limit(req.Limit).
			Scan(&users).Error
	})
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	if users == nil {
		users = []models.UserSummary{}
	}
	return users, total, nil
}
