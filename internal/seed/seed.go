package seed

import (
	"context"
	"fmt"
	"log/slog"

	"videotube/internal/database"
	"videotube/internal/models"
	"videotube/internal/observability"

	"gorm.io/gorm"
)

// Plan sizes a full seeding run.
type Plan struct {
	Channels          int
	VideosPerChannel  int
	CommentsPerVideo  int
	TweetsPerChannel  int
	PlaylistsPerUser  int
	HistoryPerUser    int
	SubscriptionRatio float64
}

// DefaultPlan is used by cmd/seed when no flags override it.
var DefaultPlan = Plan{
	Channels:          25,
	VideosPerChannel:  6,
	CommentsPerVideo:  4,
	TweetsPerChannel:  3,
	PlaylistsPerUser:  1,
	HistoryPerUser:    10,
	SubscriptionRatio: 0.3,
}

// Summary counts the rows a run inserted.
type Summary struct {
	Users         int
	Videos        int
	Comments      int
	Likes         int
	Dislikes      int
	Subscriptions int
	Playlists     int
	Tweets        int
}

// Seeder populates a database through a Factory.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
	opts    Options
}

// NewSeeder creates a Seeder for db.
func NewSeeder(db *gorm.DB, opts Options) (*Seeder, error) {
	factory, err := NewFactory(db, opts)
	if err != nil {
		return nil, err
	}
	return &Seeder{db: db, factory: factory, opts: factory.opts}, nil
}

// ClearAll deletes every row of every persistent table.
func (s *Seeder) ClearAll() error {
	observability.GlobalLogger.Info("clearing existing data")
	tables := database.PersistentModels()
	// Children first; the order of PersistentModels lists parents first.
	for i := len(tables) - 1; i >= 0; i-- {
		if err := s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(tables[i]).Error; err != nil {
			return fmt.Errorf("clear %T: %w", tables[i], err)
		}
	}
	return nil
}

// Run seeds channels and then the engagement between them.
func (s *Seeder) Run(ctx context.Context, plan Plan) (Summary, error) {
	var sum Summary
	db := s.db.WithContext(ctx)
	f := s.factory

	users := make([]*models.User, 0, plan.Channels)
	for i := 0; i < plan.Channels; i++ {
		u, err := f.CreateUser()
		if err != nil {
			return sum, fmt.Errorf("create user: %w", err)
		}
		users = append(users, u)
	}
	sum.Users = len(users)
	observability.GlobalLogger.Info("seeded users", slog.Int("count", sum.Users))
	if len(users) == 0 {
		return sum, nil
	}

	videos := make([]*models.Video, 0, plan.Channels*plan.VideosPerChannel)
	for _, owner := range users {
		for i := 0; i < plan.VideosPerChannel; i++ {
			videos = append(videos, f.BuildVideo(owner))
		}
	}
	if len(videos) > 0 {
		if err := db.CreateInBatches(videos, s.opts.BatchSize).Error; err != nil {
			return sum, fmt.Errorf("create videos: %w", err)
		}
	}
	sum.Videos = len(videos)
	observability.GlobalLogger.Info("seeded videos", slog.Int("count", sum.Videos))

	published := make([]*models.Video, 0, len(videos))
	for _, v := range videos {
		if v.IsPublished {
			published = append(published, v)
		}
	}

	var err error
	if sum.Comments, err = s.seedComments(db, users, published, plan.CommentsPerVideo); err != nil {
		return sum, err
	}
	if sum.Likes, sum.Dislikes, err = s.seedReactions(db, users, published); err != nil {
		return sum, err
	}
	if sum.Subscriptions, err = s.seedSubscriptions(db, users, plan.SubscriptionRatio); err != nil {
		return sum, err
	}
	if sum.Tweets, err = s.seedTweets(db, users, plan.TweetsPerChannel); err != nil {
		return sum, err
	}
	if sum.Playlists, err = s.seedPlaylists(users, published, plan.PlaylistsPerUser); err != nil {
		return sum, err
	}
	if err := s.seedHistory(db, users, published, plan.HistoryPerUser); err != nil {
		return sum, err
	}

	observability.GlobalLogger.Info("seeding complete",
		slog.Int("comments", sum.Comments),
		slog.Int("likes", sum.Likes),
		slog.Int("dislikes", sum.Dislikes),
		slog.Int("subscriptions", sum.Subscriptions),
		slog.Int("playlists", sum.Playlists),
		slog.Int("tweets", sum.Tweets),
	)
	return sum, nil
}

func (s *Seeder) seedComments(db *gorm.DB, users []*models.User, videos []*models.Video, perVideo int) (int, error) {
	if perVideo <= 0 || len(videos) == 0 {
		return 0, nil
	}
	comments := make([]*models.Comment, 0, len(videos)*perVideo)
	for _, v := range videos {
		for i := 0; i < perVideo; i++ {
			author := users[s.factory.faker.Number(0, len(users)-1)]
			comments = append(comments, s.factory.BuildComment(author, v))
		}
	}
	if err := db.CreateInBatches(comments, s.opts.BatchSize).Error; err != nil {
		return 0, fmt.Errorf("create comments: %w", err)
	}
	return len(comments), nil
}

// seedReactions gives every (user, video) pair at most one reaction, so no
// viewer both likes and dislikes a video.
func (s *Seeder) seedReactions(db *gorm.DB, users []*models.User, videos []*models.Video) (int, int, error) {
	var likes []models.Like
	var dislikes []models.Dislike
	for _, u := range users {
		for _, v := range videos {
			switch s.factory.pickReaction() {
			case models.ReactionLike:
				likes = append(likes, models.Like{VideoID: v.ID, UserID: u.ID})
			case models.ReactionDislike:
				dislikes = append(dislikes, models.Dislike{VideoID: v.ID, UserID: u.ID})
			}
		}
	}
	if len(likes) > 0 {
		if err := db.CreateInBatches(likes, s.opts.BatchSize).Error; err != nil {
			return 0, 0, fmt.Errorf("create likes: %w", err)
		}
	}
	if len(dislikes) > 0 {
		if err := db.CreateInBatches(dislikes, s.opts.BatchSize).Error; err != nil {
			return 0, 0, fmt.Errorf("create dislikes: %w", err)
		}
	}
	return len(likes), len(dislikes), nil
}

func (s *Seeder) seedSubscriptions(db *gorm.DB, users []*models.User, ratio float64) (int, error) {
	if ratio <= 0 {
		return 0, nil
	}
	threshold := int(ratio * 100)
	var subs []models.Subscription
	for _, subscriber := range users {
		for _, channel := range users {
			if subscriber.ID == channel.ID {
				continue
			}
			if s.factory.faker.Number(1, 100) <= threshold {
				subs = append(subs, models.Subscription{SubscriberID: subscriber.ID, ChannelID: channel.ID})
			}
		}
	}
	if len(subs) == 0 {
		return 0, nil
	}
	if err := db.CreateInBatches(subs, s.opts.BatchSize).Error; err != nil {
		return 0, fmt.Errorf("create subscriptions: %w", err)
	}
	return len(subs), nil
}

func (s *Seeder) seedTweets(db *gorm.DB, users []*models.User, perUser int) (int, error) {
	if perUser <= 0 {
		return 0, nil
	}
	tweets := make([]*models.Tweet, 0, len(users)*perUser)
	for _, u := range users {
		for i := 0; i < perUser; i++ {
			tweets = append(tweets, s.factory.BuildTweet(u))
		}
	}
	if err := db.CreateInBatches(tweets, s.opts.BatchSize).Error; err != nil {
		return 0, fmt.Errorf("create tweets: %w", err)
	}
	return len(tweets), nil
}

func (s *Seeder) seedPlaylists(users []*models.User, videos []*models.Video, perUser int) (int, error) {
	if perUser <= 0 || len(videos) == 0 {
		return 0, nil
	}
	count := 0
	for _, u := range users {
		for i := 0; i < perUser; i++ {
			picked := s.sample(videos, s.factory.faker.Number(1, 8))
			if _, err := s.factory.CreatePlaylist(u, picked); err != nil {
				return count, fmt.Errorf("create playlist: %w", err)
			}
			count++
		}
	}
	return count, nil
}

// seedHistory writes a watch history per user, most recent first.
func (s *Seeder) seedHistory(db *gorm.DB, users []*models.User, videos []*models.Video, perUser int) error {
	if perUser <= 0 || len(videos) == 0 {
		return nil
	}
	for _, u := range users {
		history := make([]string, 0, perUser)
		for i := 0; i < perUser; i++ {
			history = append(history, videos[s.factory.faker.Number(0, len(videos)-1)].ID)
		}
		u.WatchHistory = history
		if err := db.Model(u).Select("WatchHistory").Updates(u).Error; err != nil {
			return fmt.Errorf("update watch history: %w", err)
		}
	}
	return nil
}

// sample returns up to n distinct videos in random order.
func (s *Seeder) sample(videos []*models.Video, n int) []*models.Video {
	if n > len(videos) {
		n = len(videos)
	}
	idx := make([]int, len(videos))
	for i := range idx {
		idx[i] = i
	}
	out := make([]*models.Video, 0, n)
	for i := 0; i < n; i++ {
		j := s.factory.faker.Number(i, len(idx)-1)
		idx[i], idx[j] = idx[j], idx[i]
		out = append(out, videos[idx[i]])
	}
	return out
}
