// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development and testing only.
package seed

import (
	"fmt"
	"strings"
	"time"

	"videotube/internal/models"
	"videotube/internal/validation"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DefaultPassword is the plaintext password of every seeded account.
const DefaultPassword = "Videotube-2024!"

// Options tunes the generated data.
type Options struct {
	// Seed makes generation reproducible when non-zero.
	Seed int64
	// SkipBcrypt stores a cheap placeholder hash instead of a bcrypt hash.
	SkipBcrypt bool
	// MaxDays spreads created_at values over this many days in the past.
	MaxDays int
	// BatchSize bounds multi-row inserts.
	BatchSize int
}

func (o Options) withDefaults() Options {
	if o.MaxDays <= 0 {
		o.MaxDays = 90
	}
	if o.BatchSize <= 0 {
		o.BatchSize = 200
	}
	return o
}

// account is the part of a user checked before it is stored.
type account struct {
	Username string `validate:"username"`
	Email    string `validate:"accountemail"`
}

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db       *gorm.DB
	opts     Options
	faker    *gofakeit.Faker
	password string
	serial   int
}

// NewFactory creates a Factory bound to db.
func NewFactory(db *gorm.DB, opts Options) (*Factory, error) {
	opts = opts.withDefaults()
	f := &Factory{db: db, opts: opts, faker: gofakeit.New(opts.Seed)}

	if err := validation.ValidatePassword(DefaultPassword); err != nil {
		return nil, fmt.Errorf("seed password rejected: %w", err)
	}
	if opts.SkipBcrypt {
		f.password = "unhashed:" + DefaultPassword
	} else {
		// Hashed once; every seeded account shares it.
		hash, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash seed password: %w", err)
		}
		f.password = string(hash)
	}
	return f, nil
}

// pastTime returns a random instant within the configured MaxDays window.
func (f *Factory) pastTime() time.Time {
	minutes := f.faker.Number(0, f.opts.MaxDays*24*60)
	return time.Now().Add(-time.Duration(minutes) * time.Minute)
}

// username derives a valid, unique channel handle from a fake first name.
func (f *Factory) username() string {
	f.serial++
	name := strings.Map(func(r rune) rune {
		if r >= 'a' && r <= 'z' {
			return r
		}
		return -1
	}, strings.ToLower(f.faker.FirstName()))
	if len(name) < 2 {
		name = "viewer"
	}
	if len(name) > 20 {
		name = name[:20]
	}
	return fmt.Sprintf("%s%d", name, f.serial)
}

// BuildUser returns an unsaved user that passes account validation.
func (f *Factory) BuildUser(overrides ...func(*models.User)) *models.User {
	handle := f.username()
	user := &models.User{
		Username:    handle,
		Email:       handle + "@example.com",
		DisplayName: f.faker.FirstName() + " " + f.faker.LastName(),
		Avatar:      fmt.Sprintf("https://i.pravatar.cc/150?u=%s", handle),
		Cover:       fmt.Sprintf("https://picsum.photos/seed/cover-%s/1280/320", handle),
		Password:    f.password,
	}
	user.CreatedAt = f.pastTime()

	for _, override := range overrides {
		override(user)
	}
	return user
}

// CreateUser builds and persists a user.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	user := f.BuildUser(overrides...)
	if err := validation.Struct(account{Username: user.Username, Email: user.Email}); err != nil {
		return nil, fmt.Errorf("seed user %q: %w", user.Username, err)
	}
	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// BuildVideo returns an unsaved video owned by owner.
func (f *Factory) BuildVideo(owner *models.User, overrides ...func(*models.Video)) *models.Video {
	slug := f.faker.UUID()
	video := &models.Video{
		OwnerID:         owner.ID,
		Title:           strings.TrimSuffix(f.faker.Sentence(f.faker.Number(3, 8)), "."),
		Description:     f.faker.Paragraph(1, 3, 12, "\n"),
		MediaRef:        fmt.Sprintf("videos/%s/%s.mp4", owner.ID, slug),
		ThumbnailRef:    fmt.Sprintf("https://picsum.photos/seed/%s/640/360", slug),
		DurationSeconds: f.faker.Number(15, 3600),
		ViewCount:       int64(f.faker.Number(0, 50000)),
		// Roughly one in eight videos stays a draft.
		IsPublished: f.faker.Number(1, 8) != 1,
	}
	video.CreatedAt = f.pastTime()

	for _, override := range overrides {
		override(video)
	}
	return video
}

// CreateVideo builds and persists a video.
func (f *Factory) CreateVideo(owner *models.User, overrides ...func(*models.Video)) (*models.Video, error) {
	video := f.BuildVideo(owner, overrides...)
	if err := f.db.Create(video).Error; err != nil {
		return nil, err
	}
	return video, nil
}

// BuildComment returns an unsaved comment by author on video.
func (f *Factory) BuildComment(author *models.User, video *models.Video) *models.Comment {
	comment := &models.Comment{
		VideoID: video.ID,
		OwnerID: author.ID,
		Content: f.faker.Sentence(f.faker.Number(4, 20)),
	}
	comment.CreatedAt = f.pastTime()
	return comment
}

// BuildTweet returns an unsaved tweet by author.
func (f *Factory) BuildTweet(author *models.User) *models.Tweet {
	tweet := &models.Tweet{
		OwnerID: author.ID,
		Content: f.faker.HipsterSentence(f.faker.Number(5, 25)),
	}
	tweet.CreatedAt = f.pastTime()
	return tweet
}

// CreatePlaylist persists a playlist holding videos in the given order.
// Positions start at 1.
func (f *Factory) CreatePlaylist(owner *models.User, videos []*models.Video) (*models.Playlist, error) {
	playlist := &models.Playlist{
		OwnerID:     owner.ID,
		Name:        strings.TrimSuffix(f.faker.Sentence(f.faker.Number(2, 4)), "."),
		Description: f.faker.Sentence(10),
	}

	err := f.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(playlist).Error; err != nil {
			return err
		}
		if len(videos) == 0 {
			return nil
		}
		rows := make([]models.PlaylistVideo, 0, len(videos))
		for i, v := range videos {
			rows = append(rows, models.PlaylistVideo{
				PlaylistID: playlist.ID,
				VideoID:    v.ID,
				Position:   int64(i + 1),
			})
		}
		return tx.CreateInBatches(rows, f.opts.BatchSize).Error
	})
	if err != nil {
		return nil, err
	}
	return playlist, nil
}

// pickReaction decides how a viewer reacts to a video: like, dislike or nothing.
func (f *Factory) pickReaction() models.Reaction {
	switch roll := f.faker.Number(1, 10); {
	case roll <= 4:
		return models.ReactionLike
	case roll == 5:
		return models.ReactionDislike
	default:
		return models.ReactionNone
	}
}
