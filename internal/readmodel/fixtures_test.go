package readmodel

import (
	"fmt"
	"testing"
	"time"

	"videotube/internal/models"
	"videotube/internal/testutil"

	"gorm.io/gorm"
)

var epoch = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	t  *testing.T
	db *gorm.DB
	c  *Composer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewDB(t)
	return &fixture{t: t, db: db, c: NewComposer(db, time.Second)}
}

func (f *fixture) user(name string) *models.User {
	f.t.Helper()
	u := &models.User{
		Username:     name,
		Email:        name + "@example.com",
		DisplayName:  "Display " + name,
		Avatar:       "avatars/" + name + ".png",
		Password:     "secret-hash-" + name,
		RefreshToken: ptr("refresh-" + name),
	}
	testutil.MustCreate(f.t, f.db, u)
	return u
}

func (f *fixture) video(owner *models.User, title string, views int64, minutes int) *models.Video {
	f.t.Helper()
	v := &models.Video{
		OwnerID:         owner.ID,
		Title:           title,
		Description:     "about " + title,
		MediaRef:        "media/" + title + ".mp4",
		DurationSeconds: 60,
		ViewCount:       views,
		IsPublished:     true,
		CreatedAt:       epoch.Add(time.Duration(minutes) * time.Minute),
	}
	testutil.MustCreate(f.t, f.db, v)
	return v
}

func (f *fixture) subscribe(subscriber, channel *models.User, minutes int) {
	f.t.Helper()
	testutil.MustCreate(f.t, f.db, &models.Subscription{
		SubscriberID: subscriber.ID,
		ChannelID:    channel.ID,
		CreatedAt:    epoch.Add(time.Duration(minutes) * time.Minute),
	})
}

func (f *fixture) like(user *models.User, video *models.Video) {
	f.t.Helper()
	testutil.MustCreate(f.t, f.db, &models.Like{UserID: user.ID, VideoID: video.ID})
}

func (f *fixture) dislike(user *models.User, video *models.Video) {
	f.t.Helper()
	testutil.MustCreate(f.t, f.db, &models.Dislike{UserID: user.ID, VideoID: video.ID})
}

func (f *fixture) users(prefix string, n int) []*models.User {
	out := make([]*models.User, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, f.user(fmt.Sprintf("%s%d", prefix, i)))
	}
	return out
}

func ptr[T any](v T) *T { return &v }
