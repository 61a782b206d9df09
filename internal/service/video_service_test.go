package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"videotube/internal/featureflags"
	"videotube/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validVideoInput(owner string) CreateVideoInput {
	return CreateVideoInput{
		OwnerID:      owner,
		Title:        "Intro",
		Description:  "first upload",
		MediaRef:     "media/intro.mp4",
		ThumbnailRef: "thumbs/intro.png",
	}
}

func TestVideoService_CreateVideo(t *testing.T) {
	t.Parallel()
	owner := newID()
	svc := NewVideoService(noopVideoRepo(), noopUserRepo(), featureflags.NewManager(""), 10, 0)
	ctx := context.Background()

	video, err := svc.CreateVideo(ctx, validVideoInput(owner))
	require.NoError(t, err)
	assert.True(t, video.IsPublished)
	assert.Equal(t, owner, video.OwnerID)

	draft := validVideoInput(owner)
	draft.Publish = new(bool)
	video, err = svc.CreateVideo(ctx, draft)
	require.NoError(t, err)
	assert.False(t, video.IsPublished)

	for name, mutate := range map[string]func(*CreateVideoInput){
		"blank title":       func(in *CreateVideoInput) { in.Title = " " },
		"missing desc":      func(in *CreateVideoInput) { in.Description = "" },
		"long title":        func(in *CreateVideoInput) { in.Title = strings.Repeat("x", 201) },
		"missing media":     func(in *CreateVideoInput) { in.MediaRef = "" },
		"negative duration": func(in *CreateVideoInput) { in.DurationSeconds = -1 },
	} {
		t.Run(name, func(t *testing.T) {
			in := validVideoInput(owner)
			mutate(&in)
			_, err := svc.CreateVideo(ctx, in)
			assertCode(t, err, models.CodeValidationFailed)
		})
	}
}

func TestVideoService_OwnerOnlyMutations(t *testing.T) {
	t.Parallel()
	owner, stranger, videoID := newID(), newID(), newID()
	repo := noopVideoRepo()
	repo.getByIDFn = func(_ context.Context, id string) (*models.Video, error) {
		return &models.Video{ID: id, OwnerID: owner, Title: "old", IsPublished: true}, nil
	}
	deleted := ""
	repo.deleteFn = func(_ context.Context, id string) error {
		deleted = id
		return nil
	}
	svc := NewVideoService(repo, noopUserRepo(), nil, 10, 0)
	ctx := context.Background()
	title := "new"

	_, err := svc.UpdateVideo(ctx, UpdateVideoInput{ActorID: stranger, VideoID: videoID, Title: &title})
	assertCode(t, err, models.CodeForbidden)
	_, err = svc.TogglePublish(ctx, stranger, videoID)
	assertCode(t, err, models.CodeForbidden)
	assertCode(t, svc.DeleteVideo(ctx, stranger, videoID), models.CodeForbidden)
	assert.Empty(t, deleted)

	_, err = svc.UpdateVideo(ctx, UpdateVideoInput{ActorID: owner, VideoID: videoID})
	assertCode(t, err, models.CodeValidationFailed)
	blank := ""
	_, err = svc.UpdateVideo(ctx, UpdateVideoInput{ActorID: owner, VideoID: videoID, Title: &blank})
	assertCode(t, err, models.CodeValidationFailed)

	video, err := svc.UpdateVideo(ctx, UpdateVideoInput{ActorID: owner, VideoID: videoID, Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "new", video.Title)

	video, err = svc.TogglePublish(ctx, owner, videoID)
	require.NoError(t, err)
	assert.False(t, video.IsPublished)

	require.NoError(t, svc.DeleteVideo(ctx, owner, videoID))
	assert.Equal(t, videoID, deleted)

	_, err = svc.TogglePublish(ctx, owner, "nope")
	assertCode(t, err, models.CodeInvalidID)
}

type viewRecorder struct {
	mu         sync.Mutex
	increments []string
	pushes     []string
	ctxErrs    []error
	limit      int
}

func (r *viewRecorder) repos(failIncrement bool) (*videoRepoStub, *userRepoStub) {
	videos, users := noopVideoRepo(), noopUserRepo()
	videos.incrementFn = func(ctx context.Context, id string) error {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.increments = append(r.increments, id)
		r.ctxErrs = append(r.ctxErrs, ctx.Err())
		if failIncrement {
			return errors.New("db down")
		}
		return nil
	}
	users.pushHistoryFn = func(ctx context.Context, userID, videoID string, limit int) error {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.pushes = append(r.pushes, userID+">"+videoID)
		r.ctxErrs = append(r.ctxErrs, ctx.Err())
		r.limit = limit
		return nil
	}
	return videos, users
}

func TestVideoService_RecordViewDetached(t *testing.T) {
	t.Parallel()
	rec := &viewRecorder{}
	videos, users := rec.repos(false)
	svc := NewVideoService(videos, users, featureflags.NewManager("view_counting=on,watch_history=on"), 500, time.Second)
	viewer, videoID := newID(), newID()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	svc.RecordView(ctx, videoID, viewer)
	svc.Wait()

	assert.Equal(t, []string{videoID}, rec.increments)
	assert.Equal(t, []string{viewer + ">" + videoID}, rec.pushes)
	assert.Equal(t, 500, rec.limit)
	for _, err := range rec.ctxErrs {
		assert.NoError(t, err, "writes must not inherit the request cancellation")
	}
}

func TestVideoService_RecordViewFlagsAndAnonymous(t *testing.T) {
	t.Parallel()

	rec := &viewRecorder{}
	videos, users := rec.repos(false)
	svc := NewVideoService(videos, users, featureflags.NewManager("view_counting=on,watch_history=on"), 10, 0)
	svc.RecordView(context.Background(), newID(), "")
	svc.Wait()
	assert.Len(t, rec.increments, 1)
	assert.Empty(t, rec.pushes, "anonymous viewers have no history")

	off := &viewRecorder{}
	videos, users = off.repos(false)
	svc = NewVideoService(videos, users, featureflags.NewManager("view_counting=off,watch_history=off"), 10, 0)
	svc.RecordView(context.Background(), newID(), newID())
	svc.Wait()
	assert.Empty(t, off.increments)
	assert.Empty(t, off.pushes)
}

func TestVideoService_RecordViewFailureIsSwallowed(t *testing.T) {
	t.Parallel()
	rec := &viewRecorder{}
	videos, users := rec.repos(true)
	svc := NewVideoService(videos, users, featureflags.NewManager("view_counting=on,watch_history=on"), 10, 0)

	assert.NotPanics(t, func() {
		svc.RecordView(context.Background(), newID(), newID())
		svc.Wait()
	})
	assert.Len(t, rec.increments, 1)
	assert.Len(t, rec.pushes, 1, "a failed increment must not skip the history write")
}
