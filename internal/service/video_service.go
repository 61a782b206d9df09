package service

import (
	"context"
	"sync"
	"time"

	"videotube/internal/featureflags"
	"videotube/internal/models"
	"videotube/internal/observability"
	"videotube/internal/repository"
	"videotube/internal/validation"
)

// DefaultViewCountTimeout bounds the detached view-count write.
const DefaultViewCountTimeout = 3 * time.Second

type VideoService struct {
	videos       repository.VideoRepository
	users        repository.UserRepository
	flags        *featureflags.Manager
	historyMax   int
	countTimeout time.Duration
	inflight     sync.WaitGroup
}

type CreateVideoInput struct {
	OwnerID         string `validate:"entityid"`
	Title           string `validate:"notblank,max=200"`
	Description     string `validate:"notblank,max=5000"`
	MediaRef        string `validate:"notblank,max=500"`
	ThumbnailRef    string `validate:"notblank,max=500"`
	DurationSeconds int    `validate:"gte=0"`
	// Publish defaults to true when nil.
	Publish *bool
}

// UpdateVideoInput changes only the fields that are set.
type UpdateVideoInput struct {
	ActorID      string
	VideoID      string
	Title        *string `validate:"omitnil,notblank,max=200"`
	Description  *string `validate:"omitnil,notblank,max=5000"`
	ThumbnailRef *string `validate:"omitnil,notblank,max=500"`
}

func NewVideoService(
	videos repository.VideoRepository,
	users repository.UserRepository,
	flags *featureflags.Manager,
	historyMax int,
	countTimeout time.Duration,
) *VideoService {
	if countTimeout <= 0 {
		countTimeout = DefaultViewCountTimeout
	}
	return &VideoService{
		videos:       videos,
		users:        users,
		flags:        flags,
		historyMax:   historyMax,
		countTimeout: countTimeout,
	}
}

func (s *VideoService) CreateVideo(ctx context.Context, in CreateVideoInput) (*models.Video, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	published := true
	if in.Publish != nil {
		published = *in.Publish
	}

	video := &models.Video{
		OwnerID:         in.OwnerID,
		Title:           in.Title,
		Description:     in.Description,
		MediaRef:        in.MediaRef,
		ThumbnailRef:    in.ThumbnailRef,
		DurationSeconds: in.DurationSeconds,
		IsPublished:     published,
	}
	if err := s.videos.Create(ctx, video); err != nil {
		return nil, err
	}
	return video, nil
}

func (s *VideoService) UpdateVideo(ctx context.Context, in UpdateVideoInput) (*models.Video, error) {
	if err := requireIDs("video id", in.VideoID); err != nil {
		return nil, err
	}
	if in.Title == nil && in.Description == nil && in.ThumbnailRef == nil {
		return nil, models.NewValidationError("Nothing to update")
	}
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	video, err := s.videos.GetByID(ctx, in.VideoID)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(video.OwnerID, in.ActorID, "update your own videos"); err != nil {
		return nil, err
	}

	if in.Title != nil {
		video.Title = *in.Title
	}
	if in.Description != nil {
		video.Description = *in.Description
	}
	if in.ThumbnailRef != nil {
		video.ThumbnailRef = *in.ThumbnailRef
	}
	if err := s.videos.Update(ctx, video); err != nil {
		return nil, err
	}
	return video, nil
}

func (s *VideoService) DeleteVideo(ctx context.Context, actorID, videoID string) error {
	if err := requireIDs("video id", videoID); err != nil {
		return err
	}
	video, err := s.videos.GetByID(ctx, videoID)
	if err != nil {
		return err
	}
	if err := requireOwner(video.OwnerID, actorID, "delete your own videos"); err != nil {
		return err
	}
	return s.videos.Delete(ctx, videoID)
}

// TogglePublish flips the publication state of the actor's video.
func (s *VideoService) TogglePublish(ctx context.Context, actorID, videoID string) (*models.Video, error) {
	if err := requireIDs("video id", videoID); err != nil {
		return nil, err
	}
	video, err := s.videos.GetByID(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(video.OwnerID, actorID, "publish your own videos"); err != nil {
		return nil, err
	}

	video.IsPublished = !video.IsPublished
	if err := s.videos.Update(ctx, video); err != nil {
		return nil, err
	}
	return video, nil
}

// RecordView counts a view of videoID and prepends it to the viewer's watch
// history. It returns immediately; the writes run on a context detached from
// ctx's cancellation and their failures are logged and counted only.
func (s *VideoService) RecordView(ctx context.Context, videoID, viewerID string) {
	countView := s.flags.Enabled(featureflags.ViewCounting, viewerID)
	pushHistory := models.ValidID(viewerID) && s.flags.Enabled(featureflags.WatchHistory, viewerID)
	if !countView && !pushHistory {
		return
	}

	detached := context.WithoutCancel(ctx)
	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()
		ctx, cancel := context.WithTimeout(detached, s.countTimeout)
		defer cancel()

		fields := map[string]any{"video_id": videoID, "viewer_id": viewerID}
		if countView {
			if err := s.videos.IncrementViews(ctx, videoID); err != nil {
				observability.ViewCountFailures.Inc()
				observability.LogAsyncOperationError(ctx, "increment_view_count", err, fields)
			}
		}
		if pushHistory {
			if err := s.users.PushWatchHistory(ctx, viewerID, videoID, s.historyMax); err != nil {
				observability.ViewCountFailures.Inc()
				observability.LogAsyncOperationError(ctx, "push_watch_history", err, fields)
			}
		}
	}()
}

// Wait blocks until every RecordView started so far has finished.
func (s *VideoService) Wait() {
	s.inflight.Wait()
}
