package service

import (
	"context"
	"testing"

	"videotube/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// videoRepoStub is a stub for repository.VideoRepository.
type videoRepoStub struct {
	createFn    func(context.Context, *models.Video) error
	getByIDFn   func(context.Context, string) (*models.Video, error)
	updateFn    func(context.Context, *models.Video) error
	deleteFn    func(context.Context, string) error
	existsFn    func(context.Context, string) (bool, error)
	incrementFn func(context.Context, string) error
}

func (s *videoRepoStub) Create(ctx context.Context, v *models.Video) error { return s.createFn(ctx, v) }
func (s *videoRepoStub) GetByID(ctx context.Context, id string) (*models.Video, error) {
	return s.getByIDFn(ctx, id)
}
func (s *videoRepoStub) Update(ctx context.Context, v *models.Video) error { return s.updateFn(ctx, v) }
func (s *videoRepoStub) Delete(ctx context.Context, id string) error       { return s.deleteFn(ctx, id) }
func (s *videoRepoStub) Exists(ctx context.Context, id string) (bool, error) {
	return s.existsFn(ctx, id)
}
func (s *videoRepoStub) IncrementViews(ctx context.Context, id string) error {
	return s.incrementFn(ctx, id)
}

func noopVideoRepo() *videoRepoStub {
	return &videoRepoStub{
		createFn:    func(_ context.Context, _ *models.Video) error { return nil },
		getByIDFn:   func(_ context.Context, id string) (*models.Video, error) { return &models.Video{ID: id}, nil },
		updateFn:    func(_ context.Context, _ *models.Video) error { return nil },
		deleteFn:    func(_ context.Context, _ string) error { return nil },
		existsFn:    func(_ context.Context, _ string) (bool, error) { return true, nil },
		incrementFn: func(_ context.Context, _ string) error { return nil },
	}
}

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	existsFn      func(context.Context, string) (bool, error)
	pushHistoryFn func(context.Context, string, string, int) error
}

func (s *userRepoStub) Create(context.Context, *models.User) error { return nil }
func (s *userRepoStub) GetByID(_ context.Context, id string) (*models.User, error) {
	return &models.User{ID: id}, nil
}
func (s *userRepoStub) GetByUsername(_ context.Context, name string) (*models.User, error) {
	return &models.User{Username: name}, nil
}
func (s *userRepoStub) Exists(ctx context.Context, id string) (bool, error) { return s.existsFn(ctx, id) }
func (s *userRepoStub) PushWatchHistory(ctx context.Context, userID, videoID string, limit int) error {
	return s.pushHistoryFn(ctx, userID, videoID, limit)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		existsFn:      func(_ context.Context, _ string) (bool, error) { return true, nil },
		pushHistoryFn: func(_ context.Context, _, _ string, _ int) error { return nil },
	}
}

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn  func(context.Context, *models.Comment) error
	getByIDFn func(context.Context, string) (*models.Comment, error)
	updateFn  func(context.Context, *models.Comment) error
	deleteFn  func(context.Context, string) error
}

func (s *commentRepoStub) Create(ctx context.Context, c *models.Comment) error {
	return s.createFn(ctx, c)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) Update(ctx context.Context, c *models.Comment) error {
	return s.updateFn(ctx, c)
}
func (s *commentRepoStub) Delete(ctx context.Context, id string) error { return s.deleteFn(ctx, id) }

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn:  func(_ context.Context, _ *models.Comment) error { return nil },
		getByIDFn: func(_ context.Context, id string) (*models.Comment, error) { return &models.Comment{ID: id}, nil },
		updateFn:  func(_ context.Context, _ *models.Comment) error { return nil },
		deleteFn:  func(_ context.Context, _ string) error { return nil },
	}
}

// tweetRepoStub is a stub for repository.TweetRepository.
type tweetRepoStub struct {
	tweets  map[string]*models.Tweet
	deleted []string
}

func (s *tweetRepoStub) Create(_ context.Context, t *models.Tweet) error {
	t.ID = uuid.NewString()
	s.tweets[t.ID] = t
	return nil
}
func (s *tweetRepoStub) GetByID(_ context.Context, id string) (*models.Tweet, error) {
	t, ok := s.tweets[id]
	if !ok {
		return nil, models.NewNotFoundError("Tweet", id)
	}
	return t, nil
}
func (s *tweetRepoStub) Update(_ context.Context, t *models.Tweet) error {
	s.tweets[t.ID] = t
	return nil
}
func (s *tweetRepoStub) Delete(_ context.Context, id string) error {
	s.deleted = append(s.deleted, id)
	delete(s.tweets, id)
	return nil
}

// playlistRepoStub is a stub for repository.PlaylistRepository backed by maps.
type playlistRepoStub struct {
	playlists map[string]*models.Playlist
	members   map[string]map[string]bool
}

func newPlaylistRepoStub() *playlistRepoStub {
	return &playlistRepoStub{playlists: map[string]*models.Playlist{}, members: map[string]map[string]bool{}}
}

func (s *playlistRepoStub) Create(_ context.Context, p *models.Playlist) error {
	p.ID = uuid.NewString()
	s.playlists[p.ID] = p
	return nil
}
func (s *playlistRepoStub) GetByID(_ context.Context, id string) (*models.Playlist, error) {
	p, ok := s.playlists[id]
	if !ok {
		return nil, models.NewNotFoundError("Playlist", id)
	}
	cp := *p
	return &cp, nil
}
func (s *playlistRepoStub) Update(_ context.Context, p *models.Playlist) error {
	s.playlists[p.ID] = p
	return nil
}
func (s *playlistRepoStub) Delete(_ context.Context, id string) error {
	delete(s.playlists, id)
	delete(s.members, id)
	return nil
}
func (s *playlistRepoStub) AddVideo(_ context.Context, playlistID, videoID string) (bool, error) {
	if s.members[playlistID] == nil {
		s.members[playlistID] = map[string]bool{}
	}
	if s.members[playlistID][videoID] {
		return false, nil
	}
	s.members[playlistID][videoID] = true
	return true, nil
}
func (s *playlistRepoStub) RemoveVideo(_ context.Context, playlistID, videoID string) (bool, error) {
	if !s.members[playlistID][videoID] {
		return false, nil
	}
	delete(s.members[playlistID], videoID)
	return true, nil
}

// pairToggleStub flips presence per key, like the atomic repository toggles.
type pairToggleStub struct {
	present map[string]bool
	calls   int
	// fail, when set, is consulted before each flip.
	fail func(call int) error
}

func newPairToggleStub() *pairToggleStub {
	return &pairToggleStub{present: map[string]bool{}}
}

func (s *pairToggleStub) flip(key string) (models.ToggleState, error) {
	s.calls++
	if s.fail != nil {
		if err := s.fail(s.calls); err != nil {
			return "", err
		}
	}
	s.present[key] = !s.present[key]
	if s.present[key] {
		return models.TogglePresent, nil
	}
	return models.ToggleAbsent, nil
}

func (s *pairToggleStub) Toggle(_ context.Context, subscriberID, channelID string) (models.ToggleState, error) {
	return s.flip(subscriberID + ":" + channelID)
}

// reactionToggleStub adapts pairToggleStub to repository.ReactionRepository.
type reactionToggleStub struct{ *pairToggleStub }

func (s reactionToggleStub) Toggle(_ context.Context, kind models.Reaction, userID, videoID string) (models.ToggleState, error) {
	state, err := s.flip(string(kind) + ":" + userID + ":" + videoID)
	if err == nil && state == models.TogglePresent {
		delete(s.present, string(kind.Opposite())+":"+userID+":"+videoID)
	}
	return state, err
}

func newID() string { return uuid.NewString() }

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	assert.Error(t, err)
	assert.Equal(t, code, models.ErrorCode(err), "error: %v", err)
}
