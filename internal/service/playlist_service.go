package service

import (
	"context"

	"videotube/internal/models"
	"videotube/internal/repository"
	"videotube/internal/validation"
)

type PlaylistService struct {
	playlists repository.PlaylistRepository
	videos    repository.VideoRepository
}

type CreatePlaylistInput struct {
	OwnerID     string
	Name        string `validate:"notblank,max=200"`
	Description string `validate:"max=2000"`
}

type UpdatePlaylistInput struct {
	ActorID     string
	PlaylistID  string
	Name        *string `validate:"omitnil,notblank,max=200"`
	Description *string `validate:"omitnil,max=2000"`
}

func NewPlaylistService(playlists repository.PlaylistRepository, videos repository.VideoRepository) *PlaylistService {
	return &PlaylistService{playlists: playlists, videos: videos}
}

func (s *PlaylistService) CreatePlaylist(ctx context.Context, in CreatePlaylistInput) (*models.Playlist, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	playlist := &models.Playlist{OwnerID: in.OwnerID, Name: in.Name, Description: in.Description}
	if err := s.playlists.Create(ctx, playlist); err != nil {
		return nil, err
	}
	return playlist, nil
}

func (s *PlaylistService) UpdatePlaylist(ctx context.Context, in UpdatePlaylistInput) (*models.Playlist, error) {
	if err := requireIDs("playlist id", in.PlaylistID); err != nil {
		return nil, err
	}
	if in.Name == nil && in.Description == nil {
		return nil, models.NewValidationError("Nothing to update")
	}
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	playlist, err := s.owned(ctx, in.ActorID, in.PlaylistID, "update your own playlists")
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		playlist.Name = *in.Name
	}
	if in.Description != nil {
		playlist.Description = *in.Description
	}
	if err := s.playlists.Update(ctx, playlist); err != nil {
		return nil, err
	}
	return playlist, nil
}

func (s *PlaylistService) DeletePlaylist(ctx context.Context, actorID, playlistID string) error {
	if err := requireIDs("playlist id", playlistID); err != nil {
		return err
	}
	if _, err := s.owned(ctx, actorID, playlistID, "delete your own playlists"); err != nil {
		return err
	}
	return s.playlists.Delete(ctx, playlistID)
}

// AddVideo appends videoID to the playlist. Adding a member again is a no-op
// reported as added=false.
func (s *PlaylistService) AddVideo(ctx context.Context, actorID, playlistID, videoID string) (bool, error) {
	if err := requireIDs("playlist id", playlistID, "video id", videoID); err != nil {
		return false, err
	}
	if _, err := s.owned(ctx, actorID, playlistID, "modify your own playlists"); err != nil {
		return false, err
	}
	if err := mustExist(ctx, s.videos.Exists, "Video", videoID); err != nil {
		return false, err
	}
	return s.playlists.AddVideo(ctx, playlistID, videoID)
}

// RemoveVideo drops videoID from the playlist and reports whether it was a member.
func (s *PlaylistService) RemoveVideo(ctx context.Context, actorID, playlistID, videoID string) (bool, error) {
	if err := requireIDs("playlist id", playlistID, "video id", videoID); err != nil {
		return false, err
	}
	if _, err := s.owned(ctx, actorID, playlistID, "modify your own playlists"); err != nil {
		return false, err
	}
	return s.playlists.RemoveVideo(ctx, playlistID, videoID)
}

func (s *PlaylistService) owned(ctx context.Context, actorID, playlistID, action string) (*models.Playlist, error) {
	playlist, err := s.playlists.GetByID(ctx, playlistID)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(playlist.OwnerID, actorID, action); err != nil {
		return nil, err
	}
	return playlist, nil
}
