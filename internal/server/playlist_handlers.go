package server

import (
	"videotube/internal/service"

	"github.com/gofiber/fiber/v2"
)

type createPlaylistRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type updatePlaylistRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// GetPlaylist returns a playlist with its owner and videos in position order.
// @Summary Get playlist
// @Tags playlists
// @Produce json
// @Param id path string true "Playlist ID"
// @Success 200 {object} readmodel.PlaylistDetail
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /playlists/{id} [get]
func (s *Server) GetPlaylist(c *fiber.Ctx) error {
	playlistID, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	detail, err := s.views.PlaylistDetail(c.UserContext(), playlistID)
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(detail)
}

// GetUserPlaylists lists a user's playlists with their video counts.
// @Summary List user playlists
// @Tags playlists
// @Produce json
// @Param id path string true "User ID"
// @Param page query int false "Page number"
// @Param limit query int false "Page size (max 100)"
// @Success 200 {object} readmodel.Page[readmodel.PlaylistSummary]
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /users/{id}/playlists [get]
func (s *Server) GetUserPlaylists(c *fiber.Ctx) error {
	userID, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	page, err := s.views.UserPlaylists(c.UserContext(), userID, pageRequest(c))
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(page)
}

// CreatePlaylist godoc
// @Summary Create playlist
// @Tags playlists
// @Accept json
// @Produce json
// @Param request body createPlaylistRequest true "Playlist"
// @Success 201 {object} models.Playlist
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /playlists [post]
func (s *Server) CreatePlaylist(c *fiber.Ctx) error {
	var req createPlaylistRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}
	playlist, err := s.playlistService.CreatePlaylist(c.UserContext(), service.CreatePlaylistInput{
		OwnerID:     viewer(c),
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(playlist)
}

// UpdatePlaylist godoc
// @Summary Update playlist
// @Tags playlists
// @Accept json
// @Produce json
// @Param id path string true "Playlist ID"
// @Param request body updatePlaylistRequest true "Fields to change"
// @Success 200 {object} models.Playlist
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /playlists/{id} [patch]
func (s *Server) UpdatePlaylist(c *fiber.Ctx) error {
	playlistID, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	var req updatePlaylistRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}
	playlist, err := s.playlistService.UpdatePlaylist(c.UserContext(), service.UpdatePlaylistInput{
		ActorID:     viewer(c),
		PlaylistID:  playlistID,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(playlist)
}

// DeletePlaylist godoc
// @Summary Delete playlist
// @Tags playlists
// @Produce json
// @Param id path string true "Playlist ID"
// @Success 204
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /playlists/{id} [delete]
func (s *Server) DeletePlaylist(c *fiber.Ctx) error {
	playlistID, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	if err := s.playlistService.DeletePlaylist(c.UserContext(), viewer(c), playlistID); err != nil {
		return respond(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AddPlaylistVideo appends a video. Adding an existing member is not an error.
// @Summary Add video to playlist
// @Tags playlists
// @Produce json
// @Param id path string true "Playlist ID"
// @Param videoId path string true "Video ID"
// @Success 200 {object} object{playlist_id=string,video_id=string,added=bool}
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /playlists/{id}/videos/{videoId} [post]
func (s *Server) AddPlaylistVideo(c *fiber.Ctx) error {
	playlistID, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	videoID, err := parseID(c, "videoId")
	if err != nil {
		return nil
	}
	added, err := s.playlistService.AddVideo(c.UserContext(), viewer(c), playlistID, videoID)
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(fiber.Map{"playlist_id": playlistID, "video_id": videoID, "added": added})
}

// RemovePlaylistVideo godoc
// @Summary Remove video from playlist
// @Tags playlists
// @Produce json
// @Param id path string true "Playlist ID"
// @Param videoId path string true "Video ID"
// @Success 200 {object} object{playlist_id=string,video_id=string,removed=bool}
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /playlists/{id}/videos/{videoId} [delete]
func (s *Server) RemovePlaylistVideo(c *fiber.Ctx) error {
	playlistID, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	videoID, err := parseID(c, "videoId")
	if err != nil {
		return nil
	}
	removed, err := s.playlistService.RemoveVideo(c.UserContext(), viewer(c), playlistID, videoID)
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(fiber.Map{"playlist_id": playlistID, "video_id": videoID, "removed": removed})
}
