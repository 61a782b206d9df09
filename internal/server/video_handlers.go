package server

import (
	"videotube/internal/models"
	"videotube/internal/readmodel"
	"videotube/internal/service"

	"github.com/gofiber/fiber/v2"
)

type createVideoRequest struct {
	Title           string `json:"title"`
	Description     string `json:"description"`
	MediaRef        string `json:"media_ref"`
	ThumbnailRef    string `json:"thumbnail_ref"`
	DurationSeconds int    `json:"duration_seconds"`
	Publish         *bool  `json:"publish"`
}

type updateVideoRequest struct {
	Title        *string `json:"title"`
	Description  *string `json:"description"`
	ThumbnailRef *string `json:"thumbnail_ref"`
}

// GetVideos lists published videos.
// Query: page, limit, query, sortBy (views|duration|createdAt|relevance),
// sortType (asc|desc), userId.
// @Summary List published videos
// @Tags videos
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size (max 100)"
// @Param query query string false "Title or description filter"
// @Param userId query string false "Channel ID"
// @Param sortBy query string false "views, duration, createdAt or relevance"
// @Param sortType query string false "asc or desc"
// @Success 200 {object} readmodel.Page[readmodel.VideoCard]
// @Failure 400 {object} models.ErrorResponse
// @Router /videos [get]
func (s *Server) GetVideos(c *fiber.Ctx) error {
	page, err := s.views.VideoList(c.UserContext(), readmodel.VideoQuery{
		Query:       c.Query("query"),
		OwnerID:     c.Query("userId"),
		SortBy:      c.Query("sortBy"),
		SortType:    c.Query("sortType"),
		PageRequest: pageRequest(c),
	})
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(page)
}

// GetVideo returns the video detail and records the view in the background.
// @Summary Get video detail
// @Tags videos
// @Produce json
// @Param id path string true "Video ID"
// @Success 200 {object} readmodel.VideoDetail
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /videos/{id} [get]
func (s *Server) GetVideo(c *fiber.Ctx) error {
	videoID, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	detail, err := s.views.VideoDetail(c.UserContext(), videoID, viewer(c))
	if err != nil {
		return respond(c, err)
	}

	s.videoService.RecordView(c.UserContext(), videoID, viewer(c))
	return c.JSON(detail)
}

// CreateVideo publishes a video whose media has already been uploaded.
// @Summary Create video
// @Tags videos
// @Accept json
// @Produce json
// @Param request body createVideoRequest true "Video metadata"
// @Success 201 {object} models.Video
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /videos [post]
func (s *Server) CreateVideo(c *fiber.Ctx) error {
	var req createVideoRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	video, err := s.videoService.CreateVideo(c.UserContext(), service.CreateVideoInput{
		OwnerID:         viewer(c),
		Title:           req.Title,
		Description:     req.Description,
		MediaRef:        req.MediaRef,
		ThumbnailRef:    req.ThumbnailRef,
		DurationSeconds: req.DurationSeconds,
		Publish:         req.Publish,
	})
	if err != nil {
		return respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(video)
}

// UpdateVideo changes title, description or thumbnail (owner only).
// @Summary Update video
// @Tags videos
// @Accept json
// @Produce json
// @Param id path string true "Video ID"
// @Param request body updateVideoRequest true "Fields to change"
// @Success 200 {object} models.Video
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /videos/{id} [patch]
func (s *Server) UpdateVideo(c *fiber.Ctx) error {
	videoID, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	var req updateVideoRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	video, err := s.videoService.UpdateVideo(c.UserContext(), service.UpdateVideoInput{
		ActorID:      viewer(c),
		VideoID:      videoID,
		Title:        req.Title,
		Description:  req.Description,
		ThumbnailRef: req.ThumbnailRef,
	})
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(video)
}

// DeleteVideo removes a video (owner only).
// @Summary Delete video
// @Tags videos
// @Produce json
// @Param id path string true "Video ID"
// @Success 204
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /videos/{id} [delete]
func (s *Server) DeleteVideo(c *fiber.Ctx) error {
	videoID, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	if err := s.videoService.DeleteVideo(c.UserContext(), viewer(c), videoID); err != nil {
		return respond(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// TogglePublish flips the published flag (owner only).
// @Summary Toggle publish status
// @Tags videos
// @Produce json
// @Param id path string true "Video ID"
// @Success 200 {object} object{id=string,is_published=bool}
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /videos/{id}/publish [patch]
func (s *Server) TogglePublish(c *fiber.Ctx) error {
	videoID, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	video, err := s.videoService.TogglePublish(c.UserContext(), viewer(c), videoID)
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(fiber.Map{"id": video.ID, "is_published": video.IsPublished})
}

// ToggleLike likes the video, or removes the like if already present.
// @Summary Toggle like
// @Tags reactions
// @Produce json
// @Param id path string true "Video ID"
// @Success 200 {object} object{video_id=string,liked=bool}
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /videos/{id}/like [post]
func (s *Server) ToggleLike(c *fiber.Ctx) error {
	videoID, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	state, err := s.toggleService.ToggleLike(c.UserContext(), viewer(c), videoID)
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(fiber.Map{"video_id": videoID, "liked": state == models.TogglePresent})
}

// ToggleDislike dislikes the video, or removes the dislike if already present.
// @Summary Toggle dislike
// @Tags reactions
// @Produce json
// @Param id path string true "Video ID"
// @Success 200 {object} object{video_id=string,disliked=bool}
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /videos/{id}/dislike [post]
func (s *Server) ToggleDislike(c *fiber.Ctx) error {
	videoID, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	state, err := s.toggleService.ToggleDislike(c.UserContext(), viewer(c), videoID)
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(fiber.Map{"video_id": videoID, "disliked": state == models.TogglePresent})
}
