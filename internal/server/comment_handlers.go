package server

import (
	"videotube/internal/service"

	"github.com/gofiber/fiber/v2"
)

type commentRequest struct {
	Content string `json:"content"`
}

// GetVideoComments returns a page of comments on a video, newest first.
// @Summary List video comments
// @Tags comments
// @Produce json
// @Param id path string true "Video ID"
// @Param page query int false "Page number"
// @Param limit query int false "Page size (max 100)"
// @Success 200 {object} readmodel.Page[readmodel.CommentView]
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /videos/{id}/comments [get]
func (s *Server) GetVideoComments(c *fiber.Ctx) error {
	videoID, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	page, err := s.views.CommentsForVideo(c.UserContext(), videoID, pageRequest(c))
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(page)
}

// CreateComment adds a comment to a video (protected)
// @Summary Add comment
// @Tags comments
// @Accept json
// @Produce json
// @Param id path string true "Video ID"
// @Param request body commentRequest true "Comment"
// @Success 201 {object} models.Comment
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /videos/{id}/comments [post]
func (s *Server) CreateComment(c *fiber.Ctx) error {
	videoID, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	var req commentRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	comment, err := s.commentService.CreateComment(c.UserContext(), service.CreateCommentInput{
		UserID:  viewer(c),
		VideoID: videoID,
		Content: req.Content,
	})
	if err != nil {
		return respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}

// UpdateComment updates a comment (only owner)
// @Summary Update comment
// @Tags comments
// @Accept json
// @Produce json
// @Param id path string true "Comment ID"
// @Param request body commentRequest true "Comment"
// @Success 200 {object} models.Comment
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /comments/{id} [patch]
func (s *Server) UpdateComment(c *fiber.Ctx) error {
	commentID, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	var req commentRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	comment, err := s.commentService.UpdateComment(c.UserContext(), service.UpdateCommentInput{
		UserID:    viewer(c),
		CommentID: commentID,
		Content:   req.Content,
	})
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(comment)
}

// DeleteComment deletes a comment (only owner)
// @Summary Delete comment
// @Tags comments
// @Produce json
// @Param id path string true "Comment ID"
// @Success 204
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /comments/{id} [delete]
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	commentID, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	if _, err := s.commentService.DeleteComment(c.UserContext(), viewer(c), commentID); err != nil {
		return respond(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
