package server

import (
	"videotube/internal/service"

	"github.com/gofiber/fiber/v2"
)

type tweetRequest struct {
	Content string `json:"content"`
}

// GetUserTweets lists a user's tweets, newest first.
// @Summary List user tweets
// @Tags tweets
// @Produce json
// @Param id path string true "User ID"
// @Param page query int false "Page number"
// @Param limit query int false "Page size (max 100)"
// @Success 200 {object} readmodel.Page[readmodel.TweetView]
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /users/{id}/tweets [get]
func (s *Server) GetUserTweets(c *fiber.Ctx) error {
	userID, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	page, err := s.views.UserTweets(c.UserContext(), userID, pageRequest(c))
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(page)
}

// CreateTweet godoc
// @Summary Create tweet
// @Tags tweets
// @Accept json
// @Produce json
// @Param request body tweetRequest true "Tweet"
// @Success 201 {object} models.Tweet
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /tweets [post]
func (s *Server) CreateTweet(c *fiber.Ctx) error {
	var req tweetRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}
	tweet, err := s.tweetService.CreateTweet(c.UserContext(), service.TweetInput{
		UserID:  viewer(c),
		Content: req.Content,
	})
	if err != nil {
		return respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(tweet)
}

// UpdateTweet godoc
// @Summary Update tweet
// @Tags tweets
// @Accept json
// @Produce json
// @Param id path string true "Tweet ID"
// @Param request body tweetRequest true "Tweet"
// @Success 200 {object} models.Tweet
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /tweets/{id} [patch]
func (s *Server) UpdateTweet(c *fiber.Ctx) error {
	tweetID, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	var req tweetRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}
	tweet, err := s.tweetService.UpdateTweet(c.UserContext(), service.TweetInput{
		UserID:  viewer(c),
		TweetID: tweetID,
		Content: req.Content,
	})
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(tweet)
}

// DeleteTweet godoc
// @Summary Delete tweet
// @Tags tweets
// @Produce json
// @Param id path string true "Tweet ID"
// @Success 204
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /tweets/{id} [delete]
func (s *Server) DeleteTweet(c *fiber.Ctx) error {
	tweetID, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	if err := s.tweetService.DeleteTweet(c.UserContext(), viewer(c), tweetID); err != nil {
		return respond(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
