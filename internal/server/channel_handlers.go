package server

import (
	"videotube/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetChannelProfile returns a channel by username with subscription counts
// and whether the viewer is subscribed.
// @Summary Get channel profile
// @Tags channels
// @Produce json
// @Param username path string true "Channel username"
// @Success 200 {object} readmodel.ChannelProfile
// @Failure 404 {object} models.ErrorResponse
// @Router /channels/{username} [get]
func (s *Server) GetChannelProfile(c *fiber.Ctx) error {
	profile, err := s.views.ChannelProfile(c.UserContext(), c.Params("username"), viewer(c))
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(profile)
}

// GetWatchHistory returns the caller's own watch history.
// @Summary Get own watch history
// @Tags channels
// @Produce json
// @Param id path string true "User ID"
// @Param page query int false "Page number"
// @Param limit query int false "Page size (max 100)"
// @Success 200 {object} readmodel.Page[readmodel.VideoCard]
// @Failure 401 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /users/{id}/history [get]
func (s *Server) GetWatchHistory(c *fiber.Ctx) error {
	userID, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	if userID != viewer(c) {
		return respond(c, models.NewForbiddenError("You can only view your own watch history"))
	}

	page, err := s.views.WatchHistory(c.UserContext(), userID, pageRequest(c))
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(page)
}

// GetChannelStats returns the dashboard totals for a channel.
// @Summary Get channel stats
// @Tags channels
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} readmodel.ChannelStats
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /users/{id}/stats [get]
func (s *Server) GetChannelStats(c *fiber.Ctx) error {
	userID, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	stats, err := s.views.ChannelStats(c.UserContext(), userID)
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(stats)
}

// GetChannelVideos lists a channel's videos with reaction counts.
// Unpublished videos are included only when the owner asks.
// @Summary List channel videos
// @Tags channels
// @Produce json
// @Param id path string true "User ID"
// @Param page query int false "Page number"
// @Param limit query int false "Page size (max 100)"
// @Param sortBy query string false "createdAt, views or likes"
// @Param sortType query string false "asc or desc"
// @Success 200 {object} readmodel.Page[readmodel.ChannelVideo]
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /users/{id}/videos [get]
func (s *Server) GetChannelVideos(c *fiber.Ctx) error {
	userID, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	page, err := s.views.ChannelVideos(c.UserContext(), userID, viewer(c),
		c.Query("sortBy"), c.Query("sortType"), pageRequest(c))
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(page)
}

// GetSubscribers lists the users subscribed to a channel.
// @Summary List channel subscribers
// @Tags subscriptions
// @Produce json
// @Param id path string true "User ID"
// @Param page query int false "Page number"
// @Param limit query int false "Page size (max 100)"
// @Success 200 {object} readmodel.Page[models.UserSummary]
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /users/{id}/subscribers [get]
func (s *Server) GetSubscribers(c *fiber.Ctx) error {
	userID, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	page, err := s.views.SubscribersOf(c.UserContext(), userID, pageRequest(c))
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(page)
}

// GetSubscriptions lists the channels a user is subscribed to.
// @Summary List subscribed channels
// @Tags subscriptions
// @Produce json
// @Param id path string true "User ID"
// @Param page query int false "Page number"
// @Param limit query int false "Page size (max 100)"
// @Success 200 {object} readmodel.Page[readmodel.SubscribedChannel]
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /users/{id}/subscriptions [get]
func (s *Server) GetSubscriptions(c *fiber.Ctx) error {
	userID, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	page, err := s.views.SubscribedTo(c.UserContext(), userID, pageRequest(c))
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(page)
}

// ToggleSubscription subscribes the caller to a channel, or unsubscribes.
// @Summary Toggle subscription
// @Tags subscriptions
// @Produce json
// @Param channelId path string true "Channel ID"
// @Success 200 {object} object{channel_id=string,subscribed=bool}
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /subscriptions/{channelId} [post]
func (s *Server) ToggleSubscription(c *fiber.Ctx) error {
	channelID, err := parseID(c, "channelId")
	if err != nil {
		return nil
	}
	state, err := s.toggleService.ToggleSubscription(c.UserContext(), viewer(c), channelID)
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(fiber.Map{
		"channel_id": channelID,
		"subscribed": state == models.TogglePresent,
	})
}
