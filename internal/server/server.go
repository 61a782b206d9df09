// Package server contains the HTTP handlers for the videotube API.
package server

import (
	"context"
	"errors"
	"fmt"
	"time"

	_ "videotube/docs" // swagger docs
	"videotube/internal/bootstrap"
	"videotube/internal/cache"
	"videotube/internal/config"
	"videotube/internal/database"
	"videotube/internal/featureflags"
	"videotube/internal/middleware"
	"videotube/internal/models"
	"videotube/internal/readmodel"
	"videotube/internal/repository"
	"videotube/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	promMiddleware *fiberprometheus.FiberPrometheus
	featureFlags   *featureflags.Manager

	userRepo     repository.UserRepository
	videoRepo    repository.VideoRepository
	commentRepo  repository.CommentRepository
	tweetRepo    repository.TweetRepository
	playlistRepo repository.PlaylistRepository

	views           *readmodel.Composer
	videoService    *service.VideoService
	toggleService   *service.ToggleService
	commentService  *service.CommentService
	tweetService    *service.TweetService
	playlistService *service.PlaylistService
}

// NewServer connects the database and Redis and wires a Server on top of them.
func NewServer(cfg *config.Config) (*Server, error) {
	db, rdb, err := bootstrap.InitRuntime(cfg)
	if err != nil {
		return nil, err
	}
	return NewServerWithDeps(cfg, db, rdb)
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// redisClient may be nil; the rate limiter then applies its fail policy.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	if cfg == nil || db == nil {
		return nil, errors.New("server requires a config and a database")
	}
	middleware.InitMiddleware(cfg)

	readDB := database.GetReadDB()
	if readDB == nil {
		readDB = db
	}

	s := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: middleware.InitMetrics("videotube-api"),
		featureFlags:   featureflags.NewManager(cfg.FeatureFlags),
		userRepo:       repository.NewUserRepository(db),
		videoRepo:      repository.NewVideoRepository(db),
		commentRepo:    repository.NewCommentRepository(db),
		tweetRepo:      repository.NewTweetRepository(db),
		playlistRepo:   repository.NewPlaylistRepository(db),
		views:          readmodel.NewComposer(readDB, cfg.ViewTimeout),
	}

	s.videoService = service.NewVideoService(s.videoRepo, s.userRepo, s.featureFlags, cfg.WatchHistoryMax, cfg.ViewCountTimeout)
	s.toggleService = service.NewToggleService(
		repository.NewSubscriptionRepository(db),
		repository.NewReactionRepository(db),
		s.userRepo,
		s.videoRepo,
		cfg.ToggleMaxRetries,
	)
	s.commentService = service.NewCommentService(s.commentRepo, s.videoRepo)
	s.tweetService = service.NewTweetService(s.tweetRepo)
	s.playlistService = service.NewPlaylistService(s.playlistRepo, s.videoRepo)

	return s, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.TracingMiddleware())
	app.Use(middleware.ContextMiddleware())

	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	app.Use(helmet.New())
	app.Use(middleware.StructuredLogger())

	// CORS runs before the limiter so rejected requests still carry CORS headers.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET,POST,PATCH,DELETE,OPTIONS",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Coarse per-IP limit; the Redis limiter below guards the write paths.
	app.Use(limiter.New(limiter.Config{
		Max:        300,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions || !s.config.IsProduction()
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(models.ErrorResponse{
				Error: "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	// Every API route resolves the viewer when a token is sent; writes
	// additionally require one.
	api := app.Group("/api", middleware.OptionalAuth)
	auth := middleware.AuthRequired
	toggleLimit := func(name string) fiber.Handler {
		return middleware.RateLimit(s.redis, 60, time.Minute, name)
	}
	writeLimit := func(name string) fiber.Handler {
		return middleware.RateLimit(s.redis, 20, time.Minute, name)
	}

	api.Get("/feature-flags", s.GetFeatureFlags)
	api.Get("/swagger/*", swagger.HandlerDefault)

	videos := api.Group("/videos")
	videos.Get("/", s.GetVideos)
	videos.Post("/", auth, writeLimit("create_video"), s.CreateVideo)
	// Specific /:id/:resource routes before the generic /:id routes
	videos.Get("/:id/comments", s.GetVideoComments)
	videos.Post("/:id/comments", auth, writeLimit("create_comment"), s.CreateComment)
	videos.Post("/:id/like", auth, toggleLimit("toggle_like"), s.ToggleLike)
	videos.Post("/:id/dislike", auth, toggleLimit("toggle_dislike"), s.ToggleDislike)
	videos.Patch("/:id/publish", auth, s.TogglePublish)
	videos.Get("/:id", s.GetVideo)
	videos.Patch("/:id", auth, s.UpdateVideo)
	videos.Delete("/:id", auth, s.DeleteVideo)

	comments := api.Group("/comments", auth)
	comments.Patch("/:id", s.UpdateComment)
	comments.Delete("/:id", s.DeleteComment)

	api.Get("/channels/:username", s.GetChannelProfile)

	users := api.Group("/users")
	users.Get("/:id/history", auth, s.GetWatchHistory)
	users.Get("/:id/stats", s.GetChannelStats)
	users.Get("/:id/videos", s.GetChannelVideos)
	users.Get("/:id/subscribers", s.GetSubscribers)
	users.Get("/:id/subscriptions", s.GetSubscriptions)
	users.Get("/:id/playlists", s.GetUserPlaylists)
	users.Get("/:id/tweets", s.GetUserTweets)

	api.Post("/subscriptions/:channelId", auth, toggleLimit("toggle_subscription"), s.ToggleSubscription)

	playlists := api.Group("/playlists")
	playlists.Post("/", auth, writeLimit("create_playlist"), s.CreatePlaylist)
	playlists.Post("/:id/videos/:videoId", auth, s.AddPlaylistVideo)
	playlists.Delete("/:id/videos/:videoId", auth, s.RemovePlaylistVideo)
	playlists.Get("/:id", s.GetPlaylist)
	playlists.Patch("/:id", auth, s.UpdatePlaylist)
	playlists.Delete("/:id", auth, s.DeletePlaylist)

	tweets := api.Group("/tweets", auth)
	tweets.Post("/", writeLimit("create_tweet"), s.CreateTweet)
	tweets.Patch("/:id", s.UpdateTweet)
	tweets.Delete("/:id", s.DeleteTweet)
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests. Redis only backs the rate
// limiter, so its absence degrades readiness without failing it.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	if sqlDB, err := s.db.DB(); err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "healthy"
	if s.redis == nil {
		redisStatus = "unavailable"
	} else if err := cache.Ping(ctx, s.redis); err != nil {
		redisStatus = "unhealthy"
	}

	status := fiber.StatusOK
	overall := "healthy"
	switch {
	case dbStatus != "healthy":
		status = fiber.StatusServiceUnavailable
		overall = "unhealthy"
	case redisStatus != "healthy":
		overall = "degraded"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overall,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// GetFeatureFlags reports the flags as evaluated for the current viewer.
func (s *Server) GetFeatureFlags(c *fiber.Ctx) error {
	return c.JSON(s.featureFlags.Snapshot(middleware.UserID(c)))
}

// Shutdown drains background view counting and closes shared connections.
func (s *Server) Shutdown(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.videoService.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		return fmt.Errorf("waiting for view counting: %w", ctx.Err())
	}

	if err := cache.Close(); err != nil {
		return fmt.Errorf("close redis: %w", err)
	}
	return database.Close()
}

// errorHandler renders errors that escape a handler in the API error shape.
func errorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(models.ErrorResponse{Error: fe.Message})
	}
	return respond(c, err)
}

// NewApp builds the fiber app with middleware and routes installed. The app is
// immutable: route params and headers handed to background view counting must
// not alias pooled request buffers.
func (s *Server) NewApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "videotube API",
		BodyLimit:    1 * 1024 * 1024,
		ErrorHandler: errorHandler,
		Immutable:    true,
	})
	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	return app
}
