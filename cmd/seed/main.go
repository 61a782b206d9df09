// Command main runs the database seeder.
package main

import (
	"context"
	"flag"
	"log"

	"videotube/internal/config"
	"videotube/internal/database"
	"videotube/internal/seed"
)

func main() {
	plan := seed.DefaultPlan
	flag.IntVar(&plan.Channels, "channels", plan.Channels, "Number of channels (users) to create")
	flag.IntVar(&plan.VideosPerChannel, "videos", plan.VideosPerChannel, "Videos per channel")
	flag.IntVar(&plan.CommentsPerVideo, "comments", plan.CommentsPerVideo, "Comments per published video")
	flag.IntVar(&plan.TweetsPerChannel, "tweets", plan.TweetsPerChannel, "Tweets per channel")
	flag.IntVar(&plan.PlaylistsPerUser, "playlists", plan.PlaylistsPerUser, "Playlists per user")
	flag.IntVar(&plan.HistoryPerUser, "history", plan.HistoryPerUser, "Watch history entries per user")
	flag.Float64Var(&plan.SubscriptionRatio, "subscribe-ratio", plan.SubscriptionRatio, "Chance that a user subscribes to another channel")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	fakerSeed := flag.Int64("seed", 0, "Random seed for reproducible data (0 = random)")
	fast := flag.Bool("fast", false, "Skip bcrypt hashing (accounts cannot log in)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.IsProduction() {
		log.Fatal("Refusing to seed a production database")
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() { _ = database.Close() }()

	s, err := seed.NewSeeder(db, seed.Options{Seed: *fakerSeed, SkipBcrypt: *fast})
	if err != nil {
		log.Fatalf("Failed to build seeder: %v", err)
	}

	if *shouldClean {
		if err := s.ClearAll(); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	}

	sum, err := s.Run(context.Background(), plan)
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Printf("Seeded %d users, %d videos, %d comments, %d likes, %d subscriptions",
		sum.Users, sum.Videos, sum.Comments, sum.Likes, sum.Subscriptions)
	if !*fast {
		log.Printf("All seeded users have the password: %s", seed.DefaultPassword)
	}
}
