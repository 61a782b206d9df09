package service

import (
	"context"

	"videotube/internal/models"
	"videotube/internal/repository"
	"videotube/internal/validation"
)

type TweetService struct {
	tweets repository.TweetRepository
}

type TweetInput struct {
	UserID  string
	TweetID string
	Content string `validate:"notblank,max=280"`
}

func NewTweetService(tweets repository.TweetRepository) *TweetService {
	return &TweetService{tweets: tweets}
}

func (s *TweetService) CreateTweet(ctx context.Context, in TweetInput) (*models.Tweet, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	tweet := &models.Tweet{OwnerID: in.UserID, Content: in.Content}
	if err := s.tweets.Create(ctx, tweet); err != nil {
		return nil, err
	}
	return tweet, nil
}

func (s *TweetService) UpdateTweet(ctx context.Context, in TweetInput) (*models.Tweet, error) {
	if err := requireIDs("tweet id", in.TweetID); err != nil {
		return nil, err
	}
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	tweet, err := s.tweets.GetByID(ctx, in.TweetID)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(tweet.OwnerID, in.UserID, "update your own tweets"); err != nil {
		return nil, err
	}
	tweet.Content = in.Content
	if err := s.tweets.Update(ctx, tweet); err != nil {
		return nil, err
	}
	return tweet, nil
}

func (s *TweetService) DeleteTweet(ctx context.Context, userID, tweetID string) error {
	if err := requireIDs("tweet id", tweetID); err != nil {
		return err
	}
	tweet, err := s.tweets.GetByID(ctx, tweetID)
	if err != nil {
		return err
	}
	if err := requireOwner(tweet.OwnerID, userID, "delete your own tweets"); err != nil {
		return err
	}
	return s.tweets.Delete(ctx, tweetID)
}
