package service

import (
	"context"

	"videotube/internal/models"
	"videotube/internal/repository"
	"videotube/internal/validation"
)

type CommentService struct {
	comments repository.CommentRepository
	videos   repository.VideoRepository
}

type CreateCommentInput struct {
	UserID  string
	VideoID string
	Content string `validate:"notblank,max=10000"`
}

type UpdateCommentInput struct {
	UserID    string
	CommentID string
	Content   string `validate:"notblank,max=10000"`
}

func NewCommentService(comments repository.CommentRepository, videos repository.VideoRepository) *CommentService {
	return &CommentService{comments: comments, videos: videos}
}

func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	if err := requireIDs("video id", in.VideoID); err != nil {
		return nil, err
	}
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	if err := mustExist(ctx, s.videos.Exists, "Video", in.VideoID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		VideoID: in.VideoID,
		OwnerID: in.UserID,
		Content: in.Content,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *CommentService) UpdateComment(ctx context.Context, in UpdateCommentInput) (*models.Comment, error) {
	if err := requireIDs("comment id", in.CommentID); err != nil {
		return nil, err
	}
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	comment, err := s.comments.GetByID(ctx, in.CommentID)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(comment.OwnerID, in.UserID, "update your own comments"); err != nil {
		return nil, err
	}

	comment.Content = in.Content
	if err := s.comments.Update(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *CommentService) DeleteComment(ctx context.Context, userID, commentID string) (*models.Comment, error) {
	if err := requireIDs("comment id", commentID); err != nil {
		return nil, err
	}
	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(comment.OwnerID, userID, "delete your own comments"); err != nil {
		return nil, err
	}
	if err := s.comments.Delete(ctx, commentID); err != nil {
		return nil, err
	}
	return comment, nil
}
