package repository

import (
	"context"

	"videotube/internal/models"
	"videotube/internal/observability"

	"gorm.io/gorm"
)

// VideoRepository defines the interface for video data operations
type VideoRepository interface {
	Create(ctx context.Context, video *models.Video) error
	GetByID(ctx context.Context, id string) (*models.Video, error)
	Update(ctx context.Context, video *models.Video) error
	Delete(ctx context.Context, id string) error
	Exists(ctx context.Context, id string) (bool, error)
	IncrementViews(ctx context.Context, id string) error
}

type videoRepository struct {
	db  *gorm.DB
	log *observability.RepoLogger
}

// NewVideoRepository creates a new video repository
func NewVideoRepository(db *gorm.DB) VideoRepository {
	return &videoRepository{db: db, log: observability.NewRepoLogger("videos")}
}

func (r *videoRepository) Create(ctx context.Context, video *models.Video) error {
	if err := r.db.WithContext(ctx).Create(video).Error; err != nil {
		return classify(err, "create", "Video", video.ID)
	}
	r.log.LogCreate(ctx, map[string]any{"id": video.ID, "owner_id": video.OwnerID})
	return nil
}

func (r *videoRepository) GetByID(ctx context.Context, id string) (*models.Video, error) {
	var video models.Video
	if err := readDB(r.db).WithContext(ctx).First(&video, "id = ?", id).Error; err != nil {
		return nil, classify(err, "get", "Video", id)
	}
	return &video, nil
}

func (r *videoRepository) Update(ctx context.Context, video *models.Video) error {
	err := r.db.WithContext(ctx).Model(video).
		Select("title", "description", "thumbnail_ref", "is_published").
		Updates(video).Error
	if err != nil {
		return classify(err, "update", "Video", video.ID)
	}
	r.log.LogUpdate(ctx, map[string]any{"id": video.ID})
	return nil
}

func (r *videoRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.Video{}, "id = ?", id)
	if res.Error != nil {
		return classify(res.Error, "delete", "Video", id)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Video", id)
	}
	r.log.LogDelete(ctx, map[string]any{"id": id})
	return nil
}

func (r *videoRepository) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	err := readDB(r.db).WithContext(ctx).Model(&models.Video{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// IncrementViews bumps view_count in a single statement.
func (r *videoRepository) IncrementViews(ctx context.Context, id string) error {
	defer observability.TrackQuery("increment_views", "videos")()

	res := r.db.WithContext(ctx).Model(&models.Video{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + ?", 1))
	if res.Error != nil {
		return classify(res.Error, "increment", "Video", id)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Video", id)
	}
	return nil
}
