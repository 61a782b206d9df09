package repository

import (
	"context"

	"videotube/internal/models"
	"videotube/internal/observability"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Exists(ctx context.Context, id string) (bool, error)
	PushWatchHistory(ctx context.Context, userID, videoID string, limit int) error
}

type userRepository struct {
	db  *gorm.DB
	log *observability.RepoLogger
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db, log: observability.NewRepoLogger("users")}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return classify(err, "create", "User", user.Username)
	}
	r.log.LogCreate(ctx, map[string]any{"id": user.ID})
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := readDB(r.db).WithContext(ctx).First(&user, "id = ?", id).Error
	if err != nil {
		return nil, classify(err, "get", "User", id)
	}
	return &user, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := readDB(r.db).WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		return nil, classify(err, "get", "User", username)
	}
	return &user, nil
}

func (r *userRepository) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	err := readDB(r.db).WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// PushWatchHistory prepends videoID to the user's history, keeping at most
// limit entries. The row is locked for the read-modify-write.
func (r *userRepository) PushWatchHistory(ctx context.Context, userID, videoID string, limit int) error {
	defer observability.TrackQuery("push_watch_history", "users")()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id", "watch_history").
			First(&user, "id = ?", userID).Error
		if err != nil {
			return classify(err, "lock", "User", userID)
		}

		history := make([]string, 0, len(user.WatchHistory)+1)
		history = append(history, videoID)
		history = append(history, user.WatchHistory...)
		if limit > 0 && len(history) > limit {
			history = history[:limit]
		}

		return tx.Model(&user).Select("watch_history").Updates(models.User{WatchHistory: history}).Error
	})
}
