package readmodel

import (
	"context"
	"errors"
	"time"

	"videotube/internal/models"
	"videotube/internal/observability"

	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"
)

// DefaultTimeout bounds a view when the Composer was built without one.
const DefaultTimeout = 5 * time.Second

// Composer builds the named read views. Each view runs its independent joins
// concurrently under a single deadline and returns a fresh result.
type Composer struct {
	db      *gorm.DB
	timeout time.Duration
}

// NewComposer returns a Composer reading from db. A non-positive timeout
// falls back to DefaultTimeout.
func NewComposer(db *gorm.DB, timeout time.Duration) *Composer {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Composer{db: db, timeout: timeout}
}

// compose runs fn under the view deadline, a tracing span and the view metrics.
func (c *Composer) compose(ctx context.Context, view string, fn func(ctx context.Context, db *gorm.DB) error, attrs ...attribute.KeyValue) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	span, ctx := observability.NewSpan(ctx, "view."+view)
	defer span.End()
	span.AddAttributes(attrs...)
	done := observability.TrackView(view)

	err := fn(ctx, c.db.WithContext(ctx))
	if err != nil && !isAppError(err) {
		err = models.NewInternalError(err)
	}
	if err != nil {
		span.SetError(err)
		done(models.ErrorCode(err))
		return err
	}
	done("")
	return nil
}

func isAppError(err error) bool {
	var appErr *models.AppError
	return errors.As(err, &appErr)
}

// checkID validates an anchor id before any query is made.
func checkID(field, id string) error {
	if !models.ValidID(id) {
		return models.NewInvalidIDError(field, id)
	}
	return nil
}

// viewerOrAnonymous drops a malformed viewer id.
func viewerOrAnonymous(viewerID string) string {
	if models.ValidID(viewerID) {
		return viewerID
	}
	return ""
}

func loadVideo(ctx context.Context, db *gorm.DB, id string) (*models.Video, error) {
	var video models.Video
	if err := db.WithContext(ctx).First(&video, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Video", id)
		}
		return nil, err
	}
	return &video, nil
}

func loadUserSummary(ctx context.Context, db *gorm.DB, query string, arg interface{}) (*models.UserSummary, error) {
	var user models.UserSummary
	err := db.WithContext(ctx).Select(models.UserSummaryColumns).Where(query, arg).Take(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("User", arg)
		}
		return nil, err
	}
	return &user, nil
}

// ownerSummaries resolves the owners of the given rows keyed by owner id.
func ownerSummaries(ctx context.Context, db *gorm.DB, ownerIDs []string) (map[string]*models.UserSummary, error) {
	return ResolveOne(ctx, db, ownerIDs, UsersByID)
}
