package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"videotube/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscriptionRepository_ToggleSQL(t *testing.T) {
	tests := []struct {
		name      string
		deleted   int64
		inserted  int64
		insertErr error
		wantState models.ToggleState
		wantCode  string
	}{
		{name: "present row is deleted", deleted: 1, wantState: models.ToggleAbsent},
		{name: "absent row is inserted", deleted: 0, inserted: 1, wantState: models.TogglePresent},
		{name: "concurrent insert wins", deleted: 0, inserted: 0, wantCode: models.CodeConflict},
		{name: "raw unique violation", deleted: 0, insertErr: &pgconn.PgError{Code: "23505"}, wantCode: models.CodeConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := setupMockDB(t)
			repo := NewSubscriptionRepository(db)

			mock.ExpectBegin()
			mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "subscriptions" WHERE "channel_id" = $1 AND "subscriber_id" = $2`)).
				WithArgs("chan", "sub").
				WillReturnResult(sqlmock.NewResult(0, tt.deleted))
			if tt.deleted == 0 {
				insert := mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "subscriptions"`))
				if tt.insertErr != nil {
					insert.WillReturnError(tt.insertErr)
				} else {
					insert.WillReturnResult(sqlmock.NewResult(0, tt.inserted))
				}
			}
			if tt.wantCode == "" {
				mock.ExpectCommit()
			} else {
				mock.ExpectRollback()
			}

			state, err := repo.Toggle(context.Background(), "sub", "chan")
			if tt.wantCode != "" {
				require.Error(t, err)
				assert.True(t, models.IsCode(err, tt.wantCode))
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantState, state)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestVideoRepository_IncrementViewsSQL(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewVideoRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "videos" SET "view_count"=view_count + $1 WHERE id = $2`)).
		WithArgs(1, "vid").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.IncrementViews(context.Background(), "vid"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVideoRepository_IncrementViewsMissing(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewVideoRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "videos"`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := repo.IncrementViews(context.Background(), "gone")
	assert.True(t, models.IsCode(err, models.CodeNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVideoRepository_GetByIDNotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewVideoRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "videos" WHERE id = $1 ORDER BY "videos"."id" LIMIT $2`)).
		WithArgs("missing", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	video, err := repo.GetByID(context.Background(), "missing")
	assert.Nil(t, video)
	assert.True(t, models.IsCode(err, models.CodeNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClassify(t *testing.T) {
	t.Parallel()

	assert.NoError(t, classify(nil, "get", "Video", "x"))
	assert.True(t, models.IsCode(classify(&pgconn.PgError{Code: "23505"}, "create", "User", "x"), models.CodeConflict))

	plain := classify(errors.New("connection reset"), "get", "Video", "x")
	assert.Equal(t, models.CodeInternal, models.ErrorCode(plain))
	assert.Contains(t, plain.Error(), "get Video")

	forbidden := models.NewForbiddenError("nope")
	assert.Same(t, forbidden, classify(forbidden, "delete", "Video", "x"))
}
