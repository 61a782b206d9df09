// Package repository provides data access layer implementations for the application.
package repository

import (
	"errors"
	"fmt"

	"videotube/internal/database"
	"videotube/internal/models"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const pgUniqueViolation = "23505"

func readDB(primary *gorm.DB) *gorm.DB {
	if db := database.GetReadDB(); db != nil {
		return db
	}
	return primary
}

// IsUniqueViolation reports whether err is a unique constraint violation from
// either driver, translated or raw.
func IsUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

// classify converts storage errors into AppErrors. Anything unrecognized is
// wrapped with op and returned as is.
func classify(err error, op, resource, id string) error {
	var appErr *models.AppError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &appErr):
		return err
	case errors.Is(err, gorm.ErrRecordNotFound):
		return models.NewNotFoundError(resource, id)
	case IsUniqueViolation(err):
		return models.NewConflictError(resource+" already exists", err)
	}
	return fmt.Errorf("%s %s: %w", op, resource, err)
}

// togglePair flips the presence of the row identified by cond within tx.
// The delete runs first; when nothing was removed the row is inserted and a
// concurrent insert of the same pair surfaces as a Conflict.
func togglePair(tx *gorm.DB, empty interface{}, cond map[string]interface{}, row interface{}, resource string) (models.ToggleState, error) {
	res := tx.Where(cond).Delete(empty)
	if res.Error != nil {
		return "", res.Error
	}
	if res.RowsAffected > 0 {
		return models.ToggleAbsent, nil
	}

	res = tx.Clauses(clause.OnConflict{DoNothing: true}).Create(row)
	if res.Error != nil {
		if IsUniqueViolation(res.Error) {
			return "", models.NewConflictError(resource+" changed concurrently", res.Error)
		}
		return "", res.Error
	}
	if res.RowsAffected == 0 {
		return "", models.NewConflictError(resource+" changed concurrently", nil)
	}
	return models.TogglePresent, nil
}
