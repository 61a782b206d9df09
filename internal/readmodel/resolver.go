// Package readmodel composes the denormalized read views served by the API.
// Views are computed from the primary records on every request and are never
// cached.
package readmodel

import (
	"context"
	"errors"
	"fmt"

	"videotube/internal/models"
	"videotube/internal/observability"

	"gorm.io/gorm"
)

// maxKeysPerQuery bounds the size of a single IN list.
const maxKeysPerQuery = 500

var errCredentialProjection = errors.New("readmodel: users must be resolved as models.UserSummary")

// Relation describes how rows of T are found from a set of source keys.
type Relation[T any] struct {
	// Name labels metrics and errors, e.g. "videos.by_owner".
	Name string
	// Column is the column of T matched against the source keys.
	Column string
	// Columns restricts the selected columns. Empty selects all of T.
	Columns []string
	// OrderBy orders rows within each key.
	OrderBy string
	// Key reads the matched column back off a loaded row.
	Key func(*T) string
	// Scope adds extra conditions, e.g. a publication filter.
	Scope func(*gorm.DB) *gorm.DB
}

// Resolve loads every row of T whose Column is one of keys and groups the rows
// by key. Keys that are empty or not valid ids are ignored, so an empty or
// fully invalid key set yields an empty map and no error.
func Resolve[T any](ctx context.Context, db *gorm.DB, keys []string, rel Relation[T]) (map[string][]T, error) {
	out := make(map[string][]T)
	err := scan(ctx, db, keys, rel, func(key string, row T) {
		out[key] = append(out[key], row)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ResolveOne is the one-to-one form of Resolve. Each key maps to at most one
// row; a key with no matching row is absent from the map, so a lookup yields
// nil for a dangling reference. If several rows match, the first in OrderBy
// order wins.
func ResolveOne[T any](ctx context.Context, db *gorm.DB, keys []string, rel Relation[T]) (map[string]*T, error) {
	out := make(map[string]*T)
	err := scan(ctx, db, keys, rel, func(key string, row T) {
		if _, ok := out[key]; !ok {
			out[key] = &row
		}
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func scan[T any](ctx context.Context, db *gorm.DB, keys []string, rel Relation[T], emit func(string, T)) error {
	var probe T
	if _, ok := any(&probe).(*models.User); ok {
		return errCredentialProjection
	}

	keys = normalizeKeys(keys)
	if len(keys) == 0 {
		return nil
	}
	defer observability.TrackQuery("resolve", rel.Name)()

	for _, batch := range chunk(keys, maxKeysPerQuery) {
		var rows []T
		q := db.WithContext(ctx).Where(rel.Column+" IN ?", batch)
		if len(rel.Columns) > 0 {
			q = q.Select(rel.Columns)
		}
		if rel.Scope != nil {
			q = rel.Scope(q)
		}
		if rel.OrderBy != "" {
			q = q.Order(rel.OrderBy)
		}
		if err := q.Find(&rows).Error; err != nil {
			return fmt.Errorf("resolve %s: %w", rel.Name, err)
		}
		for i := range rows {
			emit(rel.Key(&rows[i]), rows[i])
		}
	}
	return nil
}

// CountBy counts rows of model grouped by column for each key. Keys without
// rows are absent from the result.
func CountBy(ctx context.Context, db *gorm.DB, model interface{}, column string, keys []string) (map[string]int64, error) {
	out := make(map[string]int64)
	keys = normalizeKeys(keys)
	if len(keys) == 0 {
		return out, nil
	}
	defer observability.TrackQuery("count", column)()

	type groupCount struct {
		GroupKey string
		Total    int64
	}
	for _, batch := range chunk(keys, maxKeysPerQuery) {
		var rows []groupCount
		err := db.WithContext(ctx).
			Model(model).
			Select(column+" AS group_key, COUNT(*) AS total").
			Where(column+" IN ?", batch).
			Group(column).
			Scan(&rows).Error
		if err != nil {
			return nil, fmt.Errorf("count by %s: %w", column, err)
		}
		for _, r := range rows {
			out[r.GroupKey] = r.Total
		}
	}
	return out, nil
}

// MembersOf reports which keys appear in column of model among the rows that
// also match where. It backs per-viewer flags such as isSubscribed.
func MembersOf(ctx context.Context, db *gorm.DB, model interface{}, column string, keys []string, where map[string]interface{}) (map[string]bool, error) {
	out := make(map[string]bool)
	keys = normalizeKeys(keys)
	if len(keys) == 0 {
		return out, nil
	}

	for _, batch := range chunk(keys, maxKeysPerQuery) {
		var found []string
		err := db.WithContext(ctx).
			Model(model).
			Where(column+" IN ?", batch).
			Where(where).
			Pluck(column, &found).Error
		if err != nil {
			return nil, fmt.Errorf("members of %s: %w", column, err)
		}
		for _, k := range found {
			out[k] = true
		}
	}
	return out, nil
}

func normalizeKeys(keys []string) []string {
	seen := make(map[string]struct{}, len(keys))
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if !models.ValidID(k) {
			continue
		}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}

func chunk(keys []string, size int) [][]string {
	var out [][]string
	for len(keys) > size {
		out = append(out, keys[:size])
		keys = keys[size:]
	}
	if len(keys) > 0 {
		out = append(out, keys)
	}
	return out
}
