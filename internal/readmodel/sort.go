package readmodel

import (
	"slices"
	"strings"

	"videotube/internal/models"
)

// Sort directions accepted from clients.
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// parseDirection maps a client sortType onto a descending flag. An empty
// value selects def.
func parseDirection(sortType string, def bool) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(sortType)) {
	case "":
		return def, nil
	case SortAsc:
		return false, nil
	case SortDesc:
		return true, nil
	}
	return false, models.NewValidationError("sortType must be asc or desc")
}

// parseSortKey resolves sortBy against the allowed keys. An empty value
// selects def.
func parseSortKey(sortBy, def string, allowed map[string]string) (string, error) {
	key := strings.TrimSpace(sortBy)
	if key == "" {
		key = def
	}
	if col, ok := allowed[key]; ok {
		return col, nil
	}
	names := make([]string, 0, len(allowed))
	for k := range allowed {
		names = append(names, k)
	}
	slices.Sort(names)
	return "", models.NewValidationError("sortBy must be one of " + strings.Join(names, ", "))
}

// escapeLike escapes LIKE wildcards so s matches literally.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
