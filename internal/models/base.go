// Package models contains data structures for the application's domain models.
package models

import (
	"github.com/google/uuid"
)

// ValidID reports whether s is a canonical entity identifier.
func ValidID(s string) bool {
	if len(s) != 36 {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}

// ensureID assigns a fresh identifier when none was provided by the caller.
func ensureID(id *string) {
	if *id == "" {
		*id = uuid.NewString()
	}
}
