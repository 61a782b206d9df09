package models

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid id", NewInvalidIDError("video id", "x"), http.StatusBadRequest},
		{"not found", NewNotFoundError("Video", "abc"), http.StatusNotFound},
		{"forbidden", NewForbiddenError("nope"), http.StatusForbidden},
		{"conflict", NewConflictError("dup", nil), http.StatusConflict},
		{"validation", NewValidationError("empty"), http.StatusBadRequest},
		{"wrapped", fmt.Errorf("outer: %w", NewNotFoundError("User", "u")), http.StatusNotFound},
		{"plain", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, StatusFor(tt.err))
		})
	}
}

func TestIsCode(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("toggle: %w", NewConflictError("duplicate", errors.New("23505")))
	assert.True(t, IsCode(err, CodeConflict))
	assert.False(t, IsCode(err, CodeNotFound))
	assert.Equal(t, CodeInternal, ErrorCode(errors.New("plain")))
}

func TestValidID(t *testing.T) {
	t.Parallel()

	assert.True(t, ValidID("6f1c1b0e-3b7a-4a8e-9d55-2f2b1a0c9e11"))
	assert.False(t, ValidID(""))
	assert.False(t, ValidID("nonexistent-id"))
	assert.False(t, ValidID("{6f1c1b0e-3b7a-4a8e-9d55-2f2b1a0c9e11}"))
}

func TestReactionOpposite(t *testing.T) {
	t.Parallel()

	assert.Equal(t, ReactionDislike, ReactionLike.Opposite())
	assert.Equal(t, ReactionLike, ReactionDislike.Opposite())
	assert.Equal(t, ReactionNone, ReactionNone.Opposite())
	assert.Equal(t, "likes", ReactionTable(ReactionLike))
	assert.Equal(t, "dislikes", ReactionTable(ReactionDislike))
}
