package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"videotube/internal/models"
	"videotube/internal/readmodel"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseID(t *testing.T) {
	app := fiber.New()
	app.Get("/items/:id", func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return nil
		}
		return c.SendString(id)
	})

	valid := uuid.NewString()
	tests := []struct {
		name   string
		param  string
		status int
		code   string
	}{
		{"uuid", valid, http.StatusOK, ""},
		{"numeric", "42", http.StatusBadRequest, models.CodeInvalidID},
		{"truncated uuid", valid[:35], http.StatusBadRequest, models.CodeInvalidID},
		{"garbage", "hello", http.StatusBadRequest, models.CodeInvalidID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/items/"+tt.param, nil))
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
			if tt.code != "" {
				var body models.ErrorResponse
				require.NoError(t, decodeJSON(resp, &body))
				assert.Equal(t, tt.code, body.Code)
			}
		})
	}
}

func TestPageRequest(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(pageRequest(c))
	})

	tests := []struct {
		query string
		want  readmodel.PageRequest
	}{
		{"", readmodel.PageRequest{Page: 1, Limit: 10}},
		{"?page=3&limit=25", readmodel.PageRequest{Page: 3, Limit: 25}},
		{"?page=-1&limit=abc", readmodel.PageRequest{Page: 1, Limit: 10}},
		{"?limit=5000", readmodel.PageRequest{Page: 1, Limit: readmodel.MaxLimit}},
	}
	for _, tt := range tests {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/"+tt.query, nil))
		require.NoError(t, err)
		var got readmodel.PageRequest
		require.NoError(t, decodeJSON(resp, &got))
		assert.Equal(t, tt.want, got, tt.query)
	}
}
