package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"videotube/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-12345678901234567890123456789012"

func signToken(t *testing.T, sub string, exp time.Duration) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub": sub,
		"exp": time.Now().Add(exp).Unix(),
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return s
}

func TestAuthRequired(t *testing.T) {
	InitMiddleware(&config.Config{JWTSecret: testSecret})

	app := fiber.New()
	app.Get("/test", AuthRequired, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"userID": UserID(c)})
	})

	userID := "6f1c1b0e-3b7a-4a8e-9d55-2f2b1a0c9e11"

	tests := []struct {
		name           string
		authHeader     string
		expectedStatus int
		expectedUserID string
	}{
		{"Happy Path", "Bearer " + signToken(t, userID, time.Hour), http.StatusOK, userID},
		{"Missing Header", "", http.StatusUnauthorized, ""},
		{"Invalid Format", "Basic dXNlcjpwYXNz", http.StatusUnauthorized, ""},
		{"Malformed Token", "Bearer malformed.token.here", http.StatusUnauthorized, ""},
		{"Expired Token", "Bearer " + signToken(t, userID, -time.Hour), http.StatusUnauthorized, ""},
		{"Non UUID Subject", "Bearer " + signToken(t, "123", time.Hour), http.StatusUnauthorized, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}

			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			if tt.expectedStatus == http.StatusOK {
				var body map[string]string
				require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
				assert.Equal(t, tt.expectedUserID, body["userID"])
			}
		})
	}
}

func TestOptionalAuth(t *testing.T) {
	InitMiddleware(&config.Config{JWTSecret: testSecret})

	app := fiber.New()
	app.Get("/view", OptionalAuth, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"viewer": UserID(c)})
	})

	userID := "0b8f5a2e-1111-4c4c-8a8a-0123456789ab"

	t.Run("anonymous passes through", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/view", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Empty(t, body["viewer"])
	})

	t.Run("valid token sets viewer", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/view", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, userID, time.Hour))
		resp, err := app.Test(req)
		require.NoError(t, err)

		var body map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, userID, body["viewer"])
	})

	t.Run("invalid token rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/view", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, userID, -time.Minute))
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}
