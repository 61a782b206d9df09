package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"videotube/internal/config"
	"videotube/internal/models"
	"videotube/internal/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testSecret = "test-secret-key-12345678901234567890123456789012"

type harness struct {
	t   *testing.T
	db  *gorm.DB
	srv *Server
	app *fiber.App
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	db := testutil.NewDB(t)
	cfg := &config.Config{
		JWTSecret:        testSecret,
		Env:              "test",
		FeatureFlags:     "view_counting=on,watch_history=on",
		ViewTimeout:      2 * time.Second,
		ViewCountTimeout: time.Second,
		ToggleMaxRetries: 3,
		WatchHistoryMax:  50,
	}
	srv, err := NewServerWithDeps(cfg, db, nil)
	require.NoError(t, err)
	t.Cleanup(srv.videoService.Wait)

	return &harness{t: t, db: db, srv: srv, app: srv.NewApp()}
}

func (h *harness) user(name string) *models.User {
	h.t.Helper()
	u := &models.User{
		Username:    name,
		Email:       name + "@example.com",
		DisplayName: "Display " + name,
		Password:    "hash-" + name,
	}
	testutil.MustCreate(h.t, h.db, u)
	return u
}

func (h *harness) video(owner *models.User, title string, published bool) *models.Video {
	h.t.Helper()
	v := &models.Video{
		OwnerID:         owner.ID,
		Title:           title,
		Description:     "about " + title,
		MediaRef:        "media/" + title + ".mp4",
		ThumbnailRef:    "thumbs/" + title + ".jpg",
		DurationSeconds: 90,
		IsPublished:     published,
	}
	testutil.MustCreate(h.t, h.db, v)
	return v
}

func token(t *testing.T, userID string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub": userID,
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return s
}

// do sends a request as userID ("" for anonymous) and returns status and body.
func (h *harness) do(method, path, userID string, body interface{}) (int, []byte) {
	h.t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(h.t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID != "" {
		req.Header.Set("Authorization", "Bearer "+token(h.t, userID))
	}

	resp, err := h.app.Test(req, -1)
	require.NoError(h.t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(h.t, err)
	return resp.StatusCode, out
}

func decode[T any](t *testing.T, raw []byte) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	return out
}

func decodeJSON(resp *http.Response, v interface{}) error {
	defer resp.Body.Close()
	return json.NewDecoder(resp.Body).Decode(v)
}

func errorCode(t *testing.T, raw []byte) string {
	t.Helper()
	return decode[models.ErrorResponse](t, raw).Code
}

func TestHealthEndpoints(t *testing.T) {
	h := newHarness(t)

	status, _ := h.do(http.MethodGet, "/health/live", "", nil)
	assert.Equal(t, http.StatusOK, status)

	status, body := h.do(http.MethodGet, "/health/ready", "", nil)
	assert.Equal(t, http.StatusOK, status)
	ready := decode[struct {
		Status string            `json:"status"`
		Checks map[string]string `json:"checks"`
	}](t, body)
	assert.Equal(t, "degraded", ready.Status)
	assert.Equal(t, "healthy", ready.Checks["database"])
	assert.Equal(t, "unavailable", ready.Checks["redis"])
}

func TestUnknownRouteUsesErrorShape(t *testing.T) {
	h := newHarness(t)

	status, body := h.do(http.MethodGet, "/api/nowhere", "", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.NotEmpty(t, decode[models.ErrorResponse](t, body).Error)
}

func TestFeatureFlagsSnapshot(t *testing.T) {
	h := newHarness(t)

	status, body := h.do(http.MethodGet, "/api/feature-flags", "", nil)
	require.Equal(t, http.StatusOK, status)
	flags := decode[map[string]bool](t, body)
	assert.True(t, flags["view_counting"])
	assert.True(t, flags["watch_history"])
}

func TestSwaggerDocServed(t *testing.T) {
	h := newHarness(t)

	status, body := h.do(http.MethodGet, "/api/swagger/doc.json", "", nil)
	require.Equal(t, http.StatusOK, status)
	doc := decode[struct {
		BasePath string                    `json:"basePath"`
		Paths    map[string]map[string]any `json:"paths"`
	}](t, body)
	assert.Equal(t, "/api", doc.BasePath)
	assert.Contains(t, doc.Paths["/videos/{id}"], "get")
	assert.Contains(t, doc.Paths["/playlists/{id}/videos/{videoId}"], "delete")
}

func TestOptionalAuthRejectsBadToken(t *testing.T) {
	h := newHarness(t)

	req := httptest.NewRequest(http.MethodGet, "/api/videos", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	resp, err := h.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestMutationsRequireAuth(t *testing.T) {
	h := newHarness(t)
	owner := h.user("owner")
	video := h.video(owner, "clip", true)

	cases := []struct {
		method, path string
	}{
		{http.MethodPost, "/api/videos"},
		{http.MethodPost, "/api/videos/" + video.ID + "/like"},
		{http.MethodPost, "/api/subscriptions/" + owner.ID},
		{http.MethodPost, "/api/playlists"},
		{http.MethodPost, "/api/tweets"},
		{http.MethodGet, "/api/users/" + owner.ID + "/history"},
	}
	for _, tc := range cases {
		status, body := h.do(tc.method, tc.path, "", map[string]string{})
		assert.Equal(t, http.StatusUnauthorized, status, tc.path)
		assert.Equal(t, models.CodeUnauthorized, errorCode(t, body), tc.path)
	}
}
