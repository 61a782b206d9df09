package server

import (
	"net/http"
	"testing"

	"videotube/internal/models"
	"videotube/internal/readmodel"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaylistFlow(t *testing.T) {
	h := newHarness(t)
	owner := h.user("owner")
	other := h.user("other")
	first := h.video(owner, "first", true)
	second := h.video(other, "second", true)

	status, body := h.do(http.MethodPost, "/api/playlists", owner.ID, map[string]string{"name": ""})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, models.CodeValidationFailed, errorCode(t, body))

	status, body = h.do(http.MethodPost, "/api/playlists", owner.ID, map[string]string{"name": "Favourites"})
	require.Equal(t, http.StatusCreated, status, string(body))
	playlist := decode[models.Playlist](t, body)
	base := "/api/playlists/" + playlist.ID

	status, body = h.do(http.MethodPost, base+"/videos/"+second.ID, owner.ID, nil)
	require.Equal(t, http.StatusOK, status, string(body))
	assert.Equal(t, true, decode[map[string]interface{}](t, body)["added"])
	status, _ = h.do(http.MethodPost, base+"/videos/"+first.ID, owner.ID, nil)
	require.Equal(t, http.StatusOK, status)

	// Re-adding is reported, not rejected.
	status, body = h.do(http.MethodPost, base+"/videos/"+second.ID, owner.ID, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, false, decode[map[string]interface{}](t, body)["added"])

	status, body = h.do(http.MethodPost, base+"/videos/"+first.ID, other.ID, nil)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, models.CodeForbidden, errorCode(t, body))

	status, _ = h.do(http.MethodPost, base+"/videos/"+uuid.NewString(), owner.ID, nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, body = h.do(http.MethodGet, base, "", nil)
	require.Equal(t, http.StatusOK, status, string(body))
	detail := decode[readmodel.PlaylistDetail](t, body)
	assert.Equal(t, 2, detail.VideoCount)
	require.Len(t, detail.Videos, 2)
	assert.Equal(t, second.ID, detail.Videos[0].ID)
	assert.Equal(t, first.ID, detail.Videos[1].ID)
	require.NotNil(t, detail.Owner)
	assert.Equal(t, "owner", detail.Owner.Username)

	status, body = h.do(http.MethodGet, "/api/users/"+owner.ID+"/playlists", "", nil)
	require.Equal(t, http.StatusOK, status)
	list := decode[readmodel.Page[readmodel.PlaylistSummary]](t, body)
	require.Len(t, list.Items, 1)
	assert.EqualValues(t, 2, list.Items[0].VideoCount)

	status, body = h.do(http.MethodDelete, base+"/videos/"+second.ID, owner.ID, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, decode[map[string]interface{}](t, body)["removed"])

	status, body = h.do(http.MethodPatch, base, owner.ID, map[string]string{"description": "best of"})
	require.Equal(t, http.StatusOK, status, string(body))
	assert.Equal(t, "best of", decode[models.Playlist](t, body).Description)

	status, _ = h.do(http.MethodDelete, base, other.ID, nil)
	assert.Equal(t, http.StatusForbidden, status)
	status, _ = h.do(http.MethodDelete, base, owner.ID, nil)
	assert.Equal(t, http.StatusNoContent, status)
	status, _ = h.do(http.MethodGet, base, "", nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestTweetFlow(t *testing.T) {
	h := newHarness(t)
	author := h.user("author")
	other := h.user("other")

	status, body := h.do(http.MethodPost, "/api/tweets", author.ID, map[string]string{"content": "   "})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, models.CodeValidationFailed, errorCode(t, body))

	status, body = h.do(http.MethodPost, "/api/tweets", author.ID, map[string]string{"content": "hello"})
	require.Equal(t, http.StatusCreated, status, string(body))
	tweet := decode[models.Tweet](t, body)

	status, _ = h.do(http.MethodPatch, "/api/tweets/"+tweet.ID, other.ID, map[string]string{"content": "nope"})
	assert.Equal(t, http.StatusForbidden, status)

	status, body = h.do(http.MethodPatch, "/api/tweets/"+tweet.ID, author.ID, map[string]string{"content": "hello again"})
	require.Equal(t, http.StatusOK, status, string(body))

	status, body = h.do(http.MethodGet, "/api/users/"+author.ID+"/tweets", "", nil)
	require.Equal(t, http.StatusOK, status)
	page := decode[readmodel.Page[readmodel.TweetView]](t, body)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "hello again", page.Items[0].Content)
	require.NotNil(t, page.Items[0].Owner)
	assert.Equal(t, "author", page.Items[0].Owner.Username)

	status, _ = h.do(http.MethodDelete, "/api/tweets/"+tweet.ID, author.ID, nil)
	assert.Equal(t, http.StatusNoContent, status)
	status, _ = h.do(http.MethodDelete, "/api/tweets/"+tweet.ID, author.ID, nil)
	assert.Equal(t, http.StatusNotFound, status)
}
