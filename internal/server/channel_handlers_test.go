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

func TestSubscriptionToggleAndChannelProfile(t *testing.T) {
	h := newHarness(t)
	channel := h.user("channel")
	fan := h.user("fan")

	status, body := h.do(http.MethodPost, "/api/subscriptions/"+channel.ID, channel.ID, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, models.CodeValidationFailed, errorCode(t, body))

	status, body = h.do(http.MethodPost, "/api/subscriptions/"+uuid.NewString(), fan.ID, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, models.CodeNotFound, errorCode(t, body))

	status, body = h.do(http.MethodPost, "/api/subscriptions/"+channel.ID, fan.ID, nil)
	require.Equal(t, http.StatusOK, status, string(body))
	assert.Equal(t, true, decode[map[string]interface{}](t, body)["subscribed"])

	status, body = h.do(http.MethodGet, "/api/channels/channel", fan.ID, nil)
	require.Equal(t, http.StatusOK, status, string(body))
	profile := decode[readmodel.ChannelProfile](t, body)
	assert.Equal(t, channel.ID, profile.ID)
	assert.EqualValues(t, 1, profile.SubscribersCount)
	assert.True(t, profile.IsSubscribed)
	assert.NotContains(t, string(body), "@example.com")

	// Anonymous viewers are never subscribed.
	status, body = h.do(http.MethodGet, "/api/channels/channel", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.False(t, decode[readmodel.ChannelProfile](t, body).IsSubscribed)

	status, body = h.do(http.MethodGet, "/api/users/"+channel.ID+"/subscribers", "", nil)
	require.Equal(t, http.StatusOK, status)
	subscribers := decode[readmodel.Page[models.UserSummary]](t, body)
	require.Len(t, subscribers.Items, 1)
	assert.Equal(t, fan.ID, subscribers.Items[0].ID)

	status, body = h.do(http.MethodGet, "/api/users/"+fan.ID+"/subscriptions", "", nil)
	require.Equal(t, http.StatusOK, status)
	subscriptions := decode[readmodel.Page[readmodel.SubscribedChannel]](t, body)
	require.Len(t, subscriptions.Items, 1)
	assert.Equal(t, channel.ID, subscriptions.Items[0].ID)
	assert.EqualValues(t, 1, subscriptions.Items[0].SubscribersCount)

	// Toggling again unsubscribes.
	status, body = h.do(http.MethodPost, "/api/subscriptions/"+channel.ID, fan.ID, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, false, decode[map[string]interface{}](t, body)["subscribed"])

	status, body = h.do(http.MethodGet, "/api/channels/nobody", "", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, models.CodeNotFound, errorCode(t, body))
}

func TestWatchHistoryIsSelfOnly(t *testing.T) {
	h := newHarness(t)
	owner := h.user("owner")
	watcher := h.user("watcher")
	video := h.video(owner, "clip", true)

	status, _ := h.do(http.MethodGet, "/api/videos/"+video.ID, watcher.ID, nil)
	require.Equal(t, http.StatusOK, status)
	h.srv.videoService.Wait()

	status, body := h.do(http.MethodGet, "/api/users/"+watcher.ID+"/history", owner.ID, nil)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, models.CodeForbidden, errorCode(t, body))

	status, body = h.do(http.MethodGet, "/api/users/"+watcher.ID+"/history", watcher.ID, nil)
	require.Equal(t, http.StatusOK, status, string(body))
	history := decode[readmodel.Page[readmodel.VideoCard]](t, body)
	require.Len(t, history.Items, 1)
	assert.Equal(t, video.ID, history.Items[0].ID)
	assert.NotContains(t, string(body), "hash-")
}

func TestChannelStatsAndVideos(t *testing.T) {
	h := newHarness(t)
	owner := h.user("owner")
	fan := h.user("fan")
	public := h.video(owner, "public", true)
	h.video(owner, "draft", false)

	status, _ := h.do(http.MethodPost, "/api/videos/"+public.ID+"/like", fan.ID, nil)
	require.Equal(t, http.StatusOK, status)
	status, _ = h.do(http.MethodPost, "/api/subscriptions/"+owner.ID, fan.ID, nil)
	require.Equal(t, http.StatusOK, status)

	status, body := h.do(http.MethodGet, "/api/users/"+owner.ID+"/stats", "", nil)
	require.Equal(t, http.StatusOK, status, string(body))
	stats := decode[readmodel.ChannelStats](t, body)
	assert.EqualValues(t, 2, stats.TotalVideos)
	assert.EqualValues(t, 1, stats.TotalLikes)
	assert.EqualValues(t, 1, stats.TotalSubscribers)

	status, body = h.do(http.MethodGet, "/api/users/"+owner.ID+"/videos", fan.ID, nil)
	require.Equal(t, http.StatusOK, status, string(body))
	seenByFan := decode[readmodel.Page[readmodel.ChannelVideo]](t, body)
	require.Len(t, seenByFan.Items, 1)
	assert.EqualValues(t, 1, seenByFan.Items[0].LikesCount)

	status, body = h.do(http.MethodGet, "/api/users/"+owner.ID+"/videos?sortBy=likes&sortType=asc", owner.ID, nil)
	require.Equal(t, http.StatusOK, status, string(body))
	seenByOwner := decode[readmodel.Page[readmodel.ChannelVideo]](t, body)
	require.Len(t, seenByOwner.Items, 2)
	assert.Equal(t, "draft", seenByOwner.Items[0].Title)

	status, body = h.do(http.MethodGet, "/api/users/"+uuid.NewString()+"/stats", "", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, models.CodeNotFound, errorCode(t, body))

	status, body = h.do(http.MethodGet, "/api/users/123/stats", "", nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, models.CodeInvalidID, errorCode(t, body))
}
