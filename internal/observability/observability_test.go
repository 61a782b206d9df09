package observability

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitTracing_Disabled(t *testing.T) {
	shutdown, err := InitTracing(TracingConfig{ServiceName: "videotube-test", Enabled: false})
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))

	span, ctx := NewSpan(context.Background(), "view.test")
	span.SetError(errors.New("boom"))
	span.End()
	assert.NotNil(t, ctx)
}

func TestTrackView_RecordsErrorCode(t *testing.T) {
	before := testutil.ToFloat64(ViewErrors.WithLabelValues("test_view", "NOT_FOUND"))

	done := TrackView("test_view")
	done("NOT_FOUND")

	after := testutil.ToFloat64(ViewErrors.WithLabelValues("test_view", "NOT_FOUND"))
	assert.Equal(t, before+1, after)
}

func TestTrackView_SuccessDoesNotCountError(t *testing.T) {
	before := testutil.ToFloat64(ViewErrors.WithLabelValues("ok_view", ""))

	TrackView("ok_view")("")

	assert.Equal(t, before, testutil.ToFloat64(ViewErrors.WithLabelValues("ok_view", "")))
}
