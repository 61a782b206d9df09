package featureflags

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const viewer = "7f0c2b1e-5a4d-4c3b-9e8f-1a2b3c4d5e6f"

func TestEnabled_BooleanValues(t *testing.T) {
	m := NewManager("a=on,b=off,c=true,d=false,e=1,f=0")

	for _, name := range []string{"a", "c", "e"} {
		assert.True(t, m.Enabled(name, viewer), name)
	}
	for _, name := range []string{"b", "d", "f", "missing"} {
		assert.False(t, m.Enabled(name, viewer), name)
	}
}

func TestEnabled_PercentageValues(t *testing.T) {
	m := NewManager("always=100%,never=0%,canary=25%,broken=abc%")

	assert.True(t, m.Enabled("always", ""))
	assert.False(t, m.Enabled("never", viewer))
	assert.False(t, m.Enabled("broken", viewer))

	first := m.Enabled("canary", viewer)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, m.Enabled("canary", viewer), "rollout must be deterministic per user")
	}
	assert.False(t, m.Enabled("canary", ""), "anonymous callers are outside partial rollouts")
}

func TestParseAndSnapshot(t *testing.T) {
	m := NewManager(" bad ,x=on, y = 20% ,z=off, =on, w= ")

	raw := m.Raw()
	assert.Equal(t, map[string]string{"x": "on", "y": "20%", "z": "off"}, raw)

	raw["x"] = "off"
	assert.True(t, m.Enabled("x", viewer), "Raw must return a copy")

	snap := m.Snapshot(viewer)
	assert.Len(t, snap, 3)
	assert.True(t, snap["x"])
	assert.False(t, snap["z"])
}

func TestNilManager(t *testing.T) {
	var m *Manager
	assert.False(t, m.Enabled(ViewCounting, viewer))
}
