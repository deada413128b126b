package realtime

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestHubTracksConnections(t *testing.T) {
	metrics := NewMetrics(prometheus.NewRegistry())
	hub := NewHub(metrics)

	a, b := newStubConn("a", "u1"), newStubConn("b", "u2")
	hub.Attach(a)
	hub.Attach(b)
	assert.Equal(t, 2, hub.Len())
	assert.Equal(t, float64(2), testutil.ToFloat64(metrics.Connections))

	hub.Detach("a")
	_, ok := hub.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 1, hub.Len())

	hub.CloseAll()
	assert.True(t, b.closed)
}
