package realtime

import (
	"context"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetOnlineJoinsAllChatRooms(t *testing.T) {
	f := newFixture()
	f.dir.addMember("c1", "alice")
	f.dir.addMember("c2", "alice")

	f.connect("conn-1", "alice")

	assert.True(t, f.rooms.IsSubscribed("conn-1", "c1"))
	assert.True(t, f.rooms.IsSubscribed("conn-1", "c2"))
	assert.True(t, f.dir.isOnline("alice"))

	connID, ok := f.presence.Resolve("alice")
	require.True(t, ok)
	assert.Equal(t, "conn-1", connID)
	assert.Equal(t, float64(1), testutil.ToFloat64(f.metrics.OnlineUsers))
}

func TestStaleDisconnectDoesNotMarkReconnectedUserOffline(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.connect("old", "alice")
	f.connect("new", "alice")

	wentOffline, err := f.presence.SetOffline(ctx, "alice", "old")
	require.NoError(t, err)
	assert.False(t, wentOffline)
	assert.True(t, f.dir.isOnline("alice"))

	connID, ok := f.presence.Resolve("alice")
	require.True(t, ok)
	assert.Equal(t, "new", connID)

	wentOffline, err = f.presence.SetOffline(ctx, "alice", "new")
	require.NoError(t, err)
	assert.True(t, wentOffline)
	assert.False(t, f.dir.isOnline("alice"))
	assert.False(t, f.dir.seen["alice"].IsZero())

	_, ok = f.presence.Resolve("alice")
	assert.False(t, ok)
}

func TestResolveUnknownUserIsNotAnError(t *testing.T) {
	f := newFixture()
	_, ok := f.presence.Resolve("nobody")
	assert.False(t, ok)
}

func TestDisconnectClosesLiveConnection(t *testing.T) {
	f := newFixture()
	conn := f.connect("conn-1", "alice")

	assert.True(t, f.presence.Disconnect("alice"))
	assert.True(t, conn.closed)
	assert.False(t, f.presence.Disconnect("bob"))
}

func TestRegistryCompareAndDeleteUnderConcurrency(t *testing.T) {
	r := NewMemoryRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			r.Put("alice", "a")
		}()
		go func() {
			defer wg.Done()
			r.CompareAndDelete("alice", "b")
		}()
	}
	wg.Wait()

	connID, ok := r.Get("alice")
	require.True(t, ok)
	assert.Equal(t, "a", connID)
}
