package realtime

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"real-time-messenger/config/logger"
	"real-time-messenger/dto"
)

type stubConn struct {
	mu     sync.Mutex
	id     string
	userID string
	events []dto.Event
	err    error
	closed bool
}

func newStubConn(id, userID string) *stubConn {
	return &stubConn{id: id, userID: userID}
}

func (s *stubConn) ID() string     { return s.id }
func (s *stubConn) UserID() string { return s.userID }

func (s *stubConn) Send(event dto.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.events = append(s.events, event)
	return nil
}

func (s *stubConn) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func (s *stubConn) names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.events))
	for _, e := range s.events {
		names = append(names, e.Event)
	}
	return names
}

type stubDirectory struct {
	mu      sync.Mutex
	chats   map[string][]string // user -> chats
	members map[string][]string // chat -> users
	online  map[string]bool
	seen    map[string]time.Time
}

func newStubDirectory() *stubDirectory {
	return &stubDirectory{
		chats:   make(map[string][]string),
		members: make(map[string][]string),
		online:  make(map[string]bool),
		seen:    make(map[string]time.Time),
	}
}

func (d *stubDirectory) addMember(chatID, userID string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.chats[userID] = append(d.chats[userID], chatID)
	d.members[chatID] = append(d.members[chatID], userID)
}

func (d *stubDirectory) ChatIDsForUser(_ context.Context, userID string) ([]string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.chats[userID]...), nil
}

func (d *stubDirectory) MemberIDs(_ context.Context, chatID string) ([]string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.members[chatID]...), nil
}

func (d *stubDirectory) MarkOnline(_ context.Context, userID string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.online[userID] = true
	return nil
}

func (d *stubDirectory) MarkOffline(_ context.Context, userID string, at time.Time) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.online[userID] = false
	d.seen[userID] = at
	return nil
}

func (d *stubDirectory) isOnline(userID string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.online[userID]
}

type fixture struct {
	dir      *stubDirectory
	hub      *Hub
	rooms    *Rooms
	presence *Presence
	engine   *Engine
	metrics  *Metrics
}

func newFixture() *fixture {
	dir := newStubDirectory()
	metrics := NewMetrics(prometheus.NewRegistry())
	log := logger.NewNopLogger()
	hub := NewHub(metrics)
	rooms := NewRooms(dir)
	presence := NewPresence(NewMemoryRegistry(), rooms, hub, dir, metrics, log)
	return &fixture{
		dir:      dir,
		hub:      hub,
		rooms:    rooms,
		presence: presence,
		engine:   NewEngine(presence, rooms, hub, metrics, log),
		metrics:  metrics,
	}
}

// connect attaches a stub connection and announces it online, as the socket handler does.
func (f *fixture) connect(connID, userID string) *stubConn {
	conn := newStubConn(connID, userID)
	f.hub.Attach(conn)
	if err := f.presence.SetOnline(context.Background(), userID, connID); err != nil {
		panic(err)
	}
	return conn
}
