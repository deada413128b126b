// Package realtime keeps the process-local live state: which connection a user is on,
// which chat rooms a connection listens to, and how domain events reach them.
package realtime

import (
	"errors"
	"sync"

	"real-time-messenger/dto"
)

var (
	ErrSendBufferFull = errors.New("realtime: send buffer full")
	ErrConnClosed     = errors.New("realtime: connection closed")
)

// Conn is one live client connection. Send must not block.
type Conn interface {
	ID() string
	UserID() string
	Send(event dto.Event) error
	Close() error
}

// Hub indexes live connections by id.
type Hub struct {
	mu      sync.RWMutex
	conns   map[string]Conn
	metrics *Metrics
}

func NewHub(metrics *Metrics) *Hub {
	return &Hub{conns: make(map[string]Conn), metrics: metrics}
}

func (h *Hub) Attach(conn Conn) {
	h.mu.Lock()
	h.conns[conn.ID()] = conn
	n := len(h.conns)
	h.mu.Unlock()
	h.metrics.setConnections(n)
}

func (h *Hub) Detach(connID string) {
	h.mu.Lock()
	delete(h.conns, connID)
	n := len(h.conns)
	h.mu.Unlock()
	h.metrics.setConnections(n)
}

func (h *Hub) Get(connID string) (Conn, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	conn, ok := h.conns[connID]
	return conn, ok
}

func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}

// CloseAll closes every attached connection; used on shutdown.
func (h *Hub) CloseAll() {
	h.mu.RLock()
	conns := make([]Conn, 0, len(h.conns))
	for _, c := range h.conns {
		conns = append(conns, c)
	}
	h.mu.RUnlock()
	for _, c := range conns {
		_ = c.Close()
	}
}
