package realtime

import "sync"

// Registry maps a user to its single live connection id. Implementations must make
// CompareAndDelete atomic with respect to Put.
type Registry interface {
	// Put stores connID for userID, returning the id it replaced, if any.
	Put(userID, connID string) (previous string, replaced bool)
	// CompareAndDelete removes the entry only while it still points at connID.
	CompareAndDelete(userID, connID string) bool
	Get(userID string) (string, bool)
	Len() int
}

type MemoryRegistry struct {
	mu      sync.RWMutex
	entries map[string]string
}

func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{entries: make(map[string]string)}
}

func (r *MemoryRegistry) Put(userID, connID string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	previous, ok := r.entries[userID]
	r.entries[userID] = connID
	return previous, ok && previous != connID
}

func (r *MemoryRegistry) CompareAndDelete(userID, connID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if current, ok := r.entries[userID]; ok && current == connID {
		delete(r.entries, userID)
		return true
	}
	return false
}

func (r *MemoryRegistry) Get(userID string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	connID, ok := r.entries[userID]
	return connID, ok
}

func (r *MemoryRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}
