package realtime

import (
	"context"
	"sort"
	"sync"
)

// ChatDirectory resolves chat membership from the store.
type ChatDirectory interface {
	ChatIDsForUser(ctx context.Context, userID string) ([]string, error)
	MemberIDs(ctx context.Context, chatID string) ([]string, error)
}

func RoomName(chatID string) string {
	return "chat_" + chatID
}

// Rooms tracks which connections are subscribed to which chat room.
type Rooms struct {
	mu     sync.RWMutex
	rooms  map[string]map[string]struct{} // room -> conn ids
	byConn map[string]map[string]struct{} // conn id -> rooms
	dir    ChatDirectory
}

func NewRooms(dir ChatDirectory) *Rooms {
	return &Rooms{
		rooms:  make(map[string]map[string]struct{}),
		byConn: make(map[string]map[string]struct{}),
		dir:    dir,
	}
}

// JoinAllChats subscribes the connection to the room of every chat the user is in.
func (r *Rooms) JoinAllChats(ctx context.Context, connID, userID string) (int, error) {
	chatIDs, err := r.dir.ChatIDsForUser(ctx, userID)
	if err != nil {
		return 0, err
	}
	for _, chatID := range chatIDs {
		r.Join(connID, chatID)
	}
	return len(chatIDs), nil
}

func (r *Rooms) Join(connID, chatID string) {
	room := RoomName(chatID)
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.rooms[room] == nil {
		r.rooms[room] = make(map[string]struct{})
	}
	r.rooms[room][connID] = struct{}{}
	if r.byConn[connID] == nil {
		r.byConn[connID] = make(map[string]struct{})
	}
	r.byConn[connID][room] = struct{}{}
}

func (r *Rooms) LeaveAll(connID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for room := range r.byConn[connID] {
		if members, ok := r.rooms[room]; ok {
			delete(members, connID)
			if len(members) == 0 {
				delete(r.rooms, room)
			}
		}
	}
	delete(r.byConn, connID)
}

// Subscribers returns the connection ids in the chat's room, sorted.
func (r *Rooms) Subscribers(chatID string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	members := r.rooms[RoomName(chatID)]
	ids := make([]string, 0, len(members))
	for id := range members {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (r *Rooms) IsSubscribed(connID, chatID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.rooms[RoomName(chatID)][connID]
	return ok
}
