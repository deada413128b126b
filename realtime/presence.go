package realtime

import (
	"context"
	"time"

	"real-time-messenger/config/logger"
)

// StatusStore persists the online flag and last-seen time of a user.
type StatusStore interface {
	MarkOnline(ctx context.Context, userID string) error
	MarkOffline(ctx context.Context, userID string, at time.Time) error
}

type Presence struct {
	registry Registry
	rooms    *Rooms
	hub      *Hub
	store    StatusStore
	metrics  *Metrics
	log      *logger.AppLogger
	now      func() time.Time
}

func NewPresence(registry Registry, rooms *Rooms, hub *Hub, store StatusStore, metrics *Metrics, log *logger.AppLogger) *Presence {
	return &Presence{
		registry: registry,
		rooms:    rooms,
		hub:      hub,
		store:    store,
		metrics:  metrics,
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// SetOnline records connID as the user's live connection, superseding any earlier one,
// marks the user online and subscribes the connection to all of the user's chat rooms.
func (p *Presence) SetOnline(ctx context.Context, userID, connID string) error {
	previous, replaced := p.registry.Put(userID, connID)
	p.metrics.setOnline(p.registry.Len())
	if replaced {
		p.log.WS.Info.Info().
			Str("userId", userID).
			Str("previousConn", previous).
			Str("conn", connID).
			Msg("connection superseded")
	}

	if err := p.store.MarkOnline(ctx, userID); err != nil {
		p.log.WS.Error.Error().Err(err).Str("userId", userID).Msg("failed to mark user online")
		return err
	}

	rooms, err := p.rooms.JoinAllChats(ctx, connID, userID)
	if err != nil {
		p.log.WS.Error.Error().Err(err).Str("userId", userID).Msg("failed to join chat rooms")
		return err
	}

	p.log.WS.Info.Info().Str("userId", userID).Str("conn", connID).Int("rooms", rooms).Msg("user online")
	return nil
}

// SetOffline clears the entry only while it still points at connID, so a late disconnect
// of a superseded connection cannot mark a reconnected user offline. It reports whether
// the user went offline.
func (p *Presence) SetOffline(ctx context.Context, userID, connID string) (bool, error) {
	if !p.registry.CompareAndDelete(userID, connID) {
		p.log.WS.Trace.Trace().Str("userId", userID).Str("conn", connID).Msg("stale disconnect ignored")
		return false, nil
	}
	p.metrics.setOnline(p.registry.Len())

	if err := p.store.MarkOffline(ctx, userID, p.now()); err != nil {
		p.log.WS.Error.Error().Err(err).Str("userId", userID).Msg("failed to mark user offline")
		return true, err
	}
	p.log.WS.Info.Info().Str("userId", userID).Str("conn", connID).Msg("user offline")
	return true, nil
}

// Resolve returns the user's live connection id; ok is false when the user is offline.
func (p *Presence) Resolve(userID string) (string, bool) {
	return p.registry.Get(userID)
}

// Disconnect closes the user's live connection, if any. The connection's own teardown
// then runs SetOffline.
func (p *Presence) Disconnect(userID string) bool {
	connID, ok := p.registry.Get(userID)
	if !ok {
		return false
	}
	conn, ok := p.hub.Get(connID)
	if !ok {
		return false
	}
	_ = conn.Close()
	return true
}
