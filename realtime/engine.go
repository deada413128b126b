package realtime

import (
	"context"

	"real-time-messenger/config/logger"
	"real-time-messenger/dto"
	"real-time-messenger/dto/res"
	"real-time-messenger/enum"
)

// Engine turns committed domain events into pushes. It never writes to the store and
// never reports push failures back to the acting client.
type Engine struct {
	presence *Presence
	rooms    *Rooms
	hub      *Hub
	metrics  *Metrics
	log      *logger.AppLogger
}

func NewEngine(presence *Presence, rooms *Rooms, hub *Hub, metrics *Metrics, log *logger.AppLogger) *Engine {
	return &Engine{presence: presence, rooms: rooms, hub: hub, metrics: metrics, log: log}
}

// MessagePosted pushes the message, then a chat list refresh hint, to every connected member.
// Delivery is per recipient so it does not depend on room subscriptions being current.
func (e *Engine) MessagePosted(_ context.Context, msg res.MessageResponse, memberIDs []string) {
	message := dto.NewEvent(dto.EventReceiveMessage, msg)
	hint := dto.NewEvent(dto.EventUpdateChats, dto.ChatRef{ChatID: msg.ChatId})
	for _, userID := range memberIDs {
		connID, ok := e.presence.Resolve(userID)
		if !ok {
			e.metrics.push(dto.EventReceiveMessage, OutcomeOffline)
			continue
		}
		e.deliver(connID, message)
		e.deliver(connID, hint)
	}
}

// ChatCreated subscribes the members' live connections to the new room, then tells each
// of them about the chat.
func (e *Engine) ChatCreated(_ context.Context, chat res.ChatResponse, memberIDs []string) {
	e.joinLive(chat.ChatId, memberIDs)

	name := dto.EventChatsUpdated
	switch enum.ChatType(chat.Type) {
	case enum.GROUP:
		name = dto.EventNewGroup
	case enum.CHANNEL:
		name = dto.EventNewChannel
	}

	for _, userID := range memberIDs {
		if name == dto.EventChatsUpdated {
			e.toUser(userID, dto.NewEvent(name, dto.ChatRef{ChatID: chat.ChatId}))
			continue
		}
		view := chat
		view.Role = string(enum.MemberRoleMember)
		if userID == chat.CreatedBy {
			view.Role = string(enum.MemberRoleAdmin)
		}
		e.toUser(userID, dto.NewEvent(name, view))
	}
}

func (e *Engine) MembersAdded(_ context.Context, chatID string, added []string) {
	e.joinLive(chatID, added)
	for _, userID := range added {
		e.toUser(userID, dto.NewEvent(dto.EventChatsUpdated, dto.ChatRef{ChatID: chatID}))
	}
}

func (e *Engine) ChatUpdated(_ context.Context, chatID string) {
	e.toRoom(chatID, dto.NewEvent(dto.EventChatUpdated, dto.ChatRef{ChatID: chatID}), "")
}

func (e *Engine) SettingsUpdated(_ context.Context, settings res.ChatSettingsResponse) {
	e.toRoom(settings.ChatId, dto.NewEvent(dto.EventChatSettingsUpdated, settings), "")
}

func (e *Engine) RoleUpdated(_ context.Context, payload dto.MemberRolePayload) {
	e.toRoom(payload.ChatID, dto.NewEvent(dto.EventMemberRoleUpdated, payload), "")
}

func (e *Engine) MessageDeleted(_ context.Context, payload dto.MessageDeletedPayload) {
	e.toRoom(payload.ChatID, dto.NewEvent(dto.EventMessageDeleted, payload), "")
}

func (e *Engine) ReactionAdded(_ context.Context, payload dto.ReactionPayload) {
	e.toRoom(payload.ChatID, dto.NewEvent(dto.EventReactionAdded, payload), "")
}

func (e *Engine) ReactionRemoved(_ context.Context, payload dto.ReactionPayload) {
	e.toRoom(payload.ChatID, dto.NewEvent(dto.EventReactionRemoved, payload), "")
}

func (e *Engine) ReadReceipt(_ context.Context, payload dto.ReadReceiptPayload) {
	e.toRoom(payload.ChatID, dto.NewEvent(dto.EventReadReceipt, payload), "")
}

// Typing relays a typing start/stop to the rest of the room. The origin must already be
// subscribed to the chat's room; nothing is stored and nothing expires server-side.
func (e *Engine) Typing(conn Conn, chatID string, started bool) bool {
	if !e.rooms.IsSubscribed(conn.ID(), chatID) {
		return false
	}
	name := dto.EventUserStopTyping
	if started {
		name = dto.EventUserTyping
	}
	e.toRoom(chatID, dto.NewEvent(name, dto.TypingPayload{ChatID: chatID, UserID: conn.UserID()}), conn.ID())
	return true
}

// Reply answers a single connection.
func (e *Engine) Reply(conn Conn, name string, data any) {
	e.deliver(conn.ID(), dto.NewEvent(name, data))
}

func (e *Engine) joinLive(chatID string, userIDs []string) {
	for _, userID := range userIDs {
		if connID, ok := e.presence.Resolve(userID); ok {
			e.rooms.Join(connID, chatID)
		}
	}
}

func (e *Engine) toUser(userID string, event dto.Event) {
	connID, ok := e.presence.Resolve(userID)
	if !ok {
		e.metrics.push(event.Event, OutcomeOffline)
		return
	}
	e.deliver(connID, event)
}

func (e *Engine) toRoom(chatID string, event dto.Event, except string) {
	for _, connID := range e.rooms.Subscribers(chatID) {
		if connID == except {
			continue
		}
		e.deliver(connID, event)
	}
}

func (e *Engine) deliver(connID string, event dto.Event) bool {
	conn, ok := e.hub.Get(connID)
	if !ok {
		e.metrics.push(event.Event, OutcomeDropped)
		e.log.WS.Trace.Trace().Str("conn", connID).Str("event", event.Event).Msg("push to stale connection dropped")
		return false
	}
	if err := conn.Send(event); err != nil {
		e.metrics.push(event.Event, OutcomeDropped)
		e.log.WS.Warning.Warn().Err(err).Str("conn", connID).Str("event", event.Event).Msg("push dropped")
		return false
	}
	e.metrics.push(event.Event, OutcomeDelivered)
	return true
}
