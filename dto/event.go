package dto

import "encoding/json"

// Outbound events.
const (
	EventReceiveMessage      = "receive_message"
	EventUpdateChats         = "update_chats"
	EventReactionAdded       = "reaction_added"
	EventReactionRemoved     = "reaction_removed"
	EventUserTyping          = "user_typing"
	EventUserStopTyping      = "user_stop_typing"
	EventReadReceipt         = "read_receipt"
	EventMemberRoleUpdated   = "member_role_updated"
	EventChatSettingsUpdated = "chat_settings_updated"
	EventChatUpdated         = "chat_updated"
	EventMessageDeleted      = "message_deleted"
	EventNewGroup            = "new_group"
	EventNewChannel          = "new_channel"
	EventChatsUpdated        = "chats_updated"
	EventChatsList           = "chats_list"
	EventMessagesHistory     = "messages_history"
	EventMessageSent         = "message_sent"
	EventMessageError        = "message_error"
)

// Inbound events.
const (
	EventUserOnline     = "user_online"
	EventJoinChats      = "join_chats"
	EventGetChats       = "get_chats"
	EventGetMessages    = "get_messages"
	EventSendMessage    = "send_message"
	EventTyping         = "typing"
	EventStopTyping     = "stop_typing"
	EventMarkRead       = "mark_read"
	EventDeleteMessage  = "delete_message"
	EventAddReaction    = "add_reaction"
	EventRemoveReaction = "remove_reaction"
)

// Event is one frame on the live channel: {"event": "...", "data": {...}}.
type Event struct {
	Event string `json:"event"`
	Data  any    `json:"data,omitempty"`
}

type InboundEvent struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

func NewEvent(name string, data any) Event {
	return Event{Event: name, Data: data}
}

type ChatRef struct {
	ChatID string `json:"chatId"`
}

type TypingPayload struct {
	ChatID string `json:"chatId"`
	UserID string `json:"userId"`
}

type ReadReceiptPayload struct {
	ChatID    string `json:"chatId"`
	UserID    string `json:"userId"`
	Timestamp string `json:"timestamp"`
}

type ReactionPayload struct {
	ChatID    string `json:"chatId"`
	MessageID string `json:"messageId"`
	UserID    string `json:"userId"`
	Emoji     string `json:"emoji"`
}

type MemberRolePayload struct {
	ChatID string `json:"chatId"`
	UserID string `json:"userId"`
	Role   string `json:"role"`
}

type MessageDeletedPayload struct {
	ChatID    string `json:"chatId"`
	MessageID string `json:"messageId"`
}

type MessageErrorPayload struct {
	Code     string `json:"code"`
	Error    string `json:"error"`
	ClientID string `json:"clientId,omitempty"`
}
