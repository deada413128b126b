package usecase

import (
	"context"

	"real-time-messenger/dto"
	"real-time-messenger/dto/res"
)

// Notifier receives domain events after the write that produced them has committed.
// Implementations must not block for long and must swallow delivery failures.
type Notifier interface {
	MessagePosted(ctx context.Context, msg res.MessageResponse, memberIDs []string)
	ChatCreated(ctx context.Context, chat res.ChatResponse, memberIDs []string)
	MembersAdded(ctx context.Context, chatID string, added []string)
	ChatUpdated(ctx context.Context, chatID string)
	SettingsUpdated(ctx context.Context, settings res.ChatSettingsResponse)
	RoleUpdated(ctx context.Context, payload dto.MemberRolePayload)
	MessageDeleted(ctx context.Context, payload dto.MessageDeletedPayload)
	ReactionAdded(ctx context.Context, payload dto.ReactionPayload)
	ReactionRemoved(ctx context.Context, payload dto.ReactionPayload)
	ReadReceipt(ctx context.Context, payload dto.ReadReceiptPayload)
}

type NopNotifier struct{}

func (NopNotifier) MessagePosted(context.Context, res.MessageResponse, []string) {}
func (NopNotifier) ChatCreated(context.Context, res.ChatResponse, []string)      {}
func (NopNotifier) MembersAdded(context.Context, string, []string)               {}
func (NopNotifier) ChatUpdated(context.Context, string)                          {}
func (NopNotifier) SettingsUpdated(context.Context, res.ChatSettingsResponse)    {}
func (NopNotifier) RoleUpdated(context.Context, dto.MemberRolePayload)           {}
func (NopNotifier) MessageDeleted(context.Context, dto.MessageDeletedPayload)    {}
func (NopNotifier) ReactionAdded(context.Context, dto.ReactionPayload)           {}
func (NopNotifier) ReactionRemoved(context.Context, dto.ReactionPayload)         {}
func (NopNotifier) ReadReceipt(context.Context, dto.ReadReceiptPayload)          {}
