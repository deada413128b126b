package usecase

import (
	"context"

	"real-time-messenger/dto/req"
	"real-time-messenger/dto/res"
)

type ChatUsecase interface {
	CreateDirectChat(ctx context.Context, request *req.DirectChatRequest) (res.ChatResponse, error)
	CreateGroup(ctx context.Context, request *req.CreateGroupRequest) (res.ChatResponse, error)
	CreateChannel(ctx context.Context, request *req.CreateChannelRequest) (res.ChatResponse, error)
	AddMembers(ctx context.Context, chatID, actorID string, request *req.AddMembersRequest) (res.AddMembersResponse, error)
	SetRole(ctx context.Context, chatID, actorID, userID string, request *req.SetRoleRequest) error
	UpdateSettings(ctx context.Context, chatID, actorID string, request *req.ChatSettingsRequest) (res.ChatSettingsResponse, error)
	EditChat(ctx context.Context, chatID, actorID string, request *req.EditChatRequest) (res.ChatResponse, error)
	GetChat(ctx context.Context, chatID, userID string) (res.ChatResponse, error)
	ListMembers(ctx context.Context, chatID, userID string) ([]res.MemberResponse, error)
	GetChatsByUser(ctx context.Context, userID string) ([]res.ChatResponse, error)
	MarkRead(ctx context.Context, chatID, userID string) error
}
