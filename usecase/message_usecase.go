package usecase

import (
	"context"

	"real-time-messenger/dto/req"
	"real-time-messenger/dto/res"
)

type MessageUsecase interface {
	PostMessage(ctx context.Context, request *req.MessageRequest) (res.MessageResponse, error)
	GetMessagesByChatID(ctx context.Context, chatID, userID string) ([]res.MessageResponse, error)
	DeleteMessage(ctx context.Context, userID string, request *req.DeleteMessageRequest) error
	AddReaction(ctx context.Context, userID string, request *req.ReactionRequest) error
	RemoveReaction(ctx context.Context, userID string, request *req.ReactionRequest) error
	GetReactions(ctx context.Context, messageID, userID string) ([]res.ReactionResponse, error)
}
