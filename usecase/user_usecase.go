package usecase

import (
	"context"

	"real-time-messenger/dto/req"
	"real-time-messenger/dto/res"
)

type UserUsecase interface {
	GetUserByID(ctx context.Context, userID string) (res.UserResponse, error)
	GetAllUser(ctx context.Context, userID string) ([]res.UserResponse, error)
	SearchUsers(ctx context.Context, userID, query string) ([]res.UserResponse, error)
	UpdateProfile(ctx context.Context, userID string, request *req.EditProfileRequest) (res.UserResponse, error)
	UpdateAvatar(ctx context.Context, userID, avatarURL string) (res.UserResponse, error)
	BlockUser(ctx context.Context, userID, targetID string) error
	UnblockUser(ctx context.Context, userID, targetID string) error
	BlockStatus(ctx context.Context, userID, targetID string) (res.BlockStatusResponse, error)
	GetBlockedUsers(ctx context.Context, userID string) ([]res.UserResponse, error)
}
