package usecase

import (
	"context"

	"gorm.io/gorm"
	"real-time-messenger/apperror"
	"real-time-messenger/entity"
	"real-time-messenger/repository"
)

// store bundles the repositories the chat and message usecases share.
type store struct {
	chats    *repository.ChatRepository
	members  *repository.MemberRepository
	messages *repository.MessageRepository
	users    *repository.UserRepository
}

func (s store) loadChat(ctx context.Context, db *gorm.DB, chatID string, lock bool) (*entity.Chat, error) {
	var (
		chat *entity.Chat
		err  error
	)
	if lock {
		chat, err = s.chats.FindChatByIDForUpdate(ctx, db, chatID)
	} else {
		chat, err = s.chats.FindChatByID(ctx, db, chatID)
	}
	if repository.IsNotFound(err) {
		return nil, apperror.ErrChatNotFound
	}
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return chat, nil
}

// requireMember returns the caller's membership or PermissionDenied.
func (s store) requireMember(ctx context.Context, db *gorm.DB, chatID, userID string, lock bool) (*entity.ChatMember, error) {
	member, err := s.members.FindMember(ctx, db, chatID, userID, lock)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if member == nil {
		return nil, apperror.ErrNotChatMember
	}
	return member, nil
}

// requireAdmin returns the caller's membership when it carries the admin role.
func (s store) requireAdmin(ctx context.Context, db *gorm.DB, chatID, userID string) (*entity.ChatMember, error) {
	member, err := s.members.FindMember(ctx, db, chatID, userID, true)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if !member.IsAdmin() {
		return nil, apperror.ErrAdminRequired
	}
	return member, nil
}

func (s store) requireUsers(ctx context.Context, db *gorm.DB, ids []string) error {
	count, err := s.users.CountByIDs(ctx, db, ids)
	if err != nil {
		return apperror.Internal(err)
	}
	if count != int64(len(ids)) {
		return apperror.ErrUserNotFound
	}
	return nil
}

func (s store) loadMessage(ctx context.Context, db *gorm.DB, messageID string) (*entity.Message, error) {
	message, err := s.messages.FindByIDWithSender(ctx, db, messageID)
	if repository.IsNotFound(err) {
		return nil, apperror.ErrMessageNotFound
	}
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return message, nil
}
