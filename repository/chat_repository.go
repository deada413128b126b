package repository

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"real-time-messenger/entity"
	"real-time-messenger/enum"
)

type ChatRepository struct {
	Repository[entity.Chat]
}

func NewChatRepository() *ChatRepository {
	return &ChatRepository{}
}

// FindDirectChat returns the direct chat both users belong to, nil when there is none.
func (repository ChatRepository) FindDirectChat(ctx context.Context, db *gorm.DB, userAID, userBID string) (*entity.Chat, error) {
	var chat entity.Chat
	err := db.WithContext(ctx).
		Joins("JOIN t_chat_member cm1 ON cm1.chat_id = t_chat.id").
		Joins("JOIN t_chat_member cm2 ON cm2.chat_id = t_chat.id").
		Where("cm1.user_id = ? AND cm2.user_id = ? AND t_chat.chat_type = ?", userAID, userBID, enum.DIRECT).
		First(&chat).Error

	if IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "chatRepo.FindDirectChat.First: ")
	}
	return &chat, nil
}

func (repository ChatRepository) FindChatByID(ctx context.Context, db *gorm.DB, id string) (*entity.Chat, error) {
	var chat entity.Chat
	err := db.WithContext(ctx).Where("id = ?", id).First(&chat).Error
	if err != nil {
		return nil, errors.Wrap(err, "chatRepo.FindChatByID.First: ")
	}
	return &chat, nil
}

// FindChatByIDForUpdate reads the chat row under a write lock.
func (repository ChatRepository) FindChatByIDForUpdate(ctx context.Context, db *gorm.DB, id string) (*entity.Chat, error) {
	var chat entity.Chat
	err := forUpdate(db.WithContext(ctx)).Where("id = ?", id).First(&chat).Error
	if err != nil {
		return nil, errors.Wrap(err, "chatRepo.FindChatByIDForUpdate.First: ")
	}
	return &chat, nil
}

// FindByChannelID returns nil when the handle is free.
func (repository ChatRepository) FindByChannelID(ctx context.Context, db *gorm.DB, channelID string) (*entity.Chat, error) {
	var chat entity.Chat
	err := db.WithContext(ctx).Where("channel_id = ?", channelID).First(&chat).Error
	if IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "chatRepo.FindByChannelID.First: ")
	}
	return &chat, nil
}

func (repository ChatRepository) CreateChatWithMembers(ctx context.Context, db *gorm.DB, chat *entity.Chat, members []entity.ChatMember) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(chat).Error; err != nil {
			return errors.Wrap(err, "chatRepo.CreateChatWithMembers.CreateChat: ")
		}
		for i := range members {
			members[i].ChatID = chat.ID
		}
		if err := tx.Create(&members).Error; err != nil {
			return errors.Wrap(err, "chatRepo.CreateChatWithMembers.CreateMembers: ")
		}
		chat.Members = members
		return nil
	})
}

func (repository ChatRepository) UpdateColumns(ctx context.Context, db *gorm.DB, chatID string, columns map[string]interface{}) error {
	err := db.WithContext(ctx).Model(&entity.Chat{}).Where("id = ?", chatID).Updates(columns).Error
	return errors.Wrap(err, "chatRepo.UpdateColumns.Updates: ")
}

func (repository ChatRepository) FindAllByUserID(ctx context.Context, db *gorm.DB, userID string) ([]entity.Chat, error) {
	var chats []entity.Chat
	err := db.WithContext(ctx).
		Model(&entity.Chat{}).
		Joins("JOIN t_chat_member cm ON cm.chat_id = t_chat.id").
		Where("cm.user_id = ?", userID).
		Find(&chats).Error
	return chats, errors.Wrap(err, "chatRepo.FindAllByUserID.Find: ")
}
