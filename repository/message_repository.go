package repository

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"real-time-messenger/entity"
)

type MessageRepository struct {
	Repository[entity.Message]
}

func NewMessageRepository() *MessageRepository {
	return &MessageRepository{}
}

func (repository MessageRepository) FindByIDWithSender(ctx context.Context, db *gorm.DB, id string) (*entity.Message, error) {
	var message entity.Message
	err := db.WithContext(ctx).Preload("Sender").Where("id = ?", id).First(&message).Error
	if err != nil {
		return nil, errors.Wrap(err, "messageRepo.FindByIDWithSender.First: ")
	}
	return &message, nil
}

func (repository MessageRepository) FindMessagesByChatID(ctx context.Context, db *gorm.DB, chatID string) ([]entity.Message, error) {
	var messages []entity.Message
	err := db.WithContext(ctx).
		Preload("Sender").
		Where("chat_id = ?", chatID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&messages).Error
	return messages, errors.Wrap(err, "messageRepo.FindMessagesByChatID.Find: ")
}

// FindLastMessages returns the newest message of every given chat, keyed by chat id.
func (repository MessageRepository) FindLastMessages(ctx context.Context, db *gorm.DB, chatIDs []string) (map[string]entity.Message, error) {
	last := make(map[string]entity.Message, len(chatIDs))
	if len(chatIDs) == 0 {
		return last, nil
	}
	var messages []entity.Message
	err := db.WithContext(ctx).
		Preload("Sender").
		Where("chat_id IN ?", chatIDs).
		Where("created_at = (SELECT MAX(m2.created_at) FROM t_message m2 WHERE m2.chat_id = t_message.chat_id)").
		Order("id DESC").
		Find(&messages).Error
	if err != nil {
		return nil, errors.Wrap(err, "messageRepo.FindLastMessages.Find: ")
	}
	for _, message := range messages {
		if _, ok := last[message.ChatID]; !ok {
			last[message.ChatID] = message
		}
	}
	return last, nil
}

type unreadRow struct {
	ChatID string
	Unread int64
}

// CountUnread counts, per chat of the user, the messages newer than the user's watermark.
func (repository MessageRepository) CountUnread(ctx context.Context, db *gorm.DB, userID string) (map[string]int64, error) {
	var rows []unreadRow
	err := db.WithContext(ctx).
		Table("t_message m").
		Select("m.chat_id AS chat_id, COUNT(*) AS unread").
		Joins("JOIN t_chat_member cm ON cm.chat_id = m.chat_id AND cm.user_id = ?", userID).
		Where("m.created_at > cm.last_read_at").
		Group("m.chat_id").
		Scan(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "messageRepo.CountUnread.Scan: ")
	}
	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.ChatID] = row.Unread
	}
	return counts, nil
}

// DeleteWithReactions physically removes the message and its reactions.
func (repository MessageRepository) DeleteWithReactions(ctx context.Context, db *gorm.DB, messageID string) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("message_id = ?", messageID).Delete(&entity.Reaction{}).Error; err != nil {
			return errors.Wrap(err, "messageRepo.DeleteWithReactions.DeleteReactions: ")
		}
		if err := tx.Where("id = ?", messageID).Delete(&entity.Message{}).Error; err != nil {
			return errors.Wrap(err, "messageRepo.DeleteWithReactions.DeleteMessage: ")
		}
		return nil
	})
}
