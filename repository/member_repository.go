package repository

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"real-time-messenger/entity"
	"real-time-messenger/enum"
)

type MemberRepository struct {
	Repository[entity.ChatMember]
}

func NewMemberRepository() *MemberRepository {
	return &MemberRepository{}
}

// FindMember returns nil when the user has no membership row. lock takes a row lock
// for check-then-write sequences running in a transaction.
func (repository MemberRepository) FindMember(ctx context.Context, db *gorm.DB, chatID, userID string, lock bool) (*entity.ChatMember, error) {
	var member entity.ChatMember
	query := db.WithContext(ctx)
	if lock {
		query = forUpdate(query)
	}
	err := query.Where("chat_id = ? AND user_id = ?", chatID, userID).First(&member).Error
	if IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "memberRepo.FindMember.First: ")
	}
	return &member, nil
}

// AddMembers inserts a row per user unless one exists and returns the ids actually added.
func (repository MemberRepository) AddMembers(ctx context.Context, db *gorm.DB, chatID string, userIDs []string, role enum.MemberRole, now time.Time) ([]string, error) {
	added := make([]string, 0, len(userIDs))
	for _, userID := range userIDs {
		member := entity.ChatMember{
			ChatID:     chatID,
			UserID:     userID,
			Role:       role,
			JoinedAt:   now,
			LastReadAt: now,
		}
		result := db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&member)
		if result.Error != nil {
			return nil, errors.Wrap(result.Error, "memberRepo.AddMembers.Create: ")
		}
		if result.RowsAffected > 0 {
			added = append(added, userID)
		}
	}
	return added, nil
}

// UpdateRole changes an existing row only; it reports whether a row was touched.
func (repository MemberRepository) UpdateRole(ctx context.Context, db *gorm.DB, chatID, userID string, role enum.MemberRole) (bool, error) {
	result := db.WithContext(ctx).Model(&entity.ChatMember{}).
		Where("chat_id = ? AND user_id = ?", chatID, userID).
		Update("role", role)
	if result.Error != nil {
		return false, errors.Wrap(result.Error, "memberRepo.UpdateRole.Update: ")
	}
	return result.RowsAffected > 0, nil
}

func (repository MemberRepository) TouchLastRead(ctx context.Context, db *gorm.DB, chatID, userID string, at time.Time) error {
	err := db.WithContext(ctx).Model(&entity.ChatMember{}).
		Where("chat_id = ? AND user_id = ?", chatID, userID).
		Update("last_read_at", at).Error
	return errors.Wrap(err, "memberRepo.TouchLastRead.Update: ")
}

func (repository MemberRepository) FindMemberIDs(ctx context.Context, db *gorm.DB, chatID string) ([]string, error) {
	var ids []string
	err := db.WithContext(ctx).Model(&entity.ChatMember{}).
		Where("chat_id = ?", chatID).
		Order("joined_at ASC").
		Pluck("user_id", &ids).Error
	return ids, errors.Wrap(err, "memberRepo.FindMemberIDs.Pluck: ")
}

func (repository MemberRepository) FindChatIDsByUserID(ctx context.Context, db *gorm.DB, userID string) ([]string, error) {
	var ids []string
	err := db.WithContext(ctx).Model(&entity.ChatMember{}).
		Where("user_id = ?", userID).
		Pluck("chat_id", &ids).Error
	return ids, errors.Wrap(err, "memberRepo.FindChatIDsByUserID.Pluck: ")
}

func (repository MemberRepository) FindMembershipsByUserID(ctx context.Context, db *gorm.DB, userID string) ([]entity.ChatMember, error) {
	var members []entity.ChatMember
	err := db.WithContext(ctx).Where("user_id = ?", userID).Find(&members).Error
	return members, errors.Wrap(err, "memberRepo.FindMembershipsByUserID.Find: ")
}

func (repository MemberRepository) FindMembersWithUsers(ctx context.Context, db *gorm.DB, chatID string) ([]entity.ChatMember, error) {
	var members []entity.ChatMember
	err := db.WithContext(ctx).
		Preload("User").
		Where("chat_id = ?", chatID).
		Order("joined_at ASC").
		Find(&members).Error
	return members, errors.Wrap(err, "memberRepo.FindMembersWithUsers.Find: ")
}

// FindCounterparts returns, for each given chat, the members other than userID.
func (repository MemberRepository) FindCounterparts(ctx context.Context, db *gorm.DB, chatIDs []string, userID string) ([]entity.ChatMember, error) {
	var members []entity.ChatMember
	if len(chatIDs) == 0 {
		return members, nil
	}
	err := db.WithContext(ctx).
		Preload("User").
		Where("chat_id IN ? AND user_id <> ?", chatIDs, userID).
		Find(&members).Error
	return members, errors.Wrap(err, "memberRepo.FindCounterparts.Find: ")
}
