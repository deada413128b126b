package repository

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"real-time-messenger/entity"
)

type BlockRepository struct {
	Repository[entity.BlockedUser]
}

func NewBlockRepository() *BlockRepository {
	return &BlockRepository{}
}

// Block reports false when the pair was already blocked.
func (repository BlockRepository) Block(ctx context.Context, db *gorm.DB, userID, blockedUserID string) (bool, error) {
	row := entity.BlockedUser{UserID: userID, BlockedUserID: blockedUserID}
	result := db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&row)
	if result.Error != nil {
		return false, errors.Wrap(result.Error, "blockRepo.Block.Create: ")
	}
	return result.RowsAffected > 0, nil
}

func (repository BlockRepository) Unblock(ctx context.Context, db *gorm.DB, userID, blockedUserID string) error {
	err := db.WithContext(ctx).
		Where("user_id = ? AND blocked_user_id = ?", userID, blockedUserID).
		Delete(&entity.BlockedUser{}).Error
	return errors.Wrap(err, "blockRepo.Unblock.Delete: ")
}

func (repository BlockRepository) IsBlocked(ctx context.Context, db *gorm.DB, userID, blockedUserID string) (bool, error) {
	var count int64
	err := db.WithContext(ctx).Model(&entity.BlockedUser{}).
		Where("user_id = ? AND blocked_user_id = ?", userID, blockedUserID).
		Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "blockRepo.IsBlocked.Count: ")
	}
	return count > 0, nil
}

func (repository BlockRepository) FindBlockedUsers(ctx context.Context, db *gorm.DB, userID string) ([]entity.User, error) {
	var users []entity.User
	err := db.WithContext(ctx).
		Joins("JOIN t_blocked_user bu ON bu.blocked_user_id = t_user.id").
		Where("bu.user_id = ?", userID).
		Order("t_user.name ASC").
		Find(&users).Error
	return users, errors.Wrap(err, "blockRepo.FindBlockedUsers.Find: ")
}
