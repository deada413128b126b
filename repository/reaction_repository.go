package repository

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"real-time-messenger/entity"
)

type ReactionRepository struct {
	Repository[entity.Reaction]
}

func NewReactionRepository() *ReactionRepository {
	return &ReactionRepository{}
}

// AddIfAbsent reports whether a new row was written.
func (repository ReactionRepository) AddIfAbsent(ctx context.Context, db *gorm.DB, reaction *entity.Reaction) (bool, error) {
	result := db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(reaction)
	if result.Error != nil {
		return false, errors.Wrap(result.Error, "reactionRepo.AddIfAbsent.Create: ")
	}
	return result.RowsAffected > 0, nil
}

// Remove reports whether a row was deleted.
func (repository ReactionRepository) Remove(ctx context.Context, db *gorm.DB, messageID, userID, emoji string) (bool, error) {
	result := db.WithContext(ctx).
		Where("message_id = ? AND user_id = ? AND emoji = ?", messageID, userID, emoji).
		Delete(&entity.Reaction{})
	if result.Error != nil {
		return false, errors.Wrap(result.Error, "reactionRepo.Remove.Delete: ")
	}
	return result.RowsAffected > 0, nil
}

func (repository ReactionRepository) FindByMessageID(ctx context.Context, db *gorm.DB, messageID string) ([]entity.Reaction, error) {
	var reactions []entity.Reaction
	err := db.WithContext(ctx).
		Preload("User").
		Where("message_id = ?", messageID).
		Order("created_at ASC").
		Find(&reactions).Error
	return reactions, errors.Wrap(err, "reactionRepo.FindByMessageID.Find: ")
}
