package repository

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"real-time-messenger/entity"
)

type UserRepository struct {
	Repository[entity.User]
}

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

func (repository UserRepository) ListExcept(ctx context.Context, db *gorm.DB, userID string) ([]entity.User, error) {
	var users []entity.User
	err := db.WithContext(ctx).
		Where("id <> ?", userID).
		Order("name ASC").
		Find(&users).Error
	return users, errors.Wrap(err, "userRepo.ListExcept.Find: ")
}

// Search matches username or display name, case-insensitively.
func (repository UserRepository) Search(ctx context.Context, db *gorm.DB, userID, query string, limit int) ([]entity.User, error) {
	var users []entity.User
	pattern := "%" + strings.ToLower(query) + "%"
	err := db.WithContext(ctx).
		Where("id <> ?", userID).
		Where("LOWER(username) LIKE ? OR LOWER(name) LIKE ?", pattern, pattern).
		Order("name ASC").
		Limit(limit).
		Find(&users).Error
	return users, errors.Wrap(err, "userRepo.Search.Find: ")
}

func (repository UserRepository) UpdateProfile(ctx context.Context, db *gorm.DB, userID, name, bio string) error {
	err := db.WithContext(ctx).Model(&entity.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{"name": name, "bio": bio}).Error
	return errors.Wrap(err, "userRepo.UpdateProfile.Updates: ")
}

func (repository UserRepository) UpdateAvatar(ctx context.Context, db *gorm.DB, userID, avatar string) error {
	err := db.WithContext(ctx).Model(&entity.User{}).
		Where("id = ?", userID).
		Update("avatar", avatar).Error
	return errors.Wrap(err, "userRepo.UpdateAvatar.Update: ")
}

// SetPresence records online state; lastSeen is only written when going offline.
func (repository UserRepository) SetPresence(ctx context.Context, db *gorm.DB, userID string, online bool, lastSeen *time.Time) error {
	columns := map[string]interface{}{"is_online": online}
	if lastSeen != nil {
		columns["last_seen"] = *lastSeen
	}
	err := db.WithContext(ctx).Model(&entity.User{}).
		Where("id = ?", userID).
		Updates(columns).Error
	return errors.Wrap(err, "userRepo.SetPresence.Updates: ")
}
