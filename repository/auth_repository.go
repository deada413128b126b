package repository

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"real-time-messenger/entity"
)

type AuthRepository struct {
	Repository[entity.Account]
}

func NewAuthRepository() *AuthRepository {
	return &AuthRepository{}
}

func (repository AuthRepository) FindByUsername(ctx context.Context, db *gorm.DB, username string) (entity.Account, error) {
	account := entity.Account{}
	err := db.WithContext(ctx).Preload("User").Where("user_name = ?", username).First(&account).Error
	if err != nil {
		return account, errors.Wrap(err, "authRepo.FindByUsername.First: ")
	}
	return account, nil
}
