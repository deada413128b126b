package repository

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Repository[T any] struct{}

func (repo Repository[T]) Save(ctx context.Context, db *gorm.DB, entity *T) error {
	return errors.Wrap(db.WithContext(ctx).Create(entity).Error, "repository.Save: ")
}

func (repo Repository[T]) FindById(ctx context.Context, db *gorm.DB, entity *T, id string) error {
	return errors.Wrap(db.WithContext(ctx).Where("id = ?", id).Take(entity).Error, "repository.FindById: ")
}

func (repo Repository[T]) CountByIDs(ctx context.Context, db *gorm.DB, ids []string) (int64, error) {
	var count int64
	if len(ids) == 0 {
		return 0, nil
	}
	err := db.WithContext(ctx).Model(new(T)).Where("id IN ?", ids).Count(&count).Error
	return count, errors.Wrap(err, "repository.CountByIDs: ")
}
