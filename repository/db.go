package repository

import (
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
	"real-time-messenger/entity"
)

// Open connects through the given dialector with the project naming strategy, runs the
// migrations and returns the handle. Timestamps are UTC, truncated to microseconds so that
// watermarks compare equal to the message times they were copied from on every driver.
func Open(dialector gorm.Dialector, log gormlogger.Interface) (*gorm.DB, error) {
	if log == nil {
		log = gormlogger.Default.LogMode(gormlogger.Warn)
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		NamingStrategy: schema.NamingStrategy{
			TablePrefix:   "t_",
			SingularTable: true,
		},
		Logger:         log,
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC().Truncate(time.Microsecond)
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "repository.Open: ")
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&entity.Account{},
		&entity.User{},
		&entity.Chat{},
		&entity.ChatMember{},
		&entity.Message{},
		&entity.Reaction{},
		&entity.BlockedUser{},
	)
	return errors.Wrap(err, "repository.Migrate: ")
}

// Now is the store clock; every watermark and timestamp written outside gorm hooks uses it.
func Now(db *gorm.DB) time.Time {
	if db.Config != nil && db.Config.NowFunc != nil {
		return db.Config.NowFunc()
	}
	return time.Now().UTC()
}

// forUpdate adds a row lock where the driver has one. sqlite serializes writers already.
func forUpdate(db *gorm.DB) *gorm.DB {
	if db.Dialector != nil && db.Dialector.Name() == "sqlite" {
		return db
	}
	return db.Clauses(clause.Locking{Strength: "UPDATE"})
}

// IsDuplicate reports a unique constraint violation (requires TranslateError).
func IsDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// IsNotFound reports a missing row.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
