// Package testkit provides an in-memory store and fixtures for package tests.
package testkit

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"real-time-messenger/entity"
	"real-time-messenger/repository"
)

var dbSeq atomic.Int64

// NewDB opens a private in-memory sqlite database with the full schema. A single
// connection keeps the shared-cache database alive and serializes writers.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:messenger_test_%d_%s?mode=memory&cache=shared&_fk=1", dbSeq.Add(1), uuid.NewString()[:8])
	db, err := repository.Open(sqlite.Open(dsn), gormlogger.Default.LogMode(gormlogger.Silent))
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

// CreateUser inserts an account with its user row and returns the user.
func CreateUser(t testing.TB, db *gorm.DB, username string) entity.User {
	t.Helper()
	account := entity.Account{
		UserName: username,
		Password: "not-a-real-hash",
		User: entity.User{
			Username: username,
			Name:     username,
		},
	}
	if err := db.Create(&account).Error; err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return account.User
}

// CreateUsers inserts one user per name.
func CreateUsers(t testing.TB, db *gorm.DB, usernames ...string) []entity.User {
	t.Helper()
	users := make([]entity.User, 0, len(usernames))
	for _, name := range usernames {
		users = append(users, CreateUser(t, db, name))
	}
	return users
}
