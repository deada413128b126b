package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// Directory answers the membership and presence lookups of the live layer from the store.
type Directory struct {
	db      *gorm.DB
	members *MemberRepository
	users   *UserRepository
}

func NewDirectory(db *gorm.DB, members *MemberRepository, users *UserRepository) *Directory {
	return &Directory{db: db, members: members, users: users}
}

func (d *Directory) ChatIDsForUser(ctx context.Context, userID string) ([]string, error) {
	return d.members.FindChatIDsByUserID(ctx, d.db, userID)
}

func (d *Directory) MemberIDs(ctx context.Context, chatID string) ([]string, error) {
	return d.members.FindMemberIDs(ctx, d.db, chatID)
}

func (d *Directory) MarkOnline(ctx context.Context, userID string) error {
	return d.users.SetPresence(ctx, d.db, userID, true, nil)
}

func (d *Directory) MarkOffline(ctx context.Context, userID string, at time.Time) error {
	return d.users.SetPresence(ctx, d.db, userID, false, &at)
}
