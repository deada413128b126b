package entity

type BlockedUser struct {
	BaseEntity
	UserID        string `json:"userId" gorm:"type:varchar(36);not null;uniqueIndex:uk_blocked_user"`
	BlockedUserID string `json:"blockedUserId" gorm:"type:varchar(36);not null;uniqueIndex:uk_blocked_user"`
}
