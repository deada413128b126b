package entity

import (
	"real-time-messenger/enum"
	"time"
)

// Chat is a direct, group or channel conversation. ChannelID is the public handle of a
// channel and is unique across chats when set; DirectKey is "<lower id>:<higher id>" for direct
// chats so the pair stays unique.
type Chat struct {
	BaseEntity
	ChatType        enum.ChatType `json:"chatType" gorm:"type:varchar(10);not null;index"`
	Name            string        `json:"name" gorm:"type:varchar(100)"`
	Description     string        `json:"description" gorm:"type:text"`
	Avatar          string        `json:"avatar,omitempty" gorm:"type:text"`
	CreatorID       string        `json:"creatorId" gorm:"type:varchar(36);index"`
	ChannelID       *string       `json:"channelId,omitempty" gorm:"type:varchar(64);uniqueIndex"`
	DirectKey       *string       `json:"-" gorm:"type:varchar(80);uniqueIndex"`
	PostsRestricted bool          `json:"postsRestricted" gorm:"not null;default:false"`
	CommentsEnabled bool          `json:"commentsEnabled" gorm:"not null;default:false"`
	LastMessageAt   *time.Time    `json:"lastMessageAt,omitempty"`

	Members []ChatMember `json:"members,omitempty" gorm:"foreignKey:ChatID;constraint:OnDelete:CASCADE;"`
}

// AdminOnlyPosting reports whether only admins may post. Channels are always restricted,
// groups when posts_restricted is toggled on.
func (c *Chat) AdminOnlyPosting() bool {
	return c.ChatType == enum.CHANNEL || c.PostsRestricted
}

type ChatMember struct {
	BaseEntity
	ChatID     string          `json:"chatId" gorm:"type:varchar(36);not null;uniqueIndex:uk_chat_member;index"`
	UserID     string          `json:"userId" gorm:"type:varchar(36);not null;uniqueIndex:uk_chat_member;index:idx_chat_member_user"`
	Role       enum.MemberRole `json:"role" gorm:"type:varchar(10);not null;default:'member'"`
	JoinedAt   time.Time       `json:"joinedAt"`
	LastReadAt time.Time       `json:"lastReadAt"`

	User User `json:"-" gorm:"foreignKey:UserID;references:ID"`
}

func (m *ChatMember) IsAdmin() bool {
	return m != nil && m.Role == enum.MemberRoleAdmin
}
