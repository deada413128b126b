package entity

import "real-time-messenger/enum"

// Message timestamps are BaseEntity.CreatedAt. Deletion is physical.
type Message struct {
	BaseEntity
	ChatID      string           `json:"chatId" gorm:"type:varchar(36);not null;index"`
	SenderID    string           `json:"senderId" gorm:"type:varchar(36);not null;index"`
	Content     string           `json:"content" gorm:"type:text;not null"`
	MessageType enum.MessageType `json:"messageType" gorm:"type:varchar(10);not null;default:'text'"`

	Sender User `json:"-" gorm:"foreignKey:SenderID;references:ID"`
}

type Reaction struct {
	BaseEntity
	MessageID string `json:"messageId" gorm:"type:varchar(36);not null;uniqueIndex:uk_reaction;index"`
	UserID    string `json:"userId" gorm:"type:varchar(36);not null;uniqueIndex:uk_reaction"`
	Emoji     string `json:"emoji" gorm:"type:varchar(32);not null;uniqueIndex:uk_reaction"`

	User User `json:"-" gorm:"foreignKey:UserID;references:ID"`
}
