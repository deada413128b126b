package entity

import "time"

type User struct {
	BaseEntity
	Username string     `json:"username" gorm:"unique;type:varchar(50)"`
	Name     string     `json:"name" gorm:"type:varchar(255)"`
	Avatar   string     `json:"avatar,omitempty" gorm:"type:text"`
	Bio      string     `json:"bio,omitempty" gorm:"type:varchar(500)"`
	IsOnline bool       `json:"isOnline" gorm:"not null;default:false"`
	LastSeen *time.Time `json:"lastSeen,omitempty"`
	AuthId   string     `json:"authId" gorm:"type:varchar(36);unique"`
}
