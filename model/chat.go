package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	ChatTypePrivate = "private"
	ChatTypeGroup   = "group"
	ChatTypeChannel = "channel"

	RoleOwner  = "owner"
	RoleAdmin  = "admin"
	RoleMember = "member"
)

type Chat struct {
	gorm.Model
	Type        string `gorm:"not null" json:"type"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Avatar      string `json:"avatar"`
	CreatorID   uint   `gorm:"not null" json:"creator_id"`
	Creator     User   `gorm:"foreignKey:CreatorID" json:"-"`

	// PairKey is "p:<minID>:<maxID>" for private chats and NULL otherwise.
	// The unique index makes find-or-create race-free.
	PairKey *string `gorm:"uniqueIndex" json:"-"`
}

type ChatMember struct {
	gorm.Model
	ChatID   uint      `gorm:"not null;uniqueIndex:idx_chat_members_pair" json:"chat_id"`
	UserID   uint      `gorm:"not null;uniqueIndex:idx_chat_members_pair" json:"user_id"`
	Role     string    `gorm:"not null;default:member" json:"role"`
	JoinedAt time.Time `json:"joined_at"`
	Chat     Chat      `gorm:"foreignKey:ChatID" json:"-"`
	User     User      `gorm:"foreignKey:UserID" json:"-"`
}

type Message struct {
	gorm.Model
	ChatID    uint   `gorm:"not null;index" json:"chat_id"`
	SenderID  uint   `gorm:"not null" json:"sender_id"`
	Text      string `json:"text"`
	ReplyToID *uint  `json:"reply_to_id"`
	Edited    bool   `gorm:"not null;default:false" json:"edited"`
	Deleted   bool   `gorm:"not null;default:false" json:"deleted"`
	Sender    User   `gorm:"foreignKey:SenderID" json:"-"`
}
