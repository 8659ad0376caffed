package model

import (
	"time"

	"gorm.io/gorm"
)

// User struct
type User struct {
	gorm.Model
	Username string    `gorm:"uniqueIndex;not null" json:"username"`
	Phone    string    `gorm:"uniqueIndex;not null" json:"phone"`
	Password string    `gorm:"not null" json:"-"`
	Name     string    `gorm:"not null" json:"name"`
	Bio      string    `json:"bio"`
	Avatar   string    `json:"avatar"`
	Online   bool      `gorm:"not null;default:false" json:"online"`
	LastSeen time.Time `json:"last_seen"`

	Otp_enabled bool `gorm:"default:false;"`
	Otp_secret  string
}
