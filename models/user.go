package models

import (
	"time"

	"gorm.io/gorm"
)

// User holds account identity plus the profile fields editable from the
// profile and settings pages. Passwords are stored as bcrypt hashes only.
// Age, height and weight are pointers so an empty form input maps to NULL
// instead of zero.
type User struct {
	ID                   uint      `gorm:"primaryKey" json:"id"`
	Username             string    `gorm:"size:64" json:"username"`
	Email                string    `gorm:"size:255;uniqueIndex" json:"email"`
	PasswordHash         string    `gorm:"size:255" json:"-"`
	Bio                  string    `gorm:"size:1024" json:"bio"`
	ProfilePicture       string    `gorm:"size:512" json:"profile_picture"`
	Age                  *int      `json:"age"`
	Gender               string    `gorm:"size:32" json:"gender"`
	Height               *float64  `json:"height"`
	Weight               *float64  `json:"weight"`
	NotificationsEnabled bool      `gorm:"default:true" json:"notifications_enabled"`
	PrivacySetting       string    `gorm:"size:32;default:Public" json:"privacy_setting"`
	AccountOption        string    `gorm:"size:32;default:Basic" json:"account_option"`
	DailyGoal            int       `gorm:"default:10000" json:"daily_goal"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// BeforeCreate hook ensures timestamps are set even when not provided.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.UpdatedAt = now
	return nil
}

// BeforeUpdate ensures the UpdatedAt timestamp is refreshed.
func (u *User) BeforeUpdate(tx *gorm.DB) error {
	u.UpdatedAt = time.Now()
	return nil
}
