package models

import "time"

// Challenge is a static catalog entry seeded at bootstrap.
type Challenge struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:255" json:"name"`
	Description string `gorm:"size:1024" json:"description"`
	Points      int    `json:"points"`
}

// UserChallenge records that a user joined a challenge. The composite
// primary key enforces the at-most-once join invariant at the store level.
type UserChallenge struct {
	UserID      uint      `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	ChallengeID uint      `gorm:"primaryKey;autoIncrement:false" json:"challenge_id"`
	JoinedAt    time.Time `gorm:"autoCreateTime" json:"joined_at"`
	Progress    int       `gorm:"default:0" json:"progress"`
	Completed   bool      `gorm:"default:false" json:"completed"`
}
