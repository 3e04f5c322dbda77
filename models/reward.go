package models

import "time"

// Reward is a static catalog entry seeded at bootstrap.
type Reward struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	Name           string `gorm:"size:255" json:"name"`
	Description    string `gorm:"size:1024" json:"description"`
	Image          string `gorm:"size:512" json:"image"`
	PointsRequired int    `json:"points_required"`
}

// UserReward records a redemption. The composite primary key enforces the
// at-most-once claim invariant at the store level.
type UserReward struct {
	UserID   uint      `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	RewardID uint      `gorm:"primaryKey;autoIncrement:false" json:"reward_id"`
	EarnedAt time.Time `gorm:"autoCreateTime" json:"earned_at"`
}
