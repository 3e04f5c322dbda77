package models

import "time"

// Group is a chat room. Only one room is seeded and used today; the column
// on Message keeps the door open for more.
type Group struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:255" json:"name"`
}

// DefaultGroupID is the single shared room every message belongs to.
const DefaultGroupID uint = 1

// Message is an append-only chat entry, globally ordered by CreatedAt.
type Message struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	GroupID   uint      `gorm:"index" json:"group_id"`
	UserID    uint      `json:"user_id"`
	Message   string    `gorm:"size:4096" json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// MessageRow is the read model for the chat page, joined with the sender.
type MessageRow struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
