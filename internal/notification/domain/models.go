package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Notification is a message delivered to one user on a campus.
type Notification struct {
	ID        snowflake.ID `json:"id,string" gorm:"primaryKey"`
	CampusID  snowflake.ID `json:"campus_id,string" gorm:"not null;index"`
	UserID    snowflake.ID `json:"user_id,string" gorm:"not null;index"`
	Title     string       `json:"title" gorm:"type:text;not null"`
	Body      string       `json:"body" gorm:"type:text"`
	IsRead    bool         `json:"is_read" gorm:"not null;default:false"`
	ReadAt    *time.Time   `json:"read_at,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}
