package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type Role string

const (
	RoleOwner   Role = "OWNER"
	RoleAdmin   Role = "ADMIN"
	RoleTeacher Role = "TEACHER"
	RoleStudent Role = "STUDENT"
)

func (r Role) Valid() bool {
	switch r {
	case RoleOwner, RoleAdmin, RoleTeacher, RoleStudent:
		return true
	}
	return false
}

// Campus is the tenant boundary. Every school-scoped record carries a
// campus id.
type Campus struct {
	ID        snowflake.ID `json:"id,string" gorm:"primaryKey"`
	Name      string       `json:"name"`
	Slug      string       `json:"slug" gorm:"uniqueIndex"`
	IsDefault bool         `json:"is_default"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

func (Campus) TableName() string {
	return "campuses"
}

type CampusMember struct {
	ID        snowflake.ID `json:"id,string" gorm:"primaryKey"`
	CampusID  snowflake.ID `json:"campus_id,string" gorm:"index:idx_campus_members_campus_user,unique"`
	UserID    snowflake.ID `json:"user_id,string" gorm:"index:idx_campus_members_campus_user,unique"`
	Role      Role         `json:"role"`
	CreatedAt time.Time    `json:"created_at"`
}

func (CampusMember) TableName() string {
	return "campus_members"
}
