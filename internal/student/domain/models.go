package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Student is an enrolled learner scoped to a campus.
type Student struct {
	ID        snowflake.ID `json:"id,string" gorm:"primaryKey"`
	CampusID  snowflake.ID `json:"campus_id,string" gorm:"index"`
	Name      string       `json:"name"`
	Class     string       `json:"class"`
	Section   string       `json:"section"`
	Email     string       `json:"email"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

func (Student) TableName() string {
	return "students"
}
