package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Assignment is classwork posted to a class/section. An empty class or
// section means the assignment applies to every class or section on the
// campus.
type Assignment struct {
	ID          snowflake.ID `json:"id,string" gorm:"primaryKey"`
	CampusID    snowflake.ID `json:"campus_id,string" gorm:"not null;index"`
	Title       string       `json:"title" gorm:"type:text;not null"`
	Description string       `json:"description" gorm:"type:text"`
	DueDate     string       `json:"due_date" gorm:"type:text"`
	Class       string       `json:"class" gorm:"type:text"`
	Section     string       `json:"section" gorm:"type:text"`
	CreatedBy   snowflake.ID `json:"created_by,string"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

func (Assignment) TableName() string {
	return "assignments"
}

type Submission struct {
	ID           snowflake.ID `json:"id,string" gorm:"primaryKey"`
	AssignmentID snowflake.ID `json:"assignment_id,string" gorm:"index"`
	StudentID    snowflake.ID `json:"student_id,string" gorm:"index"`
	Content      string       `json:"content" gorm:"type:text"`
	SubmittedAt  time.Time    `json:"submitted_at"`
}

func (Submission) TableName() string {
	return "assignment_submissions"
}
