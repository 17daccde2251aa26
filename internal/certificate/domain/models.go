package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type Status string

const (
	StatusIssued  Status = "issued"
	StatusPrinted Status = "printed"
)

// StudentCertificate is one issued certificate. PersonName snapshots the
// recipient at issue time so later student edits do not rewrite history.
type StudentCertificate struct {
	ID         snowflake.ID `json:"id,string" gorm:"primaryKey"`
	CampusID   snowflake.ID `json:"campus_id,string" gorm:"not null;index"`
	StudentID  snowflake.ID `json:"student_id,string" gorm:"index"`
	TemplateID snowflake.ID `json:"template_id,string" gorm:"index"`
	Status     Status       `json:"status" gorm:"type:text;not null;default:'issued'"`
	IssueDate  string       `json:"issue_date" gorm:"type:text"`
	PersonName string       `json:"person_name" gorm:"type:text"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
}

func (StudentCertificate) TableName() string {
	return "student_certificates"
}
