package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/shafaqzafar/demoacademia/pkg/db/pagination"
)

var (
	ErrAssignmentNotFound = errors.New("assignment_not_found")
	ErrStudentNotFound    = errors.New("student_not_found")
	ErrInvalidCampus      = errors.New("invalid_campus")
	ErrInvalidID          = errors.New("invalid_id")
	ErrInvalidTitle       = errors.New("invalid_title")
	ErrEmptySubmission    = errors.New("empty_submission")
	ErrAlreadySubmitted   = errors.New("already_submitted")
)

type CreateRequest struct {
	CampusID    string
	Title       string
	Description string
	DueDate     string
	Class       string
	Section     string
	CreatedBy   snowflake.ID
}

type UpdateRequest struct {
	Title       *string
	Description *string
	DueDate     *string
	Class       *string
	Section     *string
}

type ListRequest struct {
	CampusID  string
	PageToken string
	PageSize  int
	Q         string
	Class     string
	Section   string
}

type ListResponse struct {
	Assignments []Assignment        `json:"assignments"`
	PageInfo    pagination.PageInfo `json:"page_info"`
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Assignment, error)
	List(ctx context.Context, req ListRequest) (*ListResponse, error)
	GetByID(ctx context.Context, campusID, id string) (*Assignment, error)
	Update(ctx context.Context, campusID, id string, req UpdateRequest) (*Assignment, error)
	Delete(ctx context.Context, campusID, id string) error
	SubmitWork(ctx context.Context, campusID, assignmentID, studentID, content string) (*Submission, error)
	ListSubmissions(ctx context.Context, campusID, assignmentID string) ([]Submission, error)
	ListByStudent(ctx context.Context, campusID, studentID string, req ListRequest) (*ListResponse, error)
}
