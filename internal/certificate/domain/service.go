package domain

import (
	"context"
	"errors"

	"github.com/shafaqzafar/demoacademia/pkg/db/pagination"
)

var (
	ErrCertificateNotFound = errors.New("certificate_not_found")
	ErrTemplateNotFound    = errors.New("template_not_found")
	ErrStudentNotFound     = errors.New("student_not_found")
	ErrInvalidCampus       = errors.New("invalid_campus")
	ErrInvalidID           = errors.New("invalid_id")
	ErrNoStudents          = errors.New("no_students_selected")
	ErrInvalidStatus       = errors.New("invalid_status")
)

// IssueRequest issues one certificate per selected student. Each create is
// independent: one student failing does not roll back the others.
type IssueRequest struct {
	CampusID   string
	TemplateID string
	StudentIDs []string
	IssueDate  string
}

type IssueFailure struct {
	StudentID string `json:"student_id"`
	Reason    string `json:"reason"`
}

type IssueResult struct {
	Issued []StudentCertificate `json:"issued"`
	Failed []IssueFailure       `json:"failed,omitempty"`
}

type ListRequest struct {
	CampusID   string
	PageToken  string
	PageSize   int
	StudentID  string
	TemplateID string
	Status     string
}

type ListResponse struct {
	Certificates []StudentCertificate `json:"certificates"`
	PageInfo     pagination.PageInfo  `json:"page_info"`
}

type UpdateRequest struct {
	IssueDate  *string
	PersonName *string
}

// Stats feeds the dashboard summary.
type Stats struct {
	Total           int64 `json:"total"`
	IssuedThisMonth int64 `json:"issued_this_month"`
	Printed         int64 `json:"printed"`
}

type Service interface {
	Issue(ctx context.Context, req IssueRequest) (*IssueResult, error)
	List(ctx context.Context, req ListRequest) (*ListResponse, error)
	GetByID(ctx context.Context, campusID, id string) (*StudentCertificate, error)
	Update(ctx context.Context, campusID, id string, req UpdateRequest) (*StudentCertificate, error)
	Delete(ctx context.Context, campusID, id string) error
	Render(ctx context.Context, campusID, id string) (string, error)
	Print(ctx context.Context, campusID, id string) (*StudentCertificate, error)
	Stats(ctx context.Context, campusID string) (*Stats, error)
}
