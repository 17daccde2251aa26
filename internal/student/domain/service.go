package domain

import (
	"context"
	"errors"

	"github.com/shafaqzafar/demoacademia/pkg/db/pagination"
)

var (
	ErrStudentNotFound = errors.New("student_not_found")
	ErrInvalidCampus   = errors.New("invalid_campus")
	ErrInvalidName     = errors.New("invalid_name")
	ErrInvalidEmail    = errors.New("invalid_email")
	ErrInvalidID       = errors.New("invalid_id")
)

type CreateStudentRequest struct {
	CampusID string
	Name     string
	Class    string
	Section  string
	Email    string
}

type UpdateStudentRequest struct {
	Name    *string
	Class   *string
	Section *string
	Email   *string
}

type ListStudentRequest struct {
	CampusID  string
	PageToken string
	PageSize  int
	Name      string
	Class     string
	Section   string
}

type ListStudentResponse struct {
	Students []Student           `json:"students"`
	PageInfo pagination.PageInfo `json:"page_info"`
}

type Service interface {
	Create(ctx context.Context, req CreateStudentRequest) (*Student, error)
	List(ctx context.Context, req ListStudentRequest) (*ListStudentResponse, error)
	GetByID(ctx context.Context, campusID, id string) (*Student, error)
	Update(ctx context.Context, campusID, id string, req UpdateStudentRequest) (*Student, error)
	Delete(ctx context.Context, campusID, id string) error
}
