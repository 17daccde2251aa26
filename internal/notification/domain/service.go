package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/shafaqzafar/demoacademia/pkg/db/pagination"
)

var (
	ErrNotificationNotFound = errors.New("notification_not_found")
	ErrInvalidCampus        = errors.New("invalid_campus")
	ErrInvalidID            = errors.New("invalid_id")
	ErrInvalidUser          = errors.New("invalid_user")
	ErrInvalidTitle         = errors.New("invalid_title")
)

type CreateRequest struct {
	CampusID string
	UserID   snowflake.ID
	Title    string
	Body     string
}

type ListRequest struct {
	CampusID  string
	UserID    string
	IsRead    *bool
	PageToken string
	PageSize  int
}

type ListResponse struct {
	Notifications []Notification      `json:"notifications"`
	PageInfo      pagination.PageInfo `json:"page_info"`
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Notification, error)
	List(ctx context.Context, req ListRequest) (*ListResponse, error)
	GetByID(ctx context.Context, campusID, id string) (*Notification, error)
	MarkRead(ctx context.Context, campusID, id string) (*Notification, error)
	Delete(ctx context.Context, campusID, id string) error
}
