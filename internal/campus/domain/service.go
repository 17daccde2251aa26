package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

var (
	ErrCampusNotFound = errors.New("campus_not_found")
	ErrInvalidName    = errors.New("invalid_name")
	ErrInvalidSlug    = errors.New("invalid_slug")
	ErrSlugTaken      = errors.New("slug_taken")
	ErrInvalidUser    = errors.New("invalid_user")
	ErrInvalidRole    = errors.New("invalid_role")
	ErrMemberExists   = errors.New("member_exists")
)

type CreateCampusRequest struct {
	Name string
	Slug string
}

type UpdateCampusRequest struct {
	Name *string
}

type Service interface {
	Create(ctx context.Context, userID snowflake.ID, req CreateCampusRequest) (*Campus, error)
	Update(ctx context.Context, campusID string, req UpdateCampusRequest) (*Campus, error)
	Get(ctx context.Context, campusID string) (*Campus, error)
	ListByUser(ctx context.Context, userID snowflake.ID) ([]Campus, error)
	IsMember(ctx context.Context, campusID, userID snowflake.ID) (bool, error)
	ListMembers(ctx context.Context, campusID string) ([]CampusMember, error)
	AddMember(ctx context.Context, campusID string, userID snowflake.ID, role Role) (*CampusMember, error)
}
