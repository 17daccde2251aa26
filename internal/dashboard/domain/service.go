package domain

import (
	"context"
	"errors"
)

// Service exposes campus dashboard data.
type Service interface {
	GetSummary(ctx context.Context, campusID string) (SummaryResponse, error)
	ListActivity(ctx context.Context, campusID string, limit int) (ActivityResponse, error)
}

var (
	ErrInvalidCampus = errors.New("invalid_campus")
)
