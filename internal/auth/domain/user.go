package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

var (
	ErrUserNotFound       = errors.New("user_not_found")
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrUserDisabled       = errors.New("user_disabled")
)

// User is a staff account that can sign in to the console.
type User struct {
	ID           snowflake.ID `json:"id,string" gorm:"primaryKey"`
	Email        string       `json:"email" gorm:"uniqueIndex"`
	DisplayName  string       `json:"display_name"`
	PasswordHash *string      `json:"-"`
	IsDefault    bool         `json:"is_default"`
	Disabled     bool         `json:"disabled"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// Session is the authenticated principal attached to a request.
type Session struct {
	UserID      snowflake.ID
	Email       string
	DisplayName string
}

// Service authenticates users against stored credentials.
type Service interface {
	Login(ctx context.Context, email, password string) (string, *User, error)
	GetUser(ctx context.Context, id snowflake.ID) (*User, error)
}
