package domain

import (
	"context"
	"errors"
	"strings"

	"github.com/bwmarrin/snowflake"
)

type ListRequest struct {
	Name      string `form:"name"`
	Type      string `form:"type"`
	IsDefault *bool  `form:"is_default"`
}

type CreateRequest struct {
	CampusID  string
	Name      string
	Type      string
	IsDefault bool

	Orientation string

	BackgroundColor    string
	LogoURL            string
	ShowBorder         *bool
	BorderColor        string
	BorderWidth        *float64
	BorderStyle        string
	BorderRadius       *float64
	BackgroundImageURL string
	BackgroundOpacity  *float64
	WatermarkText      string
	WatermarkImageURL  string
	WatermarkOpacity   *float64
	WatermarkRotate    *float64

	FontFamily      string
	TitleFontFamily string
	TitleFontSize   *float64
	BodyFontSize    *float64
	FooterFontSize  *float64

	Title      string
	BodyText   string
	FooterText string

	Signature1Name     string
	Signature1Title    string
	Signature1ImageURL string
	Signature2Name     string
	Signature2Title    string
	Signature2ImageURL string

	ShowSerial    *bool
	SerialPrefix  string
	SerialPadding *float64

	Extras map[string]any
}

// UpdateRequest applies partial changes. Nil pointer fields are left
// untouched; Extras replaces the stored map when non-nil.
type UpdateRequest struct {
	Name *string
	Type *string

	Orientation *string

	BackgroundColor    *string
	LogoURL            *string
	ShowBorder         *bool
	BorderColor        *string
	BorderWidth        *float64
	BorderStyle        *string
	BorderRadius       *float64
	BackgroundImageURL *string
	BackgroundOpacity  *float64
	WatermarkText      *string
	WatermarkImageURL  *string
	WatermarkOpacity   *float64
	WatermarkRotate    *float64

	FontFamily      *string
	TitleFontFamily *string
	TitleFontSize   *float64
	BodyFontSize    *float64
	FooterFontSize  *float64

	Title      *string
	BodyText   *string
	FooterText *string

	Signature1Name     *string
	Signature1Title    *string
	Signature1ImageURL *string
	Signature2Name     *string
	Signature2Title    *string
	Signature2ImageURL *string

	ShowSerial    *bool
	SerialPrefix  *string
	SerialPadding *float64

	Extras map[string]any
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*CertificateTemplate, error)
	List(ctx context.Context, campusID string, req ListRequest) ([]CertificateTemplate, error)
	GetByID(ctx context.Context, campusID, id string) (*CertificateTemplate, error)
	GetDefault(ctx context.Context, campusID, templateType string) (*CertificateTemplate, error)
	Update(ctx context.Context, campusID, id string, req UpdateRequest) (*CertificateTemplate, error)
	SetDefault(ctx context.Context, campusID, id string) (*CertificateTemplate, error)
	Delete(ctx context.Context, campusID, id string) error
}

func ParseID(raw string) (snowflake.ID, error) {
	return snowflake.ParseString(strings.TrimSpace(raw))
}

var (
	ErrInvalidCampus = errors.New("invalid_campus")
	ErrInvalidID     = errors.New("invalid_id")
	ErrInvalidName   = errors.New("invalid_name")
	ErrInvalidType   = errors.New("invalid_type")
	ErrNotFound      = errors.New("template_not_found")
)
