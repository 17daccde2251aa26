package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// CertificateTemplate defines the layout configuration used to render
// student certificates. Optional visual knobs are nullable so an absent
// value can be told apart from an explicit zero; the render engine fills
// every gap with its documented defaults.
type CertificateTemplate struct {
	ID        snowflake.ID `json:"id,string" gorm:"primaryKey"`
	CampusID  snowflake.ID `json:"campus_id,string" gorm:"not null;index"`
	Name      string       `json:"name" gorm:"type:text;not null"`
	Type      string       `json:"type" gorm:"type:text;not null;default:'achievement'"`
	IsDefault bool         `json:"is_default" gorm:"not null;default:false"`

	Orientation string `json:"orientation" gorm:"type:text"`

	BackgroundColor    string   `json:"background_color" gorm:"type:text"`
	LogoURL            string   `json:"logo_url" gorm:"type:text"`
	ShowBorder         *bool    `json:"show_border"`
	BorderColor        string   `json:"border_color" gorm:"type:text"`
	BorderWidth        *float64 `json:"border_width"`
	BorderStyle        string   `json:"border_style" gorm:"type:text"`
	BorderRadius       *float64 `json:"border_radius"`
	BackgroundImageURL string   `json:"background_image_url" gorm:"type:text"`
	BackgroundOpacity  *float64 `json:"background_opacity"`
	WatermarkText      string   `json:"watermark_text" gorm:"type:text"`
	WatermarkImageURL  string   `json:"watermark_image_url" gorm:"type:text"`
	WatermarkOpacity   *float64 `json:"watermark_opacity"`
	WatermarkRotate    *float64 `json:"watermark_rotate"`

	FontFamily      string   `json:"font_family" gorm:"type:text"`
	TitleFontFamily string   `json:"title_font_family" gorm:"type:text"`
	TitleFontSize   *float64 `json:"title_font_size"`
	BodyFontSize    *float64 `json:"body_font_size"`
	FooterFontSize  *float64 `json:"footer_font_size"`

	Title      string `json:"title" gorm:"type:text"`
	BodyText   string `json:"body_text" gorm:"type:text"`
	FooterText string `json:"footer_text" gorm:"type:text"`

	Signature1Name     string `json:"signature1_name" gorm:"type:text"`
	Signature1Title    string `json:"signature1_title" gorm:"type:text"`
	Signature1ImageURL string `json:"signature1_image_url" gorm:"type:text"`
	Signature2Name     string `json:"signature2_name" gorm:"type:text"`
	Signature2Title    string `json:"signature2_title" gorm:"type:text"`
	Signature2ImageURL string `json:"signature2_image_url" gorm:"type:text"`

	ShowSerial    *bool    `json:"show_serial"`
	SerialPrefix  string   `json:"serial_prefix" gorm:"type:text"`
	SerialPadding *float64 `json:"serial_padding"`

	// Extras keeps free-form style attributes that have no typed column,
	// e.g. values imported from older template exports.
	Extras datatypes.JSONMap `json:"extras,omitempty" gorm:"type:jsonb"`

	CreatedAt time.Time `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (CertificateTemplate) TableName() string { return "certificate_templates" }
