package render

import (
	"math"
	"strings"
)

// Orientation values accepted by templates.
const (
	OrientationPortrait  = "portrait"
	OrientationLandscape = "landscape"
)

// Defaulting table applied by Normalize. Absent or non-finite values resolve
// to these; the raw template is never mutated.
const (
	defaultBackgroundColor   = "#ffffff"
	defaultBorderColor       = "#111111"
	defaultBorderStyle       = "solid"
	defaultBorderWidth       = 2
	defaultBorderRadius      = 14
	defaultBackgroundOpacity = 0.2
	defaultWatermarkOpacity  = 0.08
	defaultWatermarkRotate   = -25
	defaultFontFamily        = "Georgia, serif"
	defaultTitleFontSize     = 34
	defaultBodyFontSize      = 18
	defaultFooterFontSize    = 14
	defaultTitle             = "Certificate"
)

// SignatureConfig is one fully-resolved signature slot.
type SignatureConfig struct {
	Name     string
	Title    string
	ImageURL string
	Present  bool
}

// Config is the fully-resolved template configuration. Every field carries a
// usable value and every conditional branch the composer takes is
// precomputed as a presence flag, so composition performs no defaulting and
// no ad-hoc truthiness checks.
type Config struct {
	Orientation string
	PageSize    string

	BackgroundColor string
	LogoURL         string

	ShowBorder   bool
	BorderColor  string
	BorderWidth  float64
	BorderStyle  string
	BorderRadius float64

	BackgroundImageURL string
	BackgroundOpacity  float64
	WatermarkText      string
	WatermarkImageURL  string
	WatermarkOpacity   float64
	WatermarkRotate    float64

	FontFamily      string
	TitleFontFamily string
	TitleFontSize   float64
	BodyFontSize    float64
	FooterFontSize  float64

	Title      string
	BodyText   string
	FooterText string

	Signatures [2]SignatureConfig

	SerialEnabled bool
	SerialPrefix  string
	SerialPadding int

	HasLogo            bool
	HasBackgroundImage bool
	HasWatermarkImage  bool
	HasWatermarkText   bool
	HasSignatureRow    bool
	HasFooter          bool
}

// Normalize resolves a raw template into a Config. Pure and total: it never
// fails, and malformed numerics fall back to their defaults instead of
// leaking NaN into layout geometry.
func Normalize(tpl *TemplateView) Config {
	cfg := Config{
		Orientation: OrientationLandscape,

		BackgroundColor: fallback(tpl.BackgroundColor, defaultBackgroundColor),
		LogoURL:         tpl.LogoURL,

		ShowBorder:   boolOr(tpl.ShowBorder, true),
		BorderColor:  fallback(tpl.BorderColor, defaultBorderColor),
		BorderWidth:  numberOr(tpl.BorderWidth, defaultBorderWidth),
		BorderStyle:  fallback(tpl.BorderStyle, defaultBorderStyle),
		BorderRadius: numberOr(tpl.BorderRadius, defaultBorderRadius),

		BackgroundImageURL: tpl.BackgroundImageURL,
		BackgroundOpacity:  numberOr(tpl.BackgroundOpacity, defaultBackgroundOpacity),
		WatermarkText:      tpl.WatermarkText,
		WatermarkImageURL:  tpl.WatermarkImageURL,
		WatermarkOpacity:   numberOr(tpl.WatermarkOpacity, defaultWatermarkOpacity),
		WatermarkRotate:    numberOr(tpl.WatermarkRotate, defaultWatermarkRotate),

		FontFamily:     fallback(tpl.FontFamily, defaultFontFamily),
		TitleFontSize:  numberOr(tpl.TitleFontSize, defaultTitleFontSize),
		BodyFontSize:   numberOr(tpl.BodyFontSize, defaultBodyFontSize),
		FooterFontSize: numberOr(tpl.FooterFontSize, defaultFooterFontSize),

		Title:      fallback(tpl.Title, defaultTitle),
		BodyText:   tpl.BodyText,
		FooterText: tpl.FooterText,

		SerialEnabled: boolOr(tpl.ShowSerial, true),
		SerialPrefix:  fallback(tpl.SerialPrefix, defaultSerialPrefix),
		SerialPadding: int(numberOr(tpl.SerialPadding, defaultSerialPadding)),
	}

	if strings.EqualFold(strings.TrimSpace(tpl.Orientation), OrientationPortrait) {
		cfg.Orientation = OrientationPortrait
	}
	cfg.PageSize = "A4 " + cfg.Orientation

	cfg.TitleFontFamily = fallback(tpl.TitleFontFamily, cfg.FontFamily)
	if cfg.SerialPadding <= 0 {
		cfg.SerialPadding = defaultSerialPadding
	}

	cfg.Signatures[0] = signature(tpl.Signature1Name, tpl.Signature1Title, tpl.Signature1ImageURL)
	cfg.Signatures[1] = signature(tpl.Signature2Name, tpl.Signature2Title, tpl.Signature2ImageURL)

	cfg.HasLogo = cfg.LogoURL != ""
	cfg.HasBackgroundImage = cfg.BackgroundImageURL != ""
	cfg.HasWatermarkImage = cfg.WatermarkImageURL != ""
	// A watermark image suppresses watermark text.
	cfg.HasWatermarkText = !cfg.HasWatermarkImage && cfg.WatermarkText != ""
	cfg.HasSignatureRow = cfg.Signatures[0].Present || cfg.Signatures[1].Present
	cfg.HasFooter = cfg.FooterText != ""

	return cfg
}

func signature(name, title, imageURL string) SignatureConfig {
	return SignatureConfig{
		Name:     name,
		Title:    title,
		ImageURL: imageURL,
		Present:  name != "" || title != "" || imageURL != "",
	}
}

func fallback(value, def string) string {
	if value == "" {
		return def
	}
	return value
}

func boolOr(value *bool, def bool) bool {
	if value == nil {
		return def
	}
	return *value
}

func numberOr(value *float64, def float64) float64 {
	if value == nil || math.IsNaN(*value) || math.IsInf(*value, 0) {
		return def
	}
	return *value
}
