package domain

import (
	"strconv"

	"github.com/shafaqzafar/demoacademia/internal/certificate/render"
)

// RenderView projects the stored template into the loosely-typed view the
// render engine consumes. Typed columns win; extras fill in fields only
// when the column is unset, so templates imported from older exports still
// render. Non-numeric extras coerce to absent rather than erroring.
func (t *CertificateTemplate) RenderView() *render.TemplateView {
	if t == nil {
		return nil
	}

	view := &render.TemplateView{
		ID:   int64(t.ID),
		Name: t.Name,
		Type: t.Type,

		Orientation: t.Orientation,

		BackgroundColor:    t.BackgroundColor,
		LogoURL:            t.LogoURL,
		ShowBorder:         t.ShowBorder,
		BorderColor:        t.BorderColor,
		BorderWidth:        t.BorderWidth,
		BorderStyle:        t.BorderStyle,
		BorderRadius:       t.BorderRadius,
		BackgroundImageURL: t.BackgroundImageURL,
		BackgroundOpacity:  t.BackgroundOpacity,
		WatermarkText:      t.WatermarkText,
		WatermarkImageURL:  t.WatermarkImageURL,
		WatermarkOpacity:   t.WatermarkOpacity,
		WatermarkRotate:    t.WatermarkRotate,

		FontFamily:      t.FontFamily,
		TitleFontFamily: t.TitleFontFamily,
		TitleFontSize:   t.TitleFontSize,
		BodyFontSize:    t.BodyFontSize,
		FooterFontSize:  t.FooterFontSize,

		Title:      t.Title,
		BodyText:   t.BodyText,
		FooterText: t.FooterText,

		Signature1Name:     t.Signature1Name,
		Signature1Title:    t.Signature1Title,
		Signature1ImageURL: t.Signature1ImageURL,
		Signature2Name:     t.Signature2Name,
		Signature2Title:    t.Signature2Title,
		Signature2ImageURL: t.Signature2ImageURL,

		ShowSerial:    t.ShowSerial,
		SerialPrefix:  t.SerialPrefix,
		SerialPadding: t.SerialPadding,
	}

	if len(t.Extras) == 0 {
		return view
	}

	if view.Orientation == "" {
		view.Orientation = stringFromAny(t.Extras["orientation"])
	}
	if view.BackgroundColor == "" {
		view.BackgroundColor = stringFromAny(t.Extras["background_color"])
	}
	if view.ShowBorder == nil {
		view.ShowBorder = boolFromAny(t.Extras["show_border"])
	}
	if view.BorderWidth == nil {
		view.BorderWidth = floatFromAny(t.Extras["border_width"])
	}
	if view.BorderRadius == nil {
		view.BorderRadius = floatFromAny(t.Extras["border_radius"])
	}
	if view.BackgroundOpacity == nil {
		view.BackgroundOpacity = floatFromAny(t.Extras["background_opacity"])
	}
	if view.WatermarkOpacity == nil {
		view.WatermarkOpacity = floatFromAny(t.Extras["watermark_opacity"])
	}
	if view.WatermarkRotate == nil {
		view.WatermarkRotate = floatFromAny(t.Extras["watermark_rotate"])
	}
	if view.TitleFontSize == nil {
		view.TitleFontSize = floatFromAny(t.Extras["title_font_size"])
	}
	if view.BodyFontSize == nil {
		view.BodyFontSize = floatFromAny(t.Extras["body_font_size"])
	}
	if view.FooterFontSize == nil {
		view.FooterFontSize = floatFromAny(t.Extras["footer_font_size"])
	}
	if view.ShowSerial == nil {
		view.ShowSerial = boolFromAny(t.Extras["show_serial"])
	}
	if view.SerialPadding == nil {
		view.SerialPadding = floatFromAny(t.Extras["serial_padding"])
	}

	return view
}

func stringFromAny(value any) string {
	s, _ := value.(string)
	return s
}

func floatFromAny(value any) *float64 {
	switch v := value.(type) {
	case float64:
		return &v
	case int:
		f := float64(v)
		return &f
	case int64:
		f := float64(v)
		return &f
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil
		}
		return &f
	default:
		return nil
	}
}

func boolFromAny(value any) *bool {
	switch v := value.(type) {
	case bool:
		return &v
	case string:
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil
		}
		return &b
	default:
		return nil
	}
}
