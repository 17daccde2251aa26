package render

import (
	"math"
	"testing"
)

func f64(v float64) *float64 { return &v }
func boolp(v bool) *bool     { return &v }

func TestNormalizeDefaults(t *testing.T) {
	cfg := Normalize(&TemplateView{})

	if cfg.Orientation != OrientationLandscape {
		t.Fatalf("expected landscape, got %q", cfg.Orientation)
	}
	if cfg.PageSize != "A4 landscape" {
		t.Fatalf("expected A4 landscape, got %q", cfg.PageSize)
	}
	if cfg.BackgroundColor != "#ffffff" {
		t.Fatalf("expected #ffffff, got %q", cfg.BackgroundColor)
	}
	if !cfg.ShowBorder || cfg.BorderWidth != 2 || cfg.BorderStyle != "solid" || cfg.BorderColor != "#111111" || cfg.BorderRadius != 14 {
		t.Fatalf("unexpected border defaults: %+v", cfg)
	}
	if cfg.BackgroundOpacity != 0.2 || cfg.WatermarkOpacity != 0.08 || cfg.WatermarkRotate != -25 {
		t.Fatalf("unexpected layer defaults: %+v", cfg)
	}
	if cfg.FontFamily != "Georgia, serif" || cfg.TitleFontFamily != "Georgia, serif" {
		t.Fatalf("unexpected font defaults: %+v", cfg)
	}
	if cfg.TitleFontSize != 34 || cfg.BodyFontSize != 18 || cfg.FooterFontSize != 14 {
		t.Fatalf("unexpected font size defaults: %+v", cfg)
	}
	if !cfg.SerialEnabled || cfg.SerialPrefix != "CERT-" || cfg.SerialPadding != 6 {
		t.Fatalf("unexpected serial defaults: %+v", cfg)
	}
	if cfg.Title != "Certificate" {
		t.Fatalf("expected default title, got %q", cfg.Title)
	}
}

func TestNormalizeNonFiniteNumbersFallBack(t *testing.T) {
	cfg := Normalize(&TemplateView{
		BorderWidth:      f64(math.NaN()),
		WatermarkOpacity: f64(math.Inf(1)),
		TitleFontSize:    f64(math.Inf(-1)),
	})
	if cfg.BorderWidth != 2 {
		t.Fatalf("expected border width 2, got %v", cfg.BorderWidth)
	}
	if cfg.WatermarkOpacity != 0.08 {
		t.Fatalf("expected watermark opacity 0.08, got %v", cfg.WatermarkOpacity)
	}
	if cfg.TitleFontSize != 34 {
		t.Fatalf("expected title font size 34, got %v", cfg.TitleFontSize)
	}
}

func TestNormalizeKeepsFiniteValues(t *testing.T) {
	cfg := Normalize(&TemplateView{
		WatermarkOpacity: f64(0.5),
		BorderWidth:      f64(0),
		ShowBorder:       boolp(false),
		ShowSerial:       boolp(false),
	})
	if cfg.WatermarkOpacity != 0.5 {
		t.Fatalf("expected 0.5 unchanged, got %v", cfg.WatermarkOpacity)
	}
	if cfg.BorderWidth != 0 {
		t.Fatalf("expected explicit 0 kept, got %v", cfg.BorderWidth)
	}
	if cfg.ShowBorder || cfg.SerialEnabled {
		t.Fatalf("expected explicit false toggles kept: %+v", cfg)
	}
}

func TestNormalizeOrientation(t *testing.T) {
	if cfg := Normalize(&TemplateView{Orientation: "Portrait"}); cfg.Orientation != OrientationPortrait || cfg.PageSize != "A4 portrait" {
		t.Fatalf("expected portrait, got %+v", cfg)
	}
	if cfg := Normalize(&TemplateView{Orientation: "sideways"}); cfg.Orientation != OrientationLandscape {
		t.Fatalf("expected unrecognized orientation to default to landscape, got %q", cfg.Orientation)
	}
}

func TestNormalizeWatermarkPrecedenceFlags(t *testing.T) {
	cfg := Normalize(&TemplateView{WatermarkImageURL: "https://x/wm.png", WatermarkText: "DRAFT"})
	if !cfg.HasWatermarkImage || cfg.HasWatermarkText {
		t.Fatalf("watermark image must suppress watermark text: %+v", cfg)
	}

	cfg = Normalize(&TemplateView{WatermarkText: "DRAFT"})
	if cfg.HasWatermarkImage || !cfg.HasWatermarkText {
		t.Fatalf("expected text watermark only: %+v", cfg)
	}
}

func TestNormalizeSignatureFlags(t *testing.T) {
	cfg := Normalize(&TemplateView{})
	if cfg.HasSignatureRow {
		t.Fatal("expected no signature row for empty template")
	}

	cfg = Normalize(&TemplateView{Signature1Name: "Head of School"})
	if !cfg.HasSignatureRow || !cfg.Signatures[0].Present || cfg.Signatures[1].Present {
		t.Fatalf("expected only slot one present: %+v", cfg.Signatures)
	}

	cfg = Normalize(&TemplateView{Signature2ImageURL: "https://x/sig.png"})
	if !cfg.HasSignatureRow || cfg.Signatures[0].Present || !cfg.Signatures[1].Present {
		t.Fatalf("expected only slot two present: %+v", cfg.Signatures)
	}
}

func TestNormalizeDoesNotMutateInput(t *testing.T) {
	tpl := &TemplateView{BorderWidth: f64(math.NaN()), Orientation: "Portrait"}
	_ = Normalize(tpl)
	if tpl.BorderWidth == nil || !math.IsNaN(*tpl.BorderWidth) {
		t.Fatal("normalize must not rewrite the raw template")
	}
	if tpl.Orientation != "Portrait" {
		t.Fatal("normalize must not rewrite the raw template orientation")
	}
}
