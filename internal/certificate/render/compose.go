package render

// Layer kinds, back to front.
const (
	LayerBackgroundImage = "background_image"
	LayerWatermarkImage  = "watermark_image"
	LayerWatermarkText   = "watermark_text"
)

// Layer is one decorative element rendered behind the content.
type Layer struct {
	Kind    string
	URL     string
	Text    string
	Opacity float64
	Rotate  float64
	ZIndex  int
}

// Page describes the print-page geometry and base styling.
type Page struct {
	Size            string
	BackgroundColor string
	FontFamily      string
}

// Header is the top row: logo slot, serial label, issue date. Space for the
// logo is always reserved even when none is configured.
type Header struct {
	LogoURL     string
	HasLogo     bool
	SerialLabel string
	ShowSerial  bool
	IssueDate   string
}

// TextBlock is a single styled text region. Text is already escaped.
type TextBlock struct {
	Text       string
	FontFamily string
	FontSize   float64
}

// MetaLine names the student and, when known, class and section.
type MetaLine struct {
	StudentName  string
	ClassLabel   string
	SectionLabel string
}

// SignatureSlot renders independently: name-only or image-only slots are valid.
type SignatureSlot struct {
	Name     string
	Title    string
	ImageURL string
	Present  bool
}

// SignatureRow holds the two optional signature slots.
type SignatureRow struct {
	Slots [2]SignatureSlot
}

// Document is the composed, self-contained description of one certificate.
// All text it carries has been escaped exactly once; serializing it is pure
// formatting. It is a transient value: rendered once, displayed once.
type Document struct {
	Page       Page
	Border     BorderSpec
	Layers     []Layer
	Header     Header
	Title      TextBlock
	Body       TextBlock
	Meta       MetaLine
	Signatures *SignatureRow
	Footer     *TextBlock
	Serial     string
}

// BorderSpec is the resolved card border.
type BorderSpec struct {
	Enabled bool
	Color   string
	Width   float64
	Style   string
	Radius  float64
}

// Compose combines a resolved configuration with the student and certificate
// records into a Document. No I/O happens here; missing optional fields fall
// back to empty strings or hidden layers, never errors.
func Compose(cfg Config, student *StudentView, cert CertificateView) *Document {
	serial := FormatSerial(cert.ID, cfg.SerialPrefix, cfg.SerialPadding, cfg.SerialEnabled)
	placeholders := buildPlaceholders(student, cert, serial)
	body := substitute(cfg.BodyText, placeholders)

	doc := &Document{
		Page: Page{
			Size:            cfg.PageSize,
			BackgroundColor: Escape(cfg.BackgroundColor),
			FontFamily:      Escape(cfg.FontFamily),
		},
		Border: BorderSpec{
			Enabled: cfg.ShowBorder,
			Color:   Escape(cfg.BorderColor),
			Width:   cfg.BorderWidth,
			Style:   Escape(cfg.BorderStyle),
			Radius:  cfg.BorderRadius,
		},
		Header: Header{
			LogoURL:     Escape(cfg.LogoURL),
			HasLogo:     cfg.HasLogo,
			SerialLabel: Escape(serial),
			ShowSerial:  cfg.SerialEnabled && serial != "",
			IssueDate:   Escape(cert.IssueDate),
		},
		Title: TextBlock{
			Text:       Escape(cfg.Title),
			FontFamily: Escape(cfg.TitleFontFamily),
			FontSize:   cfg.TitleFontSize,
		},
		Body: TextBlock{
			Text:     Escape(body),
			FontSize: cfg.BodyFontSize,
		},
		Meta:   composeMeta(placeholders),
		Serial: serial,
	}

	// Background imagery sits beneath every other layer regardless of
	// watermark presence; the watermark image wins over watermark text.
	if cfg.HasBackgroundImage {
		doc.Layers = append(doc.Layers, Layer{
			Kind:    LayerBackgroundImage,
			URL:     Escape(cfg.BackgroundImageURL),
			Opacity: cfg.BackgroundOpacity,
			ZIndex:  0,
		})
	}
	if cfg.HasWatermarkImage {
		doc.Layers = append(doc.Layers, Layer{
			Kind:    LayerWatermarkImage,
			URL:     Escape(cfg.WatermarkImageURL),
			Opacity: cfg.WatermarkOpacity,
			Rotate:  cfg.WatermarkRotate,
			ZIndex:  1,
		})
	} else if cfg.HasWatermarkText {
		doc.Layers = append(doc.Layers, Layer{
			Kind:    LayerWatermarkText,
			Text:    Escape(cfg.WatermarkText),
			Opacity: cfg.WatermarkOpacity,
			Rotate:  cfg.WatermarkRotate,
			ZIndex:  1,
		})
	}

	if cfg.HasSignatureRow {
		row := &SignatureRow{}
		for i, sig := range cfg.Signatures {
			row.Slots[i] = SignatureSlot{
				Name:     Escape(sig.Name),
				Title:    Escape(sig.Title),
				ImageURL: Escape(sig.ImageURL),
				Present:  sig.Present,
			}
		}
		doc.Signatures = row
	}

	if cfg.HasFooter {
		doc.Footer = &TextBlock{
			Text:     Escape(cfg.FooterText),
			FontSize: cfg.FooterFontSize,
		}
	}

	return doc
}

func composeMeta(p Placeholders) MetaLine {
	meta := MetaLine{StudentName: Escape(p["name"])}
	if p["class"] != "" {
		meta.ClassLabel = Escape("Class: " + p["class"])
	}
	if p["section"] != "" {
		meta.SectionLabel = Escape("Section: " + p["section"])
	}
	return meta
}
