package render

// TemplateView is the loosely-typed template record handed to the engine.
// Optional numerics and toggles are pointers so an absent field is
// distinguishable from a zero value; Normalize resolves every gap.
type TemplateView struct {
	ID   int64
	Name string
	Type string

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
}

// StudentView is the minimal student projection used for placeholders.
type StudentView struct {
	ID      int64
	Name    string
	Class   string
	Section string
}

// CertificateView is the issued-certificate record used for placeholders
// and serial derivation.
type CertificateView struct {
	ID         int64
	IssueDate  string
	PersonName string
}

// RenderInput is the deterministic input for one render call. Student is
// optional; the placeholder resolver falls back to the certificate's stored
// person name.
type RenderInput struct {
	Template    *TemplateView
	Student     *StudentView
	Certificate CertificateView
}
