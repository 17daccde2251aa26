package render

import (
	"strconv"
	"strings"
	"text/template"
)

// The document template mirrors the printable certificate layout: a fixed
// print page, a bordered card, decorative layers behind a flex content
// column. Every interpolated value is escaped during composition, so this is
// a text template by design; re-escaping here would double-encode entities.
const documentTemplate = `<!doctype html>
<html>
<head>
  <meta charset="utf-8"/>
  <title>{{.Title.Text}}</title>
  <style>
    @page { size: {{.Page.Size}}; margin: 0; }
    html, body { width: 100%; height: 100%; margin: 0; }
    body { font-family: {{.Page.FontFamily}}; }
    .page { width: 100%; height: 100%; display:flex; align-items:center; justify-content:center; background: {{.Page.BackgroundColor}}; }
    .card {
      position: relative;
      width: 92%;
      height: 86%;
      border: {{if .Border.Enabled}}{{num .Border.Width}}px {{.Border.Style}} {{.Border.Color}}{{else}}none{{end}};
      border-radius: {{num .Border.Radius}}px;
      padding: 36px;
      box-sizing: border-box;
      background: rgba(255,255,255,0.88);
      overflow: hidden;
    }
    .layer { position:absolute; inset:0; pointer-events:none; }
    .bgImg { background-size: cover; background-position: center; }
    .wm {
      display:flex;
      align-items:center;
      justify-content:center;
    }
    .wmText {
      font-size: 64px;
      font-weight: 700;
      letter-spacing: 3px;
      color: #111;
      text-transform: uppercase;
    }
    .wm img { max-width: 520px; max-height: 520px; object-fit: contain; }
    .content { position: relative; z-index: 2; height: 100%; display:flex; flex-direction:column; }
    .top { display:flex; align-items:center; justify-content:space-between; gap: 16px; }
    .logo { width: 90px; height: 90px; object-fit: contain; }
    .issue { text-align:right; font-size: 14px; color:#333; }
    .title { text-align:center; font-family: {{.Title.FontFamily}}; font-size: {{num .Title.FontSize}}px; font-weight: 800; margin: 8px 0 18px; }
    .body { font-size: {{num .Body.FontSize}}px; line-height: 1.6; white-space: pre-wrap; margin-top: 8px; }
    .meta { margin-top: 18px; font-size: 14px; color:#333; display:flex; justify-content:space-between; }
    .signRow { margin-top: auto; display:flex; justify-content:space-between; gap: 24px; padding-top: 26px; }
    .sig { width: 40%; text-align:center; }
    .sigImg { height: 48px; object-fit: contain; display:block; margin: 0 auto 6px; }
    .sigLine { border-top: 1px solid #333; margin-top: 8px; padding-top: 8px; font-size: 13px; }
    .sigName { font-weight: 700; }
    .sigTitle { font-size: 12px; color: #333; }
    .footer { margin-top: 10px; text-align:center; font-size: {{if .Footer}}{{num .Footer.FontSize}}{{else}}14{{end}}px; color:#333; white-space: pre-wrap; }
  </style>
</head>
<body>
  <div class="page">
    <div class="card">
{{- range .Layers}}
{{- if eq .Kind "background_image"}}
      <div class="layer bgImg" style="background-image: url('{{.URL}}'); opacity: {{num .Opacity}}; z-index: {{.ZIndex}};"></div>
{{- else if eq .Kind "watermark_image"}}
      <div class="layer wm" style="opacity: {{num .Opacity}}; transform: rotate({{num .Rotate}}deg); z-index: {{.ZIndex}};"><img src="{{.URL}}" alt="watermark"/></div>
{{- else if eq .Kind "watermark_text"}}
      <div class="layer wm wmText" style="opacity: {{num .Opacity}}; transform: rotate({{num .Rotate}}deg); z-index: {{.ZIndex}};">{{.Text}}</div>
{{- end}}
{{- end}}
      <div class="content">
        <div class="top">
          {{if .Header.HasLogo}}<img class="logo" src="{{.Header.LogoURL}}" alt="logo"/>{{else}}<div></div>{{end}}
          <div style="flex:1"></div>
          <div class="issue">
            {{if .Header.ShowSerial}}Serial: {{.Header.SerialLabel}}<br/>
            {{end}}Issued: {{.Header.IssueDate}}
          </div>
        </div>
        <div class="title">{{.Title.Text}}</div>
        <div class="body">{{.Body.Text}}</div>
        <div class="meta">
          <div>Student: <strong>{{.Meta.StudentName}}</strong></div>
          <div>{{.Meta.ClassLabel}} {{.Meta.SectionLabel}}</div>
        </div>
{{- if .Signatures}}
        <div class="signRow">
{{- range .Signatures.Slots}}
          <div class="sig">
            {{if .ImageURL}}<img class="sigImg" src="{{.ImageURL}}" alt="signature"/>
            {{end}}<div class="sigLine">
              {{if .Name}}<div class="sigName">{{.Name}}</div>
              {{end}}{{if .Title}}<div class="sigTitle">{{.Title}}</div>
              {{end}}</div>
          </div>
{{- end}}
        </div>
{{- end}}
{{- if .Footer}}
        <div class="footer">{{.Footer.Text}}</div>
{{- end}}
      </div>
    </div>
  </div>
</body>
</html>
`

var documentTpl = template.Must(
	template.New("certificate").Funcs(template.FuncMap{"num": formatNumber}).Parse(documentTemplate),
)

// HTML serializes the document into self-contained markup. Output is
// byte-identical across calls for the same document.
func (d *Document) HTML() string {
	var buf strings.Builder
	// The template only dereferences fields; execution cannot fail on a
	// composed document.
	if err := documentTpl.Execute(&buf, d); err != nil {
		return ""
	}
	return buf.String()
}

// formatNumber renders layout numerics with the shortest exact decimal form.
func formatNumber(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
