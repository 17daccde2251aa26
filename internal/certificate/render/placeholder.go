package render

import "strings"

// fallbackDisplayName labels a certificate with no linked student and no
// stored person name.
const fallbackDisplayName = "Student"

// Placeholders is the named-value set substituted into body text.
type Placeholders map[string]string

// buildPlaceholders resolves the placeholder set from a student record (which
// may be nil), the issued certificate, and the formatted serial. The issue
// date is carried through as stored, with no reformatting.
func buildPlaceholders(student *StudentView, cert CertificateView, serial string) Placeholders {
	p := Placeholders{
		"name":    "",
		"class":   "",
		"section": "",
		"date":    cert.IssueDate,
		"serial":  serial,
	}
	if student != nil {
		p["name"] = student.Name
		p["class"] = student.Class
		p["section"] = student.Section
	}
	if p["name"] == "" {
		p["name"] = cert.PersonName
	}
	if p["name"] == "" {
		p["name"] = fallbackDisplayName
	}
	return p
}

// substitute replaces every {key} token in body with the corresponding
// placeholder value. The scan is a single pass over the body: a substituted
// value that happens to contain another token is never re-substituted.
// Unknown tokens are kept verbatim. Values are inserted raw; escaping happens
// once, on the fully substituted string.
func substitute(body string, placeholders Placeholders) string {
	if body == "" || !strings.ContainsRune(body, '{') {
		return body
	}

	var out strings.Builder
	out.Grow(len(body))
	for {
		open := strings.IndexByte(body, '{')
		if open < 0 {
			out.WriteString(body)
			return out.String()
		}
		close := strings.IndexByte(body[open:], '}')
		if close < 0 {
			out.WriteString(body)
			return out.String()
		}
		close += open

		key := body[open+1 : close]
		if value, ok := placeholders[key]; ok {
			out.WriteString(body[:open])
			out.WriteString(value)
			body = body[close+1:]
		} else {
			// Not a known token; emit the brace and keep scanning right after
			// it so overlapping candidates are still found.
			out.WriteString(body[:open+1])
			body = body[open+1:]
		}
	}
}
