package render

import (
	"strconv"
	"strings"
)

const (
	defaultSerialPrefix  = "CERT-"
	defaultSerialPadding = 6
)

// FormatSerial derives the human-readable serial identifier for a certificate.
// Returns the empty string when serial generation is disabled. Padding never
// truncates: an id wider than the padding is kept in full.
func FormatSerial(certificateID int64, prefix string, padding int, enabled bool) string {
	if !enabled {
		return ""
	}
	if prefix == "" {
		prefix = defaultSerialPrefix
	}
	if padding <= 0 {
		padding = defaultSerialPadding
	}
	id := strconv.FormatInt(certificateID, 10)
	if pad := padding - len(id); pad > 0 {
		id = strings.Repeat("0", pad) + id
	}
	return prefix + id
}
