package metrics

import (
	"strings"

	"go.opentelemetry.io/otel/attribute"
)

// Config identifies the emitting service on every instrument.
type Config struct {
	ServiceName string
	Environment string
}

// allowedAttributes is the low-cardinality allowlist for metric attributes.
// Anything outside this set is dropped before recording so a stray
// per-request value cannot explode series counts.
var allowedAttributes = map[string]struct{}{
	"endpoint":    {},
	"status_code": {},
	"result":      {},
	"operation":   {},
	"surface":     {},
}

// FilterAttributes drops attributes that are not on the allowlist and
// attributes with empty values.
func FilterAttributes(attrs ...attribute.KeyValue) []attribute.KeyValue {
	filtered := make([]attribute.KeyValue, 0, len(attrs))
	for _, attr := range attrs {
		if _, ok := allowedAttributes[string(attr.Key)]; !ok {
			continue
		}
		if strings.TrimSpace(attr.Value.Emit()) == "" {
			continue
		}
		filtered = append(filtered, attr)
	}
	return filtered
}
