package render

import "errors"

// ErrTemplateNotFound is returned when a render is requested with no
// resolvable template. No partial document is produced.
var ErrTemplateNotFound = errors.New("template_not_found")

// Engine is the rendering façade: normalize, resolve, compose. It is
// stateless; concurrent renders of independent inputs are safe, and identical
// inputs always produce identical documents.
type Engine struct{}

func NewEngine() *Engine { return &Engine{} }

// Render produces the composed document for one certificate.
func (e *Engine) Render(input RenderInput) (*Document, error) {
	if input.Template == nil {
		return nil, ErrTemplateNotFound
	}
	cfg := Normalize(input.Template)
	return Compose(cfg, input.Student, input.Certificate), nil
}
