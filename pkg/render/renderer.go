package render

import (
	"context"

	"github.com/goliatone/go-drmd/pkg/document"
	"github.com/goliatone/go-drmd/pkg/validate"
)

// Options carries per-request data renderers may use alongside the document.
type Options struct {
	// Report is the validation report for the document, when the caller has
	// one. Renderers that surface validation state read it; others ignore it.
	Report *validate.Report
}

// Renderer converts a document into a byte representation (XML, plain-text
// summary, etc.).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, doc document.Document, options Options) ([]byte, error)
}
