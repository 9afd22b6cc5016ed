package render

import (
	"context"

	"github.com/goliatone/go-drmd/pkg/codec"
	"github.com/goliatone/go-drmd/pkg/document"
)

// XMLRenderer emits the namespaced wire XML via the codec encoder.
type XMLRenderer struct {
	encoder *codec.Encoder
}

// NewXMLRenderer wraps an encoder; a nil encoder gets the default one.
func NewXMLRenderer(encoder *codec.Encoder) *XMLRenderer {
	if encoder == nil {
		encoder = codec.NewEncoder()
	}
	return &XMLRenderer{encoder: encoder}
}

// Name implements Renderer.
func (r *XMLRenderer) Name() string { return "xml" }

// ContentType implements Renderer.
func (r *XMLRenderer) ContentType() string { return "application/xml" }

// Render implements Renderer.
func (r *XMLRenderer) Render(ctx context.Context, doc document.Document, _ Options) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.encoder.Encode(doc)
}
