// Package orchestrator wires the extraction normalizer, validator, and
// renderer registry into a single entry point: raw extraction payload in,
// rendered document plus validation report out.
package orchestrator

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-drmd/pkg/codec"
	"github.com/goliatone/go-drmd/pkg/document"
	"github.com/goliatone/go-drmd/pkg/extraction"
	"github.com/goliatone/go-drmd/pkg/render"
	"github.com/goliatone/go-drmd/pkg/validate"
)

const defaultRendererName = "xml"

// ErrNotExportable is returned when an XML export is requested for a
// document whose validation report contains errors.
var ErrNotExportable = errors.New("orchestrator: document has validation errors")

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithNormalizer injects a custom extraction normalizer.
func WithNormalizer(normalizer *extraction.Normalizer) Option {
	return func(o *Orchestrator) {
		if normalizer != nil {
			o.normalizer = normalizer
		}
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		if registry != nil {
			o.registry = registry
		}
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		if name != "" {
			o.defaultRenderer = name
		}
	}
}

// WithEncoder injects the codec encoder backing the built-in XML renderer.
func WithEncoder(encoder *codec.Encoder) Option {
	return func(o *Orchestrator) {
		o.encoder = encoder
	}
}

// Orchestrator coordinates the normalize → validate → render pipeline.
type Orchestrator struct {
	normalizer      *extraction.Normalizer
	registry        *render.Registry
	encoder         *codec.Encoder
	defaultRenderer string
}

// New constructs an Orchestrator. Without options it uses the default
// normalizer and a registry holding the xml and summary renderers.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
	}
	for _, opt := range options {
		if opt != nil {
			opt(o)
		}
	}
	if o.normalizer == nil {
		o.normalizer = extraction.New()
	}
	if o.registry == nil {
		registry := render.NewRegistry()
		registry.MustRegister(render.NewXMLRenderer(o.encoder))
		registry.MustRegister(render.NewSummaryRenderer())
		o.registry = registry
	}
	return o
}

// Request describes one generation run.
type Request struct {
	// Payload is the raw extraction JSON. Empty means "no new extraction":
	// the base document is validated and rendered as-is.
	Payload []byte
	// Base is the document the payload merges into. Nil starts from a fresh
	// default document.
	Base *document.Document
	// Renderer selects the output renderer; empty uses the default.
	Renderer string
	// AllowInvalid renders XML even when the validation report has errors.
	// Preview renderers ignore the gate either way.
	AllowInvalid bool
}

// Result is the outcome of a generation run.
type Result struct {
	Output       []byte
	ContentType  string
	Document     document.Document
	Report       validate.Report
	SchemaIssues []extraction.SchemaIssue
}

// Generate runs the pipeline. Validation findings never abort the run by
// themselves; only a structurally invalid payload, an unknown renderer, or
// the export gate do.
func (o *Orchestrator) Generate(ctx context.Context, req Request) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	base := document.New()
	if req.Base != nil {
		base = req.Base.Clone()
	}

	doc := base
	var schemaIssues []extraction.SchemaIssue
	if len(req.Payload) > 0 {
		payload, err := extraction.ParsePayload(req.Payload)
		if err != nil {
			return Result{}, fmt.Errorf("orchestrator: %w", err)
		}
		schemaIssues, err = extraction.CheckPayload(req.Payload)
		if err != nil {
			return Result{}, fmt.Errorf("orchestrator: %w", err)
		}
		doc = o.normalizer.Apply(base, payload)
	}

	report := validate.Check(doc)

	name := req.Renderer
	if name == "" {
		name = o.defaultRenderer
	}
	renderer, err := o.registry.Get(name)
	if err != nil {
		return Result{}, fmt.Errorf("orchestrator: %w", err)
	}

	if name == "xml" && !req.AllowInvalid && !report.Exportable() {
		return Result{
			Document:     doc,
			Report:       report,
			SchemaIssues: schemaIssues,
		}, ErrNotExportable
	}

	output, err := renderer.Render(ctx, doc, render.Options{Report: &report})
	if err != nil {
		return Result{}, fmt.Errorf("orchestrator: render %q: %w", name, err)
	}

	return Result{
		Output:       output,
		ContentType:  renderer.ContentType(),
		Document:     doc,
		Report:       report,
		SchemaIssues: schemaIssues,
	}, nil
}
