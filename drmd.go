// Package drmd digitizes reference material certificates into a typed
// document tree with a strict namespaced XML wire form. The heavy lifting
// lives in the sub-packages; this package re-exports the common types and
// offers quick-start helpers for the normalize → validate → encode flow.
package drmd

import (
	"github.com/goliatone/go-drmd/pkg/codec"
	"github.com/goliatone/go-drmd/pkg/document"
	"github.com/goliatone/go-drmd/pkg/extraction"
	"github.com/goliatone/go-drmd/pkg/orchestrator"
	"github.com/goliatone/go-drmd/pkg/units"
	"github.com/goliatone/go-drmd/pkg/validate"
)

// Document is the canonical document tree.
type Document = document.Document

// Payload is the loose extraction result consumed by the normalizer.
type Payload = extraction.Payload

// Report is a validation report; export is permitted only when it carries no
// errors.
type Report = validate.Report

// Request configures one orchestrator run.
type Request = orchestrator.Request

// Result is the outcome of one orchestrator run.
type Result = orchestrator.Result

// New creates a blank document with defaults and a generated identifier.
func New() Document {
	return document.New()
}

// NewOrchestrator exposes the pipeline constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// FromExtraction parses a raw extraction payload and normalizes it into a
// fresh document. Malformed JSON is the only failure; malformed fields
// degrade to defaults.
func FromExtraction(raw []byte) (Document, error) {
	payload, err := extraction.ParsePayload(raw)
	if err != nil {
		return Document{}, err
	}
	return extraction.New().Apply(document.New(), payload), nil
}

// EncodeXML serializes a document to the namespaced wire XML.
func EncodeXML(doc Document) ([]byte, error) {
	return codec.NewEncoder().Encode(doc)
}

// DecodeXML parses wire XML back into a document. Identifiers are
// regenerated; only unparsable markup fails.
func DecodeXML(raw []byte) (Document, error) {
	return codec.NewDecoder().Decode(raw)
}

// Validate runs the export-gating checks.
func Validate(doc Document) Report {
	return validate.Check(doc)
}

// ConvertUnit normalizes a (value, unit) pair into its D-SI form using the
// shared converter.
func ConvertUnit(value, unit string) units.Result {
	return units.Default().Convert(value, unit)
}
