// Package document defines the canonical in-memory tree for digital
// reference material documents. The tree is a value hierarchy owned by its
// root: entities are never shared between parents, every leaf created from an
// extracted PDF field carries opaque provenance coordinates, and every entity
// receives a generated identifier at creation time that stays stable across
// edits. Loose extraction payloads never appear here; pkg/extraction is the
// single boundary that upgrades partial data into this package's types.
package document
