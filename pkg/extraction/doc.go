// Package extraction is the single boundary between the loosely-typed
// payloads produced by the external vision step and the canonical document
// tree. Every payload field is optional and untrusted; the Normalizer
// upgrades what it can, degrades the rest to defaults, and never fails on
// malformed data. The merge heuristics (property grouping, unit-header
// fragment folding, footnote relocation) live here as small named predicates
// so they can be tuned without touching the control flow.
package extraction
