// Package units normalizes free-text measurement units into the D-SI
// symbolic notation with correct numeric scaling. Conversion is total: an
// unrecognized unit yields an empty result instead of an error so callers can
// keep the original display value.
package units

import (
	"regexp"
	"strconv"
	"strings"
	"sync"
)

// Marker prefixes every D-SI symbolic unit. A unit string that already
// starts with the marker is treated as normalized and passes through
// unchanged, which makes conversion idempotent.
const Marker = `\`

// Result pairs the machine-readable value and unit produced by a conversion.
// Both fields are empty when the unit could not be resolved.
type Result struct {
	DSIValue string `json:"dsiValue"`
	DSIUnit  string `json:"dsiUnit"`
}

// Converter resolves unit spellings against the lookup table.
type Converter struct {
	exact  map[string]tableEntry
	folded map[string]tableEntry
}

// NewConverter returns a converter backed by the embedded unit table.
func NewConverter() *Converter {
	c, err := NewConverterFromTable(embeddedTable)
	if err != nil {
		// The embedded table is validated by tests; reaching this means a
		// corrupted build.
		panic(err)
	}
	return c
}

// NewConverterFromTable returns a converter backed by a caller-supplied YAML
// table using the same layout as the embedded one.
func NewConverterFromTable(raw []byte) (*Converter, error) {
	exact, folded, err := parseTable(raw)
	if err != nil {
		return nil, err
	}
	return &Converter{exact: exact, folded: folded}, nil
}

var (
	defaultOnce      sync.Once
	defaultConverter *Converter
)

// Default returns the shared converter over the embedded table.
func Default() *Converter {
	defaultOnce.Do(func() {
		defaultConverter = NewConverter()
	})
	return defaultConverter
}

// Convert normalizes a (value, unit) pair. An absent unit yields the zero
// Result regardless of value; an unrecognized unit does too. When the table
// factor is 1 the original trimmed value string is preserved so textual
// decorations such as "< 0.05" survive; otherwise the parsed number is scaled
// and rounded to six significant digits. A non-numeric value cannot be scaled
// and yields an empty DSIValue while the resolved DSIUnit is still returned.
func (c *Converter) Convert(value, unit string) Result {
	trimmedUnit := strings.TrimSpace(unit)
	if trimmedUnit == "" {
		return Result{}
	}
	trimmedValue := strings.TrimSpace(value)

	if strings.HasPrefix(trimmedUnit, Marker) {
		// Already normalized; pass through at factor 1.
		return Result{DSIValue: trimmedValue, DSIUnit: trimmedUnit}
	}

	entry, ok := c.lookup(trimmedUnit)
	if !ok {
		return Result{}
	}

	out := Result{DSIUnit: entry.dsi}
	parsed, numeric := parseNumeric(trimmedValue)
	switch {
	case entry.factor == 1 && trimmedValue != "":
		out.DSIValue = trimmedValue
	case entry.factor == 1:
		// empty value, nothing to carry
	case numeric:
		out.DSIValue = strconv.FormatFloat(parsed*entry.factor, 'g', 6, 64)
	default:
		// non-numeric text cannot be scaled
	}
	return out
}

// lookup resolves a unit spelling: strip a leading case-insensitive "in "
// header prefix, drop internal whitespace, then try the exact key, the key
// with unicode superscript glyphs replaced, and finally a case-insensitive
// match.
func (c *Converter) lookup(unit string) (tableEntry, bool) {
	key := unit
	if len(key) > 3 && strings.EqualFold(key[:3], "in ") {
		key = key[3:]
	}
	key = stripSpace(key)
	if key == "" {
		return tableEntry{}, false
	}
	if entry, ok := c.exact[key]; ok {
		return entry, true
	}
	ascii := replaceSuperscripts(key)
	if ascii != key {
		if entry, ok := c.exact[ascii]; ok {
			return entry, true
		}
	}
	if entry, ok := c.folded[strings.ToLower(key)]; ok {
		return entry, true
	}
	entry, ok := c.folded[strings.ToLower(ascii)]
	return entry, ok
}

var superscriptReplacer = strings.NewReplacer(
	"⁻", "-", // ⁻
	"¹", "1", // ¹
	"²", "2", // ²
	"³", "3", // ³
)

func replaceSuperscripts(s string) string {
	return superscriptReplacer.Replace(s)
}

var nonNumericChars = regexp.MustCompile(`[^0-9.eE-]`)

// parseNumeric strips every character outside [0-9.eE-] and parses the rest
// as a float. The boolean reports whether a number was actually present.
func parseNumeric(value string) (float64, bool) {
	stripped := nonNumericChars.ReplaceAllString(value, "")
	if stripped == "" {
		return 0, false
	}
	parsed, err := strconv.ParseFloat(stripped, 64)
	if err != nil {
		return 0, false
	}
	return parsed, true
}

// combinedPattern matches "<number> <unit>" with an optional exponent on the
// number. Strings whose first token is not numeric ("approx 5 g") do not
// match.
var combinedPattern = regexp.MustCompile(`^(-?[0-9]+(?:\.[0-9]+)?(?:[eE][+-]?[0-9]+)?)\s+(\S.*)$`)

// SplitValueUnit splits a combined string such as "4.9 g" into its numeric
// and unit parts. It reports false when the string does not follow the
// number-then-unit shape.
func SplitValueUnit(combined string) (value, unit string, ok bool) {
	match := combinedPattern.FindStringSubmatch(strings.TrimSpace(combined))
	if match == nil {
		return "", "", false
	}
	return match[1], strings.TrimSpace(match[2]), true
}

// ConvertCombined parses a combined "<number> <unit>" string and converts the
// two parts. It reports false when the string does not split.
func (c *Converter) ConvertCombined(combined string) (Result, bool) {
	value, unit, ok := SplitValueUnit(combined)
	if !ok {
		return Result{}, false
	}
	return c.Convert(value, unit), true
}
