package units

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed units.yaml
var embeddedTable []byte

type tableEntry struct {
	dsi    string
	factor float64
}

type tableDocument struct {
	Units []struct {
		Names  []string `yaml:"names"`
		DSI    string   `yaml:"dsi"`
		Factor float64  `yaml:"factor"`
	} `yaml:"units"`
}

// parseTable builds the exact-key and case-folded lookup maps from a YAML
// table document. Keys are stored whitespace-free, matching the lookup
// normalization applied to inputs.
func parseTable(raw []byte) (map[string]tableEntry, map[string]tableEntry, error) {
	var doc tableDocument
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, nil, fmt.Errorf("units: parse table: %w", err)
	}

	exact := make(map[string]tableEntry)
	folded := make(map[string]tableEntry)
	for i, unit := range doc.Units {
		if unit.DSI == "" {
			return nil, nil, fmt.Errorf("units: table entry %d has no dsi form", i)
		}
		entry := tableEntry{dsi: unit.DSI, factor: unit.Factor}
		if entry.factor == 0 {
			entry.factor = 1
		}
		for _, name := range unit.Names {
			key := stripSpace(name)
			if key == "" {
				continue
			}
			if _, dup := exact[key]; dup {
				return nil, nil, fmt.Errorf("units: duplicate table key %q", key)
			}
			exact[key] = entry
			lower := strings.ToLower(key)
			if _, dup := folded[lower]; !dup {
				folded[lower] = entry
			}
		}
	}
	return exact, folded, nil
}

func stripSpace(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r == ' ' || r == '\t' || r == ' ' {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
