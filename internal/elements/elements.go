// Package elements resolves measurement row names to CAS registry
// identifiers. The lookup is a pure enrichment step: a miss has no effect on
// the document being encoded.
package elements

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed elements.yaml
var embeddedTable []byte

// Scheme names the registry the code values belong to.
const Scheme = "CAS"

// Substance is one resolvable analyte.
type Substance struct {
	Name string
	CAS  string
}

// ReferenceLink derives the public registry link for a substance.
func (s Substance) ReferenceLink() string {
	return "https://commonchemistry.cas.org/results?q=" + s.CAS
}

type tableDocument struct {
	Substances []struct {
		Name    string   `yaml:"name"`
		Symbol  string   `yaml:"symbol"`
		CAS     string   `yaml:"cas"`
		Aliases []string `yaml:"aliases"`
	} `yaml:"substances"`
}

var (
	loadOnce  sync.Once
	loadErr   error
	byKeyword map[string]Substance
)

func load() error {
	loadOnce.Do(func() {
		var doc tableDocument
		if err := yaml.Unmarshal(embeddedTable, &doc); err != nil {
			loadErr = fmt.Errorf("elements: parse table: %w", err)
			return
		}
		byKeyword = make(map[string]Substance)
		for i, entry := range doc.Substances {
			if entry.Name == "" || entry.CAS == "" {
				loadErr = fmt.Errorf("elements: table entry %d is missing name or cas", i)
				return
			}
			substance := Substance{Name: entry.Name, CAS: entry.CAS}
			keys := append([]string{entry.Name, entry.Symbol}, entry.Aliases...)
			for _, key := range keys {
				key = strings.ToLower(strings.TrimSpace(key))
				if key == "" {
					continue
				}
				byKeyword[key] = substance
			}
		}
	})
	return loadErr
}

// Lookup resolves a row name to a substance by full name or symbol,
// case-insensitively. It reports false on a miss.
func Lookup(name string) (Substance, bool) {
	if err := load(); err != nil {
		return Substance{}, false
	}
	substance, ok := byKeyword[strings.ToLower(strings.TrimSpace(name))]
	return substance, ok
}
