package codec

import "strings"

// escapeText replaces the five XML metacharacters before text is embedded in
// element content or attribute values.
var escapeText = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	"'", "&apos;",
	`"`, "&quot;",
).Replace

// xmlWriter accumulates indented, namespaced XML. Element names are written
// with their prefix as given; escaping is applied to text, never to names.
type xmlWriter struct {
	b     strings.Builder
	depth int
}

func (w *xmlWriter) raw(s string) {
	w.b.WriteString(s)
}

func (w *xmlWriter) indent() {
	for i := 0; i < w.depth; i++ {
		w.b.WriteString("  ")
	}
}

// open writes a start tag with optional attribute pairs.
func (w *xmlWriter) open(name string, attrs ...string) {
	w.indent()
	w.b.WriteString("<")
	w.b.WriteString(name)
	for i := 0; i+1 < len(attrs); i += 2 {
		w.b.WriteString(" ")
		w.b.WriteString(attrs[i])
		w.b.WriteString(`="`)
		w.b.WriteString(escapeText(attrs[i+1]))
		w.b.WriteString(`"`)
	}
	w.b.WriteString(">\n")
	w.depth++
}

func (w *xmlWriter) close(name string) {
	w.depth--
	w.indent()
	w.b.WriteString("</")
	w.b.WriteString(name)
	w.b.WriteString(">\n")
}

// leaf writes a single-line element with escaped text content.
func (w *xmlWriter) leaf(name, text string) {
	w.indent()
	w.b.WriteString("<")
	w.b.WriteString(name)
	w.b.WriteString(">")
	w.b.WriteString(escapeText(text))
	w.b.WriteString("</")
	w.b.WriteString(name)
	w.b.WriteString(">\n")
}

// leafIf writes a leaf only when its text is non-empty.
func (w *xmlWriter) leafIf(name, text string) {
	if text != "" {
		w.leaf(name, text)
	}
}

func (w *xmlWriter) leafBool(name string, value bool) {
	if value {
		w.leaf(name, "true")
	} else {
		w.leaf(name, "false")
	}
}

func (w *xmlWriter) String() string {
	return w.b.String()
}
