package render

import (
	"context"
	"fmt"
	"sync"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-drmd/pkg/document"
)

// summaryTemplate is the plain-text certificate overview. It surfaces the
// validation report when one is supplied with the render options.
const summaryTemplate = `{{ title }}
Identifier: {{ identifier }}
{% for producer in producers %}Producer: {{ producer.Name }}{% if producer.City %}, {{ producer.City }}{% endif %}
{% endfor %}
Materials:
{% for material in materials %}  - {{ material.Name }}{% if material.MinimumSampleSize %} (minimum sample size {{ material.MinimumSampleSize }}){% endif %}
{% endfor %}
Property groups:
{% for property in properties %}  - {{ property.Name }}: {{ property.Results|length }} table(s), {{ property.Rows }} row(s)
{% endfor %}{% if report %}
Validation:
{% if report.Errors %}{% for issue in report.Errors %}  error [{{ issue.Section }}] {{ issue.Message }}
{% endfor %}{% else %}  no errors
{% endif %}{% for issue in report.Warnings %}  warning [{{ issue.Section }}] {{ issue.Message }}
{% endfor %}Export permitted: {{ exportable }}
{% endif %}`

var (
	summaryOnce sync.Once
	summaryTpl  *pongo2.Template
	summaryErr  error
)

// SummaryRenderer renders a human-readable overview of a document, intended
// as an export preview next to the XML output.
type SummaryRenderer struct{}

// NewSummaryRenderer constructs the summary renderer.
func NewSummaryRenderer() *SummaryRenderer {
	return &SummaryRenderer{}
}

// Name implements Renderer.
func (r *SummaryRenderer) Name() string { return "summary" }

// ContentType implements Renderer.
func (r *SummaryRenderer) ContentType() string { return "text/plain; charset=utf-8" }

type summaryProperty struct {
	Name    string
	Results []document.MeasurementResult
	Rows    int
}

// Render implements Renderer.
func (r *SummaryRenderer) Render(ctx context.Context, doc document.Document, options Options) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	summaryOnce.Do(func() {
		summaryTpl, summaryErr = pongo2.FromString(summaryTemplate)
	})
	if summaryErr != nil {
		return nil, fmt.Errorf("render: parse summary template: %w", summaryErr)
	}

	properties := make([]summaryProperty, 0, len(doc.MaterialProperties))
	for _, p := range doc.MaterialProperties {
		rows := 0
		for _, result := range p.Results {
			rows += len(result.Quantities)
		}
		properties = append(properties, summaryProperty{Name: p.Name, Results: p.Results, Rows: rows})
	}

	viewContext := pongo2.Context{
		"title":      string(doc.AdministrativeData.Title),
		"identifier": doc.AdministrativeData.UniqueIdentifier,
		"producers":  doc.AdministrativeData.Producers,
		"materials":  doc.Materials,
		"properties": properties,
	}
	if options.Report != nil {
		viewContext["report"] = options.Report
		viewContext["exportable"] = options.Report.Exportable()
	}

	out, err := summaryTpl.Execute(viewContext)
	if err != nil {
		return nil, fmt.Errorf("render: execute summary template: %w", err)
	}
	return []byte(out), nil
}

var (
	_ Renderer = (*SummaryRenderer)(nil)
	_ Renderer = (*XMLRenderer)(nil)
)
