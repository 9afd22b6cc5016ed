// Package validate runs the export-gating checks over a document tree. The
// pass is a report, not a short-circuit: every rule runs in a fixed order and
// findings accumulate, so the caller sees the complete picture at once.
package validate

import (
	"fmt"

	"github.com/goliatone/go-drmd/pkg/document"
)

// Issue is one finding, attributed to the document section it concerns.
type Issue struct {
	Section string `json:"section"`
	Message string `json:"message"`
}

// Report collects errors and warnings in evaluation order. Warnings never
// block export.
type Report struct {
	Errors   []Issue `json:"errors"`
	Warnings []Issue `json:"warnings"`
}

// Exportable reports whether the document may be exported: true if and only
// if no errors were found.
func (r Report) Exportable() bool {
	return len(r.Errors) == 0
}

func (r *Report) errorf(section, format string, args ...any) {
	r.Errors = append(r.Errors, Issue{Section: section, Message: fmt.Sprintf(format, args...)})
}

func (r *Report) warnf(section, format string, args ...any) {
	r.Warnings = append(r.Warnings, Issue{Section: section, Message: fmt.Sprintf(format, args...)})
}

// Section names used in findings.
const (
	SectionAdministrativeData = "Administrative Data"
	SectionProducers          = "Producers"
	SectionResponsiblePersons = "Responsible Persons"
	SectionMaterials          = "Materials"
	SectionStatements         = "Statements"
)

// Check validates a document and returns the full report.
func Check(doc document.Document) Report {
	var report Report
	admin := doc.AdministrativeData

	if admin.Title == "" {
		report.errorf(SectionAdministrativeData, "a document title is required")
	}
	if admin.UniqueIdentifier == "" {
		report.errorf(SectionAdministrativeData, "a unique identifier is required")
	}

	switch len(admin.Producers) {
	case 0:
		report.errorf(SectionProducers, "exactly one producer is required, none present")
	case 1:
		// schema allows exactly one
	default:
		report.errorf(SectionProducers, "the schema allows only one producer, %d present", len(admin.Producers))
	}
	for i, p := range admin.Producers {
		if p.Name == "" {
			report.errorf(SectionProducers, "producer %d has no name", i+1)
		}
	}

	if len(admin.ResponsiblePersons) == 0 {
		report.warnf(SectionResponsiblePersons, "at least one responsible person is recommended")
	}

	if len(doc.Materials) == 0 {
		report.errorf(SectionMaterials, "at least one material is required")
	}
	for i, m := range doc.Materials {
		if m.Name == "" {
			report.errorf(SectionMaterials, "material %d has no name", i+1)
		}
		if m.MinimumSampleSize == "" {
			report.errorf(SectionMaterials, "material %d has no minimum sample size", i+1)
		}
	}

	if doc.Statements.IntendedUse == "" {
		report.errorf(SectionStatements, "the intended use statement is required")
	}
	if doc.Statements.StorageInformation == "" {
		report.errorf(SectionStatements, "the storage information statement is required")
	}
	if doc.Statements.HandlingInstructions == "" {
		report.errorf(SectionStatements, "the handling instructions statement is required")
	}

	return report
}
