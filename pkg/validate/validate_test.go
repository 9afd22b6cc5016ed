package validate_test

import (
	"testing"

	"github.com/goliatone/go-drmd/pkg/document"
	"github.com/goliatone/go-drmd/pkg/testsupport"
	"github.com/goliatone/go-drmd/pkg/validate"
)

func TestCheck_CompleteDocument(t *testing.T) {
	report := validate.Check(testsupport.SampleDocument())
	if !report.Exportable() {
		t.Fatalf("expected exportable document, got errors %v", report.Errors)
	}
	if len(report.Warnings) != 0 {
		t.Fatalf("expected no warnings, got %v", report.Warnings)
	}
}

func TestCheck_MissingMaterials(t *testing.T) {
	doc := testsupport.SampleDocument()
	doc.Materials = nil

	report := validate.Check(doc)
	if report.Exportable() {
		t.Fatalf("document without materials must not be exportable")
	}
	found := false
	for _, issue := range report.Errors {
		if issue.Section == validate.SectionMaterials {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a materials finding, got %v", report.Errors)
	}
}

func TestCheck_ProducerCount(t *testing.T) {
	doc := testsupport.SampleDocument()
	doc.AdministrativeData.Producers = nil
	if report := validate.Check(doc); report.Exportable() {
		t.Fatalf("zero producers must be an error")
	}

	doc = testsupport.SampleDocument()
	doc.AdministrativeData.Producers = append(doc.AdministrativeData.Producers,
		doc.AdministrativeData.Producers[0])
	report := validate.Check(doc)
	if report.Exportable() {
		t.Fatalf("two producers must be an error")
	}
	if report.Errors[0].Section != validate.SectionProducers {
		t.Fatalf("expected a producers finding first, got %v", report.Errors[0])
	}
}

func TestCheck_MandatoryStatements(t *testing.T) {
	doc := testsupport.SampleDocument()
	doc.Statements.IntendedUse = ""
	doc.Statements.StorageInformation = ""
	doc.Statements.HandlingInstructions = ""

	report := validate.Check(doc)
	if got := len(report.Errors); got != 3 {
		t.Fatalf("expected 3 statement findings, got %d: %v", got, report.Errors)
	}
	for _, issue := range report.Errors {
		if issue.Section != validate.SectionStatements {
			t.Fatalf("unexpected section %q", issue.Section)
		}
	}
}

func TestCheck_PersonWarningDoesNotBlock(t *testing.T) {
	doc := testsupport.SampleDocument()
	doc.AdministrativeData.ResponsiblePersons = nil

	report := validate.Check(doc)
	if !report.Exportable() {
		t.Fatalf("missing persons should only warn, got errors %v", report.Errors)
	}
	if len(report.Warnings) != 1 || report.Warnings[0].Section != validate.SectionResponsiblePersons {
		t.Fatalf("expected a responsible persons warning, got %v", report.Warnings)
	}
}

func TestCheck_AccumulatesInOrder(t *testing.T) {
	report := validate.Check(document.Document{})
	if report.Exportable() {
		t.Fatalf("empty document must not be exportable")
	}
	want := []string{
		validate.SectionAdministrativeData,
		validate.SectionAdministrativeData,
		validate.SectionProducers,
		validate.SectionMaterials,
		validate.SectionStatements,
		validate.SectionStatements,
		validate.SectionStatements,
	}
	if len(report.Errors) != len(want) {
		t.Fatalf("expected %d findings, got %d: %v", len(want), len(report.Errors), report.Errors)
	}
	for i, section := range want {
		if report.Errors[i].Section != section {
			t.Fatalf("finding %d in section %q, want %q", i, report.Errors[i].Section, section)
		}
	}
}
