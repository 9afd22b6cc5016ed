package drmd_test

import (
	"strings"
	"testing"

	drmd "github.com/goliatone/go-drmd"
	"github.com/goliatone/go-drmd/pkg/testsupport"
)

func TestFromExtraction(t *testing.T) {
	doc, err := drmd.FromExtraction([]byte(testsupport.SamplePayloadJSON))
	if err != nil {
		t.Fatalf("FromExtraction: %v", err)
	}
	if len(doc.MaterialProperties) != 1 {
		t.Fatalf("expected merged properties, got %d", len(doc.MaterialProperties))
	}

	if _, err := drmd.FromExtraction([]byte("not json")); err == nil {
		t.Fatalf("expected error for malformed JSON")
	}
}

func TestEncodeDecodeXML(t *testing.T) {
	doc := testsupport.SampleDocument()

	raw, err := drmd.EncodeXML(doc)
	if err != nil {
		t.Fatalf("EncodeXML: %v", err)
	}
	got, err := drmd.DecodeXML(raw)
	if err != nil {
		t.Fatalf("DecodeXML: %v", err)
	}
	if got.AdministrativeData.UniqueIdentifier != doc.AdministrativeData.UniqueIdentifier {
		t.Fatalf("identifier did not survive the round trip")
	}
}

func TestValidate(t *testing.T) {
	if report := drmd.Validate(drmd.New()); report.Exportable() {
		t.Fatalf("a blank document must not validate clean")
	}
	if report := drmd.Validate(testsupport.SampleDocument()); !report.Exportable() {
		t.Fatalf("sample document should validate clean, got %v", report.Errors)
	}
}

func TestConvertUnit(t *testing.T) {
	result := drmd.ConvertUnit("4.9", "mg/kg")
	if result.DSIUnit != `\milli\gram\per\kilogram` || result.DSIValue != "4.9" {
		t.Fatalf("ConvertUnit = %+v", result)
	}
	if !strings.HasPrefix(result.DSIUnit, `\`) {
		t.Fatalf("D-SI units carry the escape marker prefix")
	}
}
