package extraction_test

import (
	"strings"
	"testing"

	"github.com/goliatone/go-drmd/pkg/document"
	"github.com/goliatone/go-drmd/pkg/extraction"
	"github.com/goliatone/go-drmd/pkg/testsupport"
)

func TestApply_MergesFragmentedProperties(t *testing.T) {
	payload := testsupport.SamplePayload(t)
	doc := extraction.New().Apply(document.New(), payload)

	if len(doc.MaterialProperties) != 1 {
		t.Fatalf("expected duplicated property groups to collapse into 1, got %d", len(doc.MaterialProperties))
	}
	prop := doc.MaterialProperties[0]
	if prop.Name != "Certified Values" {
		t.Fatalf("unexpected property name %q", prop.Name)
	}
	if !prop.Certified {
		t.Fatalf("expected certified flag from the first-seen group to survive the merge")
	}
	if len(prop.Results) != 1 {
		t.Fatalf("expected the unit-header fragment to fold into one table, got %d results", len(prop.Results))
	}

	result := prop.Results[0]
	if len(result.Quantities) != 5 {
		t.Fatalf("expected 5 merged quantities, got %d", len(result.Quantities))
	}
	names := make([]string, 0, len(result.Quantities))
	for _, q := range result.Quantities {
		names = append(names, q.Name)
	}
	want := "Nitrogen,Ash,Lead,Cadmium,Mercury"
	if got := strings.Join(names, ","); got != want {
		t.Fatalf("merged quantity order = %s, want %s", got, want)
	}
}

func TestApply_RelocatesFootnote(t *testing.T) {
	payload := testsupport.SamplePayload(t)
	doc := extraction.New().Apply(document.New(), payload)

	prop := doc.MaterialProperties[0]
	if prop.Description != "" {
		t.Fatalf("footnote should leave the property description, got %q", prop.Description)
	}
	if got := prop.Results[0].Description; !strings.Contains(got, "measured at 20°C") {
		t.Fatalf("footnote missing from first result description: %q", got)
	}
}

func TestApply_QuantityNormalization(t *testing.T) {
	payload := testsupport.SamplePayload(t)
	doc := extraction.New().Apply(document.New(), payload)

	byName := map[string]document.Quantity{}
	for _, q := range doc.MaterialProperties[0].Results[0].Quantities {
		byName[q.Name] = q
	}

	nitrogen := byName["Nitrogen"]
	if nitrogen.Value != "2.1" {
		t.Fatalf("numeric JSON cell should decode as text, got %q", nitrogen.Value)
	}
	if nitrogen.DSIUnit != `\percent` || nitrogen.DSIValue != "2.1" {
		t.Fatalf("nitrogen D-SI fields = (%q, %q)", nitrogen.DSIValue, nitrogen.DSIUnit)
	}

	lead := byName["Lead"]
	if lead.DSIUnit != `\milli\gram\per\kilogram` || lead.DSIValue != "4.9" {
		t.Fatalf("lead D-SI fields = (%q, %q)", lead.DSIValue, lead.DSIUnit)
	}
	if lead.CoverageFactor != "2.0" || lead.CoverageProbability != "0.95" || lead.Distribution != "normal" {
		t.Fatalf("expected default uncertainty parameters, got (%q, %q, %q)",
			lead.CoverageFactor, lead.CoverageProbability, lead.Distribution)
	}
	if lead.ID == "" {
		t.Fatalf("expected a fresh quantity id")
	}

	cadmium := byName["Cadmium"]
	if cadmium.Value != "< 0.05" || cadmium.Uncertainty != "" {
		t.Fatalf("comparison uncertainty should promote into the value, got value=%q uncertainty=%q",
			cadmium.Value, cadmium.Uncertainty)
	}
	if cadmium.DSIValue != "< 0.05" || cadmium.DSIUnit != `\milli\gram\per\kilogram` {
		t.Fatalf("comparison value should pass through conversion, got (%q, %q)",
			cadmium.DSIValue, cadmium.DSIUnit)
	}
}

func TestApply_ProducerCorrections(t *testing.T) {
	payload := testsupport.SamplePayload(t)
	doc := extraction.New().Apply(document.New(), payload)

	producers := doc.AdministrativeData.Producers
	if len(producers) != 1 {
		t.Fatalf("expected 1 producer, got %d", len(producers))
	}
	p := producers[0]
	if p.PostCode != "12205" {
		t.Fatalf("post code should lose its country prefix, got %q", p.PostCode)
	}
	if p.CountryCode != "DE" {
		t.Fatalf("locality rule should set country DE, got %q", p.CountryCode)
	}
	box, ok := p.Provenance.FieldCoordinates["name"]
	if !ok || len(box) != 5 {
		t.Fatalf("expected field coordinates for producer name, got %v", p.Provenance.FieldCoordinates)
	}
}

func TestApply_ValidityCarry(t *testing.T) {
	payload := testsupport.SamplePayload(t)
	doc := extraction.New().Apply(document.New(), payload)

	validity := doc.AdministrativeData.Validity
	if validity.Kind != document.ValidityTimeAfterDispatch {
		t.Fatalf("unexpected validity kind %q", validity.Kind)
	}
	if validity.Years != 2 || validity.Months != 6 {
		t.Fatalf("1y18m should carry to 2y6m, got %dy%dm", validity.Years, validity.Months)
	}
}

func TestApply_ValidityInference(t *testing.T) {
	normalizer := extraction.New()

	payload, err := extraction.ParsePayload([]byte(`{
		"administrativeData": {"validity": {"date": "02/2024"}}
	}`))
	if err != nil {
		t.Fatalf("parse payload: %v", err)
	}
	doc := normalizer.Apply(document.New(), payload)
	validity := doc.AdministrativeData.Validity
	if validity.Kind != document.ValiditySpecificTime {
		t.Fatalf("date-only validity should infer specificTime, got %q", validity.Kind)
	}
	if validity.Date != "2024-02-29" {
		t.Fatalf("MM/YYYY should rewrite to the month end, got %q", validity.Date)
	}

	payload, err = extraction.ParsePayload([]byte(`{
		"administrativeData": {"validity": {"months": "6"}}
	}`))
	if err != nil {
		t.Fatalf("parse payload: %v", err)
	}
	doc = normalizer.Apply(document.New(), payload)
	validity = doc.AdministrativeData.Validity
	if validity.Kind != document.ValidityTimeAfterDispatch || validity.Months != 6 {
		t.Fatalf("month-only validity should infer timeAfterDispatch, got %+v", validity)
	}

	payload, err = extraction.ParsePayload([]byte(`{"administrativeData": {"validity": {}}}`))
	if err != nil {
		t.Fatalf("parse payload: %v", err)
	}
	doc = normalizer.Apply(document.New(), payload)
	if kind := doc.AdministrativeData.Validity.Kind; kind != document.ValidityUntilRevoked {
		t.Fatalf("empty validity should infer untilRevoked, got %q", kind)
	}
}

func TestApply_SparsePayloadKeepsExistingData(t *testing.T) {
	base := testsupport.SampleDocument()
	payload, err := extraction.ParsePayload([]byte(`{"materials": []}`))
	if err != nil {
		t.Fatalf("parse payload: %v", err)
	}

	doc := extraction.New().Apply(base, payload)
	if len(doc.Materials) != len(base.Materials) {
		t.Fatalf("empty materials list should not clear existing materials")
	}
	if len(doc.MaterialProperties) != len(base.MaterialProperties) {
		t.Fatalf("absent properties should not clear existing properties")
	}
	if doc.Statements.IntendedUse != base.Statements.IntendedUse {
		t.Fatalf("absent statements should not clear existing statements")
	}
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	base := document.New()
	payload := testsupport.SamplePayload(t)

	extraction.New().Apply(base, payload)
	if len(base.MaterialProperties) != 0 || len(base.Materials) != 0 {
		t.Fatalf("Apply mutated its input document")
	}
	if len(base.AdministrativeData.Producers) != 1 {
		t.Fatalf("Apply replaced the input's default producer slice")
	}
}

func TestApply_SanitizesStatements(t *testing.T) {
	payload, err := extraction.ParsePayload([]byte(`{
		"statements": {
			"intendedUse": "Calibration <b>only</b> &amp; quality control.",
			"custom": [
				{"name": "Note", "content": "<script>alert(1)</script>Keep dry."},
				{"name": "", "content": ""}
			]
		}
	}`))
	if err != nil {
		t.Fatalf("parse payload: %v", err)
	}

	doc := extraction.New().Apply(document.New(), payload)
	if got := doc.Statements.IntendedUse; got != "Calibration only & quality control." {
		t.Fatalf("statement not sanitized: %q", got)
	}
	custom := doc.Statements.Custom
	if len(custom) != 1 {
		t.Fatalf("empty custom statements should drop, got %d", len(custom))
	}
	if custom[0].Content != "Keep dry." {
		t.Fatalf("custom statement not sanitized: %q", custom[0].Content)
	}
	if custom[0].ID == "" {
		t.Fatalf("custom statement should get an id")
	}
}
