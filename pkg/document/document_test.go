package document_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-drmd/pkg/document"
	"github.com/goliatone/go-drmd/pkg/testsupport"
)

func TestNew_Defaults(t *testing.T) {
	doc := document.New()
	admin := doc.AdministrativeData

	if admin.Title != document.KindCertificate {
		t.Fatalf("default title = %q, want %q", admin.Title, document.KindCertificate)
	}
	if admin.UniqueIdentifier == "" {
		t.Fatalf("expected a generated unique identifier")
	}
	if admin.Validity.Kind != document.ValidityUntilRevoked {
		t.Fatalf("default validity kind = %q", admin.Validity.Kind)
	}
	if len(admin.Producers) != 1 || admin.Producers[0].ID == "" {
		t.Fatalf("expected one default producer with an id, got %v", admin.Producers)
	}
	if len(admin.ResponsiblePersons) != 1 || admin.ResponsiblePersons[0].ID == "" {
		t.Fatalf("expected one default person with an id, got %v", admin.ResponsiblePersons)
	}

	other := document.New()
	if other.AdministrativeData.UniqueIdentifier == admin.UniqueIdentifier {
		t.Fatalf("unique identifiers must not repeat")
	}
}

func TestKinds(t *testing.T) {
	kinds := document.Kinds()
	if len(kinds) != 3 {
		t.Fatalf("expected 3 document kinds, got %d", len(kinds))
	}
	if kinds[0] != document.KindCertificate {
		t.Fatalf("certificate should list first, got %q", kinds[0])
	}
}

func TestClone_Independence(t *testing.T) {
	doc := testsupport.SampleDocument()
	doc.AdministrativeData.Provenance.FieldCoordinates = map[string]document.Box{
		"title": {1, 10, 10, 20, 200},
	}

	clone := doc.Clone()
	if diff := cmp.Diff(doc, clone); diff != "" {
		t.Fatalf("clone differs from original (-want +got):\n%s", diff)
	}

	clone.AdministrativeData.Producers[0].Name = "Changed"
	clone.Materials[0].Name = "Changed"
	clone.MaterialProperties[0].Results[0].Quantities[0].Value = "0"
	clone.MaterialProperties[0].Results[0].Quantities[0].Identifiers[0].Value = "0-0-0"
	clone.AdministrativeData.Provenance.FieldCoordinates["title"][0] = 9
	clone.Statements.Custom = append(clone.Statements.Custom, document.CustomStatement{Name: "x"})

	if doc.AdministrativeData.Producers[0].Name == "Changed" {
		t.Fatalf("producer mutation leaked into original")
	}
	if doc.Materials[0].Name == "Changed" {
		t.Fatalf("material mutation leaked into original")
	}
	if doc.MaterialProperties[0].Results[0].Quantities[0].Value == "0" {
		t.Fatalf("quantity mutation leaked into original")
	}
	if doc.MaterialProperties[0].Results[0].Quantities[0].Identifiers[0].Value == "0-0-0" {
		t.Fatalf("identifier mutation leaked into original")
	}
	if doc.AdministrativeData.Provenance.FieldCoordinates["title"][0] == 9 {
		t.Fatalf("coordinate mutation leaked into original")
	}
	if len(doc.Statements.Custom) != 0 {
		t.Fatalf("custom statement append leaked into original")
	}
}

func TestClone_NilAttachment(t *testing.T) {
	doc := document.New()
	clone := doc.Clone()
	if clone.Attachment != nil {
		t.Fatalf("cloning a nil attachment should stay nil")
	}

	doc.Attachment = &document.Attachment{Name: "scan.pdf", Data: []byte{1, 2, 3}}
	clone = doc.Clone()
	clone.Attachment.Data[0] = 9
	if doc.Attachment.Data[0] == 9 {
		t.Fatalf("attachment data mutation leaked into original")
	}
}
