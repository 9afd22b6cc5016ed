package extraction

import (
	"strings"
	"testing"
)

func TestCheckPayload_CleanPayload(t *testing.T) {
	issues, err := CheckPayload([]byte(`{
		"administrativeData": {"title": "Reference Material Certificate"},
		"materials": [{"name": "River Sediment", "certified": true}]
	}`))
	if err != nil {
		t.Fatalf("CheckPayload returned error: %v", err)
	}
	if len(issues) != 0 {
		t.Fatalf("expected no issues, got %v", issues)
	}
}

func TestCheckPayload_ReportsShapeDefects(t *testing.T) {
	issues, err := CheckPayload([]byte(`{
		"administrativeData": {"title": 42},
		"materials": {"name": "not a list"}
	}`))
	if err != nil {
		t.Fatalf("CheckPayload returned error: %v", err)
	}
	if len(issues) < 2 {
		t.Fatalf("expected issues for both defects, got %v", issues)
	}

	var sawTitle bool
	for _, issue := range issues {
		if strings.Contains(issue.Path, "title") {
			sawTitle = true
		}
	}
	if !sawTitle {
		t.Fatalf("expected an issue pointing at the title field, got %v", issues)
	}
}

func TestCheckPayload_InvalidJSON(t *testing.T) {
	issues, err := CheckPayload([]byte(`{not json`))
	if err != nil {
		t.Fatalf("CheckPayload returned error: %v", err)
	}
	if len(issues) != 1 || !strings.Contains(issues[0].Message, "not valid JSON") {
		t.Fatalf("expected a single JSON parse issue, got %v", issues)
	}
}

func TestCheckPayload_IssuesNeverGateParsing(t *testing.T) {
	raw := []byte(`{"administrativeData": {"title": 42}}`)

	issues, err := CheckPayload(raw)
	if err != nil || len(issues) == 0 {
		t.Fatalf("expected advisory issues, got (%v, %v)", issues, err)
	}

	payload, err := ParsePayload(raw)
	if err != nil {
		t.Fatalf("payload with shape issues must still parse: %v", err)
	}
	if got := payload.AdministrativeData.Title.String(); got != "42" {
		t.Fatalf("numeric title should decode leniently, got %q", got)
	}
}
