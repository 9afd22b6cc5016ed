package elements

import "testing"

func TestLookup(t *testing.T) {
	cases := []struct {
		in  string
		cas string
		ok  bool
	}{
		{"Lead", "7439-92-1", true},
		{"lead", "7439-92-1", true},
		{"Pb", "7439-92-1", true},
		{" Cadmium ", "7440-43-9", true},
		{"Aluminum", "7429-90-5", true}, // alias spelling
		{"Moisture content", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		substance, ok := Lookup(tc.in)
		if ok != tc.ok || substance.CAS != tc.cas {
			t.Fatalf("Lookup(%q) = (%q, %v), want (%q, %v)", tc.in, substance.CAS, ok, tc.cas, tc.ok)
		}
	}
}

func TestReferenceLink(t *testing.T) {
	substance, ok := Lookup("Mercury")
	if !ok {
		t.Fatalf("expected Mercury in the table")
	}
	want := "https://commonchemistry.cas.org/results?q=7439-97-6"
	if got := substance.ReferenceLink(); got != want {
		t.Fatalf("ReferenceLink() = %q, want %q", got, want)
	}
}
