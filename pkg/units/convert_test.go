package units

import "testing"

func TestConvert_TableCases(t *testing.T) {
	c := NewConverter()

	cases := []struct {
		name  string
		value string
		unit  string
		want  Result
	}{
		{
			name:  "gram keeps original value",
			value: "4.9",
			unit:  "g",
			want:  Result{DSIValue: "4.9", DSIUnit: `\gram`},
		},
		{
			name:  "pound scales into kilogram",
			value: "2",
			unit:  "lb",
			want:  Result{DSIValue: "0.907185", DSIUnit: `\kilogram`},
		},
		{
			name:  "comparison expression survives mass fraction",
			value: "<0.05",
			unit:  "mg/kg",
			want:  Result{DSIValue: "<0.05", DSIUnit: `\milli\gram\per\kilogram`},
		},
		{
			name:  "unknown unit yields empty result",
			value: "1",
			unit:  "unknownunit",
			want:  Result{},
		},
		{
			name:  "absent unit yields empty result",
			value: "42",
			unit:  "",
			want:  Result{},
		},
		{
			name:  "header prefix is stripped",
			value: "3.2",
			unit:  "in mg/kg",
			want:  Result{DSIValue: "3.2", DSIUnit: `\milli\gram\per\kilogram`},
		},
		{
			name:  "internal whitespace is ignored",
			value: "7",
			unit:  "mg / kg",
			want:  Result{DSIValue: "7", DSIUnit: `\milli\gram\per\kilogram`},
		},
		{
			name:  "unicode superscripts normalize",
			value: "1450",
			unit:  "cm⁻¹",
			want:  Result{DSIValue: "1450", DSIUnit: `\centi\metre\tothe{-1}`},
		},
		{
			name:  "case-insensitive fallback",
			value: "5",
			unit:  "MG/KG",
			want:  Result{DSIValue: "5", DSIUnit: `\milli\gram\per\kilogram`},
		},
		{
			name:  "non-numeric text cannot be scaled",
			value: "approx. two",
			unit:  "lb",
			want:  Result{DSIValue: "", DSIUnit: `\kilogram`},
		},
		{
			name:  "non-numeric text passes through at factor one",
			value: "trace",
			unit:  "%",
			want:  Result{DSIValue: "trace", DSIUnit: `\percent`},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := c.Convert(tc.value, tc.unit)
			if got != tc.want {
				t.Fatalf("Convert(%q, %q) = %+v, want %+v", tc.value, tc.unit, got, tc.want)
			}
		})
	}
}

func TestConvert_Idempotence(t *testing.T) {
	c := NewConverter()

	inputs := []struct{ value, unit string }{
		{"4.9", "g"},
		{"2", "lb"},
		{"<0.05", "mg/kg"},
		{"36.5", "°C"},
		{"100", "ml"},
	}
	for _, in := range inputs {
		first := c.Convert(in.value, in.unit)
		if first.DSIUnit == "" {
			t.Fatalf("Convert(%q, %q) did not resolve", in.value, in.unit)
		}
		second := c.Convert(first.DSIValue, first.DSIUnit)
		if second != first {
			t.Fatalf("conversion not idempotent for (%q, %q): first %+v, second %+v",
				in.value, in.unit, first, second)
		}
	}
}

func TestSplitValueUnit(t *testing.T) {
	cases := []struct {
		in        string
		value     string
		unit      string
		ok        bool
	}{
		{"4.9 g", "4.9", "g", true},
		{"100 ml", "100", "ml", true},
		{"1.2e3 mg/kg", "1.2e3", "mg/kg", true},
		{"-5 °C", "-5", "°C", true},
		{"approx 5 g", "", "", false},
		{"unspecified", "", "", false},
		{"", "", "", false},
		{"50", "", "", false},
	}
	for _, tc := range cases {
		value, unit, ok := SplitValueUnit(tc.in)
		if ok != tc.ok || value != tc.value || unit != tc.unit {
			t.Fatalf("SplitValueUnit(%q) = (%q, %q, %v), want (%q, %q, %v)",
				tc.in, value, unit, ok, tc.value, tc.unit, tc.ok)
		}
	}
}

func TestConvertCombined(t *testing.T) {
	c := NewConverter()

	got, ok := c.ConvertCombined("4.9 g")
	if !ok {
		t.Fatalf("ConvertCombined did not split")
	}
	want := Result{DSIValue: "4.9", DSIUnit: `\gram`}
	if got != want {
		t.Fatalf("ConvertCombined(%q) = %+v, want %+v", "4.9 g", got, want)
	}

	if _, ok := c.ConvertCombined("about five grams"); ok {
		t.Fatalf("expected no split for non-numeric leading token")
	}
}

func TestNewConverterFromTable_Invalid(t *testing.T) {
	if _, err := NewConverterFromTable([]byte("units: [{names: [x]}]")); err == nil {
		t.Fatalf("expected error for entry without dsi form")
	}
	if _, err := NewConverterFromTable([]byte("{:::")); err == nil {
		t.Fatalf("expected error for unparsable YAML")
	}
}
