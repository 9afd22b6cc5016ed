package extraction

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// FlexString accepts JSON strings, numbers, and booleans interchangeably.
// Extraction payloads are produced by a vision model and do not reliably
// quote numeric cells.
type FlexString string

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexString) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		*f = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(trimmed, &s); err == nil {
		*f = FlexString(s)
		return nil
	}
	*f = FlexString(trimmed)
	return nil
}

// String returns the trimmed text form.
func (f FlexString) String() string {
	return strings.TrimSpace(string(f))
}

// FlexInt accepts JSON numbers and numeric strings. Anything else decodes to
// zero rather than failing the surrounding payload.
type FlexInt int

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexInt) UnmarshalJSON(data []byte) error {
	trimmed := strings.Trim(string(bytes.TrimSpace(data)), `"`)
	if trimmed == "" || trimmed == "null" {
		*f = 0
		return nil
	}
	parsed, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		*f = 0
		return nil
	}
	*f = FlexInt(int(parsed))
	return nil
}

// Provenance mirrors the coordinate metadata attached to extracted blocks.
// Boxes are opaque `[page, yMin, xMin, yMax, xMax]` tuples on a 0–1000 scale.
type Provenance struct {
	FieldCoordinates   map[string][]float64 `json:"fieldCoordinates,omitempty"`
	SectionCoordinates []float64            `json:"sectionCoordinates,omitempty"`
}

// Validity is the loose form of the validity descriptor. Kind may be absent;
// the normalizer infers it from which fields are populated.
type Validity struct {
	Kind         string     `json:"kind,omitempty"`
	Years        FlexInt    `json:"years,omitempty"`
	Months       FlexInt    `json:"months,omitempty"`
	DispatchDate FlexString `json:"dispatchDate,omitempty"`
	Date         FlexString `json:"date,omitempty"`
}

// Producer is the loose producer shape.
type Producer struct {
	Name        FlexString `json:"name,omitempty"`
	Email       FlexString `json:"email,omitempty"`
	Phone       FlexString `json:"phone,omitempty"`
	Fax         FlexString `json:"fax,omitempty"`
	Street      FlexString `json:"street,omitempty"`
	StreetNo    FlexString `json:"streetNo,omitempty"`
	PostCode    FlexString `json:"postCode,omitempty"`
	City        FlexString `json:"city,omitempty"`
	CountryCode FlexString `json:"countryCode,omitempty"`
	Provenance
}

// ResponsiblePerson is the loose person shape.
type ResponsiblePerson struct {
	Name                FlexString `json:"name,omitempty"`
	Role                FlexString `json:"role,omitempty"`
	Description         FlexString `json:"description,omitempty"`
	MainSigner          bool       `json:"mainSigner,omitempty"`
	ElectronicSeal      bool       `json:"electronicSeal,omitempty"`
	ElectronicSignature bool       `json:"electronicSignature,omitempty"`
	Provenance
}

// AdministrativeData is the loose head section.
type AdministrativeData struct {
	Title              FlexString          `json:"title,omitempty"`
	Validity           *Validity           `json:"validity,omitempty"`
	Producers          []Producer          `json:"producers,omitempty"`
	ResponsiblePersons []ResponsiblePerson `json:"responsiblePersons,omitempty"`
	Provenance
}

// Material is the loose material shape.
type Material struct {
	Name              FlexString `json:"name,omitempty"`
	Class             FlexString `json:"class,omitempty"`
	Description       FlexString `json:"description,omitempty"`
	ItemQuantity      FlexString `json:"itemQuantity,omitempty"`
	MinimumSampleSize FlexString `json:"minimumSampleSize,omitempty"`
	Certified         bool       `json:"certified,omitempty"`
	Provenance
}

// Quantity is one loose table row.
type Quantity struct {
	Name                FlexString `json:"name,omitempty"`
	Value               FlexString `json:"value,omitempty"`
	Unit                FlexString `json:"unit,omitempty"`
	Uncertainty         FlexString `json:"uncertainty,omitempty"`
	CoverageFactor      FlexString `json:"coverageFactor,omitempty"`
	CoverageProbability FlexString `json:"coverageProbability,omitempty"`
	Distribution        FlexString `json:"distribution,omitempty"`
	Provenance
}

// MeasurementResult is one loose table, possibly a fragment whose name is
// only a unit header.
type MeasurementResult struct {
	Name        FlexString `json:"name,omitempty"`
	Description FlexString `json:"description,omitempty"`
	Quantities  []Quantity `json:"quantities,omitempty"`
	Provenance
}

// MaterialProperty is one loose property group. Duplicated groups across
// page fragments are reconciled by the normalizer.
type MaterialProperty struct {
	Name        FlexString          `json:"name,omitempty"`
	Certified   bool                `json:"certified,omitempty"`
	Description FlexString          `json:"description,omitempty"`
	Procedures  FlexString          `json:"procedures,omitempty"`
	Results     []MeasurementResult `json:"results,omitempty"`
	Provenance
}

// CustomStatement is a loose named statement.
type CustomStatement struct {
	Name    FlexString `json:"name,omitempty"`
	Content FlexString `json:"content,omitempty"`
}

// Statements is the loose statements block.
type Statements struct {
	IntendedUse          FlexString        `json:"intendedUse,omitempty"`
	StorageInformation   FlexString        `json:"storageInformation,omitempty"`
	HandlingInstructions FlexString        `json:"handlingInstructions,omitempty"`
	Traceability         FlexString        `json:"traceability,omitempty"`
	HealthAndSafety      FlexString        `json:"healthAndSafety,omitempty"`
	Subcontractors       FlexString        `json:"subcontractors,omitempty"`
	LegalNotice          FlexString        `json:"legalNotice,omitempty"`
	CertificationReport  FlexString        `json:"certificationReport,omitempty"`
	Custom               []CustomStatement `json:"custom,omitempty"`
	Provenance
}

// Payload is the loose extraction result: every field optional, arrays
// possibly empty, any leaf possibly malformed. Nothing of this shape passes
// the normalizer boundary.
type Payload struct {
	AdministrativeData *AdministrativeData `json:"administrativeData,omitempty"`
	Materials          []Material          `json:"materials,omitempty"`
	MaterialProperties []MaterialProperty  `json:"materialProperties,omitempty"`
	Statements         *Statements         `json:"statements,omitempty"`
	Comment            FlexString          `json:"comment,omitempty"`
}

// ParsePayload decodes a raw extraction payload. Unknown fields are ignored;
// only structurally invalid JSON fails.
func ParsePayload(raw []byte) (Payload, error) {
	var payload Payload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return Payload{}, fmt.Errorf("extraction: parse payload: %w", err)
	}
	return payload, nil
}
