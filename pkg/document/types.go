package document

// DocumentKind enumerates the allowed document titles.
type DocumentKind string

const (
	KindCertificate       DocumentKind = "Reference Material Certificate"
	KindProductInfoSheet  DocumentKind = "Product Information Sheet"
	KindAnalysisCertificate DocumentKind = "Certificate of Analysis"
)

// Kinds lists every allowed document kind in display order.
func Kinds() []DocumentKind {
	return []DocumentKind{KindCertificate, KindProductInfoSheet, KindAnalysisCertificate}
}

// ValidityKind tags the validity union carried by AdministrativeData.
type ValidityKind string

const (
	ValidityUntilRevoked      ValidityKind = "untilRevoked"
	ValidityTimeAfterDispatch ValidityKind = "timeAfterDispatch"
	ValiditySpecificTime      ValidityKind = "specificTime"
)

// Validity is a tagged union: exactly one of the three kinds is active and
// only the fields belonging to the active kind are meaningful.
type Validity struct {
	Kind ValidityKind `json:"kind"`

	// timeAfterDispatch
	Years        int    `json:"years,omitempty"`
	Months       int    `json:"months,omitempty"`
	DispatchDate string `json:"dispatchDate,omitempty"`

	// specificTime, ISO date (YYYY-MM-DD)
	Date string `json:"date,omitempty"`
}

// Identifier is a scheme-qualified identifier attached to producers,
// materials, or measured quantities.
type Identifier struct {
	Scheme string `json:"scheme,omitempty"`
	Value  string `json:"value,omitempty"`
	Link   string `json:"link,omitempty"`
}

// Box is an opaque bounding region `[page, yMin, xMin, yMax, xMax]` on a
// 0–1000 normalized page scale. The core stores and forwards boxes but never
// interprets them; only the UI layer reads them geometrically.
type Box []float64

// Provenance carries the optional extraction coordinates of a node. Both
// maps/slices are pass-through payloads and absent after an XML round trip.
type Provenance struct {
	FieldCoordinates   map[string]Box `json:"fieldCoordinates,omitempty"`
	SectionCoordinates Box            `json:"sectionCoordinates,omitempty"`
}

// Producer identifies the organization issuing the document.
type Producer struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Email       string       `json:"email,omitempty"`
	Phone       string       `json:"phone,omitempty"`
	Fax         string       `json:"fax,omitempty"`
	Street      string       `json:"street,omitempty"`
	StreetNo    string       `json:"streetNo,omitempty"`
	PostCode    string       `json:"postCode,omitempty"`
	City        string       `json:"city,omitempty"`
	CountryCode string       `json:"countryCode,omitempty"`
	Identifiers []Identifier `json:"identifiers,omitempty"`
	Provenance
}

// ResponsiblePerson is a person accountable for the document contents. The
// three signing flags are independent capabilities, not an enum.
type ResponsiblePerson struct {
	ID                  string `json:"id"`
	Name                string `json:"name"`
	Role                string `json:"role,omitempty"`
	Description         string `json:"description,omitempty"`
	MainSigner          bool   `json:"mainSigner"`
	ElectronicSeal      bool   `json:"electronicSeal"`
	ElectronicSignature bool   `json:"electronicSignature"`
	Provenance
}

// AdministrativeData is the mandatory head section of a document. The schema
// allows exactly one producer in valid output; the slice exists so callers
// can hold more transiently before validation.
type AdministrativeData struct {
	Title              DocumentKind        `json:"title"`
	UniqueIdentifier   string              `json:"uniqueIdentifier"`
	Validity           Validity            `json:"validity"`
	Producers          []Producer          `json:"producers"`
	ResponsiblePersons []ResponsiblePerson `json:"responsiblePersons"`
	Provenance
}

// Material describes one physical reference material item. ItemQuantity and
// MinimumSampleSize are primitive quantities: either a "numeric value + unit"
// string the codec can lift into a structured branch, or free text.
type Material struct {
	ID                string       `json:"id"`
	Name              string       `json:"name"`
	Class             string       `json:"class,omitempty"`
	Description       string       `json:"description,omitempty"`
	ItemQuantity      string       `json:"itemQuantity,omitempty"`
	MinimumSampleSize string       `json:"minimumSampleSize"`
	Certified         bool         `json:"certified"`
	Identifiers       []Identifier `json:"identifiers,omitempty"`
	Provenance
}

// Quantity is one row of a measurement table. Value keeps the original
// display form (possibly a comparison expression such as "< 0.05");
// DSIValue/DSIUnit are derived by the unit converter and never hand-edited.
type Quantity struct {
	ID                  string       `json:"id"`
	Name                string       `json:"name"`
	Value               string       `json:"value,omitempty"`
	Unit                string       `json:"unit,omitempty"`
	DSIValue            string       `json:"dsiValue,omitempty"`
	DSIUnit             string       `json:"dsiUnit,omitempty"`
	Uncertainty         string       `json:"uncertainty,omitempty"`
	CoverageFactor      string       `json:"coverageFactor,omitempty"`
	CoverageProbability string       `json:"coverageProbability,omitempty"`
	Distribution        string       `json:"distribution,omitempty"`
	Identifiers         []Identifier `json:"identifiers,omitempty"`
	Provenance
}

// MeasurementResult is one table of quantities under a property group.
type MeasurementResult struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Quantities  []Quantity `json:"quantities"`
	Provenance
}

// MaterialProperty groups measurement results, e.g. "Certified Values".
type MaterialProperty struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Certified   bool                `json:"certified"`
	Description string              `json:"description,omitempty"`
	Procedures  string              `json:"procedures,omitempty"`
	Results     []MeasurementResult `json:"results"`
	Provenance
}

// CustomStatement is a named free-text statement outside the official set.
type CustomStatement struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Content string `json:"content"`
}

// Statements holds the fixed set of official long-text fields plus any
// custom statements.
type Statements struct {
	IntendedUse          string            `json:"intendedUse"`
	StorageInformation   string            `json:"storageInformation"`
	HandlingInstructions string            `json:"handlingInstructions"`
	Traceability         string            `json:"traceability,omitempty"`
	HealthAndSafety      string            `json:"healthAndSafety,omitempty"`
	Subcontractors       string            `json:"subcontractors,omitempty"`
	LegalNotice          string            `json:"legalNotice,omitempty"`
	CertificationReport  string            `json:"certificationReport,omitempty"`
	Custom               []CustomStatement `json:"custom,omitempty"`
	Provenance
}

// Attachment is an optional binary document embedded in the export.
type Attachment struct {
	Name     string `json:"name"`
	MimeType string `json:"mimeType,omitempty"`
	Data     []byte `json:"data"`
}

// Document is the root of the canonical tree. Entities are owned exclusively
// by their parent; the tree is never shared between mutation contexts.
type Document struct {
	AdministrativeData AdministrativeData `json:"administrativeData"`
	Materials          []Material         `json:"materials"`
	MaterialProperties []MaterialProperty `json:"materialProperties"`
	Statements         Statements         `json:"statements"`
	Comment            string             `json:"comment,omitempty"`
	Attachment         *Attachment        `json:"attachment,omitempty"`
}
