package codec

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/goliatone/go-drmd/internal/elements"
	"github.com/goliatone/go-drmd/pkg/document"
	"github.com/goliatone/go-drmd/pkg/units"
)

// Wire format constants. The three namespaces separate document structure
// (drmd), shared core blocks (dcc), and SI values (si).
const (
	NamespaceDRMD = "https://ptb.de/drmd"
	NamespaceDCC  = "https://ptb.de/dcc"
	NamespaceSI   = "https://ptb.de/si"

	SchemaVersion = "0.3.0"

	rootElement = "drmd:digitalReferenceMaterialDocument"
)

// NoQuantitySentinel is the textual branch content used when a primitive
// quantity is deliberately unspecified.
const NoQuantitySentinel = "unspecified"

// Encoder serializes a document tree into the namespaced wire XML.
type Encoder struct {
	converter *units.Converter
}

// EncoderOption customises an Encoder.
type EncoderOption func(*Encoder)

// WithConverter injects the unit converter used for primitive quantities.
func WithConverter(converter *units.Converter) EncoderOption {
	return func(e *Encoder) {
		if converter != nil {
			e.converter = converter
		}
	}
}

// NewEncoder constructs an Encoder using the default unit converter.
func NewEncoder(options ...EncoderOption) *Encoder {
	e := &Encoder{converter: units.Default()}
	for _, opt := range options {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

// Encode renders the document as XML text. Coordinate metadata is not
// persisted; identifiers are regenerated on decode.
func (e *Encoder) Encode(doc document.Document) ([]byte, error) {
	w := &xmlWriter{}
	w.raw(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	w.open(rootElement,
		"xmlns:drmd", NamespaceDRMD,
		"xmlns:dcc", NamespaceDCC,
		"xmlns:si", NamespaceSI,
		"schemaVersion", SchemaVersion,
	)

	e.encodeAdministrativeData(w, doc.AdministrativeData)
	e.encodeMaterials(w, doc.Materials)
	e.encodeProperties(w, doc.MaterialProperties)
	e.encodeStatements(w, doc.Statements)
	w.leafIf("drmd:comment", doc.Comment)
	e.encodeAttachment(w, doc.Attachment)

	w.close(rootElement)
	return []byte(w.String()), nil
}

func (e *Encoder) encodeAdministrativeData(w *xmlWriter, admin document.AdministrativeData) {
	w.open("drmd:administrativeData")

	w.open("drmd:coreData")
	w.leaf("drmd:titleOfTheDocument", string(admin.Title))
	w.leaf("drmd:uniqueIdentifier", admin.UniqueIdentifier)
	encodeValidity(w, admin.Validity)
	w.close("drmd:coreData")

	w.open("drmd:producers")
	for _, p := range admin.Producers {
		e.encodeProducer(w, p)
	}
	w.close("drmd:producers")

	w.open("drmd:respPersons")
	for _, p := range admin.ResponsiblePersons {
		encodePerson(w, p)
	}
	w.close("drmd:respPersons")

	w.close("drmd:administrativeData")
}

// encodeValidity emits exactly one of the three mutually exclusive validity
// alternatives. A zero-length dispatch period still emits P0Y so the period
// element is never empty.
func encodeValidity(w *xmlWriter, v document.Validity) {
	w.open("drmd:validity")
	switch v.Kind {
	case document.ValidityTimeAfterDispatch:
		w.leaf("drmd:periodOfValidity", formatPeriod(v.Years, v.Months))
		w.leafIf("drmd:dateOfDispatch", v.DispatchDate)
	case document.ValiditySpecificTime:
		w.leaf("drmd:validUntil", v.Date)
	default:
		w.leaf("drmd:isValidUntilRevoked", "true")
	}
	w.close("drmd:validity")
}

// formatPeriod builds the ISO-8601 style P<Y>Y<M>M token, omitting zero
// components.
func formatPeriod(years, months int) string {
	var b strings.Builder
	b.WriteString("P")
	if years > 0 {
		fmt.Fprintf(&b, "%dY", years)
	}
	if months > 0 {
		fmt.Fprintf(&b, "%dM", months)
	}
	if years == 0 && months == 0 {
		b.WriteString("0Y")
	}
	return b.String()
}

func (e *Encoder) encodeProducer(w *xmlWriter, p document.Producer) {
	w.open("drmd:producer")
	w.leaf("dcc:name", p.Name)
	w.leafIf("dcc:eMail", p.Email)
	w.leafIf("dcc:phone", p.Phone)
	w.leafIf("dcc:fax", p.Fax)
	w.open("dcc:location")
	w.leafIf("dcc:street", p.Street)
	w.leafIf("dcc:streetNo", p.StreetNo)
	w.leafIf("dcc:postCode", p.PostCode)
	w.leafIf("dcc:city", p.City)
	w.leafIf("dcc:countryCode", p.CountryCode)
	w.close("dcc:location")
	encodeIdentifiers(w, p.Identifiers)
	w.close("drmd:producer")
}

func encodePerson(w *xmlWriter, p document.ResponsiblePerson) {
	w.open("drmd:respPerson")
	w.leaf("dcc:name", p.Name)
	w.leafIf("dcc:role", p.Role)
	w.leafIf("dcc:description", p.Description)
	w.leafBool("drmd:mainSigner", p.MainSigner)
	w.leafBool("drmd:cryptElectronicSeal", p.ElectronicSeal)
	w.leafBool("drmd:cryptElectronicSignature", p.ElectronicSignature)
	w.close("drmd:respPerson")
}

func (e *Encoder) encodeMaterials(w *xmlWriter, materials []document.Material) {
	w.open("drmd:materials")
	for _, m := range materials {
		w.open("drmd:material")
		w.leaf("drmd:name", m.Name)
		w.leafIf("drmd:materialClass", m.Class)
		w.leafIf("drmd:description", m.Description)
		w.leafBool("drmd:isCertified", m.Certified)
		if m.ItemQuantity != "" {
			w.open("drmd:itemQuantity")
			e.encodePrimitiveQuantity(w, m.ItemQuantity)
			w.close("drmd:itemQuantity")
		}
		w.open("drmd:minimumSampleSize")
		e.encodePrimitiveQuantity(w, m.MinimumSampleSize)
		w.close("drmd:minimumSampleSize")
		encodeIdentifiers(w, m.Identifiers)
		w.close("drmd:material")
	}
	w.close("drmd:materials")
}

// encodePrimitiveQuantity chooses between the two schema-mandated exclusive
// alternatives: the numeric real branch when the text splits into a numeric
// run plus a resolvable unit, and the textual noQuantity branch otherwise.
// The original text rides along as the si:label so decoding restores it.
func (e *Encoder) encodePrimitiveQuantity(w *xmlWriter, text string) {
	value, unit, ok := units.SplitValueUnit(text)
	if ok && text != NoQuantitySentinel {
		if converted := e.converter.Convert(value, unit); converted.DSIUnit != "" {
			w.open("si:real")
			w.leaf("si:label", text)
			w.leaf("si:value", value)
			w.leaf("si:unit", converted.DSIUnit)
			w.close("si:real")
			return
		}
	}
	w.leaf("drmd:noQuantity", text)
}

func (e *Encoder) encodeProperties(w *xmlWriter, properties []document.MaterialProperty) {
	w.open("drmd:materialProperties")
	for _, p := range properties {
		w.open("drmd:materialProperty")
		w.leaf("drmd:name", p.Name)
		w.leafBool("drmd:isCertified", p.Certified)
		w.leafIf("drmd:description", p.Description)
		w.leafIf("drmd:procedures", p.Procedures)
		w.open("drmd:results")
		for _, r := range p.Results {
			e.encodeResult(w, r)
		}
		w.close("drmd:results")
		w.close("drmd:materialProperty")
	}
	w.close("drmd:materialProperties")
}

func (e *Encoder) encodeResult(w *xmlWriter, r document.MeasurementResult) {
	w.open("drmd:result")
	w.leaf("drmd:name", r.Name)
	w.leafIf("drmd:description", r.Description)
	w.open("drmd:quantities")
	for _, q := range r.Quantities {
		encodeQuantity(w, q)
	}
	w.close("drmd:quantities")
	w.close("drmd:result")
}

// encodeQuantity writes one table row: the original display value paired
// with the resolved D-SI unit (or the raw unit when conversion missed), an
// uncertainty block only when an uncertainty is present, and an identifier
// block when the row name resolves to a known substance.
func encodeQuantity(w *xmlWriter, q document.Quantity) {
	w.open("drmd:quantity")
	w.leaf("drmd:name", q.Name)
	w.leafIf("drmd:unit", q.Unit)

	wireUnit := q.DSIUnit
	if wireUnit == "" {
		wireUnit = q.Unit
	}
	w.open("si:real")
	w.leaf("si:value", q.Value)
	w.leaf("si:unit", wireUnit)
	if q.Uncertainty != "" {
		w.open("si:expandedUnc")
		w.leaf("si:uncertainty", q.Uncertainty)
		w.leafIf("si:coverageFactor", q.CoverageFactor)
		w.leafIf("si:coverageProbability", q.CoverageProbability)
		w.leafIf("si:distribution", q.Distribution)
		w.close("si:expandedUnc")
	}
	w.close("si:real")

	encodeIdentifiers(w, enrichIdentifiers(q))
	w.close("drmd:quantity")
}

// enrichIdentifiers appends a CAS identifier when the row name matches a
// known element or substance and no CAS identifier is present yet. A lookup
// miss changes nothing.
func enrichIdentifiers(q document.Quantity) []document.Identifier {
	ids := q.Identifiers
	for _, id := range ids {
		if id.Scheme == elements.Scheme {
			return ids
		}
	}
	substance, ok := elements.Lookup(q.Name)
	if !ok {
		return ids
	}
	return append(append([]document.Identifier(nil), ids...), document.Identifier{
		Scheme: elements.Scheme,
		Value:  substance.CAS,
		Link:   substance.ReferenceLink(),
	})
}

func encodeIdentifiers(w *xmlWriter, ids []document.Identifier) {
	if len(ids) == 0 {
		return
	}
	w.open("dcc:identifications")
	for _, id := range ids {
		w.open("dcc:identification")
		w.leafIf("dcc:scheme", id.Scheme)
		w.leaf("dcc:value", id.Value)
		w.leafIf("dcc:link", id.Link)
		w.close("dcc:identification")
	}
	w.close("dcc:identifications")
}

func (e *Encoder) encodeStatements(w *xmlWriter, s document.Statements) {
	w.open("drmd:statements")
	w.leafIf("drmd:intendedUse", s.IntendedUse)
	w.leafIf("drmd:storageInformation", s.StorageInformation)
	w.leafIf("drmd:handlingInstructions", s.HandlingInstructions)
	w.leafIf("drmd:metrologicalTraceability", s.Traceability)
	w.leafIf("drmd:healthAndSafety", s.HealthAndSafety)
	w.leafIf("drmd:subcontractors", s.Subcontractors)
	w.leafIf("drmd:legalNotice", s.LegalNotice)
	w.leafIf("drmd:referenceToCertificationReport", s.CertificationReport)
	for _, c := range s.Custom {
		w.open("drmd:customStatement")
		w.leaf("drmd:name", c.Name)
		w.leaf("drmd:content", c.Content)
		w.close("drmd:customStatement")
	}
	w.close("drmd:statements")
}

func (e *Encoder) encodeAttachment(w *xmlWriter, att *document.Attachment) {
	if att == nil || len(att.Data) == 0 {
		return
	}
	w.open("drmd:document")
	w.leaf("drmd:fileName", att.Name)
	w.leafIf("drmd:mimeType", att.MimeType)
	w.leaf("drmd:dataBase64", base64.StdEncoding.EncodeToString(att.Data))
	w.close("drmd:document")
}
