package codec

import (
	"encoding/base64"
	"encoding/xml"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goliatone/go-drmd/pkg/document"
	"github.com/goliatone/go-drmd/pkg/units"
)

// ErrMalformedDocument marks XML that cannot be parsed at all. It is the only
// hard failure in the codec; absent optional elements decode to the document
// model's defaults instead.
var ErrMalformedDocument = errors.New("codec: malformed document")

// Decoder rebuilds a document tree from wire XML.
type Decoder struct {
	converter *units.Converter
}

// DecoderOption customises a Decoder.
type DecoderOption func(*Decoder)

// WithDecoderConverter injects the unit converter used to re-derive D-SI
// fields after decoding.
func WithDecoderConverter(converter *units.Converter) DecoderOption {
	return func(d *Decoder) {
		if converter != nil {
			d.converter = converter
		}
	}
}

// NewDecoder constructs a Decoder using the default unit converter.
func NewDecoder(options ...DecoderOption) *Decoder {
	d := &Decoder{converter: units.Default()}
	for _, opt := range options {
		if opt != nil {
			opt(d)
		}
	}
	return d
}

// Wire structs match element local names; the tolerant reader accepts any
// namespace prefix bound to them.
type wireRoot struct {
	XMLName       xml.Name        `xml:"digitalReferenceMaterialDocument"`
	SchemaVersion string          `xml:"schemaVersion,attr"`
	Admin         wireAdmin       `xml:"administrativeData"`
	Materials     []wireMaterial  `xml:"materials>material"`
	Properties    []wireProperty  `xml:"materialProperties>materialProperty"`
	Statements    wireStatements  `xml:"statements"`
	Comment       string          `xml:"comment"`
	Attachment    *wireAttachment `xml:"document"`
}

type wireAdmin struct {
	Title            string           `xml:"coreData>titleOfTheDocument"`
	UniqueIdentifier string           `xml:"coreData>uniqueIdentifier"`
	Validity         wireValidity     `xml:"coreData>validity"`
	Producers        []wireProducer   `xml:"producers>producer"`
	RespPersons      []wireRespPerson `xml:"respPersons>respPerson"`
}

type wireValidity struct {
	UntilRevoked string `xml:"isValidUntilRevoked"`
	Period       string `xml:"periodOfValidity"`
	DispatchDate string `xml:"dateOfDispatch"`
	ValidUntil   string `xml:"validUntil"`
}

type wireProducer struct {
	Name            string               `xml:"name"`
	Email           string               `xml:"eMail"`
	Phone           string               `xml:"phone"`
	Fax             string               `xml:"fax"`
	Street          string               `xml:"location>street"`
	StreetNo        string               `xml:"location>streetNo"`
	PostCode        string               `xml:"location>postCode"`
	City            string               `xml:"location>city"`
	CountryCode     string               `xml:"location>countryCode"`
	Identifications []wireIdentification `xml:"identifications>identification"`
}

type wireRespPerson struct {
	Name                string `xml:"name"`
	Role                string `xml:"role"`
	Description         string `xml:"description"`
	MainSigner          string `xml:"mainSigner"`
	ElectronicSeal      string `xml:"cryptElectronicSeal"`
	ElectronicSignature string `xml:"cryptElectronicSignature"`
}

type wireIdentification struct {
	Scheme string `xml:"scheme"`
	Value  string `xml:"value"`
	Link   string `xml:"link"`
}

type wireMaterial struct {
	Name              string               `xml:"name"`
	Class             string               `xml:"materialClass"`
	Description       string               `xml:"description"`
	Certified         string               `xml:"isCertified"`
	ItemQuantity      *wirePrimitive       `xml:"itemQuantity"`
	MinimumSampleSize *wirePrimitive       `xml:"minimumSampleSize"`
	Identifications   []wireIdentification `xml:"identifications>identification"`
}

type wirePrimitive struct {
	Real       *wireReal `xml:"real"`
	NoQuantity *string   `xml:"noQuantity"`
}

type wireReal struct {
	Label       string   `xml:"label"`
	Value       string   `xml:"value"`
	Unit        string   `xml:"unit"`
	ExpandedUnc *wireUnc `xml:"expandedUnc"`
}

type wireUnc struct {
	Uncertainty         string `xml:"uncertainty"`
	CoverageFactor      string `xml:"coverageFactor"`
	CoverageProbability string `xml:"coverageProbability"`
	Distribution        string `xml:"distribution"`
}

type wireProperty struct {
	Name        string       `xml:"name"`
	Certified   string       `xml:"isCertified"`
	Description string       `xml:"description"`
	Procedures  string       `xml:"procedures"`
	Results     []wireResult `xml:"results>result"`
}

type wireResult struct {
	Name        string         `xml:"name"`
	Description string         `xml:"description"`
	Quantities  []wireQuantity `xml:"quantities>quantity"`
}

type wireQuantity struct {
	Name            string               `xml:"name"`
	Unit            string               `xml:"unit"`
	Real            *wireReal            `xml:"real"`
	Identifications []wireIdentification `xml:"identifications>identification"`
}

type wireStatements struct {
	IntendedUse          string                `xml:"intendedUse"`
	StorageInformation   string                `xml:"storageInformation"`
	HandlingInstructions string                `xml:"handlingInstructions"`
	Traceability         string                `xml:"metrologicalTraceability"`
	HealthAndSafety      string                `xml:"healthAndSafety"`
	Subcontractors       string                `xml:"subcontractors"`
	LegalNotice          string                `xml:"legalNotice"`
	CertificationReport  string                `xml:"referenceToCertificationReport"`
	Custom               []wireCustomStatement `xml:"customStatement"`
}

type wireCustomStatement struct {
	Name    string `xml:"name"`
	Content string `xml:"content"`
}

type wireAttachment struct {
	FileName   string `xml:"fileName"`
	MimeType   string `xml:"mimeType"`
	DataBase64 string `xml:"dataBase64"`
}

// Decode parses wire XML back into a document tree. Entity identifiers are
// regenerated, absent optional elements fall back to defaults, and only
// unparsable markup fails.
func (d *Decoder) Decode(raw []byte) (document.Document, error) {
	var root wireRoot
	if err := xml.Unmarshal(raw, &root); err != nil {
		return document.Document{}, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}

	doc := document.Document{
		AdministrativeData: d.decodeAdmin(root.Admin),
		Statements:         decodeStatements(root.Statements),
		Comment:            strings.TrimSpace(root.Comment),
	}
	for _, m := range root.Materials {
		doc.Materials = append(doc.Materials, d.decodeMaterial(m))
	}
	for _, p := range root.Properties {
		doc.MaterialProperties = append(doc.MaterialProperties, d.decodeProperty(p))
	}
	doc.Attachment = decodeAttachment(root.Attachment)
	return doc, nil
}

func (d *Decoder) decodeAdmin(in wireAdmin) document.AdministrativeData {
	admin := document.AdministrativeData{
		Title:            document.DocumentKind(strings.TrimSpace(in.Title)),
		UniqueIdentifier: strings.TrimSpace(in.UniqueIdentifier),
		Validity:         decodeValidity(in.Validity),
	}
	if admin.UniqueIdentifier == "" {
		admin.UniqueIdentifier = document.NewID()
	}
	for _, p := range in.Producers {
		admin.Producers = append(admin.Producers, decodeProducer(p))
	}
	for _, p := range in.RespPersons {
		admin.ResponsiblePersons = append(admin.ResponsiblePersons, decodeRespPerson(p))
	}
	return admin
}

var periodPattern = regexp.MustCompile(`^P(?:([0-9]+)Y)?(?:([0-9]+)M)?$`)

// decodeValidity rebuilds the tagged union by checking which of the three
// alternative elements is present.
func decodeValidity(in wireValidity) document.Validity {
	switch {
	case strings.TrimSpace(in.Period) != "":
		out := document.Validity{
			Kind:         document.ValidityTimeAfterDispatch,
			DispatchDate: strings.TrimSpace(in.DispatchDate),
		}
		if match := periodPattern.FindStringSubmatch(strings.TrimSpace(in.Period)); match != nil {
			out.Years, _ = strconv.Atoi(match[1])
			out.Months, _ = strconv.Atoi(match[2])
		}
		return out
	case strings.TrimSpace(in.ValidUntil) != "":
		return document.Validity{
			Kind: document.ValiditySpecificTime,
			Date: strings.TrimSpace(in.ValidUntil),
		}
	default:
		return document.Validity{Kind: document.ValidityUntilRevoked}
	}
}

func decodeProducer(in wireProducer) document.Producer {
	out := document.NewProducer()
	out.Name = strings.TrimSpace(in.Name)
	out.Email = strings.TrimSpace(in.Email)
	out.Phone = strings.TrimSpace(in.Phone)
	out.Fax = strings.TrimSpace(in.Fax)
	out.Street = strings.TrimSpace(in.Street)
	out.StreetNo = strings.TrimSpace(in.StreetNo)
	out.PostCode = strings.TrimSpace(in.PostCode)
	out.City = strings.TrimSpace(in.City)
	out.CountryCode = strings.TrimSpace(in.CountryCode)
	out.Identifiers = decodeIdentifiers(in.Identifications)
	return out
}

func decodeRespPerson(in wireRespPerson) document.ResponsiblePerson {
	out := document.NewResponsiblePerson()
	out.Name = strings.TrimSpace(in.Name)
	out.Role = strings.TrimSpace(in.Role)
	out.Description = strings.TrimSpace(in.Description)
	out.MainSigner = parseBool(in.MainSigner)
	out.ElectronicSeal = parseBool(in.ElectronicSeal)
	out.ElectronicSignature = parseBool(in.ElectronicSignature)
	return out
}

func (d *Decoder) decodeMaterial(in wireMaterial) document.Material {
	out := document.NewMaterial()
	out.Name = strings.TrimSpace(in.Name)
	out.Class = strings.TrimSpace(in.Class)
	out.Description = strings.TrimSpace(in.Description)
	out.Certified = parseBool(in.Certified)
	out.ItemQuantity = decodePrimitive(in.ItemQuantity)
	out.MinimumSampleSize = decodePrimitive(in.MinimumSampleSize)
	out.Identifiers = decodeIdentifiers(in.Identifications)
	return out
}

// decodePrimitive restores a primitive quantity string from whichever of the
// two structural alternatives is present.
func decodePrimitive(in *wirePrimitive) string {
	if in == nil {
		return ""
	}
	if in.Real != nil {
		if label := strings.TrimSpace(in.Real.Label); label != "" {
			return label
		}
		return strings.TrimSpace(strings.TrimSpace(in.Real.Value) + " " + strings.TrimSpace(in.Real.Unit))
	}
	if in.NoQuantity != nil {
		return strings.TrimSpace(*in.NoQuantity)
	}
	return ""
}

func (d *Decoder) decodeProperty(in wireProperty) document.MaterialProperty {
	out := document.NewMaterialProperty()
	out.Name = strings.TrimSpace(in.Name)
	out.Certified = parseBool(in.Certified)
	out.Description = strings.TrimSpace(in.Description)
	out.Procedures = strings.TrimSpace(in.Procedures)
	for _, r := range in.Results {
		out.Results = append(out.Results, d.decodeResult(r))
	}
	return out
}

func (d *Decoder) decodeResult(in wireResult) document.MeasurementResult {
	out := document.NewMeasurementResult()
	out.Name = strings.TrimSpace(in.Name)
	out.Description = strings.TrimSpace(in.Description)
	for _, q := range in.Quantities {
		out.Quantities = append(out.Quantities, d.decodeQuantity(q))
	}
	return out
}

// decodeQuantity restores one table row. The display unit re-derives the
// D-SI fields through the converter; a D-SI symbolic unit on the wire with no
// display unit passes through the converter's idempotence rule instead.
func (d *Decoder) decodeQuantity(in wireQuantity) document.Quantity {
	out := document.NewQuantity()
	out.Name = strings.TrimSpace(in.Name)
	out.Unit = strings.TrimSpace(in.Unit)

	unitInput := out.Unit
	if in.Real != nil {
		out.Value = strings.TrimSpace(in.Real.Value)
		if unitInput == "" {
			wireUnit := strings.TrimSpace(in.Real.Unit)
			if strings.HasPrefix(wireUnit, units.Marker) {
				unitInput = wireUnit
			} else {
				out.Unit = wireUnit
				unitInput = wireUnit
			}
		}
		if in.Real.ExpandedUnc != nil {
			out.Uncertainty = strings.TrimSpace(in.Real.ExpandedUnc.Uncertainty)
			out.CoverageFactor = strings.TrimSpace(in.Real.ExpandedUnc.CoverageFactor)
			out.CoverageProbability = strings.TrimSpace(in.Real.ExpandedUnc.CoverageProbability)
			out.Distribution = strings.TrimSpace(in.Real.ExpandedUnc.Distribution)
		}
	}

	converted := d.converter.Convert(out.Value, unitInput)
	out.DSIValue = converted.DSIValue
	out.DSIUnit = converted.DSIUnit

	if out.CoverageFactor == "" {
		out.CoverageFactor = "2.0"
	}
	if out.CoverageProbability == "" {
		out.CoverageProbability = "0.95"
	}
	if out.Distribution == "" {
		out.Distribution = "normal"
	}
	out.Identifiers = decodeIdentifiers(in.Identifications)
	return out
}

func decodeIdentifiers(in []wireIdentification) []document.Identifier {
	if len(in) == 0 {
		return nil
	}
	out := make([]document.Identifier, 0, len(in))
	for _, id := range in {
		out = append(out, document.Identifier{
			Scheme: strings.TrimSpace(id.Scheme),
			Value:  strings.TrimSpace(id.Value),
			Link:   strings.TrimSpace(id.Link),
		})
	}
	return out
}

func decodeStatements(in wireStatements) document.Statements {
	out := document.Statements{
		IntendedUse:          strings.TrimSpace(in.IntendedUse),
		StorageInformation:   strings.TrimSpace(in.StorageInformation),
		HandlingInstructions: strings.TrimSpace(in.HandlingInstructions),
		Traceability:         strings.TrimSpace(in.Traceability),
		HealthAndSafety:      strings.TrimSpace(in.HealthAndSafety),
		Subcontractors:       strings.TrimSpace(in.Subcontractors),
		LegalNotice:          strings.TrimSpace(in.LegalNotice),
		CertificationReport:  strings.TrimSpace(in.CertificationReport),
	}
	for _, c := range in.Custom {
		name := strings.TrimSpace(c.Name)
		content := strings.TrimSpace(c.Content)
		if name == "" && content == "" {
			continue
		}
		out.Custom = append(out.Custom, document.CustomStatement{
			ID:      document.NewID(),
			Name:    name,
			Content: content,
		})
	}
	return out
}

// decodeAttachment restores the optional embedded document. Undecodable
// base64 degrades to no attachment rather than failing the parse.
func decodeAttachment(in *wireAttachment) *document.Attachment {
	if in == nil {
		return nil
	}
	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(in.DataBase64))
	if err != nil || len(data) == 0 {
		return nil
	}
	return &document.Attachment{
		Name:     strings.TrimSpace(in.FileName),
		MimeType: strings.TrimSpace(in.MimeType),
		Data:     data,
	}
}

func parseBool(raw string) bool {
	return strings.EqualFold(strings.TrimSpace(raw), "true")
}
