package extraction

import (
	"strings"

	"github.com/goliatone/go-drmd/pkg/document"
	"github.com/goliatone/go-drmd/pkg/units"
)

// Quantity row defaults applied when the extraction leaves the expanded
// uncertainty parameters blank.
const (
	defaultCoverageFactor      = "2.0"
	defaultCoverageProbability = "0.95"
	defaultDistribution        = "normal"
)

// Normalizer upgrades loose extraction payloads into canonical document
// subtrees. It never rejects malformed data; fields degrade to defaults.
type Normalizer struct {
	converter  *units.Converter
	localities []LocalityRule
}

// Option customises the normalizer.
type Option func(*Normalizer)

// WithConverter injects a custom unit converter.
func WithConverter(converter *units.Converter) Option {
	return func(n *Normalizer) {
		if converter != nil {
			n.converter = converter
		}
	}
}

// WithLocalityRules replaces the locality→country correction table.
func WithLocalityRules(rules []LocalityRule) Option {
	return func(n *Normalizer) {
		n.localities = rules
	}
}

// New constructs a Normalizer with the default converter and rule tables.
func New(options ...Option) *Normalizer {
	n := &Normalizer{
		converter:  units.Default(),
		localities: defaultLocalityRules,
	}
	for _, opt := range options {
		if opt != nil {
			opt(n)
		}
	}
	return n
}

// Apply merges a payload into a document and returns the resulting tree. The
// input document is never mutated. Incoming lists replace existing ones only
// when non-empty so a sparse extraction cannot clear user-entered data.
func (n *Normalizer) Apply(doc document.Document, payload Payload) document.Document {
	out := doc.Clone()

	if payload.AdministrativeData != nil {
		n.applyAdministrativeData(&out.AdministrativeData, *payload.AdministrativeData)
	}
	if len(payload.Materials) > 0 {
		out.Materials = n.materials(payload.Materials)
	}
	if len(payload.MaterialProperties) > 0 {
		out.MaterialProperties = n.mergeProperties(payload.MaterialProperties)
	}
	if payload.Statements != nil {
		applyStatements(&out.Statements, *payload.Statements)
	}
	if comment := sanitizeText(payload.Comment.String()); comment != "" {
		out.Comment = comment
	}
	return out
}

func (n *Normalizer) applyAdministrativeData(admin *document.AdministrativeData, in AdministrativeData) {
	if title := in.Title.String(); title != "" {
		admin.Title = document.DocumentKind(title)
	}
	if in.Validity != nil {
		admin.Validity = normalizeValidity(*in.Validity)
	}
	if len(in.Producers) > 0 {
		producers := make([]document.Producer, 0, len(in.Producers))
		for _, p := range in.Producers {
			producers = append(producers, n.producer(p))
		}
		admin.Producers = producers
	}
	if len(in.ResponsiblePersons) > 0 {
		persons := make([]document.ResponsiblePerson, 0, len(in.ResponsiblePersons))
		for _, p := range in.ResponsiblePersons {
			persons = append(persons, person(p))
		}
		admin.ResponsiblePersons = persons
	}
	if prov := provenance(in.Provenance); prov.FieldCoordinates != nil || prov.SectionCoordinates != nil {
		admin.Provenance = prov
	}
}

// normalizeValidity carries excess months into years and rewrites MM/YYYY
// specific-time tokens to the last day of that month. An absent kind is
// inferred from which fields are populated.
func normalizeValidity(in Validity) document.Validity {
	kind := document.ValidityKind(strings.TrimSpace(in.Kind))
	years, months := int(in.Years), int(in.Months)
	date := in.Date.String()

	if kind == "" {
		switch {
		case years > 0 || months > 0:
			kind = document.ValidityTimeAfterDispatch
		case date != "":
			kind = document.ValiditySpecificTime
		default:
			kind = document.ValidityUntilRevoked
		}
	}

	out := document.Validity{Kind: kind}
	switch kind {
	case document.ValidityTimeAfterDispatch:
		out.Years, out.Months = carryMonths(years, months)
		out.DispatchDate = in.DispatchDate.String()
	case document.ValiditySpecificTime:
		if rewritten, ok := monthEndDate(date); ok {
			date = rewritten
		}
		out.Date = date
	}
	return out
}

func (n *Normalizer) producer(in Producer) document.Producer {
	out := document.NewProducer()
	out.Name = in.Name.String()
	out.Email = in.Email.String()
	out.Phone = in.Phone.String()
	out.Fax = in.Fax.String()
	out.Street = in.Street.String()
	out.StreetNo = in.StreetNo.String()
	out.PostCode = sanitizePostCode(in.PostCode.String())
	out.City = in.City.String()
	out.CountryCode = strings.ToUpper(in.CountryCode.String())
	if country, ok := countryForCity(n.localities, out.City); ok {
		out.CountryCode = country
	}
	out.Provenance = provenance(in.Provenance)
	return out
}

func person(in ResponsiblePerson) document.ResponsiblePerson {
	out := document.NewResponsiblePerson()
	out.Name = in.Name.String()
	out.Role = in.Role.String()
	out.Description = sanitizeText(in.Description.String())
	out.MainSigner = in.MainSigner
	out.ElectronicSeal = in.ElectronicSeal
	out.ElectronicSignature = in.ElectronicSignature
	out.Provenance = provenance(in.Provenance)
	return out
}

func (n *Normalizer) materials(in []Material) []document.Material {
	out := make([]document.Material, 0, len(in))
	for _, m := range in {
		material := document.NewMaterial()
		material.Name = m.Name.String()
		material.Class = m.Class.String()
		material.Description = sanitizeText(m.Description.String())
		material.ItemQuantity = m.ItemQuantity.String()
		material.MinimumSampleSize = m.MinimumSampleSize.String()
		material.Certified = m.Certified
		material.Provenance = provenance(m.Provenance)
		out = append(out, material)
	}
	return out
}

// mergeProperties reconciles duplicated and fragmented property groups into
// the canonical property/result hierarchy:
//
//  1. properties sharing a normalized name key collapse into the first-seen
//     entry, later duplicates contributing only their results;
//  2. a result whose name is only a unit header merges its quantities into
//     the property's first result instead of opening a new table;
//  3. footnote-style property descriptions relocate onto the first result.
func (n *Normalizer) mergeProperties(in []MaterialProperty) []document.MaterialProperty {
	var order []string
	canonical := make(map[string]*document.MaterialProperty)

	for _, p := range in {
		key := propertyKey(p.Name.String())
		target, seen := canonical[key]
		if !seen {
			prop := document.NewMaterialProperty()
			prop.Name = p.Name.String()
			prop.Certified = p.Certified
			prop.Description = sanitizeText(p.Description.String())
			prop.Procedures = sanitizeText(p.Procedures.String())
			prop.Provenance = provenance(p.Provenance)
			canonical[key] = &prop
			order = append(order, key)
			target = &prop
		}

		for _, r := range p.Results {
			n.mergeResult(target, r)
		}
	}

	out := make([]document.MaterialProperty, 0, len(order))
	for _, key := range order {
		prop := canonical[key]
		relocateFootnote(prop)
		out = append(out, *prop)
	}
	return out
}

// mergeResult appends an incoming result to a property, folding unit-header
// fragments into the property's first table.
func (n *Normalizer) mergeResult(prop *document.MaterialProperty, in MeasurementResult) {
	quantities := make([]document.Quantity, 0, len(in.Quantities))
	for _, q := range in.Quantities {
		quantities = append(quantities, n.quantity(q))
	}

	if len(prop.Results) > 0 && isFragmentHeader(in.Name.String()) {
		first := &prop.Results[0]
		first.Quantities = append(first.Quantities, quantities...)
		if desc := sanitizeText(in.Description.String()); desc != "" {
			first.Description = joinLines(first.Description, desc)
		}
		return
	}

	result := document.NewMeasurementResult()
	result.Name = defaultResultName(in.Name.String())
	result.Description = sanitizeText(in.Description.String())
	result.Quantities = quantities
	result.Provenance = provenance(in.Provenance)
	prop.Results = append(prop.Results, result)
}

// relocateFootnote moves a footnote-style property description onto the
// property's first result. Without a result the description stays in place.
func relocateFootnote(prop *document.MaterialProperty) {
	if prop.Description == "" || !isFootnote(prop.Description) || len(prop.Results) == 0 {
		return
	}
	first := &prop.Results[0]
	first.Description = joinLines(prop.Description, first.Description)
	prop.Description = ""
}

// quantity upgrades one loose row: comparison expressions stranded in the
// uncertainty column are promoted into the value, D-SI fields are derived,
// and absent uncertainty parameters receive their conventional defaults.
func (n *Normalizer) quantity(in Quantity) document.Quantity {
	out := document.NewQuantity()
	out.Name = in.Name.String()
	out.Value = in.Value.String()
	out.Unit = in.Unit.String()
	out.Uncertainty = in.Uncertainty.String()

	if out.Value == "" && isComparison(out.Uncertainty) {
		out.Value = out.Uncertainty
		out.Uncertainty = ""
	}

	converted := n.converter.Convert(out.Value, out.Unit)
	out.DSIValue = converted.DSIValue
	out.DSIUnit = converted.DSIUnit

	out.CoverageFactor = orDefault(in.CoverageFactor.String(), defaultCoverageFactor)
	out.CoverageProbability = orDefault(in.CoverageProbability.String(), defaultCoverageProbability)
	out.Distribution = orDefault(in.Distribution.String(), defaultDistribution)
	out.Provenance = provenance(in.Provenance)
	return out
}

func applyStatements(out *document.Statements, in Statements) {
	setIfPresent(&out.IntendedUse, in.IntendedUse)
	setIfPresent(&out.StorageInformation, in.StorageInformation)
	setIfPresent(&out.HandlingInstructions, in.HandlingInstructions)
	setIfPresent(&out.Traceability, in.Traceability)
	setIfPresent(&out.HealthAndSafety, in.HealthAndSafety)
	setIfPresent(&out.Subcontractors, in.Subcontractors)
	setIfPresent(&out.LegalNotice, in.LegalNotice)
	setIfPresent(&out.CertificationReport, in.CertificationReport)
	if len(in.Custom) > 0 {
		custom := make([]document.CustomStatement, 0, len(in.Custom))
		for _, c := range in.Custom {
			name := c.Name.String()
			content := sanitizeText(c.Content.String())
			if name == "" && content == "" {
				continue
			}
			custom = append(custom, document.CustomStatement{
				ID:      document.NewID(),
				Name:    name,
				Content: content,
			})
		}
		if len(custom) > 0 {
			out.Custom = custom
		}
	}
	if prov := provenance(in.Provenance); prov.FieldCoordinates != nil || prov.SectionCoordinates != nil {
		out.Provenance = prov
	}
}

func setIfPresent(dst *string, src FlexString) {
	if text := sanitizeText(src.String()); text != "" {
		*dst = text
	}
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func joinLines(parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, "\n")
}

// provenance converts loose coordinate metadata into the document form. The
// tuples are opaque; no geometric interpretation happens here.
func provenance(in Provenance) document.Provenance {
	out := document.Provenance{}
	if len(in.FieldCoordinates) > 0 {
		out.FieldCoordinates = make(map[string]document.Box, len(in.FieldCoordinates))
		for field, box := range in.FieldCoordinates {
			out.FieldCoordinates[field] = append(document.Box(nil), box...)
		}
	}
	if len(in.SectionCoordinates) > 0 {
		out.SectionCoordinates = append(document.Box(nil), in.SectionCoordinates...)
	}
	return out
}
