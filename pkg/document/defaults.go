package document

import "github.com/google/uuid"

// NewID returns a fresh globally unique identifier. Identifiers are generated
// once per entity and never reused or shared.
func NewID() string {
	return uuid.NewString()
}

// New creates a blank document with one default producer, one default
// responsible person, and a generated unique identifier.
func New() Document {
	return Document{
		AdministrativeData: AdministrativeData{
			Title:              KindCertificate,
			UniqueIdentifier:   NewID(),
			Validity:           Validity{Kind: ValidityUntilRevoked},
			Producers:          []Producer{NewProducer()},
			ResponsiblePersons: []ResponsiblePerson{NewResponsiblePerson()},
		},
	}
}

// NewProducer returns an empty producer with a fresh identifier.
func NewProducer() Producer {
	return Producer{ID: NewID()}
}

// NewResponsiblePerson returns an empty responsible person with a fresh
// identifier.
func NewResponsiblePerson() ResponsiblePerson {
	return ResponsiblePerson{ID: NewID()}
}

// NewMaterial returns an empty material with a fresh identifier.
func NewMaterial() Material {
	return Material{ID: NewID()}
}

// NewMaterialProperty returns an empty property group with a fresh
// identifier.
func NewMaterialProperty() MaterialProperty {
	return MaterialProperty{ID: NewID()}
}

// NewMeasurementResult returns an empty result table with a fresh identifier.
func NewMeasurementResult() MeasurementResult {
	return MeasurementResult{ID: NewID()}
}

// NewQuantity returns an empty quantity row with a fresh identifier.
func NewQuantity() Quantity {
	return Quantity{ID: NewID()}
}
