// Package testsupport provides shared fixtures for tests across the module:
// a representative extraction payload and a fully populated document.
package testsupport

import (
	"testing"

	"github.com/goliatone/go-drmd/pkg/document"
	"github.com/goliatone/go-drmd/pkg/extraction"
)

// SamplePayloadJSON is a realistic extraction result: duplicated property
// groups, a unit-header fragment table, a footnote-style description, and
// coordinate metadata on several blocks.
const SamplePayloadJSON = `{
  "administrativeData": {
    "title": "Reference Material Certificate",
    "validity": {"kind": "timeAfterDispatch", "years": 1, "months": 18},
    "producers": [
      {
        "name": "Federal Institute for Materials Research",
        "email": "sales@example.org",
        "phone": "+49 30 0000 0",
        "postCode": "D-12205",
        "city": "Berlin",
        "fieldCoordinates": {"name": [1, 120, 80, 140, 520]}
      }
    ],
    "responsiblePersons": [
      {"name": "Dr. A. Person", "role": "Head of Division", "mainSigner": true}
    ]
  },
  "materials": [
    {
      "name": "Trace Elements in Drinking Water",
      "description": "Bottled natural water, acidified.",
      "minimumSampleSize": "100 ml",
      "certified": true,
      "sectionCoordinates": [1, 300, 60, 420, 940]
    }
  ],
  "materialProperties": [
    {
      "name": "Certified Values",
      "certified": true,
      "description": "1) measured at 20°C",
      "results": [
        {
          "name": "in %",
          "quantities": [
            {"name": "Nitrogen", "value": 2.1, "unit": "%", "uncertainty": "0.1"},
            {"name": "Ash", "value": "4.3", "unit": "%", "uncertainty": "0.2"}
          ]
        }
      ]
    },
    {
      "name": "Certified Values",
      "results": [
        {
          "name": "in mg/kg",
          "quantities": [
            {"name": "Lead", "value": "4.9", "unit": "mg/kg", "uncertainty": "0.3"},
            {"name": "Cadmium", "value": "", "unit": "mg/kg", "uncertainty": "< 0.05"},
            {"name": "Mercury", "value": "0.38", "unit": "mg/kg", "uncertainty": "0.04"}
          ]
        }
      ]
    }
  ],
  "statements": {
    "intendedUse": "Quality control of trace element determination.",
    "storageInformation": "Store at ambient temperature in the dark.",
    "handlingInstructions": "Shake well before sampling."
  }
}`

// SamplePayload parses SamplePayloadJSON, failing the test on error.
func SamplePayload(t *testing.T) extraction.Payload {
	t.Helper()
	payload, err := extraction.ParsePayload([]byte(SamplePayloadJSON))
	if err != nil {
		t.Fatalf("parse sample payload: %v", err)
	}
	return payload
}

// SampleDocument returns a fully populated, export-valid document.
func SampleDocument() document.Document {
	doc := document.New()
	admin := &doc.AdministrativeData
	admin.Title = document.KindCertificate
	admin.Validity = document.Validity{
		Kind:   document.ValidityTimeAfterDispatch,
		Years:  2,
		Months: 6,
	}
	admin.Producers = []document.Producer{{
		ID:          document.NewID(),
		Name:        "Institute for Reference Materials",
		Email:       "info@example.org",
		Phone:       "+32 14 571 211",
		Street:      "Retieseweg",
		StreetNo:    "111",
		PostCode:    "2440",
		City:        "Geel",
		CountryCode: "BE",
	}}
	admin.ResponsiblePersons = []document.ResponsiblePerson{{
		ID:         document.NewID(),
		Name:       "Dr. B. Signer",
		Role:       "Unit Head",
		MainSigner: true,
	}}

	doc.Materials = []document.Material{{
		ID:                document.NewID(),
		Name:              "Heavy Metals in Sediment",
		Description:       "Freeze-dried lake sediment.",
		ItemQuantity:      "50 g",
		MinimumSampleSize: "250 mg",
		Certified:         true,
	}}

	doc.MaterialProperties = []document.MaterialProperty{{
		ID:        document.NewID(),
		Name:      "Certified Values",
		Certified: true,
		Results: []document.MeasurementResult{{
			ID:   document.NewID(),
			Name: "Values",
			Quantities: []document.Quantity{
				{
					ID:                  document.NewID(),
					Name:                "Lead",
					Value:               "4.9",
					Unit:                "mg/kg",
					DSIValue:            "4.9",
					DSIUnit:             `\milli\gram\per\kilogram`,
					Uncertainty:         "0.3",
					CoverageFactor:      "2.0",
					CoverageProbability: "0.95",
					Distribution:        "normal",
					Identifiers: []document.Identifier{{
						Scheme: "CAS",
						Value:  "7439-92-1",
						Link:   "https://commonchemistry.cas.org/results?q=7439-92-1",
					}},
				},
				{
					ID:                  document.NewID(),
					Name:                "Cadmium",
					Value:               "< 0.05",
					Unit:                "mg/kg",
					DSIValue:            "< 0.05",
					DSIUnit:             `\milli\gram\per\kilogram`,
					CoverageFactor:      "2.0",
					CoverageProbability: "0.95",
					Distribution:        "normal",
					Identifiers: []document.Identifier{{
						Scheme: "CAS",
						Value:  "7440-43-9",
						Link:   "https://commonchemistry.cas.org/results?q=7440-43-9",
					}},
				},
			},
		}},
	}}

	doc.Statements = document.Statements{
		IntendedUse:          "Quality control of sediment analyses.",
		StorageInformation:   "Store below 25 °C.",
		HandlingInstructions: "Dry before use; weigh at constant humidity.",
		Traceability:         "Values traceable to the SI via gravimetric preparation.",
	}
	doc.Comment = "Issued under accreditation."
	return doc
}
