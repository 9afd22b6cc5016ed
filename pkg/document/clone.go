package document

// Clone returns a deep copy of the document. Mutation flows always operate on
// a copy so that no component holds a live reference into a previous tree.
func (d Document) Clone() Document {
	out := d
	out.AdministrativeData = d.AdministrativeData.clone()
	out.Materials = cloneMaterials(d.Materials)
	out.MaterialProperties = cloneProperties(d.MaterialProperties)
	out.Statements = d.Statements.clone()
	if d.Attachment != nil {
		att := *d.Attachment
		att.Data = append([]byte(nil), d.Attachment.Data...)
		out.Attachment = &att
	}
	return out
}

func (a AdministrativeData) clone() AdministrativeData {
	out := a
	out.Producers = make([]Producer, len(a.Producers))
	for i, p := range a.Producers {
		out.Producers[i] = p
		out.Producers[i].Identifiers = cloneIdentifiers(p.Identifiers)
		out.Producers[i].Provenance = p.Provenance.clone()
	}
	out.ResponsiblePersons = make([]ResponsiblePerson, len(a.ResponsiblePersons))
	for i, p := range a.ResponsiblePersons {
		out.ResponsiblePersons[i] = p
		out.ResponsiblePersons[i].Provenance = p.Provenance.clone()
	}
	out.Provenance = a.Provenance.clone()
	return out
}

func (s Statements) clone() Statements {
	out := s
	out.Custom = append([]CustomStatement(nil), s.Custom...)
	out.Provenance = s.Provenance.clone()
	return out
}

func cloneMaterials(in []Material) []Material {
	if in == nil {
		return nil
	}
	out := make([]Material, len(in))
	for i, m := range in {
		out[i] = m
		out[i].Identifiers = cloneIdentifiers(m.Identifiers)
		out[i].Provenance = m.Provenance.clone()
	}
	return out
}

func cloneProperties(in []MaterialProperty) []MaterialProperty {
	if in == nil {
		return nil
	}
	out := make([]MaterialProperty, len(in))
	for i, p := range in {
		out[i] = p
		out[i].Results = cloneResults(p.Results)
		out[i].Provenance = p.Provenance.clone()
	}
	return out
}

func cloneResults(in []MeasurementResult) []MeasurementResult {
	if in == nil {
		return nil
	}
	out := make([]MeasurementResult, len(in))
	for i, r := range in {
		out[i] = r
		out[i].Quantities = cloneQuantities(r.Quantities)
		out[i].Provenance = r.Provenance.clone()
	}
	return out
}

func cloneQuantities(in []Quantity) []Quantity {
	if in == nil {
		return nil
	}
	out := make([]Quantity, len(in))
	for i, q := range in {
		out[i] = q
		out[i].Identifiers = cloneIdentifiers(q.Identifiers)
		out[i].Provenance = q.Provenance.clone()
	}
	return out
}

func cloneIdentifiers(in []Identifier) []Identifier {
	if in == nil {
		return nil
	}
	return append([]Identifier(nil), in...)
}

func (p Provenance) clone() Provenance {
	out := Provenance{}
	if p.FieldCoordinates != nil {
		out.FieldCoordinates = make(map[string]Box, len(p.FieldCoordinates))
		for k, v := range p.FieldCoordinates {
			out.FieldCoordinates[k] = append(Box(nil), v...)
		}
	}
	if p.SectionCoordinates != nil {
		out.SectionCoordinates = append(Box(nil), p.SectionCoordinates...)
	}
	return out
}
