package scoring

import "strings"

// Product is one raw catalog record as decoded from JSON. Records carry
// arbitrary vendor fields; the scorers read only the handful they know
// about and tolerate any field being absent or of the wrong type.
type Product map[string]any

// Raw input fields read by the scorers.
const (
	FieldVOC             = "volatile_organic_compounds"
	FieldSubstances      = "substances_of_concern"
	FieldRecycledContent = "recycled_content_percentage"
	FieldRecyclable      = "recyclable_percentage"
	FieldLifespan        = "expected_lifespan_years"
	FieldReusable        = "reusable"
	FieldCertifications  = "certifications"
	FieldIndependentLCA  = "independent_lca"
)

// stringField returns the trimmed string value of a field, or "" when the
// field is absent, null, or not a string.
func (p Product) stringField(key string) string {
	v, ok := p[key]
	if !ok || v == nil {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s)
}

// CertificationNames extracts the trimmed, non-empty certification names
// from the product's certifications list. Entries that are not objects,
// lack a "certification" key, or name a blank certification are skipped.
func (p Product) CertificationNames() []string {
	var names []string
	appendEntry := func(entry map[string]any) {
		raw, ok := entry["certification"].(string)
		if !ok {
			return
		}
		if name := strings.TrimSpace(raw); name != "" {
			names = append(names, name)
		}
	}

	switch list := p[FieldCertifications].(type) {
	case []any:
		for _, item := range list {
			if entry, ok := item.(map[string]any); ok {
				appendEntry(entry)
			}
		}
	case []map[string]any:
		for _, entry := range list {
			appendEntry(entry)
		}
	}
	return names
}
