package schema

// FormField is the display description of one field.
type FormField struct {
	Name     string          `json:"name"`
	Type     Kind            `json:"type"`
	Required bool            `json:"required"`
	Default  any             `json:"default,omitempty"`
	Selector *EntitySelector `json:"selector,omitempty"`
}

// EntitySelector narrows an entity field to its domains and, when known, the
// entities available in them.
type EntitySelector struct {
	Domain  []string `json:"domain"`
	Options []string `json:"options,omitempty"`
}

// Catalog lists known entity ids per domain.
type Catalog map[string][]string

// Form renders the schema for display. catalog may be nil.
func (s Schema) Form(catalog Catalog) []FormField {
	out := make([]FormField, 0, len(s.fields))
	for _, f := range s.fields {
		ff := FormField{
			Name:     f.Key,
			Type:     f.Kind,
			Required: f.Required,
			Default:  f.Default,
		}
		if f.Kind == KindEntity {
			sel := &EntitySelector{Domain: append([]string(nil), f.Domains...)}
			for _, d := range f.Domains {
				sel.Options = append(sel.Options, catalog[d]...)
			}
			ff.Selector = sel
		}
		out = append(out, ff)
	}
	return out
}
