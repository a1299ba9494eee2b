package schema

// Schema is the typed form of a JSON-Schema/OpenAPI schema node restricted to
// the keywords the flattener understands. Decoders build it once; nothing
// downstream mutates it.
type Schema struct {
	Ref           string
	Type          string
	Properties    []Property
	Required      []string
	Items         *Schema
	OneOf         []*Schema
	AnyOf         []*Schema
	Discriminator any

	Description string
	Enum        []any
	Format      string
	Pattern     string
	MinItems    *int
	MaxItems    *int
	Example     any
}

// Property is a named entry of an object schema. Properties keep declaration
// order, which drives the sort keys assigned during flattening.
type Property struct {
	Name   string
	Schema *Schema
}

// IsRef reports whether the node is a reference to a named schema.
func (s *Schema) IsRef() bool {
	return s != nil && s.Ref != ""
}

// HasProperties reports whether the node declares at least one property.
func (s *Schema) HasProperties() bool {
	return s != nil && len(s.Properties) > 0
}

// Property returns the named property schema.
func (s *Schema) Property(name string) (*Schema, bool) {
	if s == nil {
		return nil, false
	}
	for _, prop := range s.Properties {
		if prop.Name == name {
			return prop.Schema, true
		}
	}
	return nil, false
}

// RequiredSet returns the required property names as a lookup set.
func (s *Schema) RequiredSet() map[string]struct{} {
	if s == nil || len(s.Required) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(s.Required))
	for _, name := range s.Required {
		set[name] = struct{}{}
	}
	return set
}

// Definitions is the ordered named-schema map of a document
// (components.schemas in OpenAPI 3, definitions in Swagger 2).
type Definitions struct {
	names   []string
	schemas map[string]*Schema
}

// NewDefinitions returns an empty definitions set.
func NewDefinitions() *Definitions {
	return &Definitions{schemas: make(map[string]*Schema)}
}

// Add registers a named schema. Re-adding a name replaces the schema but keeps
// its original position.
func (d *Definitions) Add(name string, s *Schema) {
	if d.schemas == nil {
		d.schemas = make(map[string]*Schema)
	}
	if s == nil {
		s = &Schema{}
	}
	if _, exists := d.schemas[name]; !exists {
		d.names = append(d.names, name)
	}
	d.schemas[name] = s
}

// Lookup returns the schema registered under name.
func (d *Definitions) Lookup(name string) (*Schema, bool) {
	if d == nil {
		return nil, false
	}
	s, ok := d.schemas[name]
	return s, ok
}

// Names returns schema names in document order.
func (d *Definitions) Names() []string {
	if d == nil {
		return nil
	}
	return append([]string(nil), d.names...)
}

// Len returns the number of named schemas.
func (d *Definitions) Len() int {
	if d == nil {
		return 0
	}
	return len(d.names)
}
