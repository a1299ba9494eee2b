package flatten

// Classified record types.
const (
	TypeObject  = "object"
	TypeArray   = "array"
	TypeString  = "string"
	TypeNumber  = "number"
	TypeBoolean = "boolean"
	TypeRef     = "ref"
	TypeOneOf   = "oneOf"
	TypeAnyOf   = "anyOf"
	TypeUnknown = "unknown"
)

// RootModel is the model and parent value of the synthetic root record.
const RootModel = "*"

// Record is one flattened row. Variant-specific attributes live in the
// embedded pointers so a record only serializes the keys that apply to it.
type Record struct {
	Field    string   `json:"field"`
	Model    string   `json:"model"`
	Parent   string   `json:"parent"`
	Type     string   `json:"type"`
	Required bool     `json:"required"`
	Sort     string   `json:"sort"`
	Props    []string `json:"props"`

	Metadata

	*RefInfo
	*ArrayInfo
	*UnionInfo
}

// Metadata carries the schema keywords copied verbatim onto a record.
type Metadata struct {
	Description string `json:"description,omitempty"`
	Enum        []any  `json:"enum,omitempty"`
	Format      string `json:"format,omitempty"`
	Pattern     string `json:"pattern,omitempty"`
	MinItems    *int   `json:"minItems,omitempty"`
	MaxItems    *int   `json:"maxItems,omitempty"`
	Example     any    `json:"example,omitempty"`
}

// IsZero reports whether no metadata keyword is set.
func (m Metadata) IsZero() bool {
	return m.Description == "" && len(m.Enum) == 0 && m.Format == "" && m.Pattern == "" &&
		m.MinItems == nil && m.MaxItems == nil && m.Example == nil
}

// RefInfo is attached to records produced from a $ref.
type RefInfo struct {
	Ref string `json:"ref"`
	// RefType is the classified type of the resolved target.
	RefType string `json:"ref_type,omitempty"`
}

// ArrayInfo is attached to array-typed records.
type ArrayInfo struct {
	ItemsType string `json:"items_type"`
	ItemsRef  string `json:"items_ref,omitempty"`
}

// UnionInfo is attached to oneOf/anyOf container records.
type UnionInfo struct {
	OneOfRefs     []string `json:"oneOf_refs"`
	Discriminator any      `json:"discriminator,omitempty"`
}

// IsUnion reports whether the record is a oneOf/anyOf container.
func (r Record) IsUnion() bool {
	return r.Type == TypeOneOf || r.Type == TypeAnyOf
}

// IsRoot reports whether the record is the synthetic root row.
func (r Record) IsRoot() bool {
	return r.Model == RootModel
}

// SkippedRef describes a reference that did not resolve and was dropped from
// the output.
type SkippedRef struct {
	Ref   string `json:"ref"`
	Model string `json:"model"`
}

// Result is the outcome of one flattening pass.
type Result struct {
	Root    string
	Records []Record
	Skipped []SkippedRef
}
