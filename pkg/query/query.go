// Package query filters flat record lists the way the field browser does:
// case-insensitive substring matching on most columns, exact matching on
// paths.
package query

import (
	"fmt"
	"slices"
	"strings"

	"github.com/goliatone/go-schemaflat/pkg/flatten"
)

const (
	requiredLabel = "true required yes"
	optionalLabel = "false optional no"
)

// Filter selects records. Empty fields match everything.
type Filter struct {
	// Field, Type, Required and Enum match as case-insensitive substrings.
	// Required is matched against "true required yes" or "false optional no";
	// Enum against the enum values joined with ", ".
	Field    string
	Type     string
	Required string
	Enum     string

	// Model, Parent and FieldExact must match exactly.
	Model      string
	Parent     string
	FieldExact string
}

// Empty reports whether the filter has no terms.
func (f Filter) Empty() bool {
	return f == Filter{}
}

// Match reports whether rec satisfies every term of f.
func (f Filter) Match(rec flatten.Record) bool {
	switch {
	case f.FieldExact != "" && rec.Field != f.FieldExact:
		return false
	case f.Model != "" && rec.Model != f.Model:
		return false
	case f.Parent != "" && rec.Parent != f.Parent:
		return false
	case !fuzzy(rec.Field, f.Field):
		return false
	case !fuzzy(rec.Type, f.Type):
		return false
	case !fuzzy(RequiredLabel(rec.Required), f.Required):
		return false
	case !fuzzy(JoinEnum(rec.Enum), f.Enum):
		return false
	}
	return true
}

// Apply returns the records matching f in their original order.
func Apply(records []flatten.Record, f Filter) []flatten.Record {
	out := make([]flatten.Record, 0, len(records))
	for _, rec := range records {
		if f.Match(rec) {
			out = append(out, rec)
		}
	}
	return out
}

// RequiredLabel returns the searchable label of a required flag.
func RequiredLabel(required bool) string {
	if required {
		return requiredLabel
	}
	return optionalLabel
}

// JoinEnum renders enum values as one comma separated string.
func JoinEnum(values []any) string {
	parts := make([]string, 0, len(values))
	for _, value := range values {
		parts = append(parts, fmt.Sprint(value))
	}
	return strings.Join(parts, ", ")
}

func fuzzy(value, term string) bool {
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(value), strings.ToLower(term))
}

// Summary describes the active terms, e.g. "Model: Pet.owner, Field: name".
func (f Filter) Summary() string {
	var chips []string
	add := func(label, value string) {
		if value != "" {
			chips = append(chips, label+": "+value)
		}
	}
	add("Model", f.Model)
	add("Parent", f.Parent)
	add("Field", f.FieldExact)
	add("Field", f.Field)
	add("Type", f.Type)
	add("Required", f.Required)
	add("Enum", f.Enum)
	if len(chips) == 0 {
		return "none"
	}
	return strings.Join(chips, ", ")
}

// FilterOptions lists the distinct values offered by the browser's pickers.
type FilterOptions struct {
	Types  []string `json:"types"`
	Fields []string `json:"fields"`
}

// Options collects the sorted distinct types and field names of records.
// Union container types are left out.
func Options(records []flatten.Record) FilterOptions {
	types := make(map[string]struct{})
	fields := make(map[string]struct{})
	for _, rec := range records {
		if rec.Type != "" && rec.Type != flatten.TypeOneOf && rec.Type != flatten.TypeAnyOf {
			types[rec.Type] = struct{}{}
		}
		if rec.Field != "" {
			fields[rec.Field] = struct{}{}
		}
	}
	return FilterOptions{Types: sortedKeys(types), Fields: sortedKeys(fields)}
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for key := range set {
		out = append(out, key)
	}
	slices.Sort(out)
	return out
}

// DeriveProps returns the field names of the records directly below rec,
// falling back to rec.Props when it has no children in records. Children are
// matched on the model path and, for the root record, on the field name.
func DeriveProps(records []flatten.Record, rec flatten.Record) []string {
	var children []string
	for _, child := range records {
		if child.Field == "" {
			continue
		}
		if child.Parent == rec.Model || (rec.Field != "" && child.Parent == rec.Field) {
			if child.Model == rec.Model {
				continue
			}
			children = append(children, child.Field)
		}
	}
	if len(children) > 0 {
		return children
	}
	if rec.Props == nil {
		return []string{}
	}
	return rec.Props
}
