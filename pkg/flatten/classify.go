package flatten

import "github.com/goliatone/go-schemaflat/pkg/schema"

// Classify returns the record type of a schema node. The order of the checks
// decides which expansion routine handles the node:
//
//  1. a $ref classifies as "ref";
//  2. a declared type is returned verbatim, with "integer" folded into "number";
//  3. anyOf, then oneOf;
//  4. properties without a type classify as "object";
//  5. anything else is "unknown".
func Classify(s *schema.Schema) string {
	switch {
	case s == nil:
		return TypeUnknown
	case s.Ref != "":
		return TypeRef
	case s.Type != "":
		if s.Type == "integer" {
			return TypeNumber
		}
		return s.Type
	case len(s.AnyOf) > 0:
		return TypeAnyOf
	case len(s.OneOf) > 0:
		return TypeOneOf
	case s.HasProperties():
		return TypeObject
	default:
		return TypeUnknown
	}
}

// PropertyNames returns the names of the properties declared directly on the
// node, in declaration order.
func PropertyNames(s *schema.Schema) []string {
	if s == nil || len(s.Properties) == 0 {
		return []string{}
	}
	names := make([]string, 0, len(s.Properties))
	for _, prop := range s.Properties {
		names = append(names, prop.Name)
	}
	return names
}
