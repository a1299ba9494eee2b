package flatten

import (
	"strings"

	"github.com/goliatone/go-schemaflat/pkg/schema"
)

// Resolve looks up the named schema a reference points to. The last segment
// of the pointer is taken as the schema name, so both
// "#/components/schemas/Pet" and "#/definitions/Pet" resolve to "Pet".
// It never follows the target's own reference.
func Resolve(ref string, defs *schema.Definitions) (*schema.Schema, string, bool) {
	name := RefName(ref)
	if name == "" {
		return nil, "", false
	}
	target, ok := defs.Lookup(name)
	if !ok {
		return nil, name, false
	}
	return target, name, true
}

// RefName returns the bare schema name at the end of a reference pointer.
func RefName(ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}
	if idx := strings.LastIndex(ref, "/"); idx >= 0 {
		ref = ref[idx+1:]
	}
	return unescapePointer(ref)
}

// unescapePointer decodes the JSON pointer escapes ~1 and ~0, in that order.
func unescapePointer(segment string) string {
	if !strings.Contains(segment, "~") {
		return segment
	}
	segment = strings.ReplaceAll(segment, "~1", "/")
	return strings.ReplaceAll(segment, "~0", "~")
}
