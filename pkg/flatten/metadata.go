package flatten

import (
	"strings"

	"github.com/goliatone/go-schemaflat/pkg/schema"
)

// CopyMetadata extracts the recognised metadata keywords from a schema node.
// Slices and pointers are copied so records never alias the input document.
func CopyMetadata(s *schema.Schema) Metadata {
	if s == nil {
		return Metadata{}
	}
	meta := Metadata{
		Description: s.Description,
		Format:      s.Format,
		Pattern:     s.Pattern,
		Example:     s.Example,
	}
	if len(s.Enum) > 0 {
		meta.Enum = append([]any(nil), s.Enum...)
	}
	if s.MinItems != nil {
		value := *s.MinItems
		meta.MinItems = &value
	}
	if s.MaxItems != nil {
		value := *s.MaxItems
		meta.MaxItems = &value
	}
	return meta
}

// MergeDescription combines a property's own description with the
// description of the schema it references. The local text wins when the
// referenced text is already contained in it.
func MergeDescription(local, referenced string) string {
	switch {
	case referenced == "":
		return local
	case local == "":
		return referenced
	}
	trimmed := strings.TrimSpace(referenced)
	if trimmed == "" || strings.Contains(local, trimmed) {
		return local
	}
	return local + " " + referenced
}
