package render

import (
	"github.com/goliatone/go-schemaflat/pkg/flatten"
)

// DisplayType renders a record's type the way field tables show it:
// referenced schema names for references, array[T] for arrays and
// type(format) for formatted scalars.
func DisplayType(rec flatten.Record) string {
	switch {
	case rec.Type == flatten.TypeRef && rec.RefInfo != nil:
		return flatten.RefName(rec.Ref)
	case rec.Type == flatten.TypeArray && rec.ArrayInfo != nil:
		items := rec.ItemsType
		if rec.ItemsRef != "" {
			items = flatten.RefName(rec.ItemsRef)
		}
		return "array[" + items + "]"
	case rec.Format != "":
		return rec.Type + "(" + rec.Format + ")"
	}
	return rec.Type
}
