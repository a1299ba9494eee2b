package flatten

import (
	"strconv"

	"github.com/goliatone/go-schemaflat/pkg/schema"
)

// walker owns the output of a single flattening pass. Records are appended
// in traversal order and never modified afterwards.
type walker struct {
	defs    *schema.Definitions
	records []Record
	skipped []SkippedRef
}

type recordOption func(*Record)

func withMetadata(meta Metadata) recordOption {
	return func(rec *Record) {
		rec.Metadata = meta
	}
}

func withRef(ref, refType string) recordOption {
	return func(rec *Record) {
		rec.RefInfo = &RefInfo{Ref: ref, RefType: refType}
	}
}

func withArray(itemsType, itemsRef string) recordOption {
	return func(rec *Record) {
		rec.ArrayInfo = &ArrayInfo{ItemsType: itemsType, ItemsRef: itemsRef}
	}
}

func withUnion(refs []string, discriminator any) recordOption {
	return func(rec *Record) {
		if refs == nil {
			refs = []string{}
		}
		rec.UnionInfo = &UnionInfo{OneOfRefs: refs, Discriminator: discriminator}
	}
}

// emit is the only place records are appended. base carries the mandatory
// attributes; options attach metadata and the variant-specific extensions.
func (w *walker) emit(base Record, options ...recordOption) {
	rec := Record{
		Field:    base.Field,
		Model:    base.Model,
		Parent:   base.Parent,
		Type:     base.Type,
		Required: base.Required,
		Sort:     base.Sort,
		Props:    base.Props,
	}
	if rec.Props == nil {
		rec.Props = []string{}
	}
	for _, opt := range options {
		if opt != nil {
			opt(&rec)
		}
	}
	w.records = append(w.records, rec)
}

// skip records a reference that did not resolve at the given position.
func (w *walker) skip(ref, model string) {
	w.skipped = append(w.skipped, SkippedRef{Ref: ref, Model: model})
}

// childKey appends a 1-based segment to a sort key.
func childKey(prefix string, index int) string {
	return prefix + "." + strconv.Itoa(index)
}
