// Package flatten turns a named schema and the definitions it references into
// a flat, ordered list of field records.
//
// Each record carries a dotted model path (root name first, then property
// names and the structural tags "oneOf"/"anyOf"), the model path of its
// container, and a hierarchical sort key such as "1.2.1". Sorting records by
// key with per-segment numeric comparison restores depth-first declaration
// order, so consumers can rebuild the tree from the flat list.
//
// Basic usage:
//
//	result, err := flatten.Flatten("Pet", defs)
//	if errors.Is(err, flatten.ErrSchemaNotFound) {
//		// unknown root
//	}
//	for _, rec := range result.Records {
//		fmt.Println(rec.Sort, rec.Model, rec.Type)
//	}
//
// Named schemas already entered along the current branch are not expanded
// again, which keeps self-referencing and mutually recursive schemas finite.
// The same schema is still expanded under unrelated branches.
package flatten
