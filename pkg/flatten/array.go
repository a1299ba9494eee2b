package flatten

import "github.com/goliatone/go-schemaflat/pkg/schema"

// expandArray emits the record of an array property and walks its item
// schema at the array's own path when the items are structured.
func (w *walker) expandArray(field string, node *schema.Schema, model, parent string, required bool, stack *visited, key string) {
	items := node.Items

	itemsType := TypeUnknown
	itemsRef := ""
	itemSchema := items
	itemName := ""
	resolved := false

	if items != nil {
		itemsType = Classify(items)
	}
	if items.IsRef() {
		itemsRef = items.Ref
		itemSchema = nil
		if target, name, ok := Resolve(items.Ref, w.defs); ok {
			itemSchema, itemName, resolved = target, name, true
			itemsType = Classify(target)
		} else {
			w.skip(items.Ref, model)
		}
	}

	w.emit(Record{
		Field:    field,
		Model:    model,
		Parent:   parent,
		Type:     TypeArray,
		Required: required,
		Sort:     key,
		Props:    PropertyNames(itemSchema),
	}, withMetadata(CopyMetadata(node)), withArray(itemsType, itemsRef))

	switch {
	case items.IsRef():
		if resolved && !stack.Contains(itemName) {
			w.walk(itemSchema, model, stack.With(itemName), key)
		}
	case expandableItems(items):
		w.walk(items, model, stack, key)
	}
}

// expandableItems reports whether inline items have structure worth walking.
// Scalar items end the descent at the array record.
func expandableItems(items *schema.Schema) bool {
	if items == nil {
		return false
	}
	switch Classify(items) {
	case TypeObject, TypeOneOf, TypeAnyOf:
		return true
	}
	return items.HasProperties() || len(items.OneOf) > 0 || len(items.AnyOf) > 0
}
