package flatten

import "github.com/goliatone/go-schemaflat/pkg/schema"

// walk emits records for everything below node. Union points come first and
// take the leading sort segments; properties follow in declaration order.
// node is expected to be dereferenced already: references are resolved by
// the caller one level up.
func (w *walker) walk(node *schema.Schema, path string, stack *visited, prefix string) {
	if node == nil {
		return
	}

	index := 0
	if len(node.AnyOf) > 0 {
		index++
		w.expandUnion(TypeAnyOf, node, node.AnyOf, path, stack, childKey(prefix, index))
	}
	if len(node.OneOf) > 0 {
		index++
		w.expandUnion(TypeOneOf, node, node.OneOf, path, stack, childKey(prefix, index))
	}

	required := node.RequiredSet()
	for _, prop := range node.Properties {
		index++
		_, isRequired := required[prop.Name]
		w.walkProperty(prop, path, isRequired, stack, childKey(prefix, index))
	}
}

func (w *walker) walkProperty(prop schema.Property, parent string, required bool, stack *visited, key string) {
	node := prop.Schema
	if node == nil {
		node = &schema.Schema{}
	}
	model := parent + "." + prop.Name

	switch {
	case node.IsRef():
		w.expandReference(prop.Name, node, model, parent, required, stack, key)
	case Classify(node) == TypeArray:
		w.expandArray(prop.Name, node, model, parent, required, stack, key)
	case len(node.AnyOf) > 0:
		w.expandUnion(TypeAnyOf, node, node.AnyOf, model, stack, key)
	case len(node.OneOf) > 0:
		w.expandUnion(TypeOneOf, node, node.OneOf, model, stack, key)
	default:
		kind := Classify(node)
		w.emit(Record{
			Field:    prop.Name,
			Model:    model,
			Parent:   parent,
			Type:     kind,
			Required: required,
			Sort:     key,
			Props:    PropertyNames(node),
		}, withMetadata(CopyMetadata(node)))
		// Inline objects carry no name to cycle on, so the stack is unchanged.
		if kind == TypeObject {
			w.walk(node, model, stack, key)
		}
	}
}

// expandReference emits a referencing property and descends into its target
// unless the target is already on the ancestor chain.
func (w *walker) expandReference(field string, node *schema.Schema, model, parent string, required bool, stack *visited, key string) {
	target, name, ok := Resolve(node.Ref, w.defs)
	if !ok {
		w.skip(node.Ref, model)
		return
	}

	meta := CopyMetadata(node)
	meta.Description = MergeDescription(node.Description, target.Description)

	w.emit(Record{
		Field:    field,
		Model:    model,
		Parent:   parent,
		Type:     TypeRef,
		Required: required,
		Sort:     key,
		Props:    PropertyNames(target),
	}, withMetadata(meta), withRef(node.Ref, Classify(target)))

	if stack.Contains(name) {
		return
	}
	w.walk(target, model, stack.With(name), key)
}
