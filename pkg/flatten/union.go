package flatten

import "github.com/goliatone/go-schemaflat/pkg/schema"

// expandUnion materialises a oneOf/anyOf point as one container record at
// base.<kind> followed by the records of each option.
//
// Referenced options get their own record at container.<SchemaName> and are
// walked below it; inline options are walked directly at the container path.
// Options whose reference does not resolve are dropped.
func (w *walker) expandUnion(kind string, node *schema.Schema, options []*schema.Schema, base string, stack *visited, key string) {
	container := base + "." + kind

	refs := make([]string, 0, len(options))
	for _, option := range options {
		if option.IsRef() {
			refs = append(refs, option.Ref)
		}
	}

	w.emit(Record{
		Field:  kind,
		Model:  container,
		Parent: base,
		Type:   kind,
		Sort:   key,
		Props:  w.unionProps(node, options),
	}, withMetadata(CopyMetadata(node)), withUnion(refs, node.Discriminator))

	for i, option := range options {
		if option == nil {
			continue
		}
		optionKey := childKey(key, i+1)

		if !option.IsRef() {
			w.walk(option, container, stack, optionKey)
			continue
		}

		target, name, ok := Resolve(option.Ref, w.defs)
		if !ok {
			w.skip(option.Ref, container)
			continue
		}
		model := container + "." + name
		w.emit(Record{
			Field:  name,
			Model:  model,
			Parent: container,
			Type:   Classify(target),
			Sort:   optionKey,
			Props:  PropertyNames(target),
		}, withMetadata(CopyMetadata(target)), withRef(option.Ref, ""))

		if stack.Contains(name) {
			continue
		}
		w.walk(target, model, stack.With(name), optionKey)
	}
}

// unionProps collects the property names visible on the union node and on
// every option, first occurrence wins.
func (w *walker) unionProps(node *schema.Schema, options []*schema.Schema) []string {
	seen := make(map[string]struct{})
	props := []string{}
	add := func(names []string) {
		for _, name := range names {
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			props = append(props, name)
		}
	}

	add(PropertyNames(node))
	for _, option := range options {
		if option == nil {
			continue
		}
		if option.IsRef() {
			if target, _, ok := Resolve(option.Ref, w.defs); ok {
				add(PropertyNames(target))
			}
			continue
		}
		add(PropertyNames(option))
	}
	return props
}
