package flatten

import "github.com/goliatone/go-schemaflat/pkg/schema"

// rootSort is the sort key of the synthetic root record; every other key
// extends it.
const rootSort = "1"

// Options configures a flattening pass.
type Options struct {
	// StrictReferences turns unresolved references into an error instead of
	// silently dropping the referencing property or option.
	StrictReferences bool

	// RootDescription overrides the placeholder description of the root
	// record. When empty the root schema's own description is used, falling
	// back to "Root schema <name>".
	RootDescription string
}

// Option mutates Options prior to flattening.
type Option func(*Options)

// WithStrictReferences toggles strict reference checking.
func WithStrictReferences(enabled bool) Option {
	return func(opts *Options) {
		opts.StrictReferences = enabled
	}
}

// WithRootDescription pins the description attached to the root record.
func WithRootDescription(description string) Option {
	return func(opts *Options) {
		opts.RootDescription = description
	}
}

// NewOptions applies Option values over the defaults.
func NewOptions(options ...Option) Options {
	cfg := Options{}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// Flatten walks the named root schema and returns its flat record list in
// emission order. The first record is a synthetic root row (model "*");
// the walk itself starts at path root with sort prefix "1".
//
// A missing root yields a *NotFoundError and no records. References that do
// not resolve are dropped and reported in Result.Skipped, or returned as a
// *ReferenceError when strict references are enabled.
func Flatten(root string, defs *schema.Definitions, options ...Option) (Result, error) {
	opts := NewOptions(options...)

	rootSchema, ok := defs.Lookup(root)
	if !ok {
		return Result{}, &NotFoundError{Name: root}
	}

	w := &walker{defs: defs}
	stack := newVisited(root)
	rootSchema, stack = w.dereferenceRoot(rootSchema, root, stack)

	w.emit(Record{
		Field:  root,
		Model:  RootModel,
		Parent: RootModel,
		Type:   TypeObject,
		Sort:   rootSort,
		Props:  PropertyNames(rootSchema),
	}, withMetadata(Metadata{Description: opts.rootDescription(root, rootSchema)}))

	w.walk(rootSchema, root, stack, rootSort)

	if opts.StrictReferences && len(w.skipped) > 0 {
		return Result{}, &ReferenceError{Skipped: w.skipped}
	}
	return Result{Root: root, Records: w.records, Skipped: w.skipped}, nil
}

// dereferenceRoot follows a root schema that is only an alias for another
// named schema. Every alias entered is pushed onto the stack.
func (w *walker) dereferenceRoot(node *schema.Schema, path string, stack *visited) (*schema.Schema, *visited) {
	for node.IsRef() {
		target, name, ok := Resolve(node.Ref, w.defs)
		if !ok {
			w.skip(node.Ref, path)
			return &schema.Schema{}, stack
		}
		if stack.Contains(name) {
			return &schema.Schema{}, stack
		}
		node, stack = target, stack.With(name)
	}
	return node, stack
}

func (o Options) rootDescription(name string, root *schema.Schema) string {
	if o.RootDescription != "" {
		return o.RootDescription
	}
	if root != nil && root.Description != "" {
		return root.Description
	}
	return "Root schema " + name
}
