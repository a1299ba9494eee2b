package decoder

import (
	"context"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	pkgopenapi "github.com/goliatone/go-schemaflat/pkg/openapi"
	"github.com/goliatone/go-schemaflat/pkg/schema"
)

// ErrNoSchemas reports a document without components.schemas, definitions or
// $defs.
var ErrNoSchemas = errors.New("openapi decoder: document declares no schemas")

// Decoder implements pkgopenapi.Decoder on top of the yaml.v3 node tree, which
// keeps mapping keys in document order for both JSON and YAML payloads.
type Decoder struct {
	options pkgopenapi.DecoderOptions
}

// Ensure the implementation satisfies the public interface.
var _ pkgopenapi.Decoder = (*Decoder)(nil)

// New constructs a Decoder with the given options.
func New(options pkgopenapi.DecoderOptions) pkgopenapi.Decoder {
	return &Decoder{options: options}
}

// Decode extracts the named schemas of doc in declaration order.
func (d *Decoder) Decode(ctx context.Context, doc pkgopenapi.Document) (*schema.Definitions, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw := doc.Raw()
	if len(raw) == 0 {
		return nil, errors.New("openapi decoder: document payload is empty")
	}

	if d.options.Validator != nil {
		if err := d.options.Validator.Validate(ctx, doc); err != nil {
			return nil, err
		}
	}

	var root yaml.Node
	if err := yaml.Unmarshal(raw, &root); err != nil {
		return nil, fmt.Errorf("openapi decoder: parse %s document %s: %w", doc.Format(), doc.Location(), err)
	}

	top := resolve(&root)
	if top != nil && top.Kind == yaml.DocumentNode && len(top.Content) > 0 {
		top = resolve(top.Content[0])
	}
	if top == nil || top.Kind != yaml.MappingNode {
		return nil, errors.New("openapi decoder: document root is not a mapping")
	}

	section := schemasSection(top)
	if section == nil {
		if d.options.AllowEmpty {
			return schema.NewDefinitions(), nil
		}
		return nil, ErrNoSchemas
	}
	if section.Kind != yaml.MappingNode {
		return nil, errors.New("openapi decoder: schemas section is not a mapping")
	}

	conv := &converter{active: make(map[*yaml.Node]bool)}
	defs := schema.NewDefinitions()
	for i := 0; i+1 < len(section.Content); i += 2 {
		name := section.Content[i].Value
		node := resolve(section.Content[i+1])
		if !isSchemaNode(node) {
			return nil, fmt.Errorf("openapi decoder: schema %q is not an object", name)
		}
		defs.Add(name, conv.schema(node))
	}

	if defs.Len() == 0 && !d.options.AllowEmpty {
		return nil, ErrNoSchemas
	}
	return defs, nil
}

// schemasSection locates the named-schema map: components.schemas (OpenAPI 3),
// definitions (Swagger 2) or $defs (plain JSON Schema), in that order.
func schemasSection(top *yaml.Node) *yaml.Node {
	if components := lookup(top, "components"); components != nil && components.Kind == yaml.MappingNode {
		if schemas := lookup(components, "schemas"); schemas != nil {
			return schemas
		}
	}
	if defs := lookup(top, "definitions"); defs != nil {
		return defs
	}
	return lookup(top, "$defs")
}

func lookup(mapping *yaml.Node, key string) *yaml.Node {
	if mapping == nil || mapping.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			return resolve(mapping.Content[i+1])
		}
	}
	return nil
}

// resolve follows YAML aliases to their anchored node.
func resolve(node *yaml.Node) *yaml.Node {
	for node != nil && node.Kind == yaml.AliasNode {
		node = node.Alias
	}
	return node
}

// isSchemaNode accepts mappings and the JSON Schema boolean forms.
func isSchemaNode(node *yaml.Node) bool {
	if node == nil {
		return false
	}
	if node.Kind == yaml.MappingNode {
		return true
	}
	return node.Kind == yaml.ScalarNode && node.Tag == "!!bool"
}
