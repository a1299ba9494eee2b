package decoder

import (
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-schemaflat/pkg/schema"
)

// converter turns yaml nodes into schema values. active guards against
// anchors that alias one of their own ancestors.
//
// Keywords whose value has the wrong shape are dropped rather than reported:
// a "required" that is not a list or a non-integer "minItems" reads as absent.
type converter struct {
	active map[*yaml.Node]bool
}

func (c *converter) schema(node *yaml.Node) *schema.Schema {
	node = resolve(node)
	out := &schema.Schema{}
	if node == nil || node.Kind != yaml.MappingNode {
		// true/false and null schemas carry no keywords.
		return out
	}
	if c.active[node] {
		return out
	}
	c.active[node] = true
	defer delete(c.active, node)

	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		value := resolve(node.Content[i+1])
		if value == nil {
			continue
		}

		switch key {
		case "$ref":
			out.Ref = scalar(value)
		case "type":
			out.Type = typeName(value)
		case "properties":
			out.Properties = c.properties(value)
		case "required":
			out.Required = stringList(value)
		case "items":
			out.Items = c.items(value)
		case "oneOf":
			out.OneOf = c.list(value)
		case "anyOf":
			out.AnyOf = c.list(value)
		case "discriminator":
			out.Discriminator = generic(value)
		case "description":
			out.Description = scalar(value)
		case "enum":
			out.Enum = enumValues(value)
		case "format":
			out.Format = scalar(value)
		case "pattern":
			out.Pattern = scalar(value)
		case "minItems":
			out.MinItems = intValue(value)
		case "maxItems":
			out.MaxItems = intValue(value)
		case "example":
			out.Example = generic(value)
		}
	}
	return out
}

func (c *converter) properties(node *yaml.Node) []schema.Property {
	if node.Kind != yaml.MappingNode {
		return nil
	}
	props := make([]schema.Property, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		props = append(props, schema.Property{
			Name:   node.Content[i].Value,
			Schema: c.schema(node.Content[i+1]),
		})
	}
	return props
}

// items accepts a single schema. Tuple forms contribute their first entry.
func (c *converter) items(node *yaml.Node) *schema.Schema {
	switch node.Kind {
	case yaml.SequenceNode:
		if len(node.Content) == 0 {
			return nil
		}
		return c.schema(node.Content[0])
	case yaml.MappingNode:
		return c.schema(node)
	}
	return nil
}

func (c *converter) list(node *yaml.Node) []*schema.Schema {
	if node.Kind != yaml.SequenceNode {
		return nil
	}
	out := make([]*schema.Schema, 0, len(node.Content))
	for _, entry := range node.Content {
		out = append(out, c.schema(entry))
	}
	return out
}

func scalar(node *yaml.Node) string {
	if node.Kind != yaml.ScalarNode {
		return ""
	}
	return node.Value
}

// typeName reads a scalar type, or the first non-null entry of a type list.
func typeName(node *yaml.Node) string {
	if node.Kind != yaml.SequenceNode {
		return scalar(node)
	}
	for _, entry := range node.Content {
		if entry = resolve(entry); entry.Kind == yaml.ScalarNode && entry.Value != "null" {
			return entry.Value
		}
	}
	return ""
}

func stringList(node *yaml.Node) []string {
	if node.Kind != yaml.SequenceNode {
		return nil
	}
	out := make([]string, 0, len(node.Content))
	for _, entry := range node.Content {
		if entry = resolve(entry); entry.Kind == yaml.ScalarNode {
			out = append(out, entry.Value)
		}
	}
	return out
}

func enumValues(node *yaml.Node) []any {
	if node.Kind != yaml.SequenceNode {
		return nil
	}
	out := make([]any, 0, len(node.Content))
	for _, entry := range node.Content {
		var value any
		if err := entry.Decode(&value); err != nil {
			continue
		}
		out = append(out, value)
	}
	return out
}

func intValue(node *yaml.Node) *int {
	if node.Kind != yaml.ScalarNode {
		return nil
	}
	var n int
	if err := node.Decode(&n); err != nil {
		return nil
	}
	return &n
}

// generic decodes free-form values (examples, discriminators) into plain Go
// values. Undecodable nodes read as absent.
func generic(node *yaml.Node) any {
	var value any
	if err := node.Decode(&value); err != nil {
		return nil
	}
	return value
}
