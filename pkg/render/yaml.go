package render

import (
	"context"
	"fmt"
	"io"
	"regexp"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-schemaflat/pkg/flatten"
)

// YAMLWriter writes records as a YAML sequence. Records go through their JSON
// form first so both formats share key names and key order.
type YAMLWriter struct{}

// NewYAML returns the yaml writer.
func NewYAML() *YAMLWriter {
	return &YAMLWriter{}
}

func (w *YAMLWriter) Name() string        { return "yaml" }
func (w *YAMLWriter) ContentType() string { return "application/yaml" }
func (w *YAMLWriter) Extension() string   { return ".yaml" }

func (w *YAMLWriter) Write(ctx context.Context, out io.Writer, result flatten.Result, options Options) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	payload, err := json.Marshal(options.records(result))
	if err != nil {
		return fmt.Errorf("render yaml: %w", err)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(payload, &doc); err != nil {
		return fmt.Errorf("render yaml: %w", err)
	}
	blockStyle(&doc)

	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return fmt.Errorf("render yaml: %w", err)
	}
	return enc.Close()
}

// blockStyle clears the flow and quoting styles inherited from the JSON
// source so the encoder picks idiomatic YAML. Empty collections stay inline.
// Strings a YAML 1.1 reader would take for a bool or a sexagesimal number
// keep their quotes.
func blockStyle(node *yaml.Node) {
	node.Style = 0
	switch {
	case (node.Kind == yaml.SequenceNode || node.Kind == yaml.MappingNode) && len(node.Content) == 0:
		node.Style = yaml.FlowStyle
	case node.Kind == yaml.ScalarNode && node.Tag == "!!str" && yaml11Ambiguous(node.Value):
		node.Style = yaml.DoubleQuotedStyle
	}
	for _, child := range node.Content {
		blockStyle(child)
	}
}

var yaml11Bools = map[string]struct{}{
	"y": {}, "Y": {}, "yes": {}, "Yes": {}, "YES": {},
	"n": {}, "N": {}, "no": {}, "No": {}, "NO": {},
	"on": {}, "On": {}, "ON": {},
	"off": {}, "Off": {}, "OFF": {},
}

var yaml11Sexagesimal = regexp.MustCompile(`^[-+]?[0-9][0-9_]*(:[0-5]?[0-9])+(\.[0-9_]*)?$`)

// yaml11Ambiguous reports plain scalars that yaml.v3 leaves unquoted but
// YAML 1.1 resolves to something other than a string.
func yaml11Ambiguous(value string) bool {
	if _, ok := yaml11Bools[value]; ok {
		return true
	}
	return yaml11Sexagesimal.MatchString(value)
}
