package render

import (
	"context"
	"fmt"
	"io"

	"github.com/goccy/go-json"

	"github.com/goliatone/go-schemaflat/pkg/flatten"
)

// JSONWriter writes records as an indented JSON array.
type JSONWriter struct {
	indent string
}

// NewJSON returns the json writer using two-space indentation.
func NewJSON() *JSONWriter {
	return &JSONWriter{indent: "  "}
}

func (w *JSONWriter) Name() string        { return "json" }
func (w *JSONWriter) ContentType() string { return "application/json" }
func (w *JSONWriter) Extension() string   { return ".json" }

// Write encodes the records followed by a newline.
func (w *JSONWriter) Write(ctx context.Context, out io.Writer, result flatten.Result, options Options) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	payload, err := json.MarshalIndent(options.records(result), "", w.indent)
	if err != nil {
		return fmt.Errorf("render json: %w", err)
	}
	payload = append(payload, '\n')
	if _, err := out.Write(payload); err != nil {
		return fmt.Errorf("render json: %w", err)
	}
	return nil
}
