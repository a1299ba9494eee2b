// Package schemaflat flattens OpenAPI component schemas into field records.
package schemaflat

import (
	"context"

	"github.com/goliatone/go-schemaflat/pkg/flatten"
	pkgopenapi "github.com/goliatone/go-schemaflat/pkg/openapi"
	"github.com/goliatone/go-schemaflat/pkg/orchestrator"
	"github.com/goliatone/go-schemaflat/pkg/render"
)

// Record aliases flatten.Record for callers that only import the root package.
type Record = flatten.Record

// Result aliases flatten.Result.
type Result = flatten.Result

// RenderOptions aliases render.Options.
type RenderOptions = render.Options

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// Flatten loads the source, decodes its schemas and flattens the named root.
// An empty root selects the first schema in the document.
func Flatten(ctx context.Context, source pkgopenapi.Source, root string, options ...orchestrator.Option) (Result, error) {
	return orchestrator.New(options...).Flatten(ctx, orchestrator.Request{
		Source: source,
		Root:   root,
	})
}

// Generate flattens the named root and serialises the records with the given
// format (json, yaml, table or html).
func Generate(ctx context.Context, source pkgopenapi.Source, root, format string, options ...orchestrator.Option) ([]byte, error) {
	return orchestrator.New(options...).Generate(ctx, orchestrator.Request{
		Source: source,
		Root:   root,
		Format: format,
	})
}

// GenerateFromDocument works like Generate on a pre-loaded document, bypassing
// the loader stage.
func GenerateFromDocument(ctx context.Context, doc pkgopenapi.Document, root, format string, options ...orchestrator.Option) ([]byte, error) {
	return orchestrator.New(options...).Generate(ctx, orchestrator.Request{
		Document: &doc,
		Root:     root,
		Format:   format,
	})
}
