package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/goliatone/go-schemaflat/pkg/flatten"
	"github.com/goliatone/go-schemaflat/pkg/query"
	"github.com/goliatone/go-schemaflat/pkg/tree"
)

type listSchemasInput struct {
	Spec specInput `json:"spec" jsonschema:"The OpenAPI document to inspect"`
}

type schemaSummary struct {
	Name          string   `json:"name"`
	Type          string   `json:"type"`
	PropertyCount int      `json:"property_count"`
	Required      []string `json:"required,omitempty"`
}

type listSchemasOutput struct {
	Total   int             `json:"total"`
	Schemas []schemaSummary `json:"schemas"`
}

func (s *Server) handleListSchemas(ctx context.Context, _ *mcp.CallToolRequest, input listSchemasInput) (*mcp.CallToolResult, any, error) {
	req, err := input.Spec.request()
	if err != nil {
		return errResult(err), nil, nil
	}
	defs, err := s.orch.Definitions(ctx, req)
	if err != nil {
		return errResult(err), nil, nil
	}

	names := defs.Names()
	output := listSchemasOutput{Total: len(names), Schemas: make([]schemaSummary, 0, len(names))}
	for _, name := range names {
		sch, _ := defs.Lookup(name)
		output.Schemas = append(output.Schemas, schemaSummary{
			Name:          name,
			Type:          flatten.Classify(sch),
			PropertyCount: len(sch.Properties),
			Required:      sch.Required,
		})
	}
	return nil, output, nil
}

type flattenInput struct {
	Spec      specInput `json:"spec"                 jsonschema:"The OpenAPI document to flatten"`
	Root      string    `json:"root,omitempty"       jsonschema:"Name of the root schema. Defaults to the first schema of the document."`
	Strict    bool      `json:"strict,omitempty"     jsonschema:"Fail on unresolved references instead of skipping them"`
	TreeOrder bool      `json:"tree_order,omitempty" jsonschema:"Return records sorted by sort key instead of emission order"`
}

type flattenOutput struct {
	Root    string               `json:"root"`
	Total   int                  `json:"total"`
	Records []flatten.Record     `json:"records"`
	Skipped []flatten.SkippedRef `json:"skipped,omitempty"`
}

func (s *Server) handleFlatten(ctx context.Context, _ *mcp.CallToolRequest, input flattenInput) (*mcp.CallToolResult, any, error) {
	result, err := s.flatten(ctx, input.Spec, input.Root, input.Strict)
	if err != nil {
		return errResult(err), nil, nil
	}

	records := result.Records
	if input.TreeOrder {
		records = tree.Sort(records)
	}
	return nil, flattenOutput{
		Root:    result.Root,
		Total:   len(records),
		Records: records,
		Skipped: result.Skipped,
	}, nil
}

type queryInput struct {
	Spec     specInput `json:"spec"               jsonschema:"The OpenAPI document to query"`
	Root     string    `json:"root,omitempty"     jsonschema:"Name of the root schema. Defaults to the first schema of the document."`
	Strict   bool      `json:"strict,omitempty"   jsonschema:"Fail on unresolved references instead of skipping them"`
	Field    string    `json:"field,omitempty"    jsonschema:"Case-insensitive substring of the field name"`
	Type     string    `json:"type,omitempty"     jsonschema:"Case-insensitive substring of the record type (object\\, array\\, ref\\, oneOf\\, etc.)"`
	Required string    `json:"required,omitempty" jsonschema:"Match required fields with 'required' or 'yes'\\, optional ones with 'optional' or 'no'"`
	Enum     string    `json:"enum,omitempty"     jsonschema:"Case-insensitive substring of the comma separated enum values"`
	Model    string    `json:"model,omitempty"    jsonschema:"Exact model path\\, e.g. Pet.owner"`
	Parent   string    `json:"parent,omitempty"   jsonschema:"Exact parent path; returns the direct children of a record"`
	Offset   int       `json:"offset,omitempty"   jsonschema:"Skip the first N matches (for pagination)"`
	Limit    int       `json:"limit,omitempty"    jsonschema:"Maximum records to return (default 100)"`
}

type queryOutput struct {
	Root     string           `json:"root"`
	Filters  string           `json:"filters"`
	Total    int              `json:"total"`
	Matched  int              `json:"matched"`
	Returned int              `json:"returned"`
	Records  []flatten.Record `json:"records"`
}

func (s *Server) handleQuery(ctx context.Context, _ *mcp.CallToolRequest, input queryInput) (*mcp.CallToolResult, any, error) {
	result, err := s.flatten(ctx, input.Spec, input.Root, input.Strict)
	if err != nil {
		return errResult(err), nil, nil
	}

	filter := query.Filter{
		Field:    input.Field,
		Type:     input.Type,
		Required: input.Required,
		Enum:     input.Enum,
		Model:    input.Model,
		Parent:   input.Parent,
	}
	matched := query.Apply(result.Records, filter)
	page := s.paginate(matched, input.Offset, input.Limit)

	return nil, queryOutput{
		Root:     result.Root,
		Filters:  filter.Summary(),
		Total:    len(result.Records),
		Matched:  len(matched),
		Returned: len(page),
		Records:  page,
	}, nil
}

func (s *Server) flatten(ctx context.Context, spec specInput, root string, strict bool) (flatten.Result, error) {
	req, err := spec.request()
	if err != nil {
		return flatten.Result{}, err
	}
	req.Root = root
	req.FlattenOptions = []flatten.Option{flatten.WithStrictReferences(strict)}

	result, err := s.orch.Flatten(ctx, req)
	if err != nil {
		s.logger.Debug("flatten tool failed", zap.String("root", root), zap.Error(err))
		return flatten.Result{}, fmt.Errorf("flatten: %w", err)
	}
	return result, nil
}
