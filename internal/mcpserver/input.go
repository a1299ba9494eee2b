package mcpserver

import (
	"errors"
	"fmt"
	"strings"

	pkgopenapi "github.com/goliatone/go-schemaflat/pkg/openapi"
	"github.com/goliatone/go-schemaflat/pkg/orchestrator"
)

// specInput represents the two ways a document can be provided to a tool.
// Exactly one of Path or Content must be set.
type specInput struct {
	Path    string `json:"path,omitempty"    jsonschema:"Path or http(s) URL of an OpenAPI document"`
	Content string `json:"content,omitempty" jsonschema:"Inline OpenAPI document content (JSON or YAML)"`
}

func (in specInput) request() (orchestrator.Request, error) {
	path := strings.TrimSpace(in.Path)
	switch {
	case path != "" && in.Content != "":
		return orchestrator.Request{}, errors.New("exactly one of path or content must be provided, got both")
	case in.Content != "":
		doc, err := pkgopenapi.NewDocument(pkgopenapi.SourceInline("content"), []byte(in.Content))
		if err != nil {
			return orchestrator.Request{}, err
		}
		return orchestrator.Request{Document: &doc}, nil
	case path != "":
		src, err := pkgopenapi.SourceFor(path)
		if err != nil {
			return orchestrator.Request{}, fmt.Errorf("invalid path: %w", err)
		}
		return orchestrator.Request{Source: src}, nil
	default:
		return orchestrator.Request{}, errors.New("exactly one of path or content must be provided")
	}
}
