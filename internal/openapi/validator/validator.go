package validator

import (
	"context"
	"errors"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
	"gopkg.in/yaml.v3"

	pkgopenapi "github.com/goliatone/go-schemaflat/pkg/openapi"
)

// ErrUnsupportedVersion reports documents kin-openapi cannot validate
// (Swagger 2 and bare JSON Schema files).
var ErrUnsupportedVersion = errors.New("openapi validator: only OpenAPI 3 documents can be validated")

// Validator implements pkgopenapi.Validator using kin-openapi.
type Validator struct {
	allowExternalRefs bool
}

// Ensure the implementation satisfies the public interface.
var _ pkgopenapi.Validator = (*Validator)(nil)

// Option customises a Validator.
type Option func(*Validator)

// WithExternalRefs lets kin-openapi follow references outside the document.
func WithExternalRefs(enabled bool) Option {
	return func(v *Validator) {
		v.allowExternalRefs = enabled
	}
}

// New constructs a Validator.
func New(options ...Option) *Validator {
	v := &Validator{}
	for _, opt := range options {
		if opt != nil {
			opt(v)
		}
	}
	return v
}

// Validate loads doc with kin-openapi and checks it against the OpenAPI 3
// rules. Example values are not validated.
func (v *Validator) Validate(ctx context.Context, doc pkgopenapi.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	raw := doc.Raw()
	if len(raw) == 0 {
		return errors.New("openapi validator: document payload is empty")
	}

	var header struct {
		OpenAPI string `yaml:"openapi"`
	}
	if err := yaml.Unmarshal(raw, &header); err != nil {
		return fmt.Errorf("openapi validator: read version: %w", err)
	}
	if header.OpenAPI == "" {
		return ErrUnsupportedVersion
	}

	loader := &openapi3.Loader{
		Context:               ctx,
		IsExternalRefsAllowed: v.allowExternalRefs,
	}

	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return fmt.Errorf("openapi validator: load document: %w", err)
	}
	if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		return fmt.Errorf("openapi validator: validate: %w", err)
	}
	return nil
}
