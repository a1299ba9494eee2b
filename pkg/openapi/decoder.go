package openapi

import (
	"context"

	"github.com/goliatone/go-schemaflat/pkg/schema"
)

// Decoder turns a raw document into the ordered set of named schemas the
// flattener walks. Property declaration order must survive decoding.
type Decoder interface {
	Decode(ctx context.Context, doc Document) (*schema.Definitions, error)
}

// Validator checks a document against the OpenAPI 3 rules before it is
// decoded.
type Validator interface {
	Validate(ctx context.Context, doc Document) error
}

// DecoderOptions exposes decoding toggles.
type DecoderOptions struct {
	// Validator, when set, runs before decoding and aborts on failure.
	Validator Validator

	// AllowEmpty accepts documents that declare no schemas and returns an
	// empty set instead of an error.
	AllowEmpty bool
}

// DecoderOption mutates DecoderOptions during construction.
type DecoderOption func(*DecoderOptions)

// WithValidator runs the given validator ahead of decoding.
func WithValidator(v Validator) DecoderOption {
	return func(opts *DecoderOptions) {
		opts.Validator = v
	}
}

// WithAllowEmpty toggles acceptance of documents without schemas.
func WithAllowEmpty(enabled bool) DecoderOption {
	return func(opts *DecoderOptions) {
		opts.AllowEmpty = enabled
	}
}

// NewDecoderOptions applies DecoderOption functions and returns the resulting
// configuration.
func NewDecoderOptions(options ...DecoderOption) DecoderOptions {
	cfg := DecoderOptions{}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
