package schemaflat

import (
	internalDecoder "github.com/goliatone/go-schemaflat/internal/openapi/decoder"
	internalLoader "github.com/goliatone/go-schemaflat/internal/openapi/loader"
	internalValidator "github.com/goliatone/go-schemaflat/internal/openapi/validator"
	pkgopenapi "github.com/goliatone/go-schemaflat/pkg/openapi"
)

// NewLoader constructs a loader using the internal implementation while keeping
// the concrete type hidden from consumers.
func NewLoader(options ...pkgopenapi.LoaderOption) pkgopenapi.Loader {
	cfg := pkgopenapi.NewLoaderOptions(options...)
	return internalLoader.New(cfg)
}

// NewDecoder constructs a decoder backed by the internal implementation.
func NewDecoder(options ...pkgopenapi.DecoderOption) pkgopenapi.Decoder {
	cfg := pkgopenapi.NewDecoderOptions(options...)
	return internalDecoder.New(cfg)
}

// NewValidator returns the OpenAPI 3 document validator. Pass it to
// NewDecoder through pkgopenapi.WithValidator to reject invalid documents
// before decoding.
func NewValidator(allowExternalRefs bool) pkgopenapi.Validator {
	return internalValidator.New(internalValidator.WithExternalRefs(allowExternalRefs))
}
