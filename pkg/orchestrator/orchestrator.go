package orchestrator

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	internalDecoder "github.com/goliatone/go-schemaflat/internal/openapi/decoder"
	internalLoader "github.com/goliatone/go-schemaflat/internal/openapi/loader"
	"github.com/goliatone/go-schemaflat/pkg/flatten"
	pkgopenapi "github.com/goliatone/go-schemaflat/pkg/openapi"
	"github.com/goliatone/go-schemaflat/pkg/render"
	"github.com/goliatone/go-schemaflat/pkg/schema"
)

const defaultFormat = "json"

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithLoader injects a custom OpenAPI loader.
func WithLoader(loader pkgopenapi.Loader) Option {
	return func(o *Orchestrator) {
		o.loader = loader
	}
}

// WithDecoder injects a custom schema decoder.
func WithDecoder(decoder pkgopenapi.Decoder) Option {
	return func(o *Orchestrator) {
		o.decoder = decoder
	}
}

// WithRegistry injects a writer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultFormat overrides the writer used when a request omits an
// explicit Format.
func WithDefaultFormat(name string) Option {
	return func(o *Orchestrator) {
		o.defaultFormat = name
	}
}

// WithDefaultRoot pins the schema flattened when a request omits Root. The
// first declared schema is used only when no default root is set.
func WithDefaultRoot(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRoot = name
	}
}

// WithLogger attaches a logger for pipeline milestones and unresolved
// references.
func WithLogger(logger *zap.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// WithFlattenOptions sets flattening options applied to every request,
// ahead of the request's own.
func WithFlattenOptions(options ...flatten.Option) Option {
	return func(o *Orchestrator) {
		o.flattenOptions = append(o.flattenOptions, options...)
	}
}

// Orchestrator coordinates the pipeline from document to serialised records:
// load, decode, flatten, write. Missing stages fall back to the built-in
// implementations.
type Orchestrator struct {
	loader          pkgopenapi.Loader
	decoder         pkgopenapi.Decoder
	registry        *render.Registry
	defaultFormat   string
	defaultRoot     string
	logger          *zap.Logger
	flattenOptions  []flatten.Option
	initialiseErr   error
	defaultsApplied bool
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultFormat: defaultFormat,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes one flattening run.
type Request struct {
	// Source identifies where the document lives. Optional when Document is
	// supplied.
	Source pkgopenapi.Source

	// Document allows callers to bypass the loader when they already hold
	// the payload.
	Document *pkgopenapi.Document

	// Root names the schema to flatten. Empty selects the default root, or
	// the first schema of the document when none is configured.
	Root string

	// Format names the writer. Empty falls back to the default format.
	Format string

	// RenderOptions are passed through to the writer.
	RenderOptions render.Options

	// FlattenOptions are applied after the orchestrator-wide options.
	FlattenOptions []flatten.Option
}

// Output is the outcome of Run.
type Output struct {
	Result flatten.Result
	Writer render.Writer
	Body   []byte
}

// Definitions loads and decodes the request's document.
func (o *Orchestrator) Definitions(ctx context.Context, req Request) (*schema.Definitions, error) {
	if err := o.ready(ctx); err != nil {
		return nil, err
	}
	doc, err := o.resolveDocument(ctx, req)
	if err != nil {
		return nil, err
	}
	defs, err := o.decoder.Decode(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: decode document: %w", err)
	}
	o.logger.Debug("decoded document",
		zap.String("location", doc.Location()),
		zap.Int("schemas", defs.Len()),
	)
	return defs, nil
}

// Flatten executes the loader → decoder → flattener sequence.
func (o *Orchestrator) Flatten(ctx context.Context, req Request) (flatten.Result, error) {
	defs, err := o.Definitions(ctx, req)
	if err != nil {
		return flatten.Result{}, err
	}
	return o.flattenDefinitions(req, defs)
}

// Run flattens the request and serialises the records with the selected
// writer.
func (o *Orchestrator) Run(ctx context.Context, req Request) (Output, error) {
	if err := o.ready(ctx); err != nil {
		return Output{}, err
	}
	writer, err := o.writerFor(req.Format)
	if err != nil {
		return Output{}, err
	}

	result, err := o.Flatten(ctx, req)
	if err != nil {
		return Output{}, err
	}

	var buf bytes.Buffer
	if err := writer.Write(ctx, &buf, result, req.RenderOptions); err != nil {
		return Output{}, fmt.Errorf("orchestrator: write %s: %w", writer.Name(), err)
	}
	return Output{Result: result, Writer: writer, Body: buf.Bytes()}, nil
}

// Generate returns the serialised records of the request.
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	out, err := o.Run(ctx, req)
	if err != nil {
		return nil, err
	}
	return out.Body, nil
}

// Registry exposes the writer registry, e.g. for format discovery.
func (o *Orchestrator) Registry() *render.Registry {
	return o.registry
}

func (o *Orchestrator) flattenDefinitions(req Request, defs *schema.Definitions) (flatten.Result, error) {
	root := req.Root
	if root == "" {
		root = o.defaultRoot
	}
	if root == "" {
		names := defs.Names()
		if len(names) == 0 {
			return flatten.Result{}, errors.New("orchestrator: document declares no schemas")
		}
		root = names[0]
		o.logger.Info("no root schema given, using first schema", zap.String("root", root))
	}

	options := make([]flatten.Option, 0, len(o.flattenOptions)+len(req.FlattenOptions))
	options = append(options, o.flattenOptions...)
	options = append(options, req.FlattenOptions...)

	result, err := flatten.Flatten(root, defs, options...)
	if err != nil {
		var refErr *flatten.ReferenceError
		if errors.As(err, &refErr) {
			o.logSkipped(refErr.Skipped)
		}
		return flatten.Result{}, fmt.Errorf("orchestrator: flatten %q: %w", root, err)
	}

	o.logSkipped(result.Skipped)
	o.logger.Info("flattened schema",
		zap.String("root", root),
		zap.Int("records", len(result.Records)),
		zap.Int("skipped", len(result.Skipped)),
	)
	return result, nil
}

func (o *Orchestrator) logSkipped(skipped []flatten.SkippedRef) {
	for _, s := range skipped {
		o.logger.Warn("unresolved reference", zap.String("ref", s.Ref), zap.String("model", s.Model))
	}
}

func (o *Orchestrator) ready(ctx context.Context) error {
	if ctx == nil {
		return errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if !o.defaultsApplied {
		o.applyDefaults()
	}
	return o.initialiseErr
}

func (o *Orchestrator) resolveDocument(ctx context.Context, req Request) (pkgopenapi.Document, error) {
	if req.Document != nil {
		return *req.Document, nil
	}
	if req.Source == nil {
		return pkgopenapi.Document{}, errors.New("orchestrator: source or document is required")
	}
	doc, err := o.loader.Load(ctx, req.Source)
	if err != nil {
		return pkgopenapi.Document{}, fmt.Errorf("orchestrator: load document: %w", err)
	}
	o.logger.Debug("loaded document",
		zap.String("location", doc.Location()),
		zap.String("kind", string(req.Source.Kind())),
	)
	return doc, nil
}

func (o *Orchestrator) writerFor(name string) (render.Writer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: writer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultFormat
	}
	writer, err := o.registry.Get(target)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: format %q: %w", target, err)
	}
	return writer, nil
}

func (o *Orchestrator) applyDefaults() {
	if o.defaultsApplied {
		return
	}

	if o.loader == nil {
		o.loader = internalLoader.New(pkgopenapi.NewLoaderOptions())
	}
	if o.decoder == nil {
		o.decoder = internalDecoder.New(pkgopenapi.NewDecoderOptions())
	}
	if o.registry == nil {
		registry, err := render.NewDefaultRegistry()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default writers: %w", err)
		}
		o.registry = registry
	}
	if o.defaultFormat == "" {
		o.defaultFormat = defaultFormat
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}

	o.defaultsApplied = true
}
