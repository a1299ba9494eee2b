package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	pkgopenapi "github.com/goliatone/go-schemaflat/pkg/openapi"
)

// payload is what a strategy hands back: the bytes plus the media type the
// origin reported, if any.
type payload struct {
	data      []byte
	mediaType string
}

// fetchFunc reads the document at location for one source kind.
type fetchFunc func(ctx context.Context, location string) (payload, error)

// Loader implements pkgopenapi.Loader. Each source kind maps to a fetch
// strategy chosen at construction, so a kind without a strategy fails fast.
type Loader struct {
	strategies map[pkgopenapi.SourceKind]fetchFunc
}

// Ensure the implementation satisfies the public interface.
var _ pkgopenapi.Loader = (*Loader)(nil)

// New constructs a Loader from pre-resolved options. Files are always
// readable; fs.FS and HTTP strategies are only registered when configured.
func New(options pkgopenapi.LoaderOptions) pkgopenapi.Loader {
	limit := options.MaxBytes
	strategies := map[pkgopenapi.SourceKind]fetchFunc{
		pkgopenapi.SourceKindFile: fileStrategy(limit),
	}
	if options.FileSystem != nil {
		strategies[pkgopenapi.SourceKindFS] = fsStrategy(options.FileSystem, limit)
	}
	if client := httpClient(options); client != nil {
		strategies[pkgopenapi.SourceKindURL] = httpStrategy(client, options.RequestTimeout, limit)
	}
	return &Loader{strategies: strategies}
}

func httpClient(options pkgopenapi.LoaderOptions) *http.Client {
	switch {
	case options.HTTPClient != nil:
		clone := *options.HTTPClient
		if options.RequestTimeout > 0 && clone.Timeout == 0 {
			clone.Timeout = options.RequestTimeout
		}
		return &clone
	case options.AllowHTTPFallback:
		return &http.Client{Timeout: options.RequestTimeout}
	}
	return nil
}

// Load fetches a document and records whether it is JSON or YAML.
func (l *Loader) Load(ctx context.Context, src pkgopenapi.Source) (pkgopenapi.Document, error) {
	if src == nil {
		return pkgopenapi.Document{}, errors.New("openapi loader: source is nil")
	}
	fetch, ok := l.strategies[src.Kind()]
	if !ok {
		return pkgopenapi.Document{}, missingStrategy(src.Kind())
	}
	if err := ctx.Err(); err != nil {
		return pkgopenapi.Document{}, err
	}

	p, err := fetch(ctx, src.Location())
	if err != nil {
		return pkgopenapi.Document{}, err
	}
	format := pkgopenapi.DetectFormat(src.Location(), p.mediaType, p.data)
	return pkgopenapi.NewDocumentAs(src, p.data, format)
}

func missingStrategy(kind pkgopenapi.SourceKind) error {
	switch kind {
	case pkgopenapi.SourceKindURL:
		return errors.New("openapi loader: http support disabled")
	case pkgopenapi.SourceKindFS:
		return errors.New("openapi loader: filesystem is not configured")
	case pkgopenapi.SourceKindInline:
		return errors.New("openapi loader: inline sources carry their own payload")
	}
	return fmt.Errorf("openapi loader: unsupported source kind %q", kind)
}

// readCapped reads r and rejects payloads over limit bytes. A zero limit
// reads everything.
func readCapped(r io.Reader, limit int64, location string) ([]byte, error) {
	if limit > 0 {
		r = io.LimitReader(r, limit+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("openapi loader: read %s: %w", location, err)
	}
	if limit > 0 && int64(len(data)) > limit {
		return nil, tooLarge(location, limit)
	}
	return data, nil
}

func tooLarge(location string, limit int64) error {
	return fmt.Errorf("openapi loader: %s exceeds %d bytes", location, limit)
}
