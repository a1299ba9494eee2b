package render

import (
	"context"
	"io"

	"github.com/goliatone/go-schemaflat/pkg/flatten"
)

// Writer serialises a flattening result (JSON, YAML, text table, HTML).
type Writer interface {
	Name() string
	ContentType() string
	Extension() string
	Write(ctx context.Context, out io.Writer, result flatten.Result, options Options) error
}
