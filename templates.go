package schemaflat

import (
	"io/fs"

	"github.com/goliatone/go-schemaflat/pkg/render"
)

// EmbeddedTemplates exposes the HTML writer templates so callers can copy or
// extend them without importing the render package directly.
func EmbeddedTemplates() fs.FS {
	return render.TemplatesFS()
}
