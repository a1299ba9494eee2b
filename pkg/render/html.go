package render

import (
	"context"
	"embed"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-schemaflat/pkg/flatten"
	"github.com/goliatone/go-schemaflat/pkg/query"
)

//go:embed templates/*.html
var templatesFS embed.FS

const recordsTemplate = "templates/records.html"

// TemplatesFS exposes the embedded page templates.
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(templatesFS, "templates")
	if err != nil {
		return templatesFS
	}
	return sub
}

var (
	descriptionPolicyOnce sync.Once
	descriptionPolicy     *bluemonday.Policy
)

// HTMLWriter renders a standalone HTML page holding the field table.
type HTMLWriter struct {
	template *pongo2.Template
}

// NewHTML parses the embedded page template.
func NewHTML() (*HTMLWriter, error) {
	set := pongo2.NewSet("schemaflat", pongo2.NewFSLoader(templatesFS))
	tpl, err := set.FromFile(recordsTemplate)
	if err != nil {
		return nil, fmt.Errorf("render html: parse template: %w", err)
	}
	return &HTMLWriter{template: tpl}, nil
}

func (w *HTMLWriter) Name() string        { return "html" }
func (w *HTMLWriter) ContentType() string { return "text/html; charset=utf-8" }
func (w *HTMLWriter) Extension() string   { return ".html" }

type htmlRow struct {
	Sort        string
	Field       string
	Model       string
	Type        string
	Required    bool
	Union       bool
	Props       string
	PropCount   int
	Enum        string
	Description string
}

func (w *HTMLWriter) Write(ctx context.Context, out io.Writer, result flatten.Result, options Options) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	records := options.records(result)

	rows := make([]htmlRow, 0, len(records))
	for _, rec := range records {
		props := query.DeriveProps(records, rec)
		rows = append(rows, htmlRow{
			Sort:        rec.Sort,
			Field:       rec.Field,
			Model:       rec.Model,
			Type:        DisplayType(rec),
			Required:    rec.Required,
			Union:       rec.IsUnion(),
			Props:       strings.Join(props, ", "),
			PropCount:   len(props),
			Enum:        query.JoinEnum(rec.Enum),
			Description: sanitizeDescription(rec.Description),
		})
	}

	skipped := result.Skipped
	if skipped == nil {
		skipped = []flatten.SkippedRef{}
	}

	err := w.template.ExecuteWriter(pongo2.Context{
		"title":   options.title(result),
		"rows":    rows,
		"skipped": skipped,
	}, out)
	if err != nil {
		return fmt.Errorf("render html: %w", err)
	}
	return nil
}

// sanitizeDescription keeps basic inline formatting from schema
// descriptions and strips everything else.
func sanitizeDescription(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	descriptionPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements("b", "strong", "i", "em", "code", "br", "p", "ul", "ol", "li")
		policy.AllowStandardURLs()
		policy.AllowAttrs("href").OnElements("a")
		policy.RequireNoFollowOnLinks(true)
		descriptionPolicy = policy
	})
	return strings.TrimSpace(descriptionPolicy.Sanitize(trimmed))
}
