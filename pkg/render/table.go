package render

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"

	"github.com/goliatone/go-schemaflat/pkg/flatten"
	"github.com/goliatone/go-schemaflat/pkg/query"
)

var tableHeaders = []string{"SORT", "MODEL", "TYPE", "REQUIRED", "PROPS", "ENUM"}

// TableWriter prints records as an aligned text table for terminals.
type TableWriter struct{}

// NewTable returns the table writer.
func NewTable() *TableWriter {
	return &TableWriter{}
}

func (w *TableWriter) Name() string        { return "table" }
func (w *TableWriter) ContentType() string { return "text/plain" }
func (w *TableWriter) Extension() string   { return ".txt" }

func (w *TableWriter) Write(ctx context.Context, out io.Writer, result flatten.Result, options Options) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	records := options.records(result)

	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		required := ""
		if rec.Required {
			required = "yes"
		}
		rows = append(rows, []string{
			rec.Sort,
			rec.Model,
			DisplayType(rec),
			required,
			strconv.Itoa(len(rec.Props)),
			query.JoinEnum(rec.Enum),
		})
	}

	widths := make([]int, len(tableHeaders))
	for i, header := range tableHeaders {
		widths[i] = utf8.RuneCountInString(header)
	}
	for _, row := range rows {
		for i, cell := range row {
			if n := utf8.RuneCountInString(cell); n > widths[i] {
				widths[i] = n
			}
		}
	}

	header := color.New(color.Bold, color.FgCyan)
	rule := color.New(color.FgHiBlack)
	if options.NoColor {
		header.DisableColor()
		rule.DisableColor()
	}

	var b strings.Builder
	for i, h := range tableHeaders {
		b.WriteString(header.Sprint(pad(h, widths[i], i == len(tableHeaders)-1)))
		if i < len(tableHeaders)-1 {
			b.WriteString("  ")
		}
	}
	b.WriteString("\n")
	for i, width := range widths {
		b.WriteString(rule.Sprint(strings.Repeat("-", width)))
		if i < len(widths)-1 {
			b.WriteString(rule.Sprint("  "))
		}
	}
	b.WriteString("\n")
	for _, row := range rows {
		for i, cell := range row {
			b.WriteString(pad(cell, widths[i], i == len(row)-1))
			if i < len(row)-1 {
				b.WriteString("  ")
			}
		}
		b.WriteString("\n")
	}

	if _, err := io.WriteString(out, b.String()); err != nil {
		return fmt.Errorf("render table: %w", err)
	}
	return nil
}

// pad right-pads s to width. The last column is left ragged.
func pad(s string, width int, last bool) string {
	if last {
		return s
	}
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}
