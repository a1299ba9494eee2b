package render

import (
	"github.com/goliatone/go-schemaflat/pkg/flatten"
	"github.com/goliatone/go-schemaflat/pkg/tree"
)

// Options describe per-call presentation tweaks. Writers ignore the fields
// that do not apply to them.
type Options struct {
	// TreeOrder writes records sorted by sort key instead of emission order.
	TreeOrder bool
	// NoColor disables ANSI colours in the text table.
	NoColor bool
	// Title heads the HTML page. Defaults to the root schema name.
	Title string
}

// records returns the result's records in the order requested by opts,
// never nil so empty results still serialise as a list.
func (o Options) records(result flatten.Result) []flatten.Record {
	records := result.Records
	if o.TreeOrder {
		records = tree.Sort(records)
	}
	if records == nil {
		return []flatten.Record{}
	}
	return records
}

func (o Options) title(result flatten.Result) string {
	if o.Title != "" {
		return o.Title
	}
	if result.Root != "" {
		return result.Root + " fields"
	}
	return "Schema fields"
}
