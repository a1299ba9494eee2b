package tree

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// PrintOptions controls Print.
type PrintOptions struct {
	NoColor bool
	// MaxDepth stops the descent below the given depth. Zero prints
	// everything.
	MaxDepth int
}

// Print writes an indented view of node, marking required fields with "*"
// and showing each node's record type.
func Print(w io.Writer, node *Node, opts PrintOptions) error {
	name := color.New(color.Bold)
	required := color.New(color.FgRed)
	kind := color.New(color.FgHiBlack)
	if opts.NoColor {
		name.DisableColor()
		required.DisableColor()
		kind.DisableColor()
	}

	var err error
	node.Walk(func(n *Node, depth int) bool {
		if err != nil {
			return false
		}
		var b strings.Builder
		b.WriteString(strings.Repeat("  ", depth))
		b.WriteString(name.Sprint(n.Name))
		if n.Required {
			b.WriteString(required.Sprint("*"))
		}
		if n.Type != "" {
			b.WriteString(" ")
			b.WriteString(kind.Sprint(n.Type))
		}
		_, err = fmt.Fprintln(w, b.String())
		return opts.MaxDepth == 0 || depth+1 < opts.MaxDepth
	})
	return err
}
