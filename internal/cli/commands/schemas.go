package commands

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-schemaflat/pkg/flatten"
)

// NewSchemasCommand creates the schemas command
func NewSchemasCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "schemas",
		Short: "List the named schemas of a document",
		Long: `List the named schemas of a document in declaration order with their type
and property count. The first one is the default root.`,
		Args: cobra.NoArgs,
		RunE: runSchemas,
	}
}

func runSchemas(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.close()

	req, err := s.request()
	if err != nil {
		return err
	}
	defs, err := s.orch.Definitions(cmd.Context(), req)
	if err != nil {
		return err
	}

	names := defs.Names()
	nameWidth, typeWidth := len("NAME"), len("TYPE")
	types := make([]string, len(names))
	counts := make([]string, len(names))
	for i, name := range names {
		sch, _ := defs.Lookup(name)
		types[i] = flatten.Classify(sch)
		counts[i] = strconv.Itoa(len(sch.Properties))
		nameWidth = max(nameWidth, len(name))
		typeWidth = max(typeWidth, len(types[i]))
	}

	out := cmd.OutOrStdout()
	header := color.New(color.FgCyan, color.Bold)
	if s.noColor {
		header.DisableColor()
	}
	header.Fprintf(out, "%-*s  %-*s  %s\n", nameWidth, "NAME", typeWidth, "TYPE", "PROPERTIES")
	for i, name := range names {
		fmt.Fprintf(out, "%-*s  %-*s  %s\n", nameWidth, name, typeWidth, types[i], counts[i])
	}
	return nil
}
