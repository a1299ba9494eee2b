package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-schemaflat/pkg/flatten"
	"github.com/goliatone/go-schemaflat/pkg/query"
	"github.com/goliatone/go-schemaflat/pkg/render"
)

const defaultQueryFormat = "table"

// NewQueryCommand creates the query command
func NewQueryCommand() *cobra.Command {
	var filter query.Filter
	cmd := &cobra.Command{
		Use:   "query",
		Short: "Filter the flattened fields",
		Long: `Flatten the root schema and print the records matching every filter.

--field, --type, --required and --enum match as case-insensitive substrings;
--required matches "true required yes" or "false optional no".
--model and --parent must match exactly.

Examples:
  schemaflat query -i openapi.yaml -r Pet --required yes
  schemaflat query -i openapi.yaml -r Pet --parent Pet.owner --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd, filter)
		},
	}

	cmd.Flags().StringVar(&filter.Field, "field", "", "Field name contains")
	cmd.Flags().StringVar(&filter.Type, "type", "", "Type contains")
	cmd.Flags().StringVar(&filter.Required, "required", "", "Required label contains (yes, no, required, optional)")
	cmd.Flags().StringVar(&filter.Enum, "enum", "", "Enum values contain")
	cmd.Flags().StringVar(&filter.Model, "model", "", "Exact model path")
	cmd.Flags().StringVar(&filter.Parent, "parent", "", "Exact parent path")
	cmd.Flags().StringP("format", "f", defaultQueryFormat, "Output format (json, yaml, table, html)")
	return cmd
}

func runQuery(cmd *cobra.Command, filter query.Filter) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.close()

	format := defaultQueryFormat
	if cmd.Flags().Changed("format") {
		format = s.cfg.Format
	}
	writer, err := s.orch.Registry().Get(format)
	if err != nil {
		return fmt.Errorf("format %q: %w", format, err)
	}

	req, err := s.request()
	if err != nil {
		return err
	}
	result, err := s.orch.Flatten(cmd.Context(), req)
	if err != nil {
		return err
	}

	matched := query.Apply(result.Records, filter)
	filtered := flatten.Result{Root: result.Root, Records: matched, Skipped: result.Skipped}
	if err := writer.Write(cmd.Context(), cmd.OutOrStdout(), filtered, render.Options{
		NoColor:   s.noColor,
		TreeOrder: s.cfg.TreeOrder,
	}); err != nil {
		return err
	}

	info := color.New(color.FgCyan)
	info.Fprintf(cmd.ErrOrStderr(), "%d of %d records (filters: %s)\n", len(matched), len(result.Records), filter.Summary())
	return nil
}
