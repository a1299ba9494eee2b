package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/AlecAivazis/survey/v2"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-schemaflat/pkg/render"
)

// stdoutPath selects standard output as the destination.
const stdoutPath = "-"

type flattenOptions struct {
	interactive bool
}

// selectRoot asks the user to pick a root schema. Replaced in tests.
var selectRoot = func(names []string) (string, error) {
	var root string
	prompt := &survey.Select{
		Message: "Select a root schema:",
		Options: names,
	}
	if err := survey.AskOne(prompt, &root); err != nil {
		return "", err
	}
	return root, nil
}

// NewFlattenCommand creates the flatten command
func NewFlattenCommand() *cobra.Command {
	opts := &flattenOptions{}
	cmd := &cobra.Command{
		Use:   "flatten",
		Short: "Flatten a root schema into field records",
		Long: `Flatten a root schema into field records and write them to a file.

The output defaults to <root>_fields.<ext>; use --output - for stdout.
The format defaults to json, or follows the --output extension.

Examples:
  schemaflat flatten --input openapi.yaml --root Pet
  schemaflat flatten -i openapi.yaml -r Pet --format table --output -
  schemaflat flatten -i https://example.com/openapi.json --interactive`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFlatten(cmd, opts)
		},
	}
	addFlattenFlags(cmd, opts)
	return cmd
}

func addFlattenFlags(cmd *cobra.Command, opts *flattenOptions) {
	cmd.Flags().StringP("output", "o", "", "Output path (default <root>_fields.<ext>, - for stdout)")
	cmd.Flags().StringP("format", "f", "json", "Output format (json, yaml, table, html)")
	cmd.Flags().Bool("tree-order", false, "Write records sorted by sort key instead of emission order")
	cmd.Flags().BoolVar(&opts.interactive, "interactive", false, "Pick the root schema from a list")
}

func runFlatten(cmd *cobra.Command, opts *flattenOptions) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.close()

	ctx := cmd.Context()
	req, err := s.request()
	if err != nil {
		return err
	}

	if opts.interactive {
		defs, err := s.orch.Definitions(ctx, req)
		if err != nil {
			return err
		}
		root, err := selectRoot(defs.Names())
		if err != nil {
			return fmt.Errorf("select root: %w", err)
		}
		req.Root = root
	}

	toStdout := s.cfg.Output == stdoutPath
	req.Format = s.cfg.Format
	if !cmd.Flags().Changed("format") && s.cfg.Output != "" && !toStdout {
		if writer, ok := s.orch.Registry().ForExtension(filepath.Ext(s.cfg.Output)); ok {
			req.Format = writer.Name()
		}
	}
	req.RenderOptions = render.Options{
		TreeOrder: s.cfg.TreeOrder,
		NoColor:   s.noColor || !toStdout,
	}

	out, err := s.orch.Run(ctx, req)
	if err != nil {
		return err
	}

	if toStdout {
		_, err := cmd.OutOrStdout().Write(out.Body)
		return err
	}

	path := s.cfg.DefaultOutput(out.Result.Root, out.Writer.Extension())
	if err := os.WriteFile(path, out.Body, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	successColor := color.New(color.FgGreen)
	successColor.Fprintf(cmd.OutOrStdout(), "Wrote %d records for %s to %s\n", len(out.Result.Records), out.Result.Root, path)
	if n := len(out.Result.Skipped); n > 0 {
		warnColor := color.New(color.FgYellow)
		warnColor.Fprintf(cmd.OutOrStdout(), "Skipped %d unresolved reference(s)\n", n)
	}
	return nil
}
