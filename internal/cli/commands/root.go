package commands

import (
	"fmt"
	"runtime"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	// Version information - set at build time
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// NewRootCommand creates the root command. Without a subcommand it flattens
// the configured root schema, the same as "schemaflat flatten".
func NewRootCommand() *cobra.Command {
	opts := &flattenOptions{}
	rootCmd := &cobra.Command{
		Use:   "schemaflat",
		Short: "Flatten OpenAPI component schemas into field records",
		Long: `schemaflat walks a root schema of an OpenAPI (or Swagger 2) document and
emits one record per field: dotted model path, parent path, hierarchical sort
key, type, required flag, child names and display metadata.

References, arrays and oneOf/anyOf unions are expanded; a schema is never
expanded twice along one branch, so recursive models terminate.

Settings are read from flags, SCHEMAFLAT_* environment variables and an
optional schemaflat.yaml, in that order of precedence.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFlatten(cmd, opts)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "Path to a schemaflat.yaml config file")
	flags.StringP("input", "i", "openapi.json", "OpenAPI document path or http(s) URL")
	flags.StringP("root", "r", "", "Root schema name (defaults to default_root, then the first schema)")
	flags.Bool("strict", false, "Fail on unresolved references instead of skipping them")
	flags.Bool("validate", false, "Validate the OpenAPI document before flattening")
	flags.Bool("no-color", false, "Disable coloured output")
	flags.String("log-level", "info", "Log level (debug, info, warn, error)")
	flags.String("log-format", "console", "Log format (console, json)")
	flags.Duration("timeout", 0, "Timeout for fetching remote documents")

	addFlattenFlags(rootCmd, opts)

	rootCmd.AddCommand(NewVersionCommand())
	rootCmd.AddCommand(NewFlattenCommand())
	rootCmd.AddCommand(NewSchemasCommand())
	rootCmd.AddCommand(NewTreeCommand())
	rootCmd.AddCommand(NewQueryCommand())
	rootCmd.AddCommand(NewMCPCommand())

	return rootCmd
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			titleColor := color.New(color.FgCyan, color.Bold)
			out := cmd.OutOrStdout()

			titleColor.Fprint(out, "schemaflat version: ")
			fmt.Fprintln(out, Version)
			titleColor.Fprint(out, "Git commit: ")
			fmt.Fprintln(out, GitCommit)
			titleColor.Fprint(out, "Build date: ")
			fmt.Fprintln(out, BuildDate)
			titleColor.Fprint(out, "Go version: ")
			fmt.Fprintln(out, runtime.Version())
		},
	}
}

// Execute runs the root command
func Execute() error {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		errorColor := color.New(color.FgRed, color.Bold)
		errorColor.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
		return err
	}
	return nil
}
