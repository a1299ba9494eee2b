package commands

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-schemaflat/pkg/tree"
)

// NewTreeCommand creates the tree command
func NewTreeCommand() *cobra.Command {
	var depth int
	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Print the flattened fields as an indented tree",
		Long: `Flatten the root schema and rebuild the field hierarchy from the model and
parent paths. Required fields are marked with "*".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			defer s.close()

			req, err := s.request()
			if err != nil {
				return err
			}
			result, err := s.orch.Flatten(cmd.Context(), req)
			if err != nil {
				return err
			}

			root := tree.Build(result.Records)
			return tree.Print(cmd.OutOrStdout(), root, tree.PrintOptions{
				NoColor:  s.noColor,
				MaxDepth: depth,
			})
		},
	}
	cmd.Flags().IntVar(&depth, "depth", 0, "Maximum depth to print (0 prints everything)")
	return cmd
}
