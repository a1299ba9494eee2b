package commands

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-schemaflat/internal/mcpserver"
)

// NewMCPCommand creates the mcp command
func NewMCPCommand() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Serve the flattening tools over MCP (stdio)",
		Long: `Start a Model Context Protocol server on stdin/stdout exposing the
list_schemas, flatten_schema and query_fields tools. Logs go to stderr.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			defer s.close()

			server := mcpserver.New(s.orch,
				mcpserver.WithLogger(s.logger),
				mcpserver.WithDefaultLimit(limit),
				mcpserver.WithVersion(Version),
			)
			return server.Run(cmd.Context(), &mcp.StdioTransport{})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 100, "Default page size of query_fields")
	return cmd
}
