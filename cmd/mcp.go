package cmd

import (
	"github.com/contriboard/contriboard/internal/contract"
	"github.com/contriboard/contriboard/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:     "mcp",
	Short:   "Start the Contriboard MCP server",
	Long:    `Launch an MCP server that exposes the aggregation queries as standard tools over stdio.`,
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return withStore(func(st contract.Store) error {
			return mcp.StartMCPServer(rootCtx, cfg, st)
		})
	},
}
