package cmd

import (
	"fmt"

	"github.com/huangsam/trendline/internal/iostore"
	"github.com/huangsam/trendline/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the Trendline MCP server",
	Long: `Launch an MCP server over stdio so AI agents can run series analysis,
critical point detection and summaries as standard tools.

Tools accept inline series as JSON objects or names of series held in the
sample store. Logs go to stderr so they never mix with the protocol.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if err := sharedSetup(rootCtx, cmd, args); err != nil {
			return err
		}
		if err := iostore.InitStore(cfg.StoreBackend, cfg.StoreDBConnect); err != nil {
			return fmt.Errorf("failed to initialize sample store: %w", err)
		}
		return nil
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, storeManager)
	},
}
