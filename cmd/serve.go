package cmd

import (
	"github.com/spf13/cobra"

	"github.com/zumikiti/claude-code-work-analysis/pkg/config"
	"github.com/zumikiti/claude-code-work-analysis/pkg/logger"
	"github.com/zumikiti/claude-code-work-analysis/pkg/mcp"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP server on stdio",
	Long: `Serves the analysis engine over the Model Context Protocol. Add this
command to an MCP client configuration to query work history as tools.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		logger.Info("Starting MCP server")

		server := mcp.NewServer()
		mcp.RegisterAllTools(server, mcp.NewService(cfg))
		return server.Run()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
