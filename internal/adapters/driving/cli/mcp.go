package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/wfmodels/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Expose the editor to MCP clients",
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Serve the workflow editor over the Model Context Protocol.

Tools: inspect_workflow, link_models, set_model_entry, format_workflow,
list_directory_rules. Every call works on the workflow text it is given;
nothing is kept between calls.

Resources: wfmodels://rules, wfmodels://rules/{nodeType},
wfmodels://extensions.

Stdio is the default transport. --port serves streamable HTTP instead.

Examples:
  wfmodels mcp serve
  wfmodels mcp serve --port 8080

Client configuration:
  {
    "mcpServers": {
      "wfmodels": {
        "command": "/path/to/wfmodels",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func newMCPServer() (*mcp.Server, error) {
	return mcp.NewServer(&mcp.Ports{
		NewEditor: newEditor,
		Rules:     ruleService,
		Links:     linkNormaliser,
	})
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("reading --port: %w", err)
	}

	server, err := newMCPServer()
	if err != nil {
		return err
	}

	if port <= 0 {
		return server.Run(cmd.Context())
	}

	addr := fmt.Sprintf(":%d", port)
	fmt.Fprintf(cmd.ErrOrStderr(), "wfmodels MCP on http://localhost%s\n", addr)
	return server.RunHTTP(cmd.Context(), addr)
}
