package cli

import (
	"fmt"
	"net"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sercha-jobs/internal/adapters/driving/mcp"
)

var mcpHost string

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Model Context Protocol server",
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve job search to MCP clients",
	Long: `Serves the indexed postings to MCP clients.

Tools:     search_jobs, extract_metadata, index_stats
Resources: sercha-jobs://stats, sercha-jobs://jobs/{jobId}

Without --port the server speaks JSON-RPC on stdio, which is what desktop
assistants launch. Logs go to stderr so they never mix with the protocol.
With --port it serves the streamable HTTP transport instead.

  sercha-jobs mcp serve
  sercha-jobs mcp serve --port 8080 --host 0.0.0.0

Client entry for stdio:
  {"mcpServers": {"sercha-jobs": {"command": "sercha-jobs", "args": ["mcp", "serve"]}}}`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpServeCmd.Flags().StringVar(&mcpHost, "host", "localhost", "HTTP bind address")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}

	app, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer app.Close()

	server, err := mcp.NewServer(&mcp.Ports{
		Search: app.Search,
		Index:  app.Index,
	})
	if err != nil {
		return err
	}

	if port > 0 {
		addr := net.JoinHostPort(mcpHost, strconv.Itoa(port))
		cmd.PrintErrf("MCP server listening on http://%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}
