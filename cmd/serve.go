package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"commitsmith/internal/mcptools"
	"commitsmith/pkg/executor"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run an MCP stdio server exposing parse_diff, format_plan_scaffold, and execute_plan",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	vcs := executor.NewGitVCS(workingDirectory)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "commitsmith",
		Version: "0.1.0",
	}, nil)

	mcptools.Register(server, vcs)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		return fmt.Errorf("MCP server error: %w", err)
	}
	return nil
}
