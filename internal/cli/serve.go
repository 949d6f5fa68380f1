package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ppiankov/filewarden/internal/server"
)

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start MCP tool server for agent integration",
	Long:  "Runs filewarden as an MCP (Model Context Protocol) server over stdio.\nExposes mediated tools: read, check, audit. The rules file is hot-reloaded on change.",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	srv, err := server.New(server.Config{ConfigPath: configPath})
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\nShutting down MCP server...")
		cancel()
	}()

	reloader, err := server.NewReloader(srv, configPath)
	if err != nil {
		return err
	}
	go func() {
		_ = reloader.Run(ctx)
	}()

	return srv.Run(ctx)
}
