package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/aretw0/arbor/internal/cli"
	"github.com/aretw0/arbor/internal/logging"
	"github.com/aretw0/arbor/pkg/adapters/mcp"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp <document>",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Opens the document in an editor and exposes it as an MCP Server.
Every editor command is a tool; the document, its Mermaid graph and the undo
history are resources.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		configPath, _ := cmd.Flags().GetString("config")
		debug, _ := cmd.Flags().GetBool("debug")
		transport, _ := cmd.Flags().GetString("transport")
		port, _ := cmd.Flags().GetInt("port")
		editable, _ := cmd.Flags().GetBool("editable")
		saveTo, _ := cmd.Flags().GetString("save-to")

		level := "info"
		if debug {
			level = "debug"
		}
		// Stdout carries JSON-RPC on stdio.
		logger := logging.New(logging.ParseLevel(level))
		log.SetOutput(os.Stderr)

		host := domain.Hooks{}
		if saveTo != "" {
			host.OnSave = func(info *domain.ChangeInfo) {
				if err := cli.WriteDocument(saveTo, info.CurrentData); err != nil {
					logger.Error("failed to write saved document", "path", saveTo, "error", err)
					return
				}
				logger.Info("document written", "path", saveTo, "revision", info.Revision)
			}
		}

		ed, err := cli.CreateEditor(cli.EditorOptions{
			DocPath:    args[0],
			ConfigPath: configPath,
			Debug:      debug,
			Editable:   editable,
			Hooks:      host,
		}, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error initializing arbor: %v\n", err)
			os.Exit(1)
		}

		srv := mcp.NewServer(ed, mcp.WithLogger(logger))

		switch transport {
		case "stdio":
			logger.Info("Starting Arbor MCP Server (Stdio)...")
			if err := srv.ServeStdio(); err != nil {
				logger.Error("MCP Server execution failed", "error", err)
				os.Exit(1)
			}
		case "sse":
			logger.Info("Starting Arbor MCP Server (SSE)", "port", port)

			ctx := cli.NewSignalContext(context.Background())
			defer ctx.Cancel()

			if err := srv.ServeSSE(ctx, port); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("MCP Server execution failed", "error", err)
				os.Exit(1)
			}
			logger.Info("MCP Server stopped gracefully")
		default:
			fmt.Fprintf(os.Stderr, "Unknown transport: %s. Supported: stdio, sse\n", transport)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
	mcpCmd.Flags().String("transport", "stdio", "Transport protocol to use: 'stdio' or 'sse'")
	mcpCmd.Flags().Int("port", 8080, "Port to listen on (only for SSE)")
	mcpCmd.Flags().Bool("editable", false, "Start writable instead of read-only")
	mcpCmd.Flags().String("save-to", "", "Write the document to this file on every save")
}
