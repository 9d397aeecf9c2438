package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/aretw0/arbor"
	"github.com/aretw0/arbor/internal/cli"
	"github.com/aretw0/arbor/internal/logging"
	"github.com/aretw0/arbor/internal/presentation/tui"
	httpAdapter "github.com/aretw0/arbor/pkg/adapters/http"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve <document>",
	Short: "Start the HTTP editing server",
	Long: `Opens the document in an editor and exposes it over HTTP: commands, undo/redo,
save, Mermaid graph, SSE change events and Prometheus metrics.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		configPath, _ := cmd.Flags().GetString("config")
		debug, _ := cmd.Flags().GetBool("debug")
		port, _ := cmd.Flags().GetString("port")
		editable, _ := cmd.Flags().GetBool("editable")
		saveTo, _ := cmd.Flags().GetString("save-to")

		level := "info"
		if debug {
			level = "debug"
		}
		logger := logging.NewJSON(os.Stderr, logging.ParseLevel(level))

		reg := prometheus.NewRegistry()
		metrics := observability.NewMetrics(reg)
		streams := httpAdapter.NewStreamManager()

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
			Hooks:      metrics.Hooks(streams.Hooks(host)),
		}, logger)
		if err != nil {
			fmt.Printf("Error initializing arbor: %v\n", err)
			os.Exit(1)
		}

		handler := httpAdapter.NewHandler(ed, streams,
			httpAdapter.WithLogger(logger),
			httpAdapter.WithMetricsHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})),
		)

		srv := &http.Server{
			Addr:    ":" + port,
			Handler: handler,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			tui.PrintBanner(os.Stdout)
			fmt.Printf("Starting Arbor %s on %s\n", arbor.Version, srv.Addr)
			fmt.Printf("Serving document: %s\n", args[0])
			serverErrors <- srv.ListenAndServe()
		}()

		ctx := cli.NewSignalContext(context.Background())
		defer ctx.Cancel()

		// Blocking main and waiting for shutdown.
		select {
		case err := <-serverErrors:
			// Error when starting HTTP server.
			fmt.Printf("Server error: %v\n", err)
			os.Exit(1)

		case <-ctx.Done():
			fmt.Printf("\nStart shutdown... Signal: %v\n", ctx.Signal())

			// Give outstanding requests a deadline for completion.
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			// Asking listener to shut down and shed load.
			if err := srv.Shutdown(shutdownCtx); err != nil {
				fmt.Printf("Graceful shutdown did not complete in %v: %v\n", 5*time.Second, err)
				if err := srv.Close(); err != nil {
					fmt.Printf("Error killing server: %v\n", err)
				}
			}
			fmt.Println("Arbor Server stopped gracefully")
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	serveCmd.Flags().Bool("editable", false, "Start writable instead of read-only")
	serveCmd.Flags().String("save-to", "", "Write the document to this file on every save")
}
