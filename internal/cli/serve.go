package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bree-jeune/ems-protocols-radio/internal/model"
	"github.com/bree-jeune/ems-protocols-radio/internal/server"
	"github.com/bree-jeune/ems-protocols-radio/internal/store"
	"github.com/spf13/cobra"
)

var (
	serveAddr      string
	serveStorePath string
	scriptCacheTTL time.Duration
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the record store over the query API",
	Long: `Serve loads a persisted record store and exposes the read API:

  GET  /protocols         list every record's id, title, and category
  POST /generate-segment  build the radio script for one record
  GET  /healthz           liveness and record count

Unknown protocol ids return an explicit 404.

Example:
  emsradio serve
  emsradio serve --store ems_protocols.json --addr 0.0.0.0:8080`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "127.0.0.1:8080", "listen address")
	serveCmd.Flags().StringVar(&serveStorePath, "store", "ems_protocols.json", "record store path")
	serveCmd.Flags().DurationVar(&scriptCacheTTL, "cache-ttl", 10*time.Minute, "generated script cache TTL")
}

func runServe(cmd *cobra.Command, args []string) error {
	st, err := store.Load(serveStorePath)
	if err != nil {
		return fmt.Errorf("load store: %w", err)
	}
	if st.Len() == 0 {
		fmt.Fprintf(os.Stderr, "Warning: store %s is empty\n", serveStorePath)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfg := model.DefaultConfig().Server
	cfg.Addr = serveAddr
	cfg.CacheTTL = scriptCacheTTL

	srv := server.New(cfg, st, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return srv.Start(ctx)
}
