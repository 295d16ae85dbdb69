package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/diamond-mine/internal/platform/web"
	"github.com/vovakirdan/diamond-mine/internal/storage"
)

var flagHTTPAddr string

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Serve the leaderboard over HTTP",
	Long: `Start a read-only JSON API over the score database.

Endpoints:
  GET /healthz
  GET /api/games
  GET /api/scores/{variant}?limit=N
  GET /api/stats

Examples:
  diamond web
  diamond web --http 127.0.0.1:8080`,
	Args: cobra.NoArgs,
	RunE: runWeb,
}

func init() {
	webCmd.Flags().StringVar(&flagHTTPAddr, "http", ":8080", "HTTP listen address")
}

func runWeb(_ *cobra.Command, _ []string) error {
	logger := newLogger(os.Stderr)

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Error("cannot open scores database", "db", flagDBPath, "err", err)
		return err
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return web.NewServer(flagHTTPAddr, store, logger).ListenAndServe(ctx)
}
