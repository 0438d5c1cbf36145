package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/msalah0e/glossview/internal/backend"
	"github.com/msalah0e/glossview/internal/logging"
)

func serveCmd() *cobra.Command {
	var (
		addr   string
		data   string
		watch  bool
		anchor string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a glossary data file over the viewer API",
		Long: "Serve a glossary data file (.json with comments, or .yaml) on\n" +
			"/health, /api/terms, /api/terms/{id}, /api/graph and /metrics.",
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if !flags.Changed("addr") {
				addr = cfg.Server.Addr
			}
			if !flags.Changed("data") {
				data = cfg.Server.Data
			}
			if !flags.Changed("watch") {
				watch = cfg.Server.Watch
			}
			if !flags.Changed("anchor") {
				anchor = cfg.Server.Anchor
			}

			logger, err := logging.New(verbose, logFile)
			if err != nil {
				return fmt.Errorf("set up logging: %w", err)
			}
			defer logger.Sync()

			store := backend.NewStore(backend.Options{Anchor: anchor, DedupeLabels: cfg.Server.DedupeLabels})
			if err := store.LoadFile(data); err != nil {
				logger.Error("Failed to load glossary", zap.String("path", data), zap.Error(err))
				return fmt.Errorf("load %s: %w", data, err)
			}
			terms, edges := store.Counts()
			logger.Info("Loaded glossary", zap.String("path", data), zap.Int("terms", terms), zap.Int("edges", edges))

			srv := backend.NewServer(store, logger)

			ctx, stop := signalContext()
			defer stop()

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error { return srv.ListenAndServe(gctx, addr) })
			if watch {
				g.Go(func() error { return srv.Watch(gctx, data) })
			}
			if err := g.Wait(); err != nil {
				logger.Error("Server stopped", zap.Error(err))
				return fmt.Errorf("server: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8000", "Listen address")
	cmd.Flags().StringVar(&data, "data", "glossary.json", "Glossary data file")
	cmd.Flags().BoolVar(&watch, "watch", false, "Reload the data file when it changes")
	cmd.Flags().StringVar(&anchor, "anchor", backend.DefaultAnchor, "Term whose connected component is served")
	return cmd
}
