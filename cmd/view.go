package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/msalah0e/glossview/internal/logging"
	"github.com/msalah0e/glossview/internal/tui"
)

func viewCmd() *cobra.Command {
	var mouse bool

	cmd := &cobra.Command{
		Use:     "view",
		Aliases: []string{"ui", "tui"},
		Short:   "Open the interactive glossary and graph viewer",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := cfg.LayoutOptions()
			if err != nil {
				return fmt.Errorf("layout config: %w", err)
			}
			logger, err := logging.ForTerminalUI(verbose, logFile)
			if err != nil {
				return fmt.Errorf("open log file: %w", err)
			}
			defer logger.Sync()

			if !cmd.Flags().Changed("mouse") {
				mouse = cfg.UI.Mouse
			}

			ctx, stop := signalContext()
			defer stop()

			err = tui.Run(ctx, tui.Options{
				Loader: newClient(logger),
				Layout: opts,
				Logger: logger,
				Mouse:  mouse,
			})
			if err != nil {
				logger.Error("Viewer stopped", zap.Error(err))
				return fmt.Errorf("viewer: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&mouse, "mouse", true, "Enable mouse hover and clicks")
	return cmd
}
