package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/msalah0e/glossview/internal/api"
	"github.com/msalah0e/glossview/internal/config"
	"github.com/msalah0e/glossview/internal/logging"
	"github.com/msalah0e/glossview/internal/ui"
)

var version = "0.1.0"

var (
	cfg     *config.Config
	cfgPath string
	apiURL  string
	verbose bool
	logFile string
)

var rootCmd = &cobra.Command{
	Use:   "glossview",
	Short: "glossview: browse a glossary and its semantic graph",
	Long: ui.Brand.Sprint(ui.Mark+" glossview") + " · browse a glossary and its semantic graph\n" +
		ui.Subtle.Sprint("Search terms, explore relations, export the graph"),
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cfgPath != "" {
			c, err := config.LoadFrom(cfgPath)
			if err != nil {
				return err
			}
			cfg = c
		} else {
			cfg = config.Load()
		}
		if apiURL != "" {
			cfg.API.BaseURL = apiURL
		}
		ui.SetColor(cfg.UI.Color && os.Getenv("NO_COLOR") == "")
		return nil
	},
}

func init() {
	rootCmd.SetVersionTemplate("glossview {{ .Version }}\n")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", "", "Backend base URL (default from config, http://localhost:8000)")
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "Config file (default $XDG_CONFIG_HOME/glossview/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Write logs to this file")

	rootCmd.AddCommand(
		viewCmd(),
		termsCmd(),
		showCmd(),
		graphCmd(),
		statusCmd(),
		serveCmd(),
		configCmd(),
	)
}

// Execute runs the root command.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		ui.Bad.Fprintf(os.Stderr, "glossview: %v\n", err)
		return err
	}
	return nil
}

// commandLogger is quiet unless --verbose or --log-file asks for output.
func commandLogger() *zap.Logger {
	if !verbose && logFile == "" {
		return zap.NewNop()
	}
	logger, err := logging.New(verbose, logFile)
	if err != nil {
		ui.Warn.Fprintf(os.Stderr, "  %s logging disabled: %v\n", ui.WarnIcon(), err)
		return zap.NewNop()
	}
	return logger
}

func newClient(logger *zap.Logger) *api.Client {
	return api.New(cfg.API.BaseURL).WithLogger(logger)
}

// signalContext is cancelled on interrupt or terminate.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func fail(format string, args ...any) {
	ui.Bad.Fprintf(os.Stderr, "  "+format+"\n", args...)
	os.Exit(1)
}
