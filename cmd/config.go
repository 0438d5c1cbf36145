package cmd

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/msalah0e/glossview/internal/config"
	"github.com/msalah0e/glossview/internal/ui"
)

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Run: func(cmd *cobra.Command, args []string) {
			path := cfgPath
			if path == "" {
				path = config.Path()
			}
			fmt.Printf("  %s\n\n", ui.Subtle.Sprint(path))
			if err := toml.NewEncoder(os.Stdout).Encode(cfg); err != nil {
				fail("%v", err)
			}
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write the default config file if none exists",
		Run: func(cmd *cobra.Command, args []string) {
			if err := config.EnsureExists(); err != nil {
				fail("Failed to write config: %v", err)
			}
			ui.Good.Printf("  %s %s\n", ui.StatusIcon(true), config.Path())
		},
	})
	return cmd
}
