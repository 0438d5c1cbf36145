package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/msalah0e/glossview/internal/parallel"
	"github.com/msalah0e/glossview/internal/ui"
)

func statusCmd() *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:     "status",
		Aliases: []string{"health", "doctor"},
		Short:   "Check the backend: health, terms and graph",
		Run: func(cmd *cobra.Command, args []string) {
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			client := newClient(commandLogger())
			ui.Banner("status")
			fmt.Printf("  %s  %s\n\n", ui.Brand.Sprintf("%-8s", "Backend"), cfg.API.BaseURL)

			tasks := []parallel.Task{
				{Name: "health", Fn: func(ctx context.Context) (string, error) {
					return "ok", client.Health(ctx)
				}},
				{Name: "terms", Fn: func(ctx context.Context) (string, error) {
					terms, err := client.LoadTerms(ctx)
					return fmt.Sprintf("%d terms", len(terms)), err
				}},
				{Name: "graph", Fn: func(ctx context.Context) (string, error) {
					g, err := client.LoadGraph(ctx)
					if err != nil {
						return "", err
					}
					return fmt.Sprintf("%d nodes, %d edges", len(g.Nodes), len(g.Edges)), nil
				}},
			}

			results := parallel.Run(ctx, tasks, len(tasks))
			for _, r := range results {
				detail := r.Output
				if !r.OK {
					detail = ui.Bad.Sprint(r.Err)
				}
				fmt.Printf("  %s %-8s %s %s\n", ui.StatusIcon(r.OK), r.Name, detail,
					ui.Subtle.Sprintf("%dms", r.Elapsed.Milliseconds()))
			}

			if failed := parallel.Failed(results); len(failed) > 0 {
				fmt.Println()
				ui.Warn.Printf("  %s %d of %d checks failed\n", ui.WarnIcon(), len(failed), len(results))
				os.Exit(1)
			}
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "Per-run timeout")
	return cmd
}
