package cmd

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/msalah0e/glossview/internal/export"
	"github.com/msalah0e/glossview/internal/graphview"
	"github.com/msalah0e/glossview/internal/ui"
)

// loadGraphView fetches the graph, lays it out and applies an optional
// hover.
func loadGraphView(ctx context.Context, hover string) (*graphview.View, error) {
	opts, err := cfg.LayoutOptions()
	if err != nil {
		return nil, err
	}
	doc, err := newClient(commandLogger()).LoadGraph(ctx)
	if err != nil {
		return nil, err
	}
	v := graphview.NewView(nil, opts, nil)
	if err := v.Load(doc); err != nil {
		return nil, err
	}
	if hover != "" {
		if _, ok := v.Node(hover); !ok {
			return nil, fmt.Errorf("no node %q in graph", hover)
		}
		v.HoverEnter(hover)
	}
	return v, nil
}

func graphCmd() *cobra.Command {
	var hover string

	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Summarize the semantic graph layout",
		Run: func(cmd *cobra.Command, args []string) {
			v, err := loadGraphView(cmd.Context(), hover)
			if err != nil {
				fail("%v", err)
			}

			ui.Banner("semantic graph")
			if v.Empty() {
				fmt.Println("  Empty graph.")
				return
			}

			w, h := v.Bounds()
			fmt.Printf("  %s  %d\n", ui.Brand.Sprintf("%-10s", "Nodes"), len(v.Nodes()))
			fmt.Printf("  %s  %d\n", ui.Brand.Sprintf("%-10s", "Edges"), len(v.Edges()))
			fmt.Printf("  %s  %.0f x %.0f\n", ui.Brand.Sprintf("%-10s", "Canvas"), w, h)
			fmt.Println()

			nodes, edges := v.Display()
			horizontal := v.Options().Direction.Horizontal()
			sort.SliceStable(nodes, func(i, j int) bool {
				if nodes[i].Rank != nodes[j].Rank {
					return nodes[i].Rank < nodes[j].Rank
				}
				if horizontal {
					return nodes[i].Position.Y < nodes[j].Position.Y
				}
				return nodes[i].Position.X < nodes[j].Position.X
			})

			rows := make([][]string, 0, len(nodes))
			for _, n := range nodes {
				mark := " "
				if n.Style.Outline {
					mark = ui.Info.Sprint("●")
				}
				rows = append(rows, []string{
					mark, fmt.Sprint(n.Rank), n.ID, ui.Truncate(n.Data.Label, 32),
					fmt.Sprintf("%.0f,%.0f", n.Position.X, n.Position.Y),
				})
			}
			ui.Table([]string{" ", "RANK", "ID", "LABEL", "POSITION"}, rows)

			if hover == "" {
				return
			}
			fmt.Println()
			fmt.Printf("  %s %s\n", ui.Info.Sprint("Relations of"), ui.Brand.Sprint(hover))
			for _, e := range edges {
				if !e.Style.Emphasized {
					continue
				}
				label := e.Label
				if label == "" {
					label = "—"
				}
				fmt.Printf("    %s %s %s\n", e.Source, ui.Subtle.Sprintf("─[%s]→", label), e.Target)
			}
		},
	}

	cmd.Flags().StringVar(&hover, "hover", "", "Highlight the neighbourhood of this node")
	cmd.AddCommand(graphExportCmd())
	return cmd
}

func graphExportCmd() *cobra.Command {
	var (
		format string
		hover  string
		output string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the laid-out graph as DOT, JSON or SVG",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}
			v, err := loadGraphView(cmd.Context(), hover)
			if err != nil {
				return err
			}

			if output == "" {
				return export.Write(os.Stdout, f, v)
			}
			file, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("create %s: %w", output, err)
			}
			if err := export.Write(file, f, v); err != nil {
				file.Close()
				return fmt.Errorf("export: %w", err)
			}
			if err := file.Close(); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			ui.Good.Printf("  %s Wrote %s\n", ui.StatusIcon(true), output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "dot", "Output format: dot, json, svg")
	cmd.Flags().StringVar(&hover, "hover", "", "Export with this node highlighted")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to file instead of stdout")
	return cmd
}
