package cmd

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/msalah0e/glossview/internal/api"
	"github.com/msalah0e/glossview/internal/detail"
	"github.com/msalah0e/glossview/internal/model"
	"github.com/msalah0e/glossview/internal/ui"
)

func showCmd() *cobra.Command {
	var width int

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one term the way the detail panel does",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			term, err := newClient(commandLogger()).LoadTerm(cmd.Context(), args[0])
			if err != nil {
				var le *api.LoadError
				if errors.As(err, &le) && le.Status == http.StatusNotFound {
					fail("Term not found: %s", args[0])
				}
				fail("%v", err)
			}
			printDetail(model.SelectTerm(*term), width)
		},
	}

	cmd.Flags().IntVar(&width, "width", 72, "Wrap width")
	return cmd
}

func printDetail(sel *model.Selection, width int) {
	for _, l := range detail.Render(sel, width) {
		switch l.Kind {
		case detail.KindTitle:
			fmt.Printf("  %s\n", ui.Brand.Sprint(l.Text))
		case detail.KindHeading:
			fmt.Printf("  %s\n", ui.Info.Sprint(l.Text))
		case detail.KindLink:
			fmt.Printf("  %s %s\n", l.Text, ui.Subtle.Sprint(l.URL))
		case detail.KindID:
			fmt.Printf("  %s\n", ui.Subtle.Sprint(l.Text))
		case detail.KindBlank:
			fmt.Println()
		default:
			fmt.Printf("  %s\n", l.Text)
		}
	}
}
