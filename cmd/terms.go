package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/msalah0e/glossview/internal/glossary"
	"github.com/msalah0e/glossview/internal/ui"
)

func termsCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:     "terms [query]",
		Aliases: []string{"ls", "search"},
		Short:   "List glossary terms, optionally filtered",
		Args:    cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			query := strings.Join(args, " ")

			terms, err := newClient(commandLogger()).LoadTerms(cmd.Context())
			if err != nil {
				fail("%v", err)
			}
			terms = glossary.Filter(terms, query)

			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				if err := enc.Encode(terms); err != nil {
					fail("%v", err)
				}
				return
			}

			if len(terms) == 0 {
				if query != "" {
					fmt.Printf("  No terms match %q\n", query)
				} else {
					fmt.Println("  No terms.")
				}
				return
			}

			rows := make([][]string, 0, len(terms))
			for _, t := range terms {
				def := strings.Join(strings.Fields(t.Definition), " ")
				rows = append(rows, []string{t.ID, ui.Truncate(t.Title, 32), ui.Truncate(def, 60)})
			}
			ui.Table([]string{"ID", "TITLE", "DEFINITION"}, rows)
			fmt.Println()
			fmt.Printf("  %s\n", ui.Subtle.Sprintf("%d terms", len(terms)))
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print terms as JSON")
	return cmd
}
