package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/abhisek/beautylens/internal/catalog"
)

var personasCmd = &cobra.Command{
	Use:   "personas",
	Short: "List the personas in display order",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadSettings(cmd)
		if err != nil {
			return err
		}
		cat, err := loadCatalog(cfg)
		if err != nil {
			return err
		}
		printPersonas(cmd.OutOrStdout(), cat)
		return nil
	},
}

func printPersonas(w io.Writer, cat *catalog.Catalog) {
	for i, p := range cat.Personas() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s %s (%s)\n", p.Badge(), p.Title, p.Key)
		fmt.Fprintf(w, "  %s\n", p.Summary)
	}
}
