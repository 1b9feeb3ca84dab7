package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/abhisek/beautylens/internal/catalog"
	"github.com/abhisek/beautylens/internal/persona"
	"github.com/abhisek/beautylens/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show recent results and the persona distribution",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		cfg, err := loadSettings(cmd)
		if err != nil {
			return err
		}
		cat, err := loadCatalog(cfg)
		if err != nil {
			return err
		}
		s, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer s.Close()

		results, err := s.EventRepo().RecentResults(cmd.Context(), store.QueryOpts{})
		if err != nil {
			return fmt.Errorf("query results: %w", err)
		}
		printStats(cmd.OutOrStdout(), cat, results, limit)
		return nil
	},
}

func init() {
	statsCmd.Flags().IntP("limit", "n", 10, "Number of recent results to show")
}

// distribution counts finished runs per dominant persona. Runs without a
// dominant persona are counted separately.
func distribution(results []store.ResultRecord) (counts map[persona.Key]int, none int) {
	counts = make(map[persona.Key]int, persona.Count)
	for _, r := range results {
		key, err := persona.ParseKey(r.Dominant)
		if err != nil {
			none++
			continue
		}
		counts[key]++
	}
	return counts, none
}

func printStats(w io.Writer, cat *catalog.Catalog, results []store.ResultRecord, limit int) {
	if len(results) == 0 {
		fmt.Fprintln(w, "No finished quizzes yet.")
		return
	}

	title := cases.Title(language.English)
	fmt.Fprintln(w, "Recent Results")
	fmt.Fprintln(w, strings.Repeat("─", 72))
	for i, r := range results {
		if limit > 0 && i >= limit {
			break
		}
		who := r.Nickname
		if who == "" {
			who = "anonymous"
		}
		lens := "-"
		if key, err := persona.ParseKey(r.Dominant); err == nil {
			p := cat.Persona(key)
			lens = p.Badge() + " " + p.Title
		}
		fmt.Fprintf(w, "%-16s  %-14s  %2d/%-2d  %s\n",
			r.FinishedAt.Local().Format("2006-01-02 15:04"), title.String(who), r.Answered, r.TotalQuestions, lens)
	}

	counts, none := distribution(results)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Persona Distribution (%d runs)\n", len(results))
	fmt.Fprintln(w, strings.Repeat("─", 72))
	for _, p := range cat.Personas() {
		n := counts[p.Key]
		pct := n * 100 / len(results)
		fmt.Fprintf(w, "%s %-26s %4d  %3d%%  %s\n", p.Badge(), p.Title, n, pct, strings.Repeat("█", pct/5))
	}
	if none > 0 {
		fmt.Fprintf(w, "  %-26s %4d\n", "No answers", none)
	}
}
