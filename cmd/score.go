package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/beautylens/internal/catalog"
	"github.com/abhisek/beautylens/internal/persona"
	"github.com/abhisek/beautylens/internal/quiz"
	"github.com/abhisek/beautylens/internal/session"
)

var scoreCmd = &cobra.Command{
	Use:   "score [qid=LABEL|PERSONA ...]",
	Short: "Score a set of answers without the TUI",
	Example: `  beautylens score 1=A 2=C 3=B
  beautylens score --json 4=verdant_curator`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadSettings(cmd)
		if err != nil {
			return err
		}
		cat, err := loadCatalog(cfg)
		if err != nil {
			return err
		}
		asJSON, _ := cmd.Flags().GetBool("json")
		return runScore(cmd.OutOrStdout(), cat, cfg.StrictOptions, asJSON, args)
	},
}

func init() {
	scoreCmd.Flags().Bool("json", false, "Print the result as JSON")
}

// parseAnswer splits "12=B" into question 12 and value "B".
func parseAnswer(arg string) (int, string, error) {
	id, val, ok := strings.Cut(arg, "=")
	if !ok || val == "" {
		return 0, "", fmt.Errorf("expected qid=LABEL, got %q", arg)
	}
	n, err := strconv.Atoi(strings.TrimSpace(id))
	if err != nil {
		return 0, "", fmt.Errorf("invalid question id %q", id)
	}
	return n, strings.TrimSpace(val), nil
}

// applyAnswers feeds args to a fresh engine. A value naming a persona is
// applied directly, anything else is treated as an option label.
func applyAnswers(cat *catalog.Catalog, strict bool, args []string) (*quiz.Engine, error) {
	var opts []quiz.Option
	if strict {
		opts = append(opts, quiz.WithStrictOptions())
	}
	eng := quiz.New(cat, opts...)

	for _, arg := range args {
		id, val, err := parseAnswer(arg)
		if err != nil {
			return nil, err
		}
		if key, perr := persona.ParseKey(val); perr == nil {
			err = eng.SelectAnswer(id, key)
		} else {
			err = eng.SelectOption(id, strings.ToUpper(val))
		}
		if err != nil {
			return nil, err
		}
	}
	return eng, nil
}

type scoreOutput struct {
	Answered   int            `json:"answered"`
	Total      int            `json:"total"`
	Completion int            `json:"completion"`
	Complete   bool           `json:"complete"`
	Tally      map[string]int `json:"tally"`
	Dominant   *persona.Key   `json:"dominant"`
}

func runScore(w io.Writer, cat *catalog.Catalog, strict, asJSON bool, args []string) error {
	eng, err := applyAnswers(cat, strict, args)
	if err != nil {
		return err
	}
	v := eng.Snapshot()

	if asJSON {
		out := scoreOutput{
			Answered:   v.Answered,
			Total:      v.Total,
			Completion: v.Completion,
			Complete:   v.Answered == v.Total,
			Tally:      session.TallyNames(v.Tally),
		}
		if v.HasResult {
			out.Dominant = &v.Dominant
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	fmt.Fprintf(w, "Answered:  %d/%d (%d%%)\n", v.Answered, v.Total, v.Completion)
	if v.HasResult {
		p := cat.Persona(v.Dominant)
		fmt.Fprintf(w, "Dominant:  %s %s\n", p.Badge(), p.Title)
	} else {
		fmt.Fprintln(w, "Dominant:  none yet, answer at least one question")
	}
	fmt.Fprintln(w)
	for _, p := range cat.Personas() {
		marker := " "
		if v.HasResult && p.Key == v.Dominant {
			marker = "*"
		}
		fmt.Fprintf(w, "%s %s %-26s %2d\n", marker, p.Badge(), p.Title, v.Tally.Get(p.Key))
	}
	return nil
}
