package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/beautylens/internal/llm"
	"github.com/abhisek/beautylens/internal/store"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect recorded AI reading requests",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent LLM events",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")

		cfg, err := loadSettings(cmd)
		if err != nil {
			return err
		}
		s, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer s.Close()

		events, err := s.EventRepo().QueryLLMEvents(cmd.Context(), store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}
		printLLMEvents(cmd.OutOrStdout(), filterPurpose(events, purpose))
		return nil
	},
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "View full request/response for an LLM event",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid ID %q: %w", args[0], err)
		}

		cfg, err := loadSettings(cmd)
		if err != nil {
			return err
		}
		s, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer s.Close()

		e, err := s.EventRepo().GetLLMEvent(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("get event: %w", err)
		}
		if e == nil {
			return fmt.Errorf("event %d not found", id)
		}
		printLLMEvent(cmd.OutOrStdout(), e)
		return nil
	},
}

func filterPurpose(events []store.LLMEventRecord, purpose string) []store.LLMEventRecord {
	if purpose == "" {
		return events
	}
	out := events[:0:0]
	for _, e := range events {
		if e.Purpose == purpose {
			out = append(out, e)
		}
	}
	return out
}

func printLLMEvents(w io.Writer, events []store.LLMEventRecord) {
	if len(events) == 0 {
		fmt.Fprintln(w, "No LLM events found.")
		return
	}

	fmt.Fprintf(w, "%-5s  %-19s  %-10s  %-26s  %-6s  %-6s  %-7s  %-9s  %s\n",
		"ID", "Timestamp", "Purpose", "Model", "In", "Out", "Ms", "Cost", "OK")
	fmt.Fprintln(w, strings.Repeat("─", 104))

	var (
		totalCost float64
		unpriced  bool
	)
	for _, e := range events {
		ok := "✓"
		if !e.Success {
			ok = "✗"
		}
		cost := "?"
		if c, known := llm.EstimateCost(e.Model, e.InputTokens, e.OutputTokens); known {
			cost = formatCost(c)
			totalCost += c
		} else {
			unpriced = true
		}
		fmt.Fprintf(w, "%-5d  %-19s  %-10s  %-26s  %-6d  %-6d  %-7d  %-9s  %s\n",
			e.ID,
			e.Timestamp.Local().Format("2006-01-02 15:04:05"),
			truncate(e.Purpose, 10),
			truncate(e.Model, 26),
			e.InputTokens,
			e.OutputTokens,
			e.LatencyMs,
			cost,
			ok,
		)
	}

	fmt.Fprintln(w, strings.Repeat("─", 104))
	label := "Estimated total"
	if unpriced {
		label += " (partial)"
	}
	fmt.Fprintf(w, "%s: %s\n", label, formatCost(totalCost))
}

func printLLMEvent(w io.Writer, e *store.LLMEventRecord) {
	sep := strings.Repeat("─", 60)

	fmt.Fprintf(w, "ID:        %d\n", e.ID)
	fmt.Fprintf(w, "Time:      %s\n", e.Timestamp.Local().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "Provider:  %s\n", e.Provider)
	fmt.Fprintf(w, "Model:     %s\n", e.Model)
	fmt.Fprintf(w, "Purpose:   %s\n", e.Purpose)
	fmt.Fprintf(w, "Tokens:    %d in / %d out\n", e.InputTokens, e.OutputTokens)
	fmt.Fprintf(w, "Latency:   %dms\n", e.LatencyMs)
	fmt.Fprintf(w, "Success:   %v\n", e.Success)
	if e.ErrorMessage != "" {
		fmt.Fprintf(w, "Error:     %s\n", e.ErrorMessage)
	}

	for _, section := range []struct{ name, body string }{
		{"REQUEST", e.RequestBody},
		{"RESPONSE", e.ResponseBody},
	} {
		fmt.Fprintln(w)
		fmt.Fprintln(w, sep)
		fmt.Fprintln(w, section.name)
		fmt.Fprintln(w, sep)
		if section.body != "" {
			fmt.Fprintln(w, section.body)
		} else {
			fmt.Fprintln(w, "(not captured)")
		}
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of events to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Filter by purpose (e.g. reading)")

	llmCmd.AddCommand(llmListCmd)
	llmCmd.AddCommand(llmViewCmd)
}
