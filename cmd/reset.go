package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all recorded quiz history",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		out := cmd.OutOrStdout()
		if !yes {
			fmt.Fprintln(out, "This deletes every recorded quiz and AI reading. Re-run with --yes to confirm.")
			return nil
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

		if err := s.EventRepo().Purge(cmd.Context()); err != nil {
			return fmt.Errorf("purge history: %w", err)
		}
		fmt.Fprintln(out, "History cleared.")
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("yes", false, "Confirm deletion")
}
