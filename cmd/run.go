package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/abhisek/beautylens/internal/app"
	"github.com/abhisek/beautylens/internal/screens"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	cat, err := loadCatalog(cfg)
	if err != nil {
		return err
	}
	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return fmt.Errorf("resolve database path: %w", err)
	}

	// The TUI owns the terminal, so logs go to a file next to the database.
	logger, closer, err := setupLogging(cfg, filepath.Join(filepath.Dir(dbPath), "beautylens.log"))
	if err != nil {
		return err
	}
	defer closer.Close()

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	repo := st.EventRepo()
	env := screens.Env{
		Catalog:       cat,
		Repo:          repo,
		StrictOptions: cfg.StrictOptions,
		Logger:        logger,
	}

	svc, err := newReadingService(ctx, cfg, repo, logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "AI readings will be unavailable.")
		logger.Warn("llm provider unavailable", slog.String("error", err.Error()))
	} else {
		env.Reading = svc
	}

	return app.Run(env)
}
