package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/abhisek/beautylens/internal/catalog"
	"github.com/abhisek/beautylens/internal/config"
	"github.com/abhisek/beautylens/internal/llm"
	"github.com/abhisek/beautylens/internal/logging"
	"github.com/abhisek/beautylens/internal/reading"
	"github.com/abhisek/beautylens/internal/store"
)

var rootCmd = &cobra.Command{
	Use:          "beautylens",
	Short:        "Discover how you perceive beauty",
	Long:         "Beautylens is a terminal quiz that maps your answers onto four beauty-perception personas.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("db", "", "Path to SQLite database file (overrides BEAUTYLENS_DB)")
	pf.String("catalog", "", "Path to a quiz catalog YAML file (overrides BEAUTYLENS_CATALOG)")
	pf.String("log-level", "", "Log level: debug, info, warn or error (overrides BEAUTYLENS_LOG_LEVEL)")
	pf.Bool("strict", false, "Reject answers whose persona is not offered by the question")

	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(personasCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadSettings reads the environment and applies any flags the user set.
func loadSettings(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("db") {
		cfg.DBPath, _ = flags.GetString("db")
	}
	if flags.Changed("catalog") {
		cfg.CatalogPath, _ = flags.GetString("catalog")
	}
	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}
	if flags.Changed("strict") {
		cfg.StrictOptions, _ = flags.GetBool("strict")
	}
	return cfg, nil
}

// resolveDBPath returns the configured database path, falling back to the
// default XDG location.
func resolveDBPath(cfg config.Config) (string, error) {
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}

func openStore(cfg config.Config) (*store.Store, error) {
	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

func loadCatalog(cfg config.Config) (*catalog.Catalog, error) {
	if cfg.CatalogPath == "" {
		return catalog.Default(), nil
	}
	cat, err := catalog.LoadFile(cfg.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return cat, nil
}

// setupLogging writes to cfg.LogFile, else to fallback, else to stderr.
func setupLogging(cfg config.Config, fallback string) (*slog.Logger, io.Closer, error) {
	path := cfg.LogFile
	if path == "" {
		path = fallback
	}
	logger, closer, err := logging.Setup(path, cfg.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("setup logging: %w", err)
	}
	return logger, closer, nil
}

// newReadingService returns nil when no AI provider is configured.
func newReadingService(ctx context.Context, cfg config.Config, rec llm.Recorder, logger *slog.Logger) (*reading.Service, error) {
	llmCfg, ok := llm.FromSettings(cfg.LLM)
	if !ok {
		logger.Info("ai reading disabled: no provider configured")
		return nil, nil
	}
	provider, err := llm.NewProvider(ctx, llmCfg, rec, logger)
	if err != nil {
		return nil, err
	}
	logger.Info("ai reading enabled",
		slog.String("provider", llmCfg.Provider),
		slog.String("model", provider.ModelID()))

	rc := reading.DefaultConfig()
	rc.Timeout = llmCfg.Timeout
	return reading.NewService(provider, rc, logger), nil
}
