package cli

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/sandeepkv93/trackd/internal/config"
	"github.com/sandeepkv93/trackd/internal/deadline"
	"github.com/sandeepkv93/trackd/internal/planner"
	"github.com/sandeepkv93/trackd/internal/storage"
	"github.com/sandeepkv93/trackd/internal/update"
)

var rootCmd = &cobra.Command{
	Use:           "trackd",
	Short:         "Project tracking dashboard with priority ranking",
	RunE:          runDashboard,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "trackd failed: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(topCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(versionCmd)
}

func runDashboard(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	closeLog, err := setupLogging(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	log.Info().Str("db", cfg.Database.Path).Msg("starting dashboard")

	repo, err := storage.OpenSQLite(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer repo.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
	snapshot, err := repo.LoadPortfolio(ctx)
	cancel()
	if err != nil {
		return fmt.Errorf("load portfolio: %w", err)
	}
	log.Info().Int("projects", len(snapshot)).Int("tasks", snapshot.TaskCount()).Msg("portfolio loaded")

	watcher := deadline.NewEngine(64)
	watcher.Start()
	defer watcher.Stop()
	if err := watcher.SchedulePortfolio(snapshot, time.Now().UTC()); err != nil {
		log.Warn().Err(err).Msg("deadline watch not fully scheduled")
	}

	m := update.NewModelWithRuntime(snapshot, today(), repo, planner.Options{
		WindowDays: cfg.Ranking.WindowDays,
		Limit:      cfg.Ranking.Limit,
	}, watcher)
	program := tea.NewProgram(m)
	if _, err := program.Run(); err != nil {
		log.Error().Err(err).Msg("dashboard exited with error")
		return err
	}
	log.Info().Msg("dashboard closed")
	return nil
}

// setupLogging routes zerolog to the configured log file so the TUI
// never shares the terminal with log output.
func setupLogging(cfg *config.Config) (func(), error) {
	if err := config.GetPaths().EnsureDirs(); err != nil {
		return nil, fmt.Errorf("create dirs: %w", err)
	}
	logFile, err := os.OpenFile(cfg.Log.Path, os.O_RDWR|os.O_CREATE|os.O_APPEND, fs.FileMode(0o644))
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = log.With().Caller().Logger().Output(zerolog.ConsoleWriter{
		Out: logFile, TimeFormat: "2006-01-02_15:04:05",
	})
	return func() { _ = logFile.Close() }, nil
}

func today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
