package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/trackd/internal/config"
	"github.com/sandeepkv93/trackd/internal/storage"
)

var exportCmd = &cobra.Command{
	Use:   "export <path>",
	Short: "Write the portfolio to a JSON file",
	Args:  cobra.ExactArgs(1),
	RunE:  runExport,
}

var importCmd = &cobra.Command{
	Use:   "import <path>",
	Short: "Replace the portfolio from a JSON file",
	RunE:  runImport,
	Args:  cobra.ExactArgs(1),
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
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

	if err := storage.ExportJSON(args[0], snapshot); err != nil {
		return err
	}
	fmt.Printf("exported %d project(s), %d task(s) to %s\n", len(snapshot), snapshot.TaskCount(), args[0])
	return nil
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	snapshot, err := storage.ImportJSON(args[0])
	if err != nil {
		return err
	}

	repo, err := storage.OpenSQLite(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer repo.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
	defer cancel()
	if err := repo.ReplacePortfolio(ctx, snapshot); err != nil {
		return fmt.Errorf("replace portfolio: %w", err)
	}
	fmt.Printf("imported %d project(s), %d task(s) from %s\n", len(snapshot), snapshot.TaskCount(), args[0])
	return nil
}
