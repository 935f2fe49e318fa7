package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/sandeepkv93/trackd/internal/config"
	"github.com/sandeepkv93/trackd/internal/model"
	"github.com/sandeepkv93/trackd/internal/planner"
	"github.com/sandeepkv93/trackd/internal/storage"
)

var topCmd = &cobra.Command{
	Use:   "top [n]",
	Short: "Print the highest-priority tasks without opening the TUI",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTop,
}

func runTop(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	limit := cfg.Ranking.Limit
	if len(args) == 1 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			return fmt.Errorf("invalid limit: %s", args[0])
		}
		limit = n
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

	ranked := planner.Rank(snapshot, today(), planner.Options{
		WindowDays: cfg.Ranking.WindowDays,
		Limit:      limit,
	})
	if len(ranked) == 0 {
		fmt.Println("nothing in the ranking window")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"#", "SCORE", "TASK", "PROJECT", "DEADLINE", "DAYS", "BONUS"})
	for i, r := range ranked {
		days := fmt.Sprintf("%d", r.DaysToDeadline)
		if r.Overdue {
			days += " (overdue)"
		}
		t.AppendRow(table.Row{
			i + 1,
			fmt.Sprintf("%.1f", r.Score),
			r.Task.Name,
			r.ProjectName,
			r.Task.End.Format("2006-01-02"),
			days,
			model.BonusLabel(r.Task.PriorityBonus),
		})
	}
	t.Render()
	return nil
}
