package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"niftyOptionsBot/config"
	"niftyOptionsBot/internal/adapters/logger"
	"niftyOptionsBot/internal/adapters/sqlite"
	"niftyOptionsBot/internal/analytics"
)

// report prints the trade log and performance metrics of the most recent
// backtest run recorded in the database.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}

	appLogger := logger.New(logger.ParseLevel(cfg.LogLevel))
	ctx := context.Background()

	repo, err := sqlite.NewRepository(sqlite.Config{
		DBPath: cfg.DBPath,
		Logger: appLogger,
	})
	if err != nil {
		log.Fatalf("FATAL: Failed to open database: %v", err)
	}
	defer repo.Close()

	run, err := repo.LatestRun(ctx)
	if err != nil {
		log.Fatalf("FATAL: Failed to query latest run: %v", err)
	}
	if run == nil {
		fmt.Println("No backtest runs recorded yet.")
		return
	}

	trades, err := repo.FindTradesByRun(ctx, run.ID)
	if err != nil {
		log.Fatalf("FATAL: Failed to load trades for run %s: %v", run.ID, err)
	}

	fmt.Printf("Run %s (%s to %s)\n", run.ID,
		run.StartDate.Format("2006-01-02"), run.EndDate.Format("2006-01-02"))
	analytics.WriteTradeTable(os.Stdout, trades)
	analytics.WriteMetricsTable(os.Stdout, analytics.Analyze(trades, run.StartingCapital))
	if !run.FinishedAt.IsZero() {
		fmt.Printf("Final capital: %.2f\n", run.FinalCapital)
	}
}
