package main

import (
	"context"
	"fmt"
	"log" // Use standard log only for initial fatal errors before logger is set up
	"os"
	"time"

	"niftyOptionsBot/config"
	"niftyOptionsBot/internal/adapters/logger"
	"niftyOptionsBot/internal/adapters/scripmaster"
	"niftyOptionsBot/internal/adapters/smartapi"
	"niftyOptionsBot/internal/adapters/sqlite"
	"niftyOptionsBot/internal/analytics"
	"niftyOptionsBot/internal/domain"
	"niftyOptionsBot/internal/engine"
	"niftyOptionsBot/internal/strategy"
	"niftyOptionsBot/internal/strike"
	"niftyOptionsBot/internal/utils"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}

	// 2. Initialize Logger
	appLogger := logger.New(logger.ParseLevel(cfg.LogLevel))
	ctx := context.Background()
	appLogger.Info(ctx, "Logger initialized", map[string]interface{}{"level": cfg.LogLevel})

	// 3. Initialize Repository (Database Adapter)
	repo, err := sqlite.NewRepository(sqlite.Config{
		DBPath: cfg.DBPath,
		Logger: appLogger,
	})
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize database repository: %v", err)
	}
	defer func() {
		if err := repo.Close(); err != nil {
			appLogger.Error(ctx, err, "Error closing database repository")
		}
	}()

	// 4. Initialize SmartAPI client and authenticate (precondition for all
	// historical data calls).
	client, err := smartapi.New(smartapi.Config{
		APIKey:     cfg.APIKey,
		ClientCode: cfg.ClientCode,
		PIN:        cfg.PIN,
		TOTP:       cfg.TOTP,
		Logger:     appLogger,
	})
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize SmartAPI client: %v", err)
	}
	if err := client.Authenticate(ctx); err != nil {
		log.Fatalf("FATAL: SmartAPI authentication failed: %v", err)
	}

	// 5. Load the instrument reference table for the simulated range.
	instruments, err := scripmaster.New(scripmaster.Config{
		DataDir: cfg.DataDir,
		Logger:  appLogger,
	})
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize scrip master repository: %v", err)
	}
	if err := instruments.Refresh(ctx, time.Now()); err != nil {
		log.Fatalf("FATAL: Failed to load scrip master: %v", err)
	}

	// 6. Wire the engine.
	detector := strategy.NewDetector(client, appLogger, cfg.IndexToken, cfg.RSIPeriod, cfg.ADXPeriod)
	resolver, err := strike.NewResolver(strike.Config{
		Underlying:        cfg.Underlying,
		ExpiryYearCode:    cfg.ExpiryYearCode,
		TickStep:          cfg.TickStep,
		Lot:               cfg.Lot,
		ATRPeriod:         cfg.ATRPeriod,
		StopLossATRMult:   cfg.StopLossATRMult,
		TakeProfitATRMult: cfg.TakeProfitATRMult,
		MaxStrikeChecks:   cfg.MaxStrikeChecks,
	}, client, instruments, appLogger)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize strike resolver: %v", err)
	}

	sim, err := engine.New(engine.Config{
		StartDate:    cfg.SimulationStart,
		EndDate:      cfg.SimulationEnd,
		SessionOpen:  cfg.SessionOpen,
		SessionClose: cfg.SessionClose,
		Step:         time.Minute,
		Location:     cfg.Location,
		IndexToken:   cfg.IndexToken,
		HoldTimeout:  cfg.HoldTimeout,
	}, appLogger, client, detector, resolver, repo)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize simulator: %v", err)
	}

	// 7. Run the backtest.
	sess := engine.NewSession(cfg.StartingCapital)
	run := &domain.Run{
		ID:              sess.RunID,
		StartedAt:       time.Now().UTC(),
		StartDate:       cfg.SimulationStart,
		EndDate:         cfg.SimulationEnd,
		StartingCapital: cfg.StartingCapital,
	}
	if err := repo.CreateRun(ctx, run); err != nil {
		log.Fatalf("FATAL: Failed to record run: %v", err)
	}

	if err := sim.Run(ctx, sess); err != nil {
		appLogger.Error(ctx, err, "Simulation aborted")
		os.Exit(1)
	}

	if err := repo.FinishRun(ctx, sess.RunID, sess.Account.Capital, time.Now().UTC()); err != nil {
		appLogger.Error(ctx, err, "Failed to finalize run record")
	}

	// 8. Report.
	fmt.Printf("\n--- TRADE SUMMARY (run %s) ---\n", sess.RunID)
	analytics.WriteTradeTable(os.Stdout, sess.Trades)
	metrics := analytics.Analyze(sess.Trades, cfg.StartingCapital)
	analytics.WriteMetricsTable(os.Stdout, metrics)
	fmt.Printf("Final capital: %.2f\n", sess.Account.Capital)

	tradesFile := fmt.Sprintf("%s/trades_%s.csv", cfg.DataDir, cfg.SimulationStart.Format("20060102"))
	if err := utils.WriteTradesToCSV(sess.Trades, tradesFile); err != nil {
		appLogger.Error(ctx, err, "Failed to export trades CSV", map[string]interface{}{"file": tradesFile})
	} else {
		appLogger.Info(ctx, "Trades exported", map[string]interface{}{"file": tradesFile})
	}
}
