package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"niftyOptionsBot/internal/domain"
	"niftyOptionsBot/internal/ports"
)

// Repository implements the ports.TradeRepository interface using SQLite.
type Repository struct {
	db     *sql.DB
	logger ports.Logger
}

// Config holds configuration for the SQLite repository.
type Config struct {
	DBPath string
	Logger ports.Logger
}

// NewRepository creates a new SQLite repository instance.
func NewRepository(cfg Config) (*Repository, error) {
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger is required for SQLite repository")
	}
	dbPath := cfg.DBPath
	if dbPath == "" {
		dbPath = "./data/backtests.db"
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		err = fmt.Errorf("failed to create data directory '%s': %w", filepath.Dir(dbPath), err)
		cfg.Logger.Error(context.Background(), err, "SQLite repository initialization failed")
		return nil, err
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		err = fmt.Errorf("failed to open database at '%s': %w", dbPath, err)
		cfg.Logger.Error(context.Background(), err, "SQLite repository initialization failed")
		return nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		err = fmt.Errorf("failed to ping database at '%s': %w: %v", dbPath, ports.ErrDBConnection, err)
		cfg.Logger.Error(context.Background(), err, "SQLite repository initialization failed")
		return nil, err
	}

	// SQLite handles concurrency internally; limit the Go-side pool.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	repo := &Repository{db: db, logger: cfg.Logger}
	if err := repo.initializeSchema(context.Background()); err != nil {
		db.Close()
		err = fmt.Errorf("failed to initialize database schema: %w", err)
		cfg.Logger.Error(context.Background(), err, "SQLite repository initialization failed")
		return nil, err
	}
	cfg.Logger.Info(context.Background(), "SQLite database ready", map[string]interface{}{"path": dbPath})

	return repo, nil
}

func (r *Repository) initializeSchema(ctx context.Context) error {
	const schema = `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		started_at TIMESTAMP NOT NULL,
		finished_at TIMESTAMP DEFAULT NULL,
		start_date TIMESTAMP NOT NULL,
		end_date TIMESTAMP NOT NULL,
		starting_capital REAL NOT NULL,
		final_capital REAL DEFAULT NULL
	);

	CREATE TABLE IF NOT EXISTS trades (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL,
		symbol TEXT NOT NULL,
		token TEXT NOT NULL,
		direction TEXT NOT NULL,
		entry_price REAL NOT NULL,
		exit_price REAL NOT NULL,
		quantity INTEGER NOT NULL,
		pnl REAL NOT NULL,
		entry_time TIMESTAMP NOT NULL,
		exit_time TIMESTAMP NOT NULL,
		close_reason TEXT NOT NULL,
		atr REAL NOT NULL,
		stop_loss REAL NOT NULL,
		take_profit REAL NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_trades_run_entry_time ON trades (run_id, entry_time);
	`
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to execute schema initialization: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (r *Repository) Close() error {
	if r.db != nil {
		r.logger.Info(context.Background(), "Closing SQLite database connection")
		return r.db.Close()
	}
	return nil
}

// CreateRun records the start of a backtest run.
func (r *Repository) CreateRun(ctx context.Context, run *domain.Run) error {
	const query = `
	INSERT INTO runs (id, started_at, start_date, end_date, starting_capital)
	VALUES (?, ?, ?, ?, ?)`

	if _, err := r.db.ExecContext(ctx, query,
		run.ID, run.StartedAt, run.StartDate, run.EndDate, run.StartingCapital); err != nil {
		return fmt.Errorf("failed to insert run %s: %w", run.ID, err)
	}
	return nil
}

// FinishRun stamps the run with its final capital and finish time.
func (r *Repository) FinishRun(ctx context.Context, runID string, finalCapital float64, finishedAt time.Time) error {
	const query = `UPDATE runs SET finished_at = ?, final_capital = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, finishedAt, finalCapital, runID)
	if err != nil {
		return fmt.Errorf("failed to finish run %s: %w", runID, err)
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return fmt.Errorf("finish run %s: %w", runID, ports.ErrNotFound)
	}
	return nil
}

// SaveTrade appends a closed trade to the run's log and returns its ID.
func (r *Repository) SaveTrade(ctx context.Context, runID string, trade *domain.Trade) (int64, error) {
	const query = `
	INSERT INTO trades (run_id, symbol, token, direction, entry_price, exit_price, quantity, pnl, entry_time, exit_time, close_reason, atr, stop_loss, take_profit)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query,
		runID, trade.Symbol, trade.Token, string(trade.Direction),
		trade.EntryPrice, trade.ExitPrice, trade.Quantity, trade.PNL,
		trade.EntryTime, trade.ExitTime, string(trade.CloseReason),
		trade.ATR, trade.StopLoss, trade.TakeProfit)
	if err != nil {
		return 0, fmt.Errorf("failed to insert trade for %s: %w", trade.Symbol, err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get inserted trade ID: %w", err)
	}
	return id, nil
}

// FindTradesByRun retrieves all trades of a run ordered by entry time.
func (r *Repository) FindTradesByRun(ctx context.Context, runID string) ([]*domain.Trade, error) {
	const query = `
	SELECT id, symbol, token, direction, entry_price, exit_price, quantity, pnl, entry_time, exit_time, close_reason, atr, stop_loss, take_profit
	FROM trades WHERE run_id = ? ORDER BY entry_time ASC`

	rows, err := r.db.QueryContext(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query trades for run %s: %w: %v", runID, ports.ErrQueryFailed, err)
	}
	defer rows.Close()

	var trades []*domain.Trade
	for rows.Next() {
		var t domain.Trade
		var direction, reason string
		if err := rows.Scan(&t.ID, &t.Symbol, &t.Token, &direction,
			&t.EntryPrice, &t.ExitPrice, &t.Quantity, &t.PNL,
			&t.EntryTime, &t.ExitTime, &reason,
			&t.ATR, &t.StopLoss, &t.TakeProfit); err != nil {
			return nil, fmt.Errorf("failed to scan trade row: %w", err)
		}
		t.Direction = domain.OptionSide(direction)
		t.CloseReason = domain.CloseReason(reason)
		trades = append(trades, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("trade rows iteration failed: %w", err)
	}
	return trades, nil
}

// LatestRun returns the most recently started run, or nil, nil when the
// repository is empty.
func (r *Repository) LatestRun(ctx context.Context) (*domain.Run, error) {
	const query = `
	SELECT id, started_at, finished_at, start_date, end_date, starting_capital, final_capital
	FROM runs ORDER BY started_at DESC LIMIT 1`

	var run domain.Run
	var finishedAt sql.NullTime
	var finalCapital sql.NullFloat64
	err := r.db.QueryRowContext(ctx, query).Scan(
		&run.ID, &run.StartedAt, &finishedAt, &run.StartDate, &run.EndDate,
		&run.StartingCapital, &finalCapital)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query latest run: %w: %v", ports.ErrQueryFailed, err)
	}
	if finishedAt.Valid {
		run.FinishedAt = finishedAt.Time
	}
	if finalCapital.Valid {
		run.FinalCapital = finalCapital.Float64
	}
	return &run, nil
}
