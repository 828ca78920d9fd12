package scripmaster

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"niftyOptionsBot/internal/ports"
)

const (
	defaultURL      = "https://margincalculator.angelbroking.com/OpenAPI_File/files/OpenAPIScripMaster.json"
	defaultDataDir  = "./data"
	cacheFilePrefix = "OpenAPIScripMaster_"
)

// Config holds configuration for the scrip master repository.
type Config struct {
	URL        string
	DataDir    string
	Logger     ports.Logger
	HTTPClient *http.Client
}

// instrumentRow is the subset of a scrip master record the resolver needs.
type instrumentRow struct {
	Token  string `json:"token"`
	Symbol string `json:"symbol"`
}

// Repository implements ports.TokenResolver backed by the daily scrip master
// file: downloaded once per calendar day, cached on disk, indexed in memory
// by uppercase symbol. Resolved lookups are additionally memoized in a TTL
// cache so repeated resolutions of the same contract skip the index.
type Repository struct {
	cfg    Config
	logger ports.Logger
	http   *http.Client

	mu        sync.RWMutex
	bySymbol  map[string]string
	loadedFor string // cache key of the currently loaded table, "" until Refresh

	resolved *gocache.Cache
}

// New creates a scrip master repository instance.
func New(cfg Config) (*Repository, error) {
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger is required for scrip master repository")
	}
	if cfg.URL == "" {
		cfg.URL = defaultURL
	}
	if cfg.DataDir == "" {
		cfg.DataDir = defaultDataDir
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: 60 * time.Second}
	}
	return &Repository{
		cfg:      cfg,
		logger:   cfg.Logger,
		http:     cfg.HTTPClient,
		resolved: gocache.New(24*time.Hour, time.Hour),
	}, nil
}

// Refresh loads the reference table for the given trading date, reusing the
// on-disk copy when one exists for that date.
func (r *Repository) Refresh(ctx context.Context, date time.Time) error {
	key := date.Format("2006-01-02")

	r.mu.RLock()
	loaded := r.loadedFor
	r.mu.RUnlock()
	if loaded == key {
		return nil
	}

	if err := os.MkdirAll(r.cfg.DataDir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory %s: %w", r.cfg.DataDir, err)
	}
	filename := filepath.Join(r.cfg.DataDir, cacheFilePrefix+key+".json")

	raw, err := os.ReadFile(filename)
	if err == nil {
		r.logger.Info(ctx, "Using cached scrip master", map[string]interface{}{"file": filename})
	} else {
		raw, err = r.download(ctx, filename)
		if err != nil {
			return err
		}
	}

	var rows []instrumentRow
	if err := json.Unmarshal(raw, &rows); err != nil {
		return fmt.Errorf("failed to parse scrip master: %w", err)
	}

	bySymbol := make(map[string]string, len(rows))
	for _, row := range rows {
		if row.Symbol == "" || row.Token == "" {
			continue
		}
		bySymbol[strings.ToUpper(row.Symbol)] = row.Token
	}

	r.mu.Lock()
	r.bySymbol = bySymbol
	r.loadedFor = key
	r.mu.Unlock()
	r.resolved.Flush()

	r.logger.Info(ctx, "Scrip master loaded", map[string]interface{}{"date": key, "instruments": len(bySymbol)})
	return nil
}

func (r *Repository) download(ctx context.Context, filename string) ([]byte, error) {
	r.logger.Info(ctx, "Downloading fresh scrip master", map[string]interface{}{"url": r.cfg.URL})

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.cfg.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build scrip master request: %w", err)
	}
	resp, err := r.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("scrip master download failed: %w: %v", ports.ErrReferenceTableUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("scrip master download returned %d: %w", resp.StatusCode, ports.ErrReferenceTableUnavailable)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read scrip master body: %w", err)
	}
	if err := os.WriteFile(filename, raw, 0644); err != nil {
		// Disk cache failure is not fatal, the table is already in memory.
		r.logger.Warn(ctx, "Failed to cache scrip master on disk", map[string]interface{}{"file": filename, "error": err.Error()})
	} else {
		r.logger.Info(ctx, "Saved scrip master", map[string]interface{}{"file": filename})
	}
	return raw, nil
}

// ResolveToken returns the instrument token for a contract symbol.
func (r *Repository) ResolveToken(ctx context.Context, symbol string) (string, error) {
	key := strings.ToUpper(symbol)

	if token, found := r.resolved.Get(key); found {
		return token.(string), nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.bySymbol == nil {
		return "", fmt.Errorf("resolve %s: %w", symbol, ports.ErrReferenceTableUnavailable)
	}
	token, ok := r.bySymbol[key]
	if !ok {
		return "", fmt.Errorf("resolve %s: %w", symbol, ports.ErrTokenNotFound)
	}
	r.resolved.Set(key, token, gocache.DefaultExpiration)
	return token, nil
}
