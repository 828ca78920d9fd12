package smartapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"niftyOptionsBot/internal/domain"
	"niftyOptionsBot/internal/ports"
)

const (
	defaultBaseURL      = "https://apiconnect.angelone.in"
	loginPath           = "/rest/auth/angelbroking/user/v1/loginByPassword"
	candleDataPath      = "/rest/secure/angelbroking/historical/v1/getCandleData"
	defaultLookbackDays = 5
	defaultRequestDelay = 500 * time.Millisecond
	timeLayout          = "2006-01-02 15:04"
)

// Config holds configuration for the SmartAPI client.
type Config struct {
	BaseURL      string
	APIKey       string
	ClientCode   string
	PIN          string
	TOTP         string
	Logger       ports.Logger
	HTTPClient   *http.Client
	RequestDelay time.Duration // polite delay before each candle request
	LookbackDays int           // fetch window size ending at asOf
}

// Client implements ports.MarketDataProvider and ports.Authenticator against
// the SmartAPI historical data endpoints.
type Client struct {
	cfg    Config
	logger ports.Logger
	http   *http.Client

	mu       sync.RWMutex
	jwtToken string
}

// New creates a SmartAPI client instance.
func New(cfg Config) (*Client, error) {
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger is required for SmartAPI client")
	}
	if cfg.APIKey == "" || cfg.ClientCode == "" {
		return nil, fmt.Errorf("API key and client code are required: %w", ports.ErrConfigurationError)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: 30 * time.Second}
	}
	if cfg.RequestDelay == 0 {
		cfg.RequestDelay = defaultRequestDelay
	}
	if cfg.LookbackDays <= 0 {
		cfg.LookbackDays = defaultLookbackDays
	}
	return &Client{cfg: cfg, logger: cfg.Logger, http: cfg.HTTPClient}, nil
}

type loginRequest struct {
	ClientCode string `json:"clientcode"`
	Password   string `json:"password"`
	TOTP       string `json:"totp"`
}

type loginResponse struct {
	Status bool   `json:"status"`
	Msg    string `json:"message"`
	Data   struct {
		JWTToken string `json:"jwtToken"`
	} `json:"data"`
}

// Authenticate establishes the API session. It must succeed once before any
// candle request.
func (c *Client) Authenticate(ctx context.Context) error {
	body, err := json.Marshal(loginRequest{
		ClientCode: c.cfg.ClientCode,
		Password:   c.cfg.PIN,
		TOTP:       c.cfg.TOTP,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal login request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+loginPath, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build login request: %w", err)
	}
	c.setCommonHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("login request failed: %w: %v", ports.ErrAPIUnavailable, err)
	}
	defer resp.Body.Close()

	var loginResp loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&loginResp); err != nil {
		return fmt.Errorf("failed to decode login response: %w", err)
	}
	if !loginResp.Status || loginResp.Data.JWTToken == "" {
		return fmt.Errorf("login rejected (%s): %w", loginResp.Msg, ports.ErrAuthenticationFailed)
	}

	c.mu.Lock()
	c.jwtToken = loginResp.Data.JWTToken
	c.mu.Unlock()

	c.logger.Info(ctx, "SmartAPI session established", map[string]interface{}{"clientCode": c.cfg.ClientCode})
	return nil
}

type candleRequest struct {
	Exchange    string `json:"exchange"`
	SymbolToken string `json:"symboltoken"`
	Interval    string `json:"interval"`
	FromDate    string `json:"fromdate"`
	ToDate      string `json:"todate"`
}

type candleResponse struct {
	Status bool            `json:"status"`
	Msg    string          `json:"message"`
	Data   [][]interface{} `json:"data"`
}

// Candles fetches historical candles for the token, requesting a window of
// LookbackDays ending at asOf, and returns them filtered to timestamps at or
// before asOf.
func (c *Client) Candles(ctx context.Context, token string, interval domain.Interval, exchange domain.Exchange, asOf time.Time) ([]domain.Candle, error) {
	c.mu.RLock()
	jwt := c.jwtToken
	c.mu.RUnlock()
	if jwt == "" {
		return nil, fmt.Errorf("candle request before login: %w", ports.ErrAuthenticationFailed)
	}

	// The API rate-limits aggressively; pace requests.
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(c.cfg.RequestDelay):
	}

	body, err := json.Marshal(candleRequest{
		Exchange:    string(exchange),
		SymbolToken: token,
		Interval:    string(interval),
		FromDate:    asOf.AddDate(0, 0, -c.cfg.LookbackDays).Format(timeLayout),
		ToDate:      asOf.Format(timeLayout),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal candle request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+candleDataPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build candle request: %w", err)
	}
	c.setCommonHeaders(req)
	req.Header.Set("Authorization", "Bearer "+jwt)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("candle request failed: %w: %v", ports.ErrAPIUnavailable, err)
	}
	defer resp.Body.Close()

	var candleResp candleResponse
	if err := json.NewDecoder(resp.Body).Decode(&candleResp); err != nil {
		return nil, fmt.Errorf("failed to decode candle response: %w", err)
	}
	if !candleResp.Status {
		return nil, fmt.Errorf("candle request rejected (%s): %w", candleResp.Msg, ports.ErrDataUnavailable)
	}

	candles := make([]domain.Candle, 0, len(candleResp.Data))
	for _, row := range candleResp.Data {
		candle, err := parseCandleRow(row)
		if err != nil {
			c.logger.Warn(ctx, "Skipping malformed candle row", map[string]interface{}{"error": err.Error()})
			continue
		}
		if candle.Timestamp.After(asOf) {
			continue
		}
		candles = append(candles, candle)
	}
	return candles, nil
}

func (c *Client) setCommonHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-UserType", "USER")
	req.Header.Set("X-SourceID", "WEB")
	req.Header.Set("X-PrivateKey", c.cfg.APIKey)
}

// parseCandleRow converts an API row [timestamp, o, h, l, c, v] to a Candle.
func parseCandleRow(row []interface{}) (domain.Candle, error) {
	if len(row) < 6 {
		return domain.Candle{}, fmt.Errorf("candle row has %d fields, want 6", len(row))
	}
	ts, ok := row[0].(string)
	if !ok {
		return domain.Candle{}, fmt.Errorf("candle timestamp is not a string")
	}
	timestamp, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return domain.Candle{}, fmt.Errorf("failed to parse candle timestamp %q: %w", ts, err)
	}

	values := make([]float64, 5)
	for i := 1; i < 6; i++ {
		v, ok := row[i].(float64)
		if !ok {
			return domain.Candle{}, fmt.Errorf("candle field %d is not a number", i)
		}
		values[i-1] = v
	}

	return domain.Candle{
		Timestamp: timestamp,
		Open:      values[0],
		High:      values[1],
		Low:       values[2],
		Close:     values[3],
		Volume:    values[4],
	}, nil
}
