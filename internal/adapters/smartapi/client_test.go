package smartapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"niftyOptionsBot/internal/domain"
	"niftyOptionsBot/internal/ports"
)

type mockLogger struct{}

func (l *mockLogger) Debug(ctx context.Context, msg string, fields ...map[string]interface{}) {}
func (l *mockLogger) Info(ctx context.Context, msg string, fields ...map[string]interface{})  {}
func (l *mockLogger) Warn(ctx context.Context, msg string, fields ...map[string]interface{})  {}
func (l *mockLogger) Error(ctx context.Context, err error, msg string, fields ...map[string]interface{}) {
}

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	client, err := New(Config{
		BaseURL:      baseURL,
		APIKey:       "test-key",
		ClientCode:   "C12345",
		PIN:          "1234",
		TOTP:         "000000",
		Logger:       &mockLogger{},
		RequestDelay: time.Millisecond,
	})
	require.NoError(t, err)
	return client
}

func TestNewValidation(t *testing.T) {
	_, err := New(Config{APIKey: "k", ClientCode: "c"})
	assert.Error(t, err, "logger is required")

	_, err = New(Config{Logger: &mockLogger{}})
	assert.ErrorIs(t, err, ports.ErrConfigurationError)
}

func TestAuthenticate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, loginPath, r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-PrivateKey"))

		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "C12345", req["clientcode"])
		assert.Equal(t, "1234", req["password"])

		json.NewEncoder(w).Encode(map[string]interface{}{
			"status": true,
			"data":   map[string]string{"jwtToken": "jwt-abc"},
		})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	assert.NoError(t, client.Authenticate(context.Background()))
}

func TestAuthenticateRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  false,
			"message": "Invalid totp",
		})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	assert.ErrorIs(t, client.Authenticate(context.Background()), ports.ErrAuthenticationFailed)
}

func TestCandlesRequiresLogin(t *testing.T) {
	client := newTestClient(t, "http://127.0.0.1:0")

	_, err := client.Candles(context.Background(), "99926000", domain.IntervalOneMinute, domain.ExchangeNSE, time.Now())
	assert.ErrorIs(t, err, ports.ErrAuthenticationFailed)
}

func TestCandles(t *testing.T) {
	asOf := time.Date(2025, 6, 13, 10, 0, 0, 0, time.UTC)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == loginPath {
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status": true,
				"data":   map[string]string{"jwtToken": "jwt-abc"},
			})
			return
		}

		require.Equal(t, candleDataPath, r.URL.Path)
		assert.Equal(t, "Bearer jwt-abc", r.Header.Get("Authorization"))

		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "NSE", req["exchange"])
		assert.Equal(t, "99926000", req["symboltoken"])
		assert.Equal(t, "FIFTEEN_MINUTE", req["interval"])
		assert.Equal(t, "2025-06-13 10:00", req["todate"])
		assert.Equal(t, "2025-06-08 10:00", req["fromdate"])

		json.NewEncoder(w).Encode(map[string]interface{}{
			"status": true,
			"data": [][]interface{}{
				{"2025-06-13T09:30:00Z", 100.0, 101.0, 99.0, 100.5, 1200.0},
				{"2025-06-13T09:45:00Z", 100.5, 102.0, 100.0, 101.5, 900.0},
				{"not-a-timestamp", 0.0, 0.0, 0.0, 0.0, 0.0},
				{"2025-06-13T10:15:00Z", 101.5, 103.0, 101.0, 102.5, 800.0},
			},
		})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	ctx := context.Background()
	require.NoError(t, client.Authenticate(ctx))

	candles, err := client.Candles(ctx, "99926000", domain.IntervalFifteenMinute, domain.ExchangeNSE, asOf)
	require.NoError(t, err)

	// The malformed row is skipped and the bar beyond asOf is filtered out.
	require.Len(t, candles, 2)
	assert.Equal(t, 100.5, candles[0].Close)
	assert.Equal(t, 101.5, candles[1].Close)
	assert.True(t, candles[1].Timestamp.Equal(time.Date(2025, 6, 13, 9, 45, 0, 0, time.UTC)))
}

func TestCandlesRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == loginPath {
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status": true,
				"data":   map[string]string{"jwtToken": "jwt-abc"},
			})
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  false,
			"message": "Something Went Wrong, Please Try After Sometime",
		})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	ctx := context.Background()
	require.NoError(t, client.Authenticate(ctx))

	_, err := client.Candles(ctx, "99926000", domain.IntervalOneMinute, domain.ExchangeNSE, time.Now())
	assert.ErrorIs(t, err, ports.ErrDataUnavailable)
}

func TestParseCandleRow(t *testing.T) {
	candle, err := parseCandleRow([]interface{}{"2025-06-13T09:30:00Z", 100.0, 101.0, 99.0, 100.5, 1200.0})
	require.NoError(t, err)
	assert.Equal(t, 100.0, candle.Open)
	assert.Equal(t, 101.0, candle.High)
	assert.Equal(t, 99.0, candle.Low)
	assert.Equal(t, 100.5, candle.Close)
	assert.Equal(t, 1200.0, candle.Volume)

	_, err = parseCandleRow([]interface{}{"2025-06-13T09:30:00Z", 100.0})
	assert.Error(t, err)

	_, err = parseCandleRow([]interface{}{"2025-06-13T09:30:00Z", "oops", 101.0, 99.0, 100.5, 1200.0})
	assert.Error(t, err)
}
