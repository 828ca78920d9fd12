package logger

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, logrus.WarnLevel, ParseLevel("warn"))
	assert.Equal(t, logrus.InfoLevel, ParseLevel("not-a-level"))
	assert.Equal(t, logrus.InfoLevel, ParseLevel(""))
}

func TestLoggerOutput(t *testing.T) {
	l := New(logrus.DebugLevel)
	var buf bytes.Buffer
	l.logger.SetOutput(&buf)
	ctx := context.Background()

	l.Info(ctx, "position closed", map[string]interface{}{"symbol": "NIFTY19JUN2525000CE", "pnl": -900})
	out := buf.String()
	assert.Contains(t, out, "position closed")
	assert.Contains(t, out, "NIFTY19JUN2525000CE")

	buf.Reset()
	l.Error(ctx, fmt.Errorf("disk full"), "persist failed")
	out = buf.String()
	assert.Contains(t, out, "persist failed")
	assert.Contains(t, out, "disk full")

	// Fields are optional.
	buf.Reset()
	l.Debug(ctx, "tick")
	assert.Contains(t, buf.String(), "tick")
}

func TestLoggerRespectsLevel(t *testing.T) {
	l := New(logrus.InfoLevel)
	var buf bytes.Buffer
	l.logger.SetOutput(&buf)

	l.Debug(context.Background(), "hidden")
	assert.Empty(t, buf.String())
}
