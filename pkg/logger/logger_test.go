package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	logger := newLogger()

	require.NotNil(t, logger)
	formatter, ok := logger.Formatter.(*logrus.TextFormatter)
	require.True(t, ok)

	assert.Equal(t, time.RFC3339Nano, formatter.TimestampFormat)
	assert.True(t, formatter.FullTimestamp)
}

func TestGlobalVariables(t *testing.T) {
	ctx := context.Background()
	logger1 := G(ctx)
	logger2 := G(ctx)

	assert.Equal(t, logger1.Logger, logger2.Logger)
	assert.NotNil(t, L)
}

func TestWithLogger(t *testing.T) {
	ctx := context.Background()
	customLogger := logrus.NewEntry(logrus.New()).WithField("test", "value")

	ctxWithLogger := WithLogger(ctx, customLogger)

	retrievedLogger := G(ctxWithLogger)
	assert.NotNil(t, retrievedLogger)
	assert.Equal(t, "value", retrievedLogger.Data["test"])
}

func TestGetLogger_WithoutContextLogger(t *testing.T) {
	retrievedLogger := G(context.Background())

	assert.NotNil(t, retrievedLogger)
	assert.Equal(t, L.Logger, retrievedLogger.Logger)
}

func TestLoggerChaining(t *testing.T) {
	ctx := context.Background()

	logger1 := logrus.NewEntry(logrus.New()).WithField("command", "validate")
	ctxWithLogger := WithLogger(ctx, logger1)

	logger2 := G(ctxWithLogger).WithField("skill", "pdf-extractor")
	ctxWithLogger2 := WithLogger(ctxWithLogger, logger2)

	finalLogger := G(ctxWithLogger2)
	assert.Equal(t, "validate", finalLogger.Data["command"])
	assert.Equal(t, "pdf-extractor", finalLogger.Data["skill"])
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer

	logger := logrus.New()
	logger.SetOutput(&buf)
	setLoggerFormat(logger, "json")

	entry := logrus.NewEntry(logger)
	ctx := WithLogger(context.Background(), entry)
	G(ctx).Info("test message")

	var logEntry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &logEntry))

	assert.Contains(t, logEntry, "timestamp")
	assert.Equal(t, "info", logEntry["logLevel"])
	assert.Equal(t, "test message", logEntry["message"])

	timestamp, ok := logEntry["timestamp"].(string)
	require.True(t, ok)
	_, err := time.Parse(time.RFC3339Nano, timestamp)
	assert.NoError(t, err)
}

func TestSetLoggerFormatFallback(t *testing.T) {
	logger := logrus.New()

	for _, format := range []string{"text", "fmt", "bogus"} {
		setLoggerFormat(logger, format)
		assert.IsType(t, &logrus.TextFormatter{}, logger.Formatter, format)
	}
}

func TestSetLogLevel(t *testing.T) {
	original := L.Logger.GetLevel()
	defer L.Logger.SetLevel(original)

	require.NoError(t, SetLogLevel("debug"))
	assert.Equal(t, logrus.DebugLevel, L.Logger.GetLevel())

	assert.Error(t, SetLogLevel("not-a-level"))
	assert.Equal(t, logrus.DebugLevel, L.Logger.GetLevel())
}
