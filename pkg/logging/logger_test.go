package logging

import (
	"bytes"
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bufferOutput struct {
	mu      sync.Mutex
	entries []LogEntry
}

func (b *bufferOutput) Write(e LogEntry) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.entries = append(b.entries, e)
	return nil
}

func (b *bufferOutput) Sync() error  { return nil }
func (b *bufferOutput) Close() error { return nil }

func TestSeverityString(t *testing.T) {
	assert.Equal(t, "DEBUG", DEBUG.String())
	assert.Equal(t, "FATAL", FATAL.String())
}

func TestParseSeverity(t *testing.T) {
	assert.Equal(t, WARN, ParseSeverity("WARN"))
	assert.Equal(t, ERROR, ParseSeverity("ERROR"))
	assert.Equal(t, INFO, ParseSeverity("bogus"))
}

func TestLoggerSeverityFiltering(t *testing.T) {
	out := &bufferOutput{}
	logger := NewLogger(Config{Severity: INFO, Outputs: []Output{out}})

	ctx := context.Background()
	logger.Debug(ctx, "dropped")
	logger.Info(ctx, "generation %d complete", 3)
	logger.Error(ctx, "archive write failed")

	require.Len(t, out.entries, 2)
	assert.Equal(t, INFO, out.entries[0].Severity)
	assert.Equal(t, "generation 3 complete", out.entries[0].Message)
	assert.Equal(t, ERROR, out.entries[1].Severity)
}

func TestLoggerCallerInfo(t *testing.T) {
	out := &bufferOutput{}
	logger := NewLogger(Config{Severity: DEBUG, Outputs: []Output{out}})

	logger.Info(context.Background(), "hello")

	require.Len(t, out.entries, 1)
	assert.Equal(t, "logger_test.go", out.entries[0].File)
	assert.NotZero(t, out.entries[0].Line)
}

func TestLoggerDefaultFields(t *testing.T) {
	out := &bufferOutput{}
	logger := NewLogger(Config{
		Severity:      DEBUG,
		Outputs:       []Output{out},
		DefaultFields: map[string]interface{}{"component": "engine"},
	})

	logger.Info(context.Background(), "stepping")

	require.Len(t, out.entries, 1)
	assert.Equal(t, "engine", out.entries[0].Fields["component"])
}

func TestConsoleOutputWrite(t *testing.T) {
	var buf bytes.Buffer
	out := NewConsoleOutput(false, WithColor(false))
	out.writer = &buf

	err := out.Write(LogEntry{
		Severity: INFO,
		Message:  "population initialized",
		File:     "engine.go",
		Line:     42,
		Fields:   map[string]interface{}{"size": 20},
	})
	require.NoError(t, err)

	s := buf.String()
	assert.Contains(t, s, "INFO")
	assert.Contains(t, s, "engine.go:42")
	assert.Contains(t, s, "population initialized")
	assert.Contains(t, s, "size=20")
}

func TestGetLoggerSingleton(t *testing.T) {
	custom := NewLogger(Config{Severity: ERROR, Outputs: []Output{&bufferOutput{}}})
	SetLogger(custom)
	assert.Same(t, custom, GetLogger())

	SetLogger(nil)
	first := GetLogger()
	require.NotNil(t, first)
	assert.Same(t, first, GetLogger())
}
