package logger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNew_WritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bridge.log")

	log, err := New(&Config{Level: "debug", Format: "json", Output: path})
	require.NoError(t, err)

	log.Info("catalog fetched", zap.String("shop", "demo.myshopify.com"))
	require.NoError(t, log.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(data, &entry))
	assert.Equal(t, "catalog fetched", entry["msg"])
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "demo.myshopify.com", entry["shop"])
	assert.NotEmpty(t, entry["time"])
}

func TestNew_LevelFiltersEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bridge.log")

	log, err := New(&Config{Level: "warn", Format: "json", Output: path})
	require.NoError(t, err)

	log.Info("suppressed")
	log.Warn("kept")
	require.NoError(t, log.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "suppressed")
	assert.Contains(t, string(data), "kept")
}

func TestNew_ConsoleFormat(t *testing.T) {
	log, err := New(&Config{Level: "info", Format: "console", Output: "stdout"})

	require.NoError(t, err)
	assert.NotNil(t, log)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		level    string
		expected zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"DEBUG", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"warning", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"unknown", zapcore.InfoLevel},
		{"", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseLevel(tt.level))
		})
	}
}

func TestOpenSink(t *testing.T) {
	t.Run("standard streams", func(t *testing.T) {
		for _, output := range []string{"", "stdout", "stderr", "STDOUT"} {
			assert.NotNil(t, openSink(output), output)
		}
	})

	t.Run("file path appends", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.log")
		sink := openSink(path)
		require.NotNil(t, sink)

		_, err := sink.Write([]byte("first\n"))
		require.NoError(t, err)
		_, err = openSink(path).Write([]byte("second\n"))
		require.NoError(t, err)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, 2, strings.Count(string(data), "\n"))
	})

	t.Run("unopenable path falls back", func(t *testing.T) {
		sink := openSink(filepath.Join(t.TempDir(), "missing", "out.log"))
		assert.NotNil(t, sink)
	})
}

func TestNewEncoder_DefaultTimeFormat(t *testing.T) {
	encoder := newEncoder(&Config{Format: "json"})
	require.NotNil(t, encoder)

	buf, err := encoder.EncodeEntry(zapcore.Entry{Message: "x"}, nil)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"msg":"x"`)
}
