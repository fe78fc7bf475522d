package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewLevels(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		enabled zapcore.Level
		blocked zapcore.Level
	}{
		{"default is info", Config{}, zapcore.InfoLevel, zapcore.DebugLevel},
		{"debug console", Config{Level: "debug", Format: "console"}, zapcore.DebugLevel, zapcore.Level(-2)},
		{"warn json", Config{Level: "warn", Format: "json", SampleInitial: 100, SampleThereafter: 100}, zapcore.WarnLevel, zapcore.InfoLevel},
		{"mixed case format", Config{Level: "error", Format: "JSON"}, zapcore.ErrorLevel, zapcore.WarnLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, err := New(tt.cfg)
			require.NoError(t, err)
			assert.True(t, log.Core().Enabled(tt.enabled))
			assert.False(t, log.Core().Enabled(tt.blocked))
		})
	}
}

func TestNewRejectsBadInput(t *testing.T) {
	_, err := New(Config{Level: "loud"})
	assert.Error(t, err)

	_, err = New(Config{Format: "xml"})
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "oxy-motion.log")
	log, err := New(Config{Level: "info", Format: "json", File: path})
	require.NoError(t, err)

	log.Info("target unavailable, skipping")
	_ = log.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"target unavailable, skipping"`)
}
