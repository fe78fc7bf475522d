// package logger builds the zap loggers used across the engine.
package logger

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"
)

// Output formats accepted by Config.Format.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// ErrUnknownFormat is returned by New for a format other than console or json.
var ErrUnknownFormat = errors.New("unknown log format")

// Config selects the level and encoding of the root logger.
type Config struct {
	Level  string
	Format string

	// File redirects output away from stdout. Empty writes to stdout.
	File string

	// Sampling limits repeated entries per second in json mode. Zero disables it.
	SampleInitial    int
	SampleThereafter int
}

// New builds the root logger. Console output is colored only when it goes to a terminal.
//
// Parameters:
//   - cfg: level and format selection
//
// Returns:
//   - *zap.Logger: the configured logger
//   - error: error if the level or format cannot be parsed, or the sink cannot be opened
func New(cfg Config) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if strings.TrimSpace(cfg.Level) != "" {
		parsed, err := zapcore.ParseLevel(cfg.Level)
		if err != nil {
			return nil, fmt.Errorf("parse log level: %w", err)
		}
		level = parsed
	}

	var zapConfig zap.Config
	switch strings.ToLower(strings.TrimSpace(cfg.Format)) {
	case "", FormatConsole:
		zapConfig = zap.NewDevelopmentConfig()
		zapConfig.Development = false
		if cfg.File == "" && term.IsTerminal(int(os.Stdout.Fd())) {
			zapConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		} else {
			zapConfig.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		}
		zapConfig.Sampling = nil
	case FormatJSON:
		zapConfig = zap.NewProductionConfig()
		if cfg.SampleInitial > 0 {
			zapConfig.Sampling = &zap.SamplingConfig{
				Initial:    cfg.SampleInitial,
				Thereafter: cfg.SampleThereafter,
			}
		} else {
			zapConfig.Sampling = nil
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, cfg.Format)
	}
	zapConfig.Level = zap.NewAtomicLevelAt(level)
	if cfg.File != "" {
		zapConfig.OutputPaths = []string{cfg.File}
	}

	return zapConfig.Build(
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.ErrorLevel),
	)
}
