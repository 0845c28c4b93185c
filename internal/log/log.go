// Package log builds the zap loggers used across Tally.
//
// The TUI owns stdout and stderr while it runs, so the interactive binary
// points the logger at a file; the CLI logs to stderr.
package log

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const consoleSeparator = " | "

// New creates a SugaredLogger from the default config (text, debug level,
// stderr) overridden by options.
func New(options ...Option) (*zap.SugaredLogger, error) {
	const op = "log.New"

	cfg := &Config{
		Level:  DebugLevel,
		Format: TextFormat,
	}
	for _, opt := range options {
		opt(cfg)
	}
	if len(cfg.OutputPaths) == 0 {
		cfg.OutputPaths = []string{"stderr"}
	}
	if len(cfg.ErrorOutputPaths) == 0 {
		cfg.ErrorOutputPaths = []string{"stderr"}
	}

	lvl, err := parseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	encoderCfg := zapcore.EncoderConfig{
		MessageKey:       "msg",
		LevelKey:         "lvl",
		TimeKey:          "ts",
		EncodeDuration:   zapcore.SecondsDurationEncoder,
		ConsoleSeparator: consoleSeparator,
	}

	var enc string
	switch strings.ToLower(cfg.Format) {
	case JSONFormat:
		enc = "json"
		encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		encoderCfg.EncodeLevel = zapcore.LowercaseLevelEncoder
	case TextFormat, "":
		enc = "console"
		encoderCfg.EncodeTime = consoleTimeEncoder
		encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	default:
		return nil, fmt.Errorf("%s: unknown format %q", op, cfg.Format)
	}

	zapCfg := zap.Config{
		Level:            zap.NewAtomicLevelAt(lvl),
		Encoding:         enc,
		OutputPaths:      cfg.OutputPaths,
		ErrorOutputPaths: cfg.ErrorOutputPaths,
		EncoderConfig:    encoderCfg,
	}

	lg, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	fields := make([]zap.Field, 0, len(cfg.GlobalFields))
	for k, v := range cfg.GlobalFields {
		fields = append(fields, zap.String(k, v))
	}
	if len(fields) > 0 {
		lg = lg.With(fields...)
	}
	return lg.Sugar(), nil
}

// Nop returns a logger that discards everything.
func Nop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}

func parseLevel(level string) (zapcore.Level, error) {
	switch strings.ToLower(level) {
	case DebugLevel, "":
		return zapcore.DebugLevel, nil
	case InfoLevel:
		return zapcore.InfoLevel, nil
	case WarnLevel:
		return zapcore.WarnLevel, nil
	case ErrorLevel:
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.DebugLevel, fmt.Errorf("unknown level %q", level)
	}
}

// consoleTimeEncoder writes "2006-01-02 | 15:04:05.000".
func consoleTimeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.Format("2006-01-02") + consoleSeparator + t.Format("15:04:05.000"))
}
