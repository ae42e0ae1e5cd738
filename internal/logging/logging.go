package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config selects the log level and the optional file sink.
type Config struct {
	Level string
	Path  string
}

// New builds the application logger. Output goes to the log file (when a
// path is configured) and into the returned Ring for on-screen display.
// Nothing is ever written to stdout or stderr; the terminal belongs to the
// UI while the program runs.
func New(cfg Config) (*zap.Logger, *Ring, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}

	ring := NewRing(ringCapacity, level)
	cores := []zapcore.Core{ring}

	if cfg.Path != "" {
		sink, err := openSink(cfg.Path)
		if err != nil {
			return nil, nil, err
		}
		encCfg := zap.NewProductionEncoderConfig()
		encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		fileCore := zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), sink, level)
		cores = append(cores, fileCore)
	}

	log := zap.New(zapcore.NewTee(cores...))
	return log, ring, nil
}

// ringCapacity bounds the on-screen activity history.
const ringCapacity = 256

func openSink(path string) (zapcore.WriteSyncer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return zapcore.AddSync(f), nil
}
