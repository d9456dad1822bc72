package logger

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu   sync.RWMutex
	root *zap.Logger
)

// Logger is a named sugared logger.
type Logger struct {
	*zap.SugaredLogger
}

// Init replaces the root logger. format is "json" or "console".
func Init(level, format string) error {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("parse log level %q: %w", level, err)
	}

	var cfg zap.Config
	switch format {
	case "console":
		cfg = zap.NewDevelopmentConfig()
	default:
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "time"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	l, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}

	ReplaceRoot(l)
	return nil
}

// ReplaceRoot swaps the root logger and returns a func restoring the
// previous one.
func ReplaceRoot(l *zap.Logger) func() {
	mu.Lock()
	prev := root
	root = l
	mu.Unlock()
	return func() {
		mu.Lock()
		root = prev
		mu.Unlock()
	}
}

func rootLogger() *zap.Logger {
	mu.RLock()
	l := root
	mu.RUnlock()
	if l != nil {
		return l
	}

	mu.Lock()
	defer mu.Unlock()
	if root == nil {
		l, err := zap.NewProduction()
		if err != nil {
			l = zap.NewNop()
		}
		root = l
	}
	return root
}

// MustNamed returns a child of the root logger.
func MustNamed(name string) *Logger {
	return &Logger{SugaredLogger: rootLogger().Named(name).Sugar()}
}

// Unwrap exposes the underlying sugared logger.
func (l *Logger) Unwrap() *zap.SugaredLogger {
	return l.SugaredLogger
}

// Reflect builds a field that is serialized by reflection.
func (l *Logger) Reflect(key string, value any) zap.Field {
	return zap.Reflect(key, value)
}

// Sync flushes buffered entries of the root logger.
func Sync() error {
	return rootLogger().Sync()
}
