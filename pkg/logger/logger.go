// Package logger provides a structured logging facility using zap logger.
// It builds the process logger with its file and console sinks, and offers
// context-aware helpers so request handlers log through the injected instance.
package logger

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	// DevelopmentEnvironment adds a human-readable console sink next to the file sinks.
	DevelopmentEnvironment = "development"

	// ProductionEnvironment writes to the file sinks only.
	ProductionEnvironment = "production"

	// ServiceName is attached to every entry.
	ServiceName = "sincromei-service"
)

// Options configures New.
type Options struct {
	// Environment selects whether the console sink is enabled.
	Environment string
	// Level is the minimum level written to the combined and console sinks.
	Level string
	// ErrorFile receives error-level entries and above. Empty disables it.
	ErrorFile string
	// CombinedFile receives every entry at Level and above. Empty disables it.
	CombinedFile string
}

func jsonEncoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "timestamp"
	cfg.MessageKey = "message"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg
}

// New builds the process logger. The returned close function flushes buffered
// entries and releases the log files.
func New(opts Options) (*zap.Logger, func() error, error) {
	level := zapcore.InfoLevel
	if opts.Level != "" {
		if err := level.Set(opts.Level); err != nil {
			return nil, nil, fmt.Errorf("invalid log level %q: %w", opts.Level, err)
		}
	}

	var (
		cores   []zapcore.Core
		closers []func()
	)
	closeAll := func() {
		for _, c := range closers {
			c()
		}
	}

	fileCore := func(path string, enab zapcore.LevelEnabler) error {
		sink, closeSink, err := zap.Open(path)
		if err != nil {
			return fmt.Errorf("could not open log file %q: %w", path, err)
		}
		closers = append(closers, closeSink)
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(jsonEncoderConfig()), sink, enab))

		return nil
	}

	if opts.ErrorFile != "" {
		if err := fileCore(opts.ErrorFile, zapcore.ErrorLevel); err != nil {
			closeAll()

			return nil, nil, err
		}
	}
	if opts.CombinedFile != "" {
		if err := fileCore(opts.CombinedFile, level); err != nil {
			closeAll()

			return nil, nil, err
		}
	}
	if opts.Environment != ProductionEnvironment {
		consoleCfg := zap.NewDevelopmentEncoderConfig()
		consoleCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		cores = append(cores, zapcore.NewCore(zapcore.NewConsoleEncoder(consoleCfg), zapcore.Lock(os.Stdout), level))
	}

	l := zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)).
		With(zap.String("service", ServiceName))

	return l, func() error {
		err := l.Sync()
		closeAll()
		// syncing stdout fails on some platforms; only file errors matter here
		if err != nil && opts.Environment == ProductionEnvironment {
			return fmt.Errorf("could not sync logger: %w", err)
		}

		return nil
	}, nil
}

// key is a custom type used as a context key for storing and retrieving logger instances.
type key struct{}

var nop = zap.NewNop() //nolint: gochecknoglobals

// Get retrieves a logger from the provided context.
// If no logger is found in the context, it returns a no-op logger.
func Get(ctx context.Context) *zap.Logger {
	if logger, _ := ctx.Value(key{}).(*zap.Logger); logger != nil {
		return logger
	}

	return nop
}

// WithLogger creates a new context with the provided logger attached.
func WithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, key{}, logger)
}

// WithFields creates a new context with a logger that includes the specified fields.
func WithFields(ctx context.Context, fields ...zapcore.Field) context.Context {
	return WithLogger(ctx, Get(ctx).With(fields...))
}

// Debug logs a message at debug level with the given fields.
func Debug(ctx context.Context, msg string, fields ...zapcore.Field) {
	Get(ctx).Debug(msg, fields...)
}

// Info logs a message at info level with the given fields.
func Info(ctx context.Context, msg string, fields ...zapcore.Field) {
	Get(ctx).Info(msg, fields...)
}

// Warn logs a message at warn level with the given fields.
func Warn(ctx context.Context, msg string, fields ...zapcore.Field) {
	Get(ctx).Warn(msg, fields...)
}

// Error logs a message at error level with the given fields.
func Error(ctx context.Context, msg string, fields ...zapcore.Field) {
	Get(ctx).Error(msg, fields...)
}

// Fatal logs a message at fatal level with the given fields.
func Fatal(ctx context.Context, msg string, fields ...zapcore.Field) {
	Get(ctx).Fatal(msg, fields...)
}
