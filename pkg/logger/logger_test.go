package logger_test

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sincromei/pkg/logger"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func readEntries(t *testing.T, path string) []map[string]any {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	var entries []map[string]any
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var e map[string]any
		require.NoError(t, json.Unmarshal(sc.Bytes(), &e), "line %q is not JSON", sc.Text())
		entries = append(entries, e)
	}
	require.NoError(t, sc.Err())

	return entries
}

func TestNew_FileSinks(t *testing.T) {
	dir := t.TempDir()
	errPath := filepath.Join(dir, "error.log")
	allPath := filepath.Join(dir, "combined.log")

	l, closeFn, err := logger.New(logger.Options{
		Environment:  logger.ProductionEnvironment,
		Level:        "info",
		ErrorFile:    errPath,
		CombinedFile: allPath,
	})
	require.NoError(t, err)

	l.Debug("hidden")
	l.Info("server running", zap.Int("port", 8001))
	l.Error("Error fetching data from ReceitaWS", zap.String("cnpj", "12345678000195"))
	require.NoError(t, closeFn())

	all := readEntries(t, allPath)
	require.Len(t, all, 2)
	require.Equal(t, "info", all[0]["level"])
	require.Equal(t, "server running", all[0]["message"])
	require.Equal(t, logger.ServiceName, all[0]["service"])
	require.NotEmpty(t, all[0]["timestamp"])

	errs := readEntries(t, errPath)
	require.Len(t, errs, 1)
	require.Equal(t, "error", errs[0]["level"])
	require.Equal(t, "Error fetching data from ReceitaWS", errs[0]["message"])
	require.Equal(t, "12345678000195", errs[0]["cnpj"])
}

func TestNew_AppendsToExistingFiles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "combined.log")

	for range 2 {
		l, closeFn, err := logger.New(logger.Options{
			Environment:  logger.ProductionEnvironment,
			CombinedFile: path,
		})
		require.NoError(t, err)
		l.Info("started")
		require.NoError(t, closeFn())
	}

	require.Len(t, readEntries(t, path), 2)
}

func TestNew_InvalidLevel(t *testing.T) {
	_, _, err := logger.New(logger.Options{Level: "loud"})
	require.Error(t, err)
}

func TestNew_UnwritableFile(t *testing.T) {
	_, _, err := logger.New(logger.Options{
		Environment: logger.ProductionEnvironment,
		ErrorFile:   filepath.Join(t.TempDir(), "missing", "dir", "error.log"),
	})
	require.Error(t, err)
}

func TestNew_DevelopmentConsole(t *testing.T) {
	require.NotPanics(t, func() {
		l, closeFn, err := logger.New(logger.Options{Environment: logger.DevelopmentEnvironment})
		require.NoError(t, err)
		l.Info("console only")
		_ = closeFn()
	})
}

func TestGet(t *testing.T) {
	// empty context falls back to a no-op logger
	ctx := context.Background()
	require.NotNil(t, logger.Get(ctx))

	custom := zap.NewExample()
	require.Equal(t, custom, logger.Get(logger.WithLogger(ctx, custom)))
}

func TestWithFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	ctx := logger.WithLogger(context.Background(), zap.New(core))

	ctx = logger.WithFields(ctx, zap.String("RequestID", "abc"))
	logger.Info(ctx, "hello", zap.Int("n", 1))

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	require.Equal(t, "abc", fields["RequestID"])
	require.Equal(t, int64(1), fields["n"])
}

func TestLoggingFunctions(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	ctx := logger.WithLogger(context.Background(), zap.New(core))

	logger.Debug(ctx, "debug message")
	logger.Info(ctx, "info message")
	logger.Warn(ctx, "warn message")
	logger.Error(ctx, "error message")

	require.Equal(t, 4, logs.Len())
	require.Equal(t, 1, logs.FilterLevelExact(zapcore.ErrorLevel).Len())
}
