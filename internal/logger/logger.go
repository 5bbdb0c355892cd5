package logger

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu  sync.RWMutex
	log *zap.Logger = zap.NewNop()
)

// Init replaces the no-op default with a production JSON logger
// writing to stdout.
func Init() {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "ts"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(cfg),
		zapcore.Lock(os.Stdout),
		zapcore.InfoLevel,
	)

	mu.Lock()
	log = zap.New(core)
	mu.Unlock()

	Info("logger initialized", nil)
}

// Sync flushes any buffered entries. Call on shutdown.
func Sync() {
	mu.RLock()
	defer mu.RUnlock()
	_ = log.Sync()
}

func Info(msg string, fields map[string]any) {
	current().Info(msg, toZap(fields)...)
}

func Warn(msg string, fields map[string]any) {
	current().Warn(msg, toZap(fields)...)
}

func Error(msg string, fields map[string]any) {
	current().Error(msg, toZap(fields)...)
}

func Fatal(msg string, fields map[string]any) {
	current().Fatal(msg, toZap(fields)...)
}

func current() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return log
}

func toZap(fields map[string]any) []zap.Field {
	if len(fields) == 0 {
		return nil
	}
	zf := make([]zap.Field, 0, len(fields))
	for k, v := range fields {
		zf = append(zf, zap.Any(k, v))
	}
	return zf
}
