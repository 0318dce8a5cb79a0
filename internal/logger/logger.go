package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var level = zap.NewAtomicLevelAt(zapcore.InfoLevel)

var instance *zap.Logger = func() *zap.Logger {
	cfg := zap.NewProductionConfig()
	cfg.Level = level
	log, err := cfg.Build()
	if err != nil {
		panic(err)
	}
	return log
}()

// L returns the process-wide logger.
func L() *zap.Logger {
	return instance
}

// Replace swaps the process-wide logger and returns a func restoring the previous one.
func Replace(l *zap.Logger) func() {
	prev := instance
	instance = l
	return func() { instance = prev }
}

// SetLevel accepts zap level names (debug, info, warn, error).
func SetLevel(name string) error {
	return level.UnmarshalText([]byte(name))
}

func Sync() {
	_ = instance.Sync()
}

func Fatal(msg string, err error, fields ...zap.Field) {
	instance.Fatal(msg, append(fields, zap.Error(err))...)
}

func Error(msg string, err error, fields ...zap.Field) {
	instance.Error(msg, append(fields, zap.Error(err))...)
}

func Warn(msg string, fields ...zap.Field) {
	instance.Warn(msg, fields...)
}

func Info(msg string, fields ...zap.Field) {
	instance.Info(msg, fields...)
}

func Debug(msg string, fields ...zap.Field) {
	instance.Debug(msg, fields...)
}
