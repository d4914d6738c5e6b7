// Package logging wraps zap for the daemon and its collaborators, exposing
// a package-level Log plus Init and field helpers trimmed to the levels
// this service actually emits.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is the process-wide structured logger, ready to use after Init.
var Log *zap.Logger

func init() {
	Log, _ = zap.NewDevelopment()
}

// Init rebuilds Log for the given level and environment.
func Init(level string, isProduction bool) {
	var cfg zap.Config
	if isProduction {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}

	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		zapLevel = zap.InfoLevel
	}
	cfg.Level = zap.NewAtomicLevelAt(zapLevel)

	built, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		panic(err)
	}
	Log = built
	zap.ReplaceGlobals(Log)
}

// Info logs an info message.
func Info(msg string, fields ...zap.Field) { Log.Info(msg, fields...) }

// Error logs an error message.
func Error(msg string, fields ...zap.Field) { Log.Error(msg, fields...) }

// Warn logs a warning message.
func Warn(msg string, fields ...zap.Field) { Log.Warn(msg, fields...) }

// Fatal logs a fatal message and exits.
func Fatal(msg string, fields ...zap.Field) { Log.Fatal(msg, fields...) }

// Field helpers.
func String(key, val string) zap.Field  { return zap.String(key, val) }
func Int(key string, val int) zap.Field { return zap.Int(key, val) }
func Err(err error) zap.Field           { return zap.Error(err) }
func Any(key string, val any) zap.Field { return zap.Any(key, val) }
