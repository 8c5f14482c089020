// Package logging is the process-wide logger: a zap sugared logger with
// printf-style helpers. Lines follow "component: message key=value".
package logging

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	level = zap.NewAtomicLevelAt(zap.InfoLevel)
	sugar atomic.Pointer[zap.SugaredLogger]
)

func init() {
	var cfg zap.Config
	cfgJSON := []byte(`{
		"level": "info",
		"outputPaths": ["stderr"],
		"errorOutputPaths": ["stderr"],
		"encoding": "console",
		"encoderConfig": {
			"messageKey": "message",
			"levelKey": "level",
			"timeKey": "time",
			"levelEncoder": "lowercase",
			"timeEncoder": "iso8601"
		}
	}`)
	if err := json.Unmarshal(cfgJSON, &cfg); err != nil {
		panic(err)
	}
	cfg.Level = level

	logger, err := cfg.Build()
	if err != nil {
		panic(err)
	}
	sugar.Store(logger.Sugar())
}

// ParseLevel maps "debug", "info", "warn"/"warning" and "error" to a zap
// level. Matching is case-insensitive.
func ParseLevel(s string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zap.DebugLevel, nil
	case "", "info":
		return zap.InfoLevel, nil
	case "warn", "warning":
		return zap.WarnLevel, nil
	case "error":
		return zap.ErrorLevel, nil
	default:
		return zap.InfoLevel, fmt.Errorf("logging: unknown level %q", s)
	}
}

// SetLevel changes the minimum level of the default logger.
func SetLevel(s string) error {
	lv, err := ParseLevel(s)
	if err != nil {
		return err
	}
	level.SetLevel(lv)
	return nil
}

// Use swaps the logger and returns a function restoring the previous one.
// Tests pass a logger built on zaptest/observer.
func Use(l *zap.Logger) (restore func()) {
	prev := sugar.Swap(l.Sugar())
	return func() { sugar.Store(prev) }
}

// Sync flushes buffered entries.
func Sync() error { return sugar.Load().Sync() }

func Debugf(format string, args ...any) { sugar.Load().Debugf(format, args...) }
func Infof(format string, args ...any)  { sugar.Load().Infof(format, args...) }
func Warnf(format string, args ...any)  { sugar.Load().Warnf(format, args...) }
func Errorf(format string, args ...any) { sugar.Load().Errorf(format, args...) }
