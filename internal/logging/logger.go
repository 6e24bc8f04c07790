// Package logging wires the proxy's structured logger. The shape mirrors
// a sugared zap logger over a console encoder, with optional rotation to
// a file — the same construction a sibling proxy in this codebase's
// lineage uses for its own daemon logging.
package logging

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/yourusername/sockguard/internal/xerrors"
)

type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

func toZapLevel(l Level) zapcore.Level {
	switch l {
	case LevelDebug:
		return zapcore.DebugLevel
	case LevelWarn:
		return zapcore.WarnLevel
	case LevelError:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// Options configures log destination, rotation, and verbosity.
type Options struct {
	Level      Level
	Filename   string // empty means stdout
	MaxSizeMB  int
	MaxAgeDays int
	MaxBackups int
}

// Logger is the sugared wrapper every proxy component logs through.
type Logger struct {
	sugared *zap.SugaredLogger
}

// New builds a Logger from Options.
func New(opt Options) Logger {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString(t.UTC().Format("2006-01-02T15:04:05.000Z"))
	}
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	encoder := zapcore.NewConsoleEncoder(encoderConfig)

	var w zapcore.WriteSyncer
	if opt.Filename == "" {
		w = zapcore.AddSync(os.Stdout)
	} else {
		if err := os.MkdirAll(filepath.Dir(opt.Filename), 0o755); err != nil {
			panic(err)
		}
		w = zapcore.AddSync(&lumberjack.Logger{
			Filename:   opt.Filename,
			MaxSize:    opt.MaxSizeMB,
			MaxBackups: opt.MaxBackups,
			MaxAge:     opt.MaxAgeDays,
			LocalTime:  false,
		})
	}

	core := zapcore.NewCore(encoder, w, toZapLevel(opt.Level))
	l := zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))
	return Logger{sugared: l.Sugar()}
}

func (l Logger) Debugf(template string, args ...any) { l.sugared.Debugf(template, args...) }
func (l Logger) Infof(template string, args ...any)  { l.sugared.Infof(template, args...) }
func (l Logger) Warnf(template string, args ...any)  { l.sugared.Warnf(template, args...) }
func (l Logger) Errorf(template string, args ...any) { l.sugared.Errorf(template, args...) }

// Allow logs the one-line "Allow: METHOD PATH" decision the policy
// matcher's pass-through/filtered outcomes require, tagged with the
// connection's correlation id.
func (l Logger) Allow(connID, method, path string) {
	l.sugared.Infof("[%s] Allow: %s %s", connID, method, path)
}

// Deny logs the one-line "Deny: METHOD PATH" decision.
func (l Logger) Deny(connID, method, path string) {
	l.sugared.Infof("[%s] Deny: %s %s", connID, method, path)
}

// ErrorChain logs a primary error message followed by each underlying
// cause on its own line, per the proxy's cause-chain logging contract.
func (l Logger) ErrorChain(connID string, err error) {
	for i, line := range xerrors.Chain(err) {
		if i == 0 {
			l.sugared.Errorf("[%s] %s", connID, line)
		} else {
			l.sugared.Errorf("[%s]   caused by: %s", connID, line)
		}
	}
}

// Sync flushes any buffered log entries; call before process exit.
func (l Logger) Sync() error {
	return l.sugared.Sync()
}

var std = New(Options{Level: LevelInfo})

// SetDefault installs l as the package-level default logger returned by
// Default.
func SetDefault(l Logger) { std = l }

// Default returns the package-level default logger.
func Default() Logger { return std }

// ParseLevel normalizes a user-supplied level string.
func ParseLevel(s string) Level {
	switch Level(strings.ToLower(strings.TrimSpace(s))) {
	case LevelDebug:
		return LevelDebug
	case LevelWarn:
		return LevelWarn
	case LevelError:
		return LevelError
	default:
		return LevelInfo
	}
}
