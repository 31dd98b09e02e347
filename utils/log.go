package utils

import (
	"fmt"
	"io"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type LogLevel int

const (
	TRACE LogLevel = iota
	DEBUG
	INFO
	WARN
	ERROR
	CRITICAL
)

func (l LogLevel) String() string {
	switch l {
	case TRACE:
		return "TRACE"
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	case CRITICAL:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}

// ParseLogLevel maps a flag value to a level; unknown names fall back to INFO
func ParseLogLevel(s string) LogLevel {
	switch s {
	case "trace":
		return TRACE
	case "debug":
		return DEBUG
	case "info":
		return INFO
	case "warn", "warning":
		return WARN
	case "error":
		return ERROR
	case "critical":
		return CRITICAL
	default:
		return INFO
	}
}

// zap has no trace level; it sits one below debug. Critical is logged at
// DPanic, which only panics in development loggers.
func (l LogLevel) zapLevel() zapcore.Level {
	switch l {
	case TRACE:
		return zapcore.DebugLevel - 1
	case DEBUG:
		return zapcore.DebugLevel
	case WARN:
		return zapcore.WarnLevel
	case ERROR:
		return zapcore.ErrorLevel
	case CRITICAL:
		return zapcore.DPanicLevel
	default:
		return zapcore.InfoLevel
	}
}

func levelFromZap(z zapcore.Level) LogLevel {
	switch {
	case z < zapcore.DebugLevel:
		return TRACE
	case z == zapcore.DebugLevel:
		return DEBUG
	case z == zapcore.InfoLevel:
		return INFO
	case z == zapcore.WarnLevel:
		return WARN
	case z == zapcore.ErrorLevel:
		return ERROR
	default:
		return CRITICAL
	}
}

func encodeLevel(z zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString("[" + levelFromZap(z).String() + "]")
}

// Logger is a leveled printf-style logger writing to a file and optionally stdout
type Logger struct {
	mu    sync.Mutex
	level zap.AtomicLevel
	zl    *zap.Logger
	file  *os.File
}

func NewFileLogger(filePath string, minLevel LogLevel, alsoStdout bool) (*Logger, error) {
	f, err := os.OpenFile(filePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	sinks := []zapcore.WriteSyncer{f}
	if alsoStdout {
		sinks = append(sinks, zapcore.Lock(os.Stdout))
	}
	l := newLogger(minLevel, sinks...)
	l.file = f
	return l, nil
}

// NewLogger writes to w only; used by tools and tests that do not want a log file
func NewLogger(w io.Writer, minLevel LogLevel) *Logger {
	return newLogger(minLevel, zapcore.Lock(zapcore.AddSync(w)))
}

func newLogger(minLevel LogLevel, sinks ...zapcore.WriteSyncer) *Logger {
	level := zap.NewAtomicLevelAt(minLevel.zapLevel())
	enc := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		TimeKey:          "ts",
		LevelKey:         "level",
		MessageKey:       "msg",
		EncodeTime:       zapcore.RFC3339NanoTimeEncoder,
		EncodeLevel:      encodeLevel,
		ConsoleSeparator: " ",
	})
	cores := make([]zapcore.Core, 0, len(sinks))
	for _, s := range sinks {
		cores = append(cores, zapcore.NewCore(enc, s, level))
	}
	return &Logger{
		level: level,
		zl:    zap.New(zapcore.NewTee(cores...)),
	}
}

func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	_ = l.zl.Sync()
	if l.file != nil {
		err := l.file.Close()
		l.file = nil
		return err
	}
	return nil
}

func (l *Logger) SetMinLevel(level LogLevel) {
	l.level.SetLevel(level.zapLevel())
}

func (l *Logger) Enabled(level LogLevel) bool {
	return l.level.Enabled(level.zapLevel())
}

func (l *Logger) log(level LogLevel, msg string, args ...any) {
	if ce := l.zl.Check(level.zapLevel(), ""); ce != nil {
		ce.Message = fmt.Sprintf(msg, args...)
		ce.Write()
	}
}

func (l *Logger) Trace(msg string, args ...any)    { l.log(TRACE, msg, args...) }
func (l *Logger) Debug(msg string, args ...any)    { l.log(DEBUG, msg, args...) }
func (l *Logger) Info(msg string, args ...any)     { l.log(INFO, msg, args...) }
func (l *Logger) Warn(msg string, args ...any)     { l.log(WARN, msg, args...) }
func (l *Logger) Error(msg string, args ...any)    { l.log(ERROR, msg, args...) }
func (l *Logger) Critical(msg string, args ...any) { l.log(CRITICAL, msg, args...) }
