package utils

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"sync"

	"github.com/awantoch/flowsketch/constants"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	loggerMu       sync.RWMutex
	userLogger     = log.New(os.Stdout, "", 0)
	internalLogger *zap.SugaredLogger
	debugEnabled   bool
)

type requestIDKeyType struct{}

var requestIDKey = requestIDKeyType{}

func init() {
	SetDebug(os.Getenv(constants.EnvDebug) != "")
}

// SetDebug rebuilds the internal logger at debug or info level. Output goes to stderr.
func SetDebug(enabled bool) {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	level := zapcore.InfoLevel
	if enabled {
		level = zapcore.DebugLevel
	}
	cfg.Level = zap.NewAtomicLevelAt(level)

	l, err := cfg.Build()
	if err != nil {
		log.Printf("Failed to initialize zap logger: %v, logging disabled", err)
		l = zap.NewNop()
	}

	loggerMu.Lock()
	defer loggerMu.Unlock()
	internalLogger = l.Sugar()
	debugEnabled = enabled
}

// DebugEnabled reports whether debug logging is on.
func DebugEnabled() bool {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	return debugEnabled
}

func sugar() *zap.SugaredLogger {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	return internalLogger
}

// User prints unadorned output meant for the person at the terminal.
func User(format string, v ...any) {
	loggerMu.RLock()
	l := userLogger
	loggerMu.RUnlock()
	l.Printf(format, v...)
}

func Info(format string, v ...any) {
	sugar().Infof(format, v...)
}

func Warn(format string, v ...any) {
	sugar().Warnf(format, v...)
}

func Error(format string, v ...any) {
	sugar().Errorf(format, v...)
}

func Debug(format string, v ...any) {
	sugar().Debugf(format, v...)
}

// Errorf logs the error message and returns it as an error value.
func Errorf(format string, v ...any) error {
	err := fmt.Errorf(format, v...)
	sugar().Errorf("%s", err)
	return err
}

func SetUserOutput(w io.Writer) {
	if w == nil {
		w = os.Stdout
	}
	loggerMu.Lock()
	defer loggerMu.Unlock()
	userLogger = log.New(w, "", 0)
}

// SetInternalOutput redirects internal logs to w at debug level. Used by tests to capture output.
func SetInternalOutput(w io.Writer) {
	if w == nil {
		w = os.Stderr
	}
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderCfg),
		zapcore.AddSync(w),
		zapcore.DebugLevel,
	)
	loggerMu.Lock()
	defer loggerMu.Unlock()
	internalLogger = zap.New(core).Sugar()
}

// Sync flushes buffered log entries.
func Sync() {
	_ = sugar().Sync()
}

// NewRequestID returns a fresh random request ID.
func NewRequestID() string {
	return uuid.NewString()
}

// WithRequestID returns a new context with the given request ID.
func WithRequestID(ctx context.Context, reqID string) context.Context {
	return context.WithValue(ctx, requestIDKey, reqID)
}

// RequestIDFromContext extracts the request ID from context, if present.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	s, ok := ctx.Value(requestIDKey).(string)
	return s, ok && s != ""
}

func withRequestID(ctx context.Context, fields []any) []any {
	if reqID, ok := RequestIDFromContext(ctx); ok {
		fields = append(fields, "request_id", reqID)
	}
	return fields
}

// InfoCtx logs an info message with structured fields, including the request ID if present.
func InfoCtx(ctx context.Context, msg string, fields ...any) {
	sugar().Infow(msg, withRequestID(ctx, fields)...)
}

// WarnCtx logs a warning with structured fields, including the request ID if present.
func WarnCtx(ctx context.Context, msg string, fields ...any) {
	sugar().Warnw(msg, withRequestID(ctx, fields)...)
}

// ErrorCtx logs an error with structured fields, including the request ID if present.
func ErrorCtx(ctx context.Context, msg string, fields ...any) {
	sugar().Errorw(msg, withRequestID(ctx, fields)...)
}

// DebugCtx logs a debug message with structured fields, including the request ID if present.
func DebugCtx(ctx context.Context, msg string, fields ...any) {
	sugar().Debugw(msg, withRequestID(ctx, fields)...)
}
