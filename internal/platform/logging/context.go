package logging

import (
	"context"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type (
	ctxLoggerKey  struct{}
	ctxTraceIDKey struct{}
)

// LoggerFromContext returns the request logger stored by RequestLogger, or the
// process logger outside a request. Once authentication has run, the request
// logger carries the administrator as actor_id.
func LoggerFromContext(ctx context.Context) *zap.Logger {
	if ctx != nil {
		if l, _ := ctx.Value(ctxLoggerKey{}).(*zap.Logger); l != nil {
			return l
		}
	}
	return Logger()
}

// ContextWithLogger returns ctx carrying logger for the Log* helpers.
func ContextWithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxLoggerKey{}, logger)
}

// TraceIDFromContext returns the trace or request ID of the current request.
func TraceIDFromContext(ctx context.Context) *string {
	if ctx == nil {
		return nil
	}
	if v, _ := ctx.Value(ctxTraceIDKey{}).(*string); v != nil && *v != "" {
		return v
	}
	return nil
}

func contextWithTraceID(ctx context.Context, traceID string) context.Context {
	if traceID == "" {
		return ctx
	}
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxTraceIDKey{}, &traceID)
}

func LogInfo(ctx context.Context, msg string, fields ...zap.Field) {
	logAt(ctx, zapcore.InfoLevel, msg, nil, fields)
}

func LogWarn(ctx context.Context, msg string, fields ...zap.Field) {
	logAt(ctx, zapcore.WarnLevel, msg, nil, fields)
}

// LogError logs msg with err attached as the error field.
func LogError(ctx context.Context, msg string, err error, fields ...zap.Field) {
	logAt(ctx, zapcore.ErrorLevel, msg, err, fields)
}

// LogFatal logs like LogError, then exits the process.
func LogFatal(ctx context.Context, msg string, err error, fields ...zap.Field) {
	logAt(ctx, zapcore.FatalLevel, msg, err, fields)
}

func logAt(ctx context.Context, lvl zapcore.Level, msg string, err error, fields []zap.Field) {
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	LoggerFromContext(ctx).Log(lvl, msg, fields...)
}
