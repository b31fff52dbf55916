// Package observe provides the logging side of the token services: a
// zap logger factory and a higher-order wrapper that logs an operation's
// outcome at a level derived from its HTTP-status classification while
// leaving inputs, outputs and errors untouched.
package observe

import (
	"context"
	"log"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds a production or development zap logger.
func NewLogger(mode string) *zap.Logger {
	var logger *zap.Logger
	var err error
	if mode == "release" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	return logger
}

// Operation is any context-taking unit of work the wrapper can observe.
type Operation[I, O any] func(ctx context.Context, in I) (O, error)

// Classifier maps an operation outcome to an HTTP status code, which in
// turn selects the log level.
type Classifier[O any] func(out O, err error) int

// LevelFor maps a status class to a zap level: 2xx info, 3xx debug,
// 4xx warn, 5xx and up error.
func LevelFor(status int) zapcore.Level {
	switch {
	case status >= 500:
		return zapcore.ErrorLevel
	case status >= 400:
		return zapcore.WarnLevel
	case status >= 300:
		return zapcore.DebugLevel
	default:
		return zapcore.InfoLevel
	}
}

// Wrap returns an operation with identical behavior that additionally
// logs name, duration and classified status on every call. The original
// result and error pass through unchanged.
func Wrap[I, O any](logger *zap.Logger, name string, classify Classifier[O], op Operation[I, O]) Operation[I, O] {
	return func(ctx context.Context, in I) (O, error) {
		start := time.Now()
		out, err := op(ctx, in)

		status := classify(out, err)
		fields := []zap.Field{
			zap.String("operation", name),
			zap.Int("status", status),
			zap.Duration("elapsed", time.Since(start)),
		}
		if err != nil {
			fields = append(fields, zap.Error(err))
		}
		logger.Log(LevelFor(status), name, fields...)

		return out, err
	}
}
