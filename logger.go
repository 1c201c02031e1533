package mlflow

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with store-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithModelID adds a model_id field to the logger.
func (l *Logger) WithModelID(id string) *Logger {
	return &Logger{
		Logger: l.Logger.With("model_id", id),
	}
}

// WithExperimentID adds an experiment_id field to the logger.
func (l *Logger) WithExperimentID(id string) *Logger {
	return &Logger{
		Logger: l.Logger.With("experiment_id", id),
	}
}

// LogCreate logs a model creation.
func (l *Logger) LogCreate(ctx context.Context, modelID, experimentID string, err error) {
	if err != nil {
		l.ErrorContext(ctx, "create logged model failed",
			"experiment_id", experimentID,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "logged model created",
			"model_id", modelID,
			"experiment_id", experimentID,
		)
	}
}

// LogUpdate logs a metadata mutation (tags, params, finalize).
func (l *Logger) LogUpdate(ctx context.Context, op, modelID string, err error) {
	if err != nil {
		l.ErrorContext(ctx, "update logged model failed",
			"op", op,
			"model_id", modelID,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "logged model updated",
			"op", op,
			"model_id", modelID,
		)
	}
}

// LogSearch logs a search operation.
func (l *Logger) LogSearch(ctx context.Context, experiments, scanned, matched int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "search logged models failed",
			"experiments", experiments,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "search logged models completed",
			"experiments", experiments,
			"scanned", scanned,
			"matched", matched,
		)
	}
}

// LogExport logs an experiment export.
func (l *Logger) LogExport(ctx context.Context, experimentID string, models int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "export failed",
			"experiment_id", experimentID,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "export completed",
			"experiment_id", experimentID,
			"models", models,
		)
	}
}
