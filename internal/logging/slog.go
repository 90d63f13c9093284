package logging

import (
	"context"
	"log/slog"
)

// SlogLogger adapts *slog.Logger to the Logger interface. The zero value is
// not usable; construct it with NewSlogLogger.
type SlogLogger struct {
	log *slog.Logger
}

func NewSlogLogger(log *slog.Logger) *SlogLogger {
	return &SlogLogger{log: log}
}

func (s *SlogLogger) Info(ctx context.Context, msg string, args ...any) {
	s.log.InfoContext(ctx, msg, args...)
}

func (s *SlogLogger) Warn(ctx context.Context, msg string, args ...any) {
	s.log.WarnContext(ctx, msg, args...)
}

func (s *SlogLogger) Error(ctx context.Context, msg string, args ...any) {
	s.log.ErrorContext(ctx, msg, args...)
}

func (s *SlogLogger) With(args ...any) Logger {
	return &SlogLogger{log: s.log.With(args...)}
}
