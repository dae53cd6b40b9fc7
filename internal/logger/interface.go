package logger

import "context"

// Logger is the leveled logger shared by all pipeline components
type Logger interface {
	Debug(ctx context.Context, msg string, args ...interface{})
	Info(ctx context.Context, msg string, args ...interface{})
	Warn(ctx context.Context, msg string, args ...interface{})
	Error(ctx context.Context, msg string, args ...interface{})

	// WithName returns a logger that prefixes every line with a component name
	WithName(name string) Logger
}
