package logging

import (
	"context"
	"os"

	"github.com/rs/zerolog"

	"github.com/kenawards/reg-membership-service/internal/common"
)

type Logger interface {
	Debug(format string, v ...interface{})
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})

	// expected to terminate the process
	Fatal(format string, v ...interface{})
}

type loggingWrapper struct {
	logger *zerolog.Logger
}

func (l *loggingWrapper) Debug(format string, v ...interface{}) {
	l.logger.Debug().Msgf(format, v...)
}

func (l *loggingWrapper) Info(format string, v ...interface{}) {
	l.logger.Info().Msgf(format, v...)
}

func (l *loggingWrapper) Warn(format string, v ...interface{}) {
	l.logger.Warn().Msgf(format, v...)
}

func (l *loggingWrapper) Error(format string, v ...interface{}) {
	l.logger.Error().Msgf(format, v...)
}

// expected to terminate the process
func (l *loggingWrapper) Fatal(format string, v ...interface{}) {
	l.logger.Fatal().Msgf(format, v...)
}

// context key with a separate type, so no other package has a chance of accessing it
type key int

// the value actually doesn't matter, the type alone will guarantee no package gets at this context value
const LoggerKey key = 0

// SetSeverity configures the global log level. Unknown values fall back to INFO.
func SetSeverity(severity string) {
	switch severity {
	case "DEBUG":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "WARN":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "ERROR":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

func ContextWithLogger(ctx context.Context, logger Logger) context.Context {
	return context.WithValue(ctx, LoggerKey, logger)
}

// whenever processing a specific request, use this and give it the context,
// so log output can be associated with the request being processed
func LoggerFromContext(ctx context.Context) Logger {
	logger, ok := ctx.Value(LoggerKey).(Logger)
	if !ok {
		return NewLogger()
	}

	return logger
}

func NewLogger() Logger {
	logger := zerolog.New(os.Stdout).
		With().
		Str("App", common.ApplicationName).
		Timestamp().
		Logger()

	return &loggingWrapper{
		logger: &logger,
	}
}

func NewLoggerWithRequestID(reqID string) Logger {
	logger := zerolog.New(os.Stdout).
		With().
		Str("App", common.ApplicationName).
		Str("RequestID", reqID).
		Timestamp().
		Logger()

	return &loggingWrapper{
		logger: &logger,
	}
}

func NewNoopLogger() Logger {
	return &noopLogger{}
}

type noopLogger struct {
}

func (l *noopLogger) Debug(format string, v ...interface{}) {
}

func (l *noopLogger) Info(format string, v ...interface{}) {
}

func (l *noopLogger) Warn(format string, v ...interface{}) {
}

func (l *noopLogger) Error(format string, v ...interface{}) {
}

// expected to terminate the process
func (l *noopLogger) Fatal(format string, v ...interface{}) {
}
