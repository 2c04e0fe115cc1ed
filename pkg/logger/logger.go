package logger

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Logger is the global logger instance
var log = zerolog.New(os.Stdout).With().Timestamp().Logger()

type ctxKey struct{}

// Init configures the global logger. Development environments get a
// human readable console writer, everything else gets JSON lines.
func Init(env string, logLevel string) {
	zerolog.TimeFieldFormat = time.RFC3339

	var output io.Writer = os.Stdout
	if env == "development" || env == "dev" || env == "" {
		output = zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: "15:04:05",
		}
	}

	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(logLevel)))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	log = zerolog.New(output).
		With().
		Timestamp().
		Caller().
		Logger()
}

// Get returns the global logger
func Get() *zerolog.Logger {
	return &log
}

// WithContext returns the request scoped logger, or the global one.
func WithContext(ctx context.Context) *zerolog.Logger {
	if ctx == nil {
		return &log
	}
	if l, ok := ctx.Value(ctxKey{}).(*zerolog.Logger); ok {
		return l
	}
	return &log
}

// NewContext creates a new context with the logger
func NewContext(ctx context.Context, l *zerolog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

func WithRequestID(requestID string) zerolog.Logger {
	return log.With().Str("request_id", requestID).Logger()
}

func WithUserID(l zerolog.Logger, userID string) zerolog.Logger {
	return l.With().Str("user_id", userID).Logger()
}

func Info() *zerolog.Event {
	return log.Info()
}

func Warn() *zerolog.Event {
	return log.Warn()
}

func Error() *zerolog.Event {
	return log.Error()
}

func Fatal() *zerolog.Event {
	return log.Fatal()
}

// DBQuery logs a database query at debug level
func DBQuery(ctx context.Context, query string, duration time.Duration, err error) {
	l := WithContext(ctx)
	if err != nil {
		l.Error().Err(err).Str("query", query).Dur("duration_ms", duration).Msg("DB Query Failed")
		return
	}
	l.Debug().Str("query", query).Dur("duration_ms", duration).Msg("DB Query")
}

// ConfigChange records an admin change to a persisted configuration.
func ConfigChange(ctx context.Context, kind, adminID string, fields map[string]interface{}) {
	WithContext(ctx).Info().
		Str("config", kind).
		Str("admin_id", adminID).
		Fields(fields).
		Msg("Configuration updated")
}

func ServiceStart(name, version, port string) {
	log.Info().
		Str("service", name).
		Str("version", version).
		Str("port", port).
		Msg("Service Started")
}

func ServiceStop(name string) {
	log.Info().
		Str("service", name).
		Msg("Service Stopped")
}
