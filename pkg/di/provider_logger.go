package di

import (
	"io"
	"log/slog"
	"os"

	"github.com/goliatone/gitprep/pkg/config"
)

// Logs go to stderr so command output (paths, HEAD digests, tag listings)
// stays clean on stdout.

// provideLogger creates the fallback logger used when no configuration is
// available yet, for example while the config itself fails to load.
func provideLogger() Logger {
	return newSlogLogger(os.Stderr, config.LoggingConfig{})
}

// provideLoggerWithConfig creates a logger honoring level, format
// (text/json), verbose, and quiet settings.
func provideLoggerWithConfig(cfg *config.Config) Logger {
	if cfg == nil {
		return provideLogger()
	}
	return newSlogLogger(os.Stderr, cfg.Logging)
}

// newSlogLogger builds the slog-backed Logger writing to w. Every record
// carries an "app" attribute so gitprep lines remain attributable when a
// caller funnels several tools into one stream.
func newSlogLogger(w io.Writer, logging config.LoggingConfig) Logger {
	opts := &slog.HandlerOptions{Level: logLevel(logging)}

	var handler slog.Handler
	if logging.Format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return &slogAdapter{
		logger: slog.New(handler).With(slog.String("app", "gitprep")),
	}
}

// logLevel maps the logging config onto an slog level. Quiet wins over
// verbose, matching the validation rule that forbids setting both.
func logLevel(logging config.LoggingConfig) slog.Level {
	switch {
	case logging.Quiet:
		return slog.LevelWarn
	case logging.Verbose:
		return slog.LevelDebug
	}

	switch logging.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// slogAdapter adapts slog.Logger to implement our Logger interface.
type slogAdapter struct {
	logger *slog.Logger
}

func (s *slogAdapter) Debug(msg string, args ...any) {
	s.logger.Debug(msg, args...)
}

func (s *slogAdapter) Info(msg string, args ...any) {
	s.logger.Info(msg, args...)
}

func (s *slogAdapter) Warn(msg string, args ...any) {
	s.logger.Warn(msg, args...)
}

func (s *slogAdapter) Error(msg string, args ...any) {
	s.logger.Error(msg, args...)
}
