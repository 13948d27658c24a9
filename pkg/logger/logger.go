package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/rs/zerolog"
	slogmulti "github.com/samber/slog-multi"
	slogsentry "github.com/samber/slog-sentry/v2"
	slogzerolog "github.com/samber/slog-zerolog/v2"
)

const envProduction = "production"

type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	WithComponent(name string) Logger
}

type Opts struct {
	Env       string
	SentryURL string
	Output    io.Writer
}

// Impl writes through slog to zerolog and, when a Sentry DSN is configured,
// forwards errors to Sentry.
type Impl struct {
	log    *slog.Logger
	sentry bool
}

var _ Logger = (*Impl)(nil)

func New(opts Opts) *Impl {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	level := slog.LevelDebug
	var zl zerolog.Logger
	if opts.Env == envProduction {
		level = slog.LevelInfo
		zl = zerolog.New(out).With().Timestamp().Logger()
	} else {
		zl = zerolog.New(zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}).With().Timestamp().Logger()
	}

	l := &Impl{}
	handlers := []slog.Handler{
		slogzerolog.Option{Level: level, Logger: &zl}.NewZerologHandler(),
	}

	if opts.SentryURL != "" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:         opts.SentryURL,
			Environment: opts.Env,
		})
		if err != nil {
			zl.Error().Err(err).Msg("Failed to init sentry")
		} else {
			handlers = append(handlers, slogsentry.Option{Level: slog.LevelError}.NewSentryHandler())
			l.sentry = true
		}
	}

	l.log = slog.New(slogmulti.Fanout(handlers...))
	return l
}

func (l *Impl) Debug(msg string, args ...any) { l.log.Debug(msg, args...) }
func (l *Impl) Info(msg string, args ...any)  { l.log.Info(msg, args...) }
func (l *Impl) Warn(msg string, args ...any)  { l.log.Warn(msg, args...) }
func (l *Impl) Error(msg string, args ...any) { l.log.Error(msg, args...) }

func (l *Impl) WithComponent(name string) Logger {
	return &Impl{log: l.log.With("component", name), sentry: l.sentry}
}

// Flush waits up to timeout for buffered Sentry events.
func (l *Impl) Flush(timeout time.Duration) bool {
	if !l.sentry {
		return true
	}
	return sentry.Flush(timeout)
}

// Printf lets Impl serve as the fx event printer.
func (l *Impl) Printf(format string, args ...any) {
	l.log.Debug(fmt.Sprintf(format, args...))
}

// Slog exposes the underlying logger for libraries that accept *slog.Logger.
func (l *Impl) Slog() *slog.Logger {
	return l.log
}

// Nop discards everything; used in tests.
func Nop() *Impl {
	return &Impl{log: slog.New(slog.NewTextHandler(io.Discard, nil))}
}
