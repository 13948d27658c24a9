package logger

import (
	"context"
	"time"

	"github.com/orgball2608/board-api/pkg/config"
	"go.uber.org/fx"
)

const flushTimeout = 2 * time.Second

var FxOption = fx.Annotate(
	func(lc fx.Lifecycle, cfg *config.Config) *Impl {
		l := New(
			Opts{
				Env:       cfg.App.Env,
				SentryURL: cfg.App.SentryUrl,
			},
		)

		lc.Append(fx.Hook{
			OnStop: func(context.Context) error {
				if !l.Flush(flushTimeout) {
					l.Warn("Sentry events were not flushed before shutdown")
				}
				return nil
			},
		})

		return l
	},
	fx.As(new(Logger)),
)
