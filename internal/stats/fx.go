package stats

import (
	"context"

	"go.uber.org/fx"
)

var Module = fx.Options(
	fx.Provide(New),
	fx.Invoke(func(lc fx.Lifecycle, r *Refresher) {
		ctx, cancel := context.WithCancel(context.Background())
		lc.Append(fx.Hook{
			OnStart: func(context.Context) error {
				return r.Start(ctx)
			},
			OnStop: func(context.Context) error {
				cancel()
				return r.Stop()
			},
		})
	}),
)
