package redis

import (
	"context"

	"github.com/orgball2608/board-api/pkg/config"
	"github.com/orgball2608/board-api/pkg/logger"
	"github.com/orgball2608/board-api/pkg/retry"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

// Opts holds dependencies for creating a redis client.
type Opts struct {
	fx.In
	LC     fx.Lifecycle
	Logger logger.Logger
	Config *config.Config
}

// New creates a redis client and manages its lifecycle.
func New(opts Opts) *goredis.Client {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     opts.Config.Redis.Addr,
		Password: opts.Config.Redis.Pass,
		DB:       opts.Config.Redis.DB,
	})

	opts.LC.Append(
		fx.Hook{
			OnStart: func(ctx context.Context) error {
				ping := func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
				if err := retry.Do(ctx, opts.Logger, "redis", ping, retry.DefaultConfig()); err != nil {
					return err
				}
				opts.Logger.Info("Connected to redis", "addr", opts.Config.Redis.Addr)
				return nil
			},
			OnStop: func(ctx context.Context) error {
				return rdb.Close()
			},
		},
	)

	return rdb
}
