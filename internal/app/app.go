package app

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/orgball2608/board-api/internal/board/boardimpl"
	"github.com/orgball2608/board-api/internal/docstore"
	"github.com/orgball2608/board-api/internal/events"
	"github.com/orgball2608/board-api/internal/metrics"
	"github.com/orgball2608/board-api/internal/migrations"
	"github.com/orgball2608/board-api/internal/ratelimit"
	repositories "github.com/orgball2608/board-api/internal/repositories/fx"
	"github.com/orgball2608/board-api/internal/server"
	"github.com/orgball2608/board-api/internal/stats"
	"github.com/orgball2608/board-api/pkg/clock"
	"github.com/orgball2608/board-api/pkg/config"
	"github.com/orgball2608/board-api/pkg/logger"
	"github.com/orgball2608/board-api/pkg/pgx"
	"github.com/orgball2608/board-api/pkg/redis"
	"github.com/orgball2608/board-api/pkg/tracing"
	"go.uber.org/fx"
)

// New assembles the service for cfg. The store backend decides which
// connection modules take part.
func New(cfg *config.Config) fx.Option {
	return fx.Options(
		fx.Supply(cfg),
		fx.Provide(
			logger.FxOption,
			fx.Annotate(
				clock.NewRealClock,
				fx.As(new(clock.Clock)),
			),
		),
		tracing.Module,
		metrics.Module,
		events.Module,
		docstore.Module,
		storeModule(cfg.Board.Store),
		repositories.Module,
		boardimpl.Module,
		ratelimit.Module,
		stats.Module,
		server.Module,
	)
}

func storeModule(backend string) fx.Option {
	switch backend {
	case config.StoreMemory:
		return docstore.StoreModule(backend)
	case config.StoreRedis:
		return fx.Options(
			fx.Provide(redis.New),
			docstore.StoreModule(backend),
		)
	default:
		return fx.Options(
			fx.Provide(pgx.New),
			fx.Invoke(migrate),
			docstore.StoreModule(backend),
		)
	}
}

// migrate depends on the pool so its hook runs after the connectivity check.
func migrate(lc fx.Lifecycle, _ *pgxpool.Pool, cfg *config.Config, log logger.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			results, err := migrations.Up(ctx, cfg.GetDSN())
			if err != nil {
				return fmt.Errorf("failed to run migrations: %w", err)
			}
			log.Info("Migrations applied", "count", len(results))
			return nil
		},
	})
}
