package ratelimit

import (
	"github.com/orgball2608/board-api/pkg/config"
	"go.uber.org/fx"
)

var Module = fx.Provide(
	fx.Annotate(
		func(cfg *config.Config) *InMemoryLimiter {
			return NewInMemoryLimiter(cfg.Board.RateRequests, cfg.Board.RatePer, cfg.Board.RateBurst)
		},
		fx.As(new(Limiter)),
	),
)
