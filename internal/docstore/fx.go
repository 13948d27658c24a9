package docstore

import (
	"github.com/orgball2608/board-api/pkg/config"
	"go.uber.org/fx"
)

var Module = fx.Provide(NewCodec)

// StoreModule provides the Store for the configured backend. The backend's
// connection (pgx pool or redis client) must be provided separately.
func StoreModule(backend string) fx.Option {
	switch backend {
	case config.StoreRedis:
		return fx.Provide(fx.Annotate(NewRedis, fx.As(new(Store))))
	case config.StoreMemory:
		return fx.Provide(fx.Annotate(NewMemory, fx.As(new(Store))))
	default:
		return fx.Provide(fx.Annotate(NewPgx, fx.As(new(Store))))
	}
}
