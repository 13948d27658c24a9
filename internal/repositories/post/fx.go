package post

import (
	"go.uber.org/fx"
)

var Module = fx.Module("post_repository",
	fx.Provide(
		fx.Annotate(
			NewDocStoreRepository,
			fx.As(new(Repository)),
		),
	),
)
