package like

import (
	"go.uber.org/fx"
)

var Module = fx.Provide(
	fx.Annotate(
		NewDocStoreRepository,
		fx.As(new(Repository)),
	),
)
